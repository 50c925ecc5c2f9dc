package bpm

import "errors"

var (
	ErrInvalidMagic     = errors.New("invalid BPM magic")
	ErrUnsupportedMajor = errors.New("unsupported BPM major version")
	ErrCorruptFile      = errors.New("corrupt BPM file")
)
