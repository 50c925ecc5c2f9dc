package bpm

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

type File struct {
	Data    []byte
	Header  *Header
	mmapped bool
}

// Open maps a BPM file read-only and validates its structure.
// If mmap is unavailable, it falls back to ReadAt-based loading.
// The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size64 := stat.Size()
	if size64 < bpmHeaderSize || size64 > int64(int(^uint(0)>>1)) {
		return nil, ErrCorruptFile
	}
	size := int(size64)

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		bf, parseErr := parseFileData(data, true)
		if parseErr != nil {
			_ = unix.Munmap(data)
			return nil, parseErr
		}
		return bf, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return parseFileData(data, false)
}

// OpenReaderAt loads and validates a BPM file from a random-access reader without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, ErrCorruptFile
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return parseFileData(data, false)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

func parseFileData(data []byte, mmapped bool) (*File, error) {
	hdr, ok := decodeHeader(data)
	if !ok {
		return nil, ErrCorruptFile
	}
	if !hdr.Valid() {
		return nil, ErrInvalidMagic
	}
	if !hdr.Compatible() {
		return nil, ErrUnsupportedMajor
	}
	if hdr.FileSize != uint64(len(data)) {
		return nil, fmt.Errorf("%w: header says %d bytes, file has %d", ErrCorruptFile, hdr.FileSize, len(data))
	}
	if hdr.HeaderSize < bpmHeaderSize || uint64(hdr.HeaderSize) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: header size %d", ErrCorruptFile, hdr.HeaderSize)
	}
	if hdr.VocabSize <= FirstMergeID || hdr.MergeCount != hdr.VocabSize-FirstMergeID {
		return nil, fmt.Errorf("%w: vocab size %d with %d merges", ErrCorruptFile, hdr.VocabSize, hdr.MergeCount)
	}
	recordsEnd := uint64(hdr.HeaderSize) + uint64(hdr.MergeCount)*bpmRecordSize
	if recordsEnd != uint64(len(data)) {
		return nil, fmt.Errorf("%w: record table out of bounds", ErrCorruptFile)
	}

	return &File{
		Data:    data,
		Header:  &hdr,
		mmapped: mmapped,
	}, nil
}

// VocabSize returns the vocabulary size recorded in the header.
func (f *File) VocabSize() int {
	if f == nil || f.Header == nil {
		return 0
	}
	return int(f.Header.VocabSize)
}

// Records decodes the merge records in file order. The result is a copy and
// stays valid after Close.
func (f *File) Records() []Record {
	if f == nil || f.Header == nil || f.Data == nil {
		return nil
	}
	n := int(f.Header.MergeCount)
	out := make([]Record, n)
	off := int(f.Header.HeaderSize)
	for i := range out {
		out[i] = Record{
			Left:  binary.LittleEndian.Uint32(f.Data[off : off+4]),
			Right: binary.LittleEndian.Uint32(f.Data[off+4 : off+8]),
		}
		off += bpmRecordSize
	}
	return out
}

// Close releases file resources and any mmap backing.
func (f *File) Close() error {
	if f == nil {
		return nil
	}
	var err error
	if f.Data != nil && f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.Header = nil
	f.mmapped = false
	return err
}

// ReadFile opens path, decodes the table and closes the file.
func ReadFile(path string) (int, []Record, error) {
	f, err := Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = f.Close() }()
	return f.VocabSize(), f.Records(), nil
}
