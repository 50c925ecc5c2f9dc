// Package bpm implements the Byte-Pair Merges container format.
//
// A BPM file stores a trained merge table: a fixed 32-byte header followed by
// one 8-byte record per merge. Record i created token id 256+i. The format
// describes the table only; it never implies how it is applied.
package bpm

import "encoding/binary"

// BPM global constants must never change.
const (
	// MagicBPM is the file magic, encoded as "BPM\0".
	MagicBPM = "BPM\x00"

	// CurrentMajor changes only on breaking layout changes.
	CurrentMajor uint16 = 1

	// CurrentMinor may add optional fields inside reserved space.
	CurrentMinor uint16 = 0

	// FirstMergeID is the token id created by record 0.
	FirstMergeID = 256

	bpmHeaderSize = 32
	bpmRecordSize = 8
)

// Header is the fixed file header. All fields are little-endian on disk.
type Header struct {
	Magic      [4]byte
	Major      uint16
	Minor      uint16
	HeaderSize uint32
	VocabSize  uint32
	MergeCount uint32
	Flags      uint32
	FileSize   uint64
}

// Record is one merge: token Left followed by token Right.
type Record struct {
	Left  uint32
	Right uint32
}

func (h *Header) Valid() bool {
	return string(h.Magic[:]) == MagicBPM
}

func (h *Header) Compatible() bool {
	return h.Major == CurrentMajor
}

func newHeader(vocabSize, mergeCount int) Header {
	h := Header{
		Major:      CurrentMajor,
		Minor:      CurrentMinor,
		HeaderSize: bpmHeaderSize,
		VocabSize:  uint32(vocabSize),
		MergeCount: uint32(mergeCount),
		FileSize:   uint64(bpmHeaderSize) + uint64(mergeCount)*bpmRecordSize,
	}
	copy(h.Magic[:], MagicBPM)
	return h
}

func encodeHeader(h Header) []byte {
	b := make([]byte, 0, bpmHeaderSize)
	b = append(b, h.Magic[:]...)
	b = binary.LittleEndian.AppendUint16(b, h.Major)
	b = binary.LittleEndian.AppendUint16(b, h.Minor)
	b = binary.LittleEndian.AppendUint32(b, h.HeaderSize)
	b = binary.LittleEndian.AppendUint32(b, h.VocabSize)
	b = binary.LittleEndian.AppendUint32(b, h.MergeCount)
	b = binary.LittleEndian.AppendUint32(b, h.Flags)
	b = binary.LittleEndian.AppendUint64(b, h.FileSize)
	return b
}

func decodeHeader(b []byte) (Header, bool) {
	var h Header
	if len(b) < bpmHeaderSize {
		return h, false
	}
	copy(h.Magic[:], b[0:4])
	h.Major = binary.LittleEndian.Uint16(b[4:6])
	h.Minor = binary.LittleEndian.Uint16(b[6:8])
	h.HeaderSize = binary.LittleEndian.Uint32(b[8:12])
	h.VocabSize = binary.LittleEndian.Uint32(b[12:16])
	h.MergeCount = binary.LittleEndian.Uint32(b[16:20])
	h.Flags = binary.LittleEndian.Uint32(b[20:24])
	h.FileSize = binary.LittleEndian.Uint64(b[24:32])
	return h, true
}
