package bpm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write encodes a merge table to w.
func Write(w io.Writer, vocabSize int, merges []Record) error {
	if err := checkTable(vocabSize, merges); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(encodeHeader(newHeader(vocabSize, len(merges)))); err != nil {
		return err
	}
	var rec [bpmRecordSize]byte
	for _, m := range merges {
		binary.LittleEndian.PutUint32(rec[0:4], m.Left)
		binary.LittleEndian.PutUint32(rec[4:8], m.Right)
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes the table to a temporary file next to path and renames it
// into place, so readers never observe a half-written file.
func WriteFile(path string, vocabSize int, merges []Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".bpm-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	cleanup := func(err error) error {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}

	if err := Write(f, vocabSize, merges); err != nil {
		return cleanup(err)
	}
	if err := f.Sync(); err != nil {
		return cleanup(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func checkTable(vocabSize int, merges []Record) error {
	if vocabSize <= FirstMergeID || uint64(vocabSize) > uint64(^uint32(0)) {
		return fmt.Errorf("bpm: vocab size %d out of range", vocabSize)
	}
	if len(merges) != vocabSize-FirstMergeID {
		return errors.New("bpm: merge count does not match vocab size")
	}
	return nil
}
