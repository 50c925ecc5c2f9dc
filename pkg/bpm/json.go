package bpm

import (
	"fmt"

	"github.com/goccy/go-json"
)

const (
	jsonFormat  = "bpm"
	jsonVersion = "1.0"
)

type jsonDocument struct {
	Format    string      `json:"format"`
	Version   string      `json:"version"`
	VocabSize int         `json:"vocab_size"`
	Merges    [][2]uint32 `json:"merges"`
}

// MarshalJSON renders a merge table as a JSON document, one [left,right]
// array per merge in id order.
func MarshalJSON(vocabSize int, merges []Record) ([]byte, error) {
	if err := checkTable(vocabSize, merges); err != nil {
		return nil, err
	}
	doc := jsonDocument{
		Format:    jsonFormat,
		Version:   jsonVersion,
		VocabSize: vocabSize,
		Merges:    make([][2]uint32, len(merges)),
	}
	for i, m := range merges {
		doc.Merges[i] = [2]uint32{m.Left, m.Right}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalJSON parses a document produced by MarshalJSON.
func UnmarshalJSON(data []byte) (int, []Record, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, nil, fmt.Errorf("parse bpm json: %w", err)
	}
	if doc.Format != jsonFormat {
		return 0, nil, fmt.Errorf("%w: json format %q", ErrInvalidMagic, doc.Format)
	}
	merges := make([]Record, len(doc.Merges))
	for i, m := range doc.Merges {
		merges[i] = Record{Left: m[0], Right: m[1]}
	}
	if err := checkTable(doc.VocabSize, merges); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	return doc.VocabSize, merges, nil
}
