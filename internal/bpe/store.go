package bpe

import (
	"fmt"

	"github.com/samcharles93/bytepair/pkg/bpm"
)

// Save writes the merge table of a trained model to a BPM file.
func (m *Model) Save(path string) error {
	if !m.trained {
		return ErrNotTrained
	}
	return bpm.WriteFile(path, m.vocabSize, m.records())
}

// MarshalJSON renders the merge table as a BPM JSON document.
func (m *Model) MarshalJSON() ([]byte, error) {
	if !m.trained {
		return nil, ErrNotTrained
	}
	return bpm.MarshalJSON(m.vocabSize, m.records())
}

// Load reads a BPM file and rebuilds a trained model from it.
func Load(path string, opts ...Option) (*Model, error) {
	vocabSize, records, err := bpm.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	m, err := FromMerges(vocabSize, recordsToPairs(records), opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}

// LoadJSON rebuilds a trained model from a BPM JSON document.
func LoadJSON(data []byte, opts ...Option) (*Model, error) {
	vocabSize, records, err := bpm.UnmarshalJSON(data)
	if err != nil {
		return nil, err
	}
	return FromMerges(vocabSize, recordsToPairs(records), opts...)
}

func (m *Model) records() []bpm.Record {
	out := make([]bpm.Record, len(m.merges))
	for i, mg := range m.merges {
		out[i] = bpm.Record{Left: uint32(mg.Pair.Left), Right: uint32(mg.Pair.Right)}
	}
	return out
}

func recordsToPairs(records []bpm.Record) []Pair {
	pairs := make([]Pair, len(records))
	for i, r := range records {
		pairs[i] = Pair{Left: int(r.Left), Right: int(r.Right)}
	}
	return pairs
}
