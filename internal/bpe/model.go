// Package bpe implements a byte-level byte-pair-encoding tokenizer.
//
// Ids 0-255 are raw bytes. Training learns vocabSize-256 merges, each one
// assigned the next id starting at 256. Encoding replays the merges in the
// order they were learned; decoding expands ids back into bytes.
package bpe

import (
	"fmt"

	"github.com/samcharles93/bytepair/internal/logger"
)

const (
	// NumBytes is the size of the base vocabulary.
	NumBytes = 256

	// FirstMergeID is the id assigned to the first learned merge.
	FirstMergeID = NumBytes

	DefaultVocabSize = 276

	defaultProgressEvery = 100
)

// Tokenizer is the surface shared by the CLI and the HTTP API.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	Decode(ids []int) (string, error)
}

// Model holds the training bytes and, once trained, the merge table and its
// inverse. A trained model is read-only for Encode and Decode, which may be
// called concurrently. Train must not run concurrently with anything else.
type Model struct {
	data      []byte
	vocabSize int

	merges  []Merge
	ranks   map[Pair]int
	inverse map[int]Pair
	trained bool

	log           logger.Logger
	progressEvery int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for training progress.
func WithLogger(l logger.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithProgressEvery sets how many rounds pass between progress log lines.
func WithProgressEvery(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.progressEvery = n
		}
	}
}

// New returns an untrained model over text. vocabSize counts the 256 byte ids,
// so it must be greater than 256.
func New(text string, vocabSize int, opts ...Option) (*Model, error) {
	if vocabSize <= NumBytes {
		return nil, fmt.Errorf("%w: vocab size must be greater than %d, got %d", ErrInvalidInput, NumBytes, vocabSize)
	}
	m := newModel(vocabSize, opts)
	m.data = []byte(text)
	return m, nil
}

// FromMerges rebuilds a trained model from an ordered merge list, where
// pairs[i] created id 256+i. It rejects lists that could not have come out
// of training: wrong length, repeated pairs, or references to ids that did
// not exist yet.
func FromMerges(vocabSize int, pairs []Pair, opts ...Option) (*Model, error) {
	if vocabSize <= NumBytes {
		return nil, fmt.Errorf("%w: vocab size must be greater than %d, got %d", ErrInvalidInput, NumBytes, vocabSize)
	}
	if want := vocabSize - NumBytes; len(pairs) != want {
		return nil, fmt.Errorf("%w: vocab size %d needs %d merges, got %d", ErrInvalidInput, vocabSize, want, len(pairs))
	}

	m := newModel(vocabSize, opts)
	merges := make([]Merge, 0, len(pairs))
	ranks := make(map[Pair]int, len(pairs))
	inverse := make(map[int]Pair, len(pairs))
	for i, p := range pairs {
		id := FirstMergeID + i
		if p.Left < 0 || p.Right < 0 || p.Left >= id || p.Right >= id {
			return nil, fmt.Errorf("%w: merge %d %v references an id not below %d", ErrInvalidInput, i, p, id)
		}
		if _, dup := ranks[p]; dup {
			return nil, fmt.Errorf("%w: merge %d repeats pair %v", ErrInvalidInput, i, p)
		}
		merges = append(merges, Merge{Pair: p, ID: id})
		ranks[p] = id
		inverse[id] = p
	}
	m.commit(merges, ranks, inverse)
	return m, nil
}

func newModel(vocabSize int, opts []Option) *Model {
	m := &Model{
		vocabSize:     vocabSize,
		log:           logger.Discard(),
		progressEvery: defaultProgressEvery,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) commit(merges []Merge, ranks map[Pair]int, inverse map[int]Pair) {
	m.merges = merges
	m.ranks = ranks
	m.inverse = inverse
	m.trained = true
}

// Trained reports whether the merge tables are populated.
func (m *Model) Trained() bool {
	return m.trained
}

// VocabSize returns the configured vocabulary size, including the 256 byte ids.
func (m *Model) VocabSize() int {
	return m.vocabSize
}

// NumMerges returns the number of learned merges.
func (m *Model) NumMerges() int {
	return len(m.merges)
}

// Merges returns a copy of the merge table in training order.
func (m *Model) Merges() []Merge {
	out := make([]Merge, len(m.merges))
	copy(out, m.merges)
	return out
}

// Pairs returns the merged pairs in training order, the form FromMerges accepts.
func (m *Model) Pairs() []Pair {
	out := make([]Pair, len(m.merges))
	for i, mg := range m.merges {
		out[i] = mg.Pair
	}
	return out
}

// Lookup returns the pair a learned id was created from.
func (m *Model) Lookup(id int) (Pair, bool) {
	p, ok := m.inverse[id]
	return p, ok
}

// ID returns the id a pair was merged into.
func (m *Model) ID(p Pair) (int, bool) {
	id, ok := m.ranks[p]
	return id, ok
}
