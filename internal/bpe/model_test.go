package bpe

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/bytepair/internal/logger"
)

const corpus = `Artificial intelligence transforms industries worldwide.
Neural networks learn by gradient descent through backpropagation.
Machine learning, нейронные сети, maşın öyrənmə, makine öğrenimi.
Gradyan iniş sinir ağlarının temel optimizasyon yöntemidir.`

func trained(t *testing.T, text string, vocabSize int) *Model {
	t.Helper()
	m, err := New(text, vocabSize)
	require.NoError(t, err)
	require.NoError(t, m.Train())
	return m
}

func TestTrainSmallExample(t *testing.T) {
	t.Parallel()

	m := trained(t, "aaabdaaabac", 259)

	want := []Merge{
		{Pair: Pair{'a', 'a'}, ID: 256},
		{Pair: Pair{256, 'a'}, ID: 257},
		{Pair: Pair{257, 'b'}, ID: 258},
	}
	assert.Equal(t, want, m.Merges())

	ids, err := m.Encode("aaabdaaabac")
	require.NoError(t, err)
	assert.Equal(t, []int{258, 'd', 258, 'a', 'c'}, ids)

	text, err := m.Decode(ids)
	require.NoError(t, err)
	assert.Equal(t, "aaabdaaabac", text)
}

func TestTrainDeterministic(t *testing.T) {
	t.Parallel()

	a := trained(t, corpus, 320)
	b := trained(t, corpus, 320)
	assert.Equal(t, a.Merges(), b.Merges())

	again := trained(t, "aaabdaaabac", 259)
	for range 5 {
		require.NoError(t, again.Train())
		assert.Equal(t, trained(t, "aaabdaaabac", 259).Merges(), again.Merges())
	}
}

func TestVocabularyBound(t *testing.T) {
	t.Parallel()

	m := trained(t, corpus, 300)
	require.Equal(t, 300-NumBytes, m.NumMerges())

	for id := FirstMergeID; id < 300; id++ {
		p, ok := m.Lookup(id)
		require.True(t, ok, "id %d missing from inverse table", id)
		assert.Less(t, p.Left, id)
		assert.Less(t, p.Right, id)

		back, ok := m.ID(p)
		require.True(t, ok)
		assert.Equal(t, id, back)
	}
	_, ok := m.Lookup(300)
	assert.False(t, ok)
	_, ok = m.Lookup(255)
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	m := trained(t, corpus, DefaultVocabSize+40)

	inputs := []string{
		"",
		"a",
		corpus,
		"neural network",
		"нейронная сеть",
		"Süni intellekt hər bir sənayeni dəyişdirir",
		"text never seen while training: 🚀 \x00\xff",
		strings.Repeat("ab", 500),
	}
	for _, in := range inputs {
		ids, err := m.Encode(in)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(ids), len(in))
		for _, id := range ids {
			assert.Less(t, id, m.VocabSize())
		}

		out, err := m.Decode(ids)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestEncodeCompresses(t *testing.T) {
	t.Parallel()

	m := trained(t, corpus, 320)
	ids, err := m.Encode(corpus)
	require.NoError(t, err)
	assert.Less(t, len(ids), len(corpus))
}

func TestNewRejectsSmallVocab(t *testing.T) {
	t.Parallel()

	for _, v := range []int{0, 100, 256} {
		_, err := New("abc", v)
		assert.ErrorIs(t, err, ErrInvalidInput, "vocab %d", v)
	}
	_, err := New("abc", 257)
	assert.NoError(t, err)
}

func TestUntrainedGuard(t *testing.T) {
	t.Parallel()

	m, err := New("hello hello", DefaultVocabSize)
	require.NoError(t, err)
	assert.False(t, m.Trained())

	_, err = m.Encode("hello")
	assert.ErrorIs(t, err, ErrNotTrained)
	_, err = m.Decode([]int{104})
	assert.ErrorIs(t, err, ErrNotTrained)
	_, err = m.TokenBytes(104)
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestTrainAbortsWhenSequenceCollapses(t *testing.T) {
	t.Parallel()

	// "abab" collapses to one token after two merges.
	m, err := New("abab", 260)
	require.NoError(t, err)

	err = m.Train()
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "round 3")
	assert.False(t, m.Trained())
	assert.Zero(t, m.NumMerges())
}

func TestTrainHugeVocabAbortsWithoutAllocating(t *testing.T) {
	t.Parallel()

	m, err := New("abcabc", 1<<40)
	require.NoError(t, err)

	err = m.Train()
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "round 4")
	assert.False(t, m.Trained())
}

func TestTrainEmptyText(t *testing.T) {
	t.Parallel()

	m, err := New("", 257)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Train(), ErrInvalidInput)
}

func TestDecodeUnknownToken(t *testing.T) {
	t.Parallel()

	m := trained(t, "aaabdaaabac", 259)

	for _, id := range []int{259, 1000, -1} {
		_, err := m.Decode([]int{'a', id})
		require.ErrorIs(t, err, ErrUnknownToken)

		var ute *UnknownTokenError
		require.ErrorAs(t, err, &ute)
		assert.Equal(t, id, ute.ID)
	}
}

func TestTokenBytes(t *testing.T) {
	t.Parallel()

	m := trained(t, "aaabdaaabac", 259)

	b, err := m.TokenBytes(258)
	require.NoError(t, err)
	assert.Equal(t, []byte("aaab"), b)

	b, err = m.TokenBytes('z')
	require.NoError(t, err)
	assert.Equal(t, []byte("z"), b)
}

func TestFromMergesMatchesTrained(t *testing.T) {
	t.Parallel()

	src := trained(t, corpus, 300)
	m, err := FromMerges(src.VocabSize(), src.Pairs())
	require.NoError(t, err)
	require.True(t, m.Trained())
	assert.Equal(t, src.Merges(), m.Merges())

	want, err := src.Encode(corpus)
	require.NoError(t, err)
	got, err := m.Encode(corpus)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// No training bytes: retraining fails and keeps the loaded tables.
	assert.ErrorIs(t, m.Train(), ErrInvalidInput)
	assert.True(t, m.Trained())
	assert.Equal(t, src.NumMerges(), m.NumMerges())
}

func TestFromMergesRejectsInvalidTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		vocab int
		pairs []Pair
	}{
		{"small vocab", 256, nil},
		{"count mismatch", 258, []Pair{{97, 97}}},
		{"forward reference", 258, []Pair{{97, 97}, {257, 97}}},
		{"self reference", 257, []Pair{{256, 97}}},
		{"negative id", 257, []Pair{{-1, 97}}},
		{"duplicate pair", 258, []Pair{{97, 97}, {97, 97}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := FromMerges(tc.vocab, tc.pairs)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestConcurrentEncodeDecode(t *testing.T) {
	t.Parallel()

	m := trained(t, corpus, 300)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := corpus[:len(corpus)/(i+1)]
			ids, err := m.Encode(text)
			assert.NoError(t, err)
			out, err := m.Decode(ids)
			assert.NoError(t, err)
			assert.Equal(t, text, out)
		}(i)
	}
	wg.Wait()
}

func TestTrainLogsProgress(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m, err := New("aaabdaaabac", 259, WithLogger(logger.JSON(&buf, slog.LevelDebug)), WithProgressEvery(1))
	require.NoError(t, err)
	require.NoError(t, m.Train())

	out := buf.String()
	assert.Contains(t, out, `"msg":"training done"`)
	assert.Contains(t, out, `"pair":"(97,97)"`)
	assert.Equal(t, 3, strings.Count(out, `"msg":"merge"`))
}

func TestPrintable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `ab\n\t\x00\xff\\`, Printable([]byte("ab\n\t\x00\xff\\")))
}
