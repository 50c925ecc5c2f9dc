package bpe

import "fmt"

// Pair is an ordered pair of adjacent token ids.
type Pair struct {
	Left  int
	Right int
}

// NoPair is returned by PairStats.Max when there is nothing to select.
var NoPair = Pair{Left: -1, Right: -1}

func (p Pair) String() string {
	return fmt.Sprintf("(%d,%d)", p.Left, p.Right)
}

// PairStats holds adjacent pair counts for one token sequence.
// Pairs are kept in the order they were first seen during the scan.
type PairStats struct {
	counts map[Pair]int
	order  []Pair
}

// CountPairs counts every adjacent pair in ids. Overlapping occurrences are
// counted independently, so [a a a] yields (a,a)=2.
func CountPairs(ids []int) (*PairStats, error) {
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 tokens to count pairs, got %d", ErrInvalidInput, len(ids))
	}
	s := &PairStats{
		counts: make(map[Pair]int),
	}
	for i := 0; i < len(ids)-1; i++ {
		p := Pair{Left: ids[i], Right: ids[i+1]}
		if _, ok := s.counts[p]; !ok {
			s.order = append(s.order, p)
		}
		s.counts[p]++
	}
	return s, nil
}

// Count returns the number of times p occurred.
func (s *PairStats) Count(p Pair) int {
	if s == nil {
		return 0
	}
	return s.counts[p]
}

// Len returns the number of distinct pairs.
func (s *PairStats) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Pairs returns the distinct pairs in first-seen order.
func (s *PairStats) Pairs() []Pair {
	if s == nil {
		return nil
	}
	out := make([]Pair, len(s.order))
	copy(out, s.order)
	return out
}

// Max returns the most frequent pair. Among equal counts the pair seen first
// wins: only a strictly greater count replaces the current best.
func (s *PairStats) Max() (Pair, int, bool) {
	if s.Len() == 0 {
		return NoPair, 0, false
	}
	best := NoPair
	bestCount := 0
	for _, p := range s.order {
		if c := s.counts[p]; c > bestCount {
			best = p
			bestCount = c
		}
	}
	return best, bestCount, true
}
