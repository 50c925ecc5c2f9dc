package bpe

import "fmt"

// Train runs vocabSize-256 merge rounds over the training bytes. Each round
// merges the most frequent adjacent pair in the current working sequence into
// the next id.
//
// Training aborts with ErrInvalidInput if the sequence collapses below two
// tokens before every round has run. On failure the model keeps whatever
// tables it had before the call. Calling Train again starts over from the
// original bytes and replaces the tables.
func (m *Model) Train() error {
	rounds := m.vocabSize - NumBytes
	ids := bytesToIDs(m.data)
	log := m.log.With("component", "bpe.train")

	log.Info("training started", "bytes", len(m.data), "merges", rounds)

	// Each merge shortens the sequence by at least one, so no more than
	// len(data)-1 rounds can succeed.
	hint := min(rounds, max(len(m.data)-1, 0))
	merges := make([]Merge, 0, hint)
	ranks := make(map[Pair]int, hint)
	inverse := make(map[int]Pair, hint)

	for round := 0; round < rounds; round++ {
		stats, err := CountPairs(ids)
		if err != nil {
			return fmt.Errorf("train round %d of %d: %w", round+1, rounds, err)
		}
		best, freq, ok := stats.Max()
		if !ok {
			return fmt.Errorf("train round %d of %d: %w: no pairs left", round+1, rounds, ErrInvalidInput)
		}

		id := FirstMergeID + round
		ids = ApplyMerge(ids, best, id)
		merges = append(merges, Merge{Pair: best, ID: id})
		ranks[best] = id
		inverse[id] = best

		if round < 5 || (round+1)%m.progressEvery == 0 || round == rounds-1 {
			log.Debug("merge",
				"round", round+1,
				"pair", best.String(),
				"id", id,
				"freq", freq,
				"seq_len", len(ids),
			)
		}
	}

	m.commit(merges, ranks, inverse)

	ratio := 0.0
	if len(ids) > 0 {
		ratio = float64(len(m.data)) / float64(len(ids))
	}
	log.Info("training done",
		"merges", len(merges),
		"tokens", len(ids),
		"compression", fmt.Sprintf("%.2fx", ratio),
	)
	return nil
}
