package bpe

// Merge is one learned rule: every occurrence of Pair becomes ID.
type Merge struct {
	Pair Pair
	ID   int
}

// ApplyMerge returns a copy of ids with every non-overlapping occurrence of
// target, scanned left to right, replaced by id. [x x x] with (x,x) becomes
// [id x].
func ApplyMerge(ids []int, target Pair, id int) []int {
	out := make([]int, 0, len(ids))
	i := 0
	for i < len(ids) {
		if i+1 < len(ids) && ids[i] == target.Left && ids[i+1] == target.Right {
			out = append(out, id)
			i += 2
			continue
		}
		out = append(out, ids[i])
		i++
	}
	return out
}

func bytesToIDs(raw []byte) []int {
	ids := make([]int, len(raw))
	for i, b := range raw {
		ids[i] = int(b)
	}
	return ids
}
