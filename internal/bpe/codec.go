package bpe

import (
	"fmt"
	"strings"
)

// Encode converts text to token ids by replaying every merge, in the order it
// was learned, over the raw bytes of text.
func (m *Model) Encode(text string) ([]int, error) {
	if !m.trained {
		return nil, ErrNotTrained
	}
	ids := bytesToIDs([]byte(text))
	for _, mg := range m.merges {
		if len(ids) < 2 {
			break
		}
		ids = ApplyMerge(ids, mg.Pair, mg.ID)
	}
	return ids, nil
}

// Decode converts token ids back to text.
func (m *Model) Decode(ids []int) (string, error) {
	raw, err := m.DecodeBytes(ids)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeBytes expands token ids into the bytes they stand for.
func (m *Model) DecodeBytes(ids []int) ([]byte, error) {
	if !m.trained {
		return nil, ErrNotTrained
	}
	out := make([]byte, 0, len(ids)*2)
	// stack is reused across tokens
	stack := make([]int, 0, 16)
	for _, id := range ids {
		var err error
		out, stack, err = m.expand(out, stack[:0], id)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// TokenBytes returns the bytes a single id expands to.
func (m *Model) TokenBytes(id int) ([]byte, error) {
	if !m.trained {
		return nil, ErrNotTrained
	}
	out, _, err := m.expand(nil, nil, id)
	return out, err
}

// expand appends the bytes of id to dst. Learned ids are unfolded with an
// explicit stack, right element pushed first so the left one is emitted
// first. Every pair references strictly smaller ids, so this terminates.
func (m *Model) expand(dst []byte, stack []int, id int) ([]byte, []int, error) {
	stack = append(stack, id)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top >= 0 && top < NumBytes {
			dst = append(dst, byte(top))
			continue
		}
		p, ok := m.inverse[top]
		if !ok {
			return dst, stack, &UnknownTokenError{ID: top}
		}
		stack = append(stack, p.Right, p.Left)
	}
	return dst, stack, nil
}

// Printable renders raw token bytes with control and non-ASCII bytes escaped.
func Printable(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, c := range b {
		switch {
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\\':
			sb.WriteString(`\\`)
		case c >= 32 && c < 127:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	return sb.String()
}
