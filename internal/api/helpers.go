package api

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	raw, err := io.ReadAll(r)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, newInvalidRequest("request body is empty")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, newInvalidRequest(fmt.Sprintf("malformed request body: %v", err))
	}
	return out, nil
}

func parseTokenID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newInvalidRequest(fmt.Sprintf("token id %q is not an integer", raw))
	}
	return id, nil
}

func bytesToInts(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

func newEncodingID() string {
	return "enc_" + uuid.NewString()
}

func newDecodingID() string {
	return "dec_" + uuid.NewString()
}
