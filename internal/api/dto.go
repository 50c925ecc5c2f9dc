package api

type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

type ModelInfo struct {
	Object    string `json:"object"`
	VocabSize int    `json:"vocab_size"`
	NumMerges int    `json:"num_merges"`
	Trained   bool   `json:"trained"`
}

type MergeEntry struct {
	ID    int    `json:"id"`
	Left  int    `json:"left"`
	Right int    `json:"right"`
	Text  string `json:"text"`
}

type MergeList struct {
	Object string       `json:"object"`
	Data   []MergeEntry `json:"data"`
}

type TokenInfo struct {
	Object string `json:"object"`
	ID     int    `json:"id"`
	Bytes  []int  `json:"bytes"`
	Text   string `json:"text"`
}

type EncodeRequest struct {
	Text *string `json:"text"`
}

type EncodeResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Tokens  []int  `json:"tokens"`
	Count   int    `json:"count"`
}

type DecodeRequest struct {
	Tokens []int `json:"tokens"`
}

// DecodeResponse carries the decoded text and its exact bytes. Text is
// lossy when the ids split a multi-byte UTF-8 sequence: the JSON encoder
// replaces invalid bytes with U+FFFD. Bytes is always exact.
type DecodeResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Text    string `json:"text"`
	Bytes   []int  `json:"bytes"`
}
