package agent

import (
	"github.com/goccy/go-json"
)

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Envelope wraps a run outcome in the {"status", "data" | "message"} document
// and returns it with the process exit code. Output that is not JSON is
// carried as a string.
func Envelope(output string, err error) ([]byte, int) {
	if err != nil {
		data, _ := json.Marshal(envelope{Status: "error", Message: err.Error()})
		return data, 1
	}

	raw := json.RawMessage(output)
	if !json.Valid(raw) {
		quoted, _ := json.Marshal(output)
		raw = quoted
	}
	data, mErr := json.Marshal(envelope{Status: "success", Data: raw})
	if mErr != nil {
		data, _ = json.Marshal(envelope{Status: "error", Message: mErr.Error()})
		return data, 1
	}
	return data, 0
}
