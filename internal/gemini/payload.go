package gemini

import (
	"encoding/json"
	"regexp"
)

// jsonFence matches a fenced code block tagged json. The body is captured lazily
// so the first closing fence ends the block.
var jsonFence = regexp.MustCompile("(?s)```json[ \\t]*\\r?\\n(.*?)```")

// ExtractJSON returns the body of the first ```json fenced block in text,
// or nil when there is no such block or its body is not valid JSON.
// Extraction is best-effort: callers fall back to the raw text.
func ExtractJSON(text string) json.RawMessage {
	match := jsonFence.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	body := []byte(match[1])
	if !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}

// DecodeJSON decodes the first fenced JSON block of text into a T.
// The bool is false when there is no block or it does not decode into T.
func DecodeJSON[T any](text string) (T, bool) {
	var value T
	raw := ExtractJSON(text)
	if raw == nil {
		return value, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		var zero T
		return zero, false
	}
	return value, true
}
