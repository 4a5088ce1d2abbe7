package services

import (
	"encoding/json"
	"regexp"
	"strings"
)

var codeFenceRegexp = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?})\\s*```")

// decodeModelJSON unmarshals a model response that should be a single JSON
// object, tolerating a markdown code fence around it.
func decodeModelJSON(raw string, v interface{}) error {
	trimmed := strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}
	if match := codeFenceRegexp.FindStringSubmatch(trimmed); match != nil {
		return json.Unmarshal([]byte(match[1]), v)
	}
	// Last resort: take the outermost brace pair.
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return json.Unmarshal([]byte(trimmed[start:end+1]), v)
	}
	return json.Unmarshal([]byte(trimmed), v)
}
