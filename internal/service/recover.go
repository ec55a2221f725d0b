package service

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RecoverJSON pulls a JSON object out of free-form oracle text. The candidate
// runs from the first '{' to the last '}' with no attempt to balance braces.
// An empty map is the oracle's way of saying "nothing found".
func RecoverJSON(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrMalformedResponse)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload == nil {
		payload = map[string]any{}
	}

	return payload, nil
}
