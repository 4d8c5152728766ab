package recommend

import (
	"encoding/json"
	"strings"

	"github.com/poiesic/animerec/core"
)

// parseRecommendations extracts a JSON array of recommendations from a raw
// model response. Markdown code fences are stripped first. If the whole
// response is not valid JSON, the first balanced top-level array is located
// and parsed instead. Entries that fail validation are dropped.
func parseRecommendations(response string) ([]core.Recommendation, error) {
	// Strip markdown code fences if present
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var recs []core.Recommendation
	if err := json.Unmarshal([]byte(text), &recs); err != nil {
		extracted, ok := extractArray(text)
		if !ok {
			return nil, ErrNoJSONArray
		}
		if err := json.Unmarshal([]byte(extracted), &recs); err != nil {
			return nil, err
		}
	}

	return core.FilterRecommendations(recs), nil
}

// extractArray returns the first balanced top-level JSON array in s.
// Brackets inside string literals are ignored.
func extractArray(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '[':
			if start < 0 {
				start = i
			}
			depth++
		case ']':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
