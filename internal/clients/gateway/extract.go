package gateway

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
)

// ExtractJSON pulls the JSON object out of a model reply. Replies often wrap
// the object in a markdown fence or surround it with prose.
func ExtractJSON(text string) ([]byte, error) {
	s := strings.TrimSpace(text)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimPrefix(s, "JSON")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}

	start, end := strings.Index(s, "{"), strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, errors.InvalidArgument("no JSON object in gateway reply")
	}
	candidate := s[start : end+1]
	if !gjson.Valid(candidate) {
		return nil, errors.InvalidArgument("gateway reply holds malformed JSON")
	}
	return []byte(candidate), nil
}
