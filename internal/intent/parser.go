package intent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xxxsen/glbpick/internal/model"
	appErr "github.com/xxxsen/glbpick/internal/pkg/errors"
)

type rawIntent struct {
	Tag    string          `json:"tag"`
	Random json.RawMessage `json:"random"`
}

// Parse decodes the first JSON object embedded in raw model output.
// Conversational text around the object is ignored. Only the first balanced
// candidate is considered: filler that opens its own brace group ahead of
// the answer makes parsing fail rather than guess.
func Parse(raw string) (model.Intent, error) {
	obj, ok := FirstObject(raw)
	if !ok {
		return model.Intent{}, fmt.Errorf("%w: no json object found", appErr.ErrParse)
	}
	var decoded rawIntent
	if err := json.Unmarshal([]byte(obj), &decoded); err != nil {
		return model.Intent{}, fmt.Errorf("%w: %w", appErr.ErrParse, err)
	}
	tag := strings.TrimSpace(decoded.Tag)
	if tag == "" {
		return model.Intent{}, fmt.Errorf("%w: missing tag", appErr.ErrParse)
	}
	var random bool
	if len(decoded.Random) > 0 {
		if err := json.Unmarshal(decoded.Random, &random); err != nil {
			random = false
		}
	}
	return model.Intent{Tag: tag, Random: random}, nil
}

// FirstObject returns the substring from the first '{' to its matching '}'.
// Braces inside JSON string literals are not counted.
func FirstObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}
