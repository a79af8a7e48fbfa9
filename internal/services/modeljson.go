package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/selahapp/selah-backend/internal/types"
)

// ModelParseError is raised when a model response that should be JSON cannot
// be used: either prose where an object was required, or JSON-looking text
// that does not parse. Fragment carries the head of the raw text for triage.
type ModelParseError struct {
	Context  string
	Fragment string
	Err      error
}

func (e *ModelParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model response for %s is not valid JSON: %v; fragment=%q", e.Context, e.Err, e.Fragment)
	}
	return fmt.Sprintf("model response for %s is not JSON; fragment=%q", e.Context, e.Fragment)
}

func (e *ModelParseError) Unwrap() error { return e.Err }

const parseFragmentLen = 160

func fragment(raw string) string {
	if len(raw) > parseFragmentLen {
		return raw[:parseFragmentLen]
	}
	return raw
}

// isListContext reports whether a feature soft-degrades a prose response to
// zero results instead of failing. Only the list-producing engines do.
func isListContext(contextLabel string) bool {
	switch contextLabel {
	case types.EngineVideo, types.EngineSong, types.EngineSermon, types.EngineResource:
		return true
	}
	return false
}

// ParseModelJSON validates and decodes a raw model response for the given
// engine context. Detection is deliberately shallow: trim, then check the
// first character. A prose response ("the model ignored instructions") yields
// an empty result for list contexts and a ModelParseError for object
// contexts. Text that looks like JSON but fails to decode is a hard error for
// every context.
func ParseModelJSON[T any](raw string, contextLabel string) (T, error) {
	var out T

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		if isListContext(contextLabel) {
			return out, nil
		}
		return out, &ModelParseError{Context: contextLabel, Fragment: fragment(trimmed)}
	}

	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return out, &ModelParseError{Context: contextLabel, Fragment: fragment(trimmed), Err: err}
	}
	return out, nil
}
