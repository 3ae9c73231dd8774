// Package cards parses the model reply into candidates and filters
// them into flashcards. Parsing stays permissive about missing fields;
// emptiness is judged in a separate validation step.
package cards

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kpauljoseph/ankigen/pkg/models"
)

// ErrParse is the sentinel for replies that are not a JSON array of
// objects; the concrete error is a *ParseError carrying a snippet.
var ErrParse = errors.New("invalid completion reply")

const snippetLen = 120

type ParseError struct {
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse completion reply %q: %v", e.Snippet, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// Parse decodes the reply as a JSON array of candidate objects.
// Unknown keys are ignored and absent keys decode to empty strings;
// only a broken or wrongly shaped document is an error.
func Parse(reply string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := json.Unmarshal([]byte(reply), &candidates); err != nil {
		return nil, &ParseError{Snippet: snippet(reply), Err: err}
	}
	return candidates, nil
}

func snippet(s string) string {
	if len(s) > snippetLen {
		return s[:snippetLen] + "..."
	}
	return s
}
