// Package prompt turns extracted document text into the request sent
// to the completion service, enforcing the word budget first.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// Marker is the substitution point in a prompt template. The document
// text replaces its first occurrence verbatim.
const Marker = "{}"

// DefaultTemplate asks for a bare JSON array so the reply can be fed
// straight into the parser.
const DefaultTemplate = `Use the provided text to generate Anki flashcards. Generate the flashcards as a JSON array with the keys "front" (question) and "back" (answer). Just generate the JSON string and no unnecessary text. Text: {}`

// ErrNoMarker means the template has no substitution point, so the
// document text would be dropped from the request.
var ErrNoMarker = errors.New("prompt template has no substitution marker")

// ErrBudgetExceeded is the sentinel for word-budget failures; the
// concrete error is a *BudgetExceededError carrying both numbers.
var ErrBudgetExceeded = errors.New("word budget exceeded")

type BudgetExceededError struct {
	Words int
	Limit int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("document has %d words, limit is %d", e.Words, e.Limit)
}

func (e *BudgetExceededError) Unwrap() error {
	return ErrBudgetExceeded
}

// CountWords counts runs of non-whitespace.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CheckBudget rejects text over the limit before any network call is
// made; one oversized document should not turn into an oversized bill.
func CheckBudget(text string, maxWords int) error {
	return CheckWordCount(CountWords(text), maxWords)
}

// CheckWordCount is the budget gate for callers that already hold the
// word count, so the number they act on and the number reported in the
// error are the same one.
func CheckWordCount(words, maxWords int) error {
	if words > maxWords {
		return &BudgetExceededError{Words: words, Limit: maxWords}
	}
	return nil
}

// Build substitutes text for the first marker occurrence. The text is
// inserted verbatim, with no escaping or truncation.
func Build(template, text string) (string, error) {
	if !strings.Contains(template, Marker) {
		return "", ErrNoMarker
	}
	return strings.Replace(template, Marker, text, 1), nil
}
