// Package anki assembles validated flashcards into a deck and writes
// it as an .apkg file importable by Anki.
package anki

import (
	"math/rand/v2"

	"github.com/kpauljoseph/ankigen/pkg/models"
)

const (
	ModelName = "Pdf to Anki"

	TemplateName = "Card"

	questionFormat = "{{Question}}"
	answerFormat   = `{{FrontSide}}<hr id="answer">{{Answer}}`
)

// NewAnkiID returns a random identifier in [2^30, 2^31), the range
// Anki tooling uses so freshly generated decks and models are unlikely
// to collide with anything already in a user's collection.
func NewAnkiID() int64 {
	return 1<<30 + rand.Int64N(1<<30)
}

// AssembleDeck binds flashcards to the fixed two-field schema under a
// fresh deck and schema identifier. Note order follows card order and
// an empty card list is a valid, empty deck.
func AssembleDeck(name string, flashcards []models.Flashcard) *models.Deck {
	return &models.Deck{
		ID:   NewAnkiID(),
		Name: name,
		Schema: models.NoteSchema{
			ID:     NewAnkiID(),
			Name:   ModelName,
			Fields: []string{"Question", "Answer"},
			QFmt:   questionFormat,
			AFmt:   answerFormat,
		},
		Notes: flashcards,
	}
}
