package cards

import (
	"github.com/kpauljoseph/ankigen/pkg/models"
)

// Filter keeps candidates with both a non-empty front and a non-empty
// back, preserving order. Dropping is silent: a half-filled candidate
// is a model hiccup, not a run failure. An empty result is valid and
// yields a deck with zero notes.
func Filter(candidates []models.Candidate) []models.Flashcard {
	var flashcards []models.Flashcard
	for _, c := range candidates {
		if c.Front == "" || c.Back == "" {
			continue
		}
		flashcards = append(flashcards, models.Flashcard{
			Question: c.Front,
			Answer:   c.Back,
		})
	}
	return flashcards
}
