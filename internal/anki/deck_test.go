package anki_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/ankigen/internal/anki"
	"github.com/kpauljoseph/ankigen/pkg/models"
)

var _ = Describe("Deck assembly", func() {
	It("generates identifiers in Anki's 31-bit range", func() {
		for i := 0; i < 1000; i++ {
			id := anki.NewAnkiID()
			Expect(id).To(BeNumerically(">=", int64(1)<<30))
			Expect(id).To(BeNumerically("<", int64(1)<<31))
		}
	})

	It("builds a deck with the fixed two-field schema", func() {
		deck := anki.AssembleDeck("Biology", []models.Flashcard{
			{Question: "2+2?", Answer: "4"},
		})

		Expect(deck.Name).To(Equal("Biology"))
		Expect(deck.Schema.Name).To(Equal(anki.ModelName))
		Expect(deck.Schema.Fields).To(Equal([]string{"Question", "Answer"}))
		Expect(deck.Schema.QFmt).To(Equal("{{Question}}"))
		Expect(deck.Schema.AFmt).To(Equal(`{{FrontSide}}<hr id="answer">{{Answer}}`))
	})

	It("preserves note order", func() {
		flashcards := []models.Flashcard{
			{Question: "first", Answer: "1"},
			{Question: "second", Answer: "2"},
			{Question: "third", Answer: "3"},
		}

		deck := anki.AssembleDeck("Ordered", flashcards)
		Expect(deck.Notes).To(Equal(flashcards))
	})

	It("assembles a valid empty deck for zero flashcards", func() {
		deck := anki.AssembleDeck("Empty", nil)
		Expect(deck.Notes).To(BeEmpty())
		Expect(deck.ID).NotTo(BeZero())
		Expect(deck.Schema.ID).NotTo(BeZero())
	})

	It("draws fresh identifiers per assembly", func() {
		first := anki.AssembleDeck("A", nil)
		second := anki.AssembleDeck("B", nil)
		Expect(first.ID).NotTo(Equal(second.ID))
	})
})
