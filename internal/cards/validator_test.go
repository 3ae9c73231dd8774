package cards_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/ankigen/internal/cards"
	"github.com/kpauljoseph/ankigen/pkg/models"
)

var _ = Describe("Card validator", func() {
	It("keeps only candidates with both fields, preserving order", func() {
		candidates := []models.Candidate{
			{Front: "2+2?", Back: "4"},
			{Front: "", Back: "x"},
			{Front: "Capital of France?", Back: "Paris"},
		}

		flashcards := cards.Filter(candidates)
		Expect(flashcards).To(Equal([]models.Flashcard{
			{Question: "2+2?", Answer: "4"},
			{Question: "Capital of France?", Answer: "Paris"},
		}))
	})

	DescribeTable("dropping incomplete candidates",
		func(candidate models.Candidate, kept bool) {
			flashcards := cards.Filter([]models.Candidate{candidate})
			if kept {
				Expect(flashcards).To(HaveLen(1))
			} else {
				Expect(flashcards).To(BeEmpty())
			}
		},
		Entry("both fields present", models.Candidate{Front: "q", Back: "a"}, true),
		Entry("empty front", models.Candidate{Front: "", Back: "a"}, false),
		Entry("empty back", models.Candidate{Front: "q", Back: ""}, false),
		Entry("both empty", models.Candidate{}, false),
	)

	It("yields an empty result for an empty candidate list", func() {
		Expect(cards.Filter(nil)).To(BeEmpty())
	})

	It("is idempotent over the same input", func() {
		candidates := []models.Candidate{
			{Front: "q1", Back: "a1"},
			{Front: "q2"},
			{Front: "q3", Back: "a3"},
		}

		first := cards.Filter(candidates)
		second := cards.Filter(candidates)
		Expect(second).To(Equal(first))
	})
})
