package models

// Candidate is one question/answer pair as it came out of the model
// reply, before any validation. Either field may be empty.
type Candidate struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Flashcard is a validated candidate: both fields are non-empty.
type Flashcard struct {
	Question string
	Answer   string
}

// NoteSchema describes the field layout and card template shared by
// every note in a deck.
type NoteSchema struct {
	ID     int64
	Name   string
	Fields []string
	QFmt   string
	AFmt   string
}

// Deck is the assembled flashcard collection for one run. Notes keep
// the order their candidates appeared in the model reply.
type Deck struct {
	ID     int64
	Name   string
	Schema NoteSchema
	Notes  []Flashcard
}
