package anki_test

import (
	"archive/zip"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kpauljoseph/ankigen/internal/anki"
	"github.com/kpauljoseph/ankigen/pkg/models"
)

// extractCollection pulls collection.anki2 out of the archive so the
// tests can inspect it with the same sqlite driver the writer uses.
func extractCollection(apkgPath, destDir string) string {
	archive, err := zip.OpenReader(apkgPath)
	Expect(err).NotTo(HaveOccurred())
	defer archive.Close()

	for _, entry := range archive.File {
		if entry.Name != "collection.anki2" {
			continue
		}

		src, err := entry.Open()
		Expect(err).NotTo(HaveOccurred())
		defer src.Close()

		dbPath := filepath.Join(destDir, "collection.anki2")
		dest, err := os.Create(dbPath)
		Expect(err).NotTo(HaveOccurred())
		defer dest.Close()

		_, err = io.Copy(dest, src)
		Expect(err).NotTo(HaveOccurred())
		return dbPath
	}

	Fail("archive has no collection.anki2 entry")
	return ""
}

var _ = Describe("Package writer", func() {
	var (
		tempDir  string
		apkgPath string
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "ankigen-test-*")
		Expect(err).NotTo(HaveOccurred())
		apkgPath = filepath.Join(tempDir, "Deck.apkg")
	})

	AfterEach(func() {
		Expect(os.RemoveAll(tempDir)).To(Succeed())
	})

	It("writes an archive holding the collection and a media map", func() {
		deck := anki.AssembleDeck("Test", []models.Flashcard{
			{Question: "2+2?", Answer: "4"},
		})
		Expect(anki.WritePackage(deck, apkgPath)).To(Succeed())

		archive, err := zip.OpenReader(apkgPath)
		Expect(err).NotTo(HaveOccurred())
		defer archive.Close()

		names := make([]string, 0, len(archive.File))
		for _, entry := range archive.File {
			names = append(names, entry.Name)
		}
		Expect(names).To(ConsistOf("collection.anki2", "media"))
	})

	It("stores notes with fields in question, answer order", func() {
		deck := anki.AssembleDeck("Test", []models.Flashcard{
			{Question: "2+2?", Answer: "4"},
			{Question: "Capital of France?", Answer: "Paris"},
		})
		Expect(anki.WritePackage(deck, apkgPath)).To(Succeed())

		db, err := sql.Open("sqlite3", extractCollection(apkgPath, tempDir))
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		rows, err := db.Query("SELECT flds FROM notes ORDER BY id")
		Expect(err).NotTo(HaveOccurred())
		defer rows.Close()

		var notes [][]string
		for rows.Next() {
			var flds string
			Expect(rows.Scan(&flds)).To(Succeed())
			notes = append(notes, strings.Split(flds, "\x1f"))
		}
		Expect(rows.Err()).NotTo(HaveOccurred())

		Expect(notes).To(Equal([][]string{
			{"2+2?", "4"},
			{"Capital of France?", "Paris"},
		}))
	})

	It("creates one card per note in the assembled deck", func() {
		deck := anki.AssembleDeck("Test", []models.Flashcard{
			{Question: "q1", Answer: "a1"},
			{Question: "q2", Answer: "a2"},
			{Question: "q3", Answer: "a3"},
		})
		Expect(anki.WritePackage(deck, apkgPath)).To(Succeed())

		db, err := sql.Open("sqlite3", extractCollection(apkgPath, tempDir))
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		var cardCount int
		Expect(db.QueryRow("SELECT count(*) FROM cards").Scan(&cardCount)).To(Succeed())
		Expect(cardCount).To(Equal(3))

		var mismatched int
		Expect(db.QueryRow(
			"SELECT count(*) FROM cards WHERE did != ?", deck.ID,
		).Scan(&mismatched)).To(Succeed())
		Expect(mismatched).To(BeZero())
	})

	It("writes the deck and model definitions into the col row", func() {
		deck := anki.AssembleDeck("History", []models.Flashcard{
			{Question: "q", Answer: "a"},
		})
		Expect(anki.WritePackage(deck, apkgPath)).To(Succeed())

		db, err := sql.Open("sqlite3", extractCollection(apkgPath, tempDir))
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		var ver int
		var modelBlob, deckBlob string
		Expect(db.QueryRow("SELECT ver, models, decks FROM col").Scan(&ver, &modelBlob, &deckBlob)).To(Succeed())

		Expect(ver).To(Equal(11))
		Expect(modelBlob).To(ContainSubstring(anki.ModelName))
		Expect(modelBlob).To(ContainSubstring(`"Question"`))
		Expect(modelBlob).To(ContainSubstring(`"Answer"`))
		Expect(deckBlob).To(ContainSubstring(`"History"`))
	})

	It("writes a valid package for an empty deck", func() {
		deck := anki.AssembleDeck("Empty", nil)
		Expect(anki.WritePackage(deck, apkgPath)).To(Succeed())

		db, err := sql.Open("sqlite3", extractCollection(apkgPath, tempDir))
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		var noteCount int
		Expect(db.QueryRow("SELECT count(*) FROM notes").Scan(&noteCount)).To(Succeed())
		Expect(noteCount).To(BeZero())
	})

	It("fails with a write error for an invalid destination", func() {
		deck := anki.AssembleDeck("Test", nil)
		err := anki.WritePackage(deck, filepath.Join(tempDir, "missing", "Deck.apkg"))
		Expect(err).To(MatchError(anki.ErrWrite))
	})
})
