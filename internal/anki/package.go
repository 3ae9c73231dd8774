package anki

import (
	"archive/zip"
	"crypto/sha1"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kpauljoseph/ankigen/pkg/models"
)

// ErrWrite wraps any filesystem or database failure while producing
// the package file.
var ErrWrite = errors.New("failed to write package")

const (
	collectionName = "collection.anki2"
	fieldSeparator = "\x1f"

	// Anki collection schema version 11, the version the .apkg import
	// path expects.
	schemaVersion = 11
)

const collectionSchema = `
CREATE TABLE col (
    id integer primary key,
    crt integer not null,
    mod integer not null,
    scm integer not null,
    ver integer not null,
    dty integer not null,
    usn integer not null,
    ls integer not null,
    conf text not null,
    models text not null,
    decks text not null,
    dconf text not null,
    tags text not null
);
CREATE TABLE notes (
    id integer primary key,
    guid text not null,
    mid integer not null,
    mod integer not null,
    usn integer not null,
    tags text not null,
    flds text not null,
    sfld integer not null,
    csum integer not null,
    flags integer not null,
    data text not null
);
CREATE TABLE cards (
    id integer primary key,
    nid integer not null,
    did integer not null,
    ord integer not null,
    mod integer not null,
    usn integer not null,
    type integer not null,
    queue integer not null,
    due integer not null,
    ivl integer not null,
    factor integer not null,
    reps integer not null,
    lapses integer not null,
    left integer not null,
    odue integer not null,
    odid integer not null,
    flags integer not null,
    data text not null
);
CREATE TABLE revlog (
    id integer primary key,
    cid integer not null,
    usn integer not null,
    ease integer not null,
    ivl integer not null,
    lastIvl integer not null,
    factor integer not null,
    time integer not null,
    type integer not null
);
CREATE TABLE graves (
    usn integer not null,
    oid integer not null,
    type integer not null
);
CREATE INDEX ix_notes_usn on notes (usn);
CREATE INDEX ix_cards_usn on cards (usn);
CREATE INDEX ix_revlog_usn on revlog (usn);
CREATE INDEX ix_cards_nid on cards (nid);
CREATE INDEX ix_cards_sched on cards (did, queue, due);
CREATE INDEX ix_revlog_cid on revlog (cid);
CREATE INDEX ix_notes_csum on notes (csum);
`

// WritePackage serializes the deck into a single .apkg file at path:
// a zip archive holding the SQLite collection and an empty media map.
// The caller ensures the destination directory exists.
func WritePackage(deck *models.Deck, path string) error {
	tempDir, err := os.MkdirTemp("", "ankigen-pkg-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, collectionName)
	if err := writeCollection(deck, dbPath); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := writeArchive(dbPath, path); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}

func writeCollection(deck *models.Deck, dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("open collection db: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(collectionSchema); err != nil {
		return fmt.Errorf("create collection schema: %w", err)
	}

	now := time.Now()

	conf, err := confJSON(deck.Schema)
	if err != nil {
		return fmt.Errorf("encode conf: %w", err)
	}
	modelBlob, err := modelsJSON(deck, now.Unix())
	if err != nil {
		return fmt.Errorf("encode models: %w", err)
	}
	deckBlob, err := decksJSON(deck, now.Unix())
	if err != nil {
		return fmt.Errorf("encode decks: %w", err)
	}
	dconf, err := dconfJSON()
	if err != nil {
		return fmt.Errorf("encode dconf: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
         VALUES (1, ?, ?, ?, ?, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now.Unix(), now.UnixMilli(), now.UnixMilli(), schemaVersion,
		conf, modelBlob, deckBlob, dconf,
	)
	if err != nil {
		return fmt.Errorf("insert col row: %w", err)
	}

	baseID := now.UnixMilli()
	for i, note := range deck.Notes {
		noteID := baseID + int64(2*i)
		cardID := baseID + int64(2*i) + 1
		fields := note.Question + fieldSeparator + note.Answer

		_, err = tx.Exec(
			`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
             VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`,
			noteID, noteGUID(fields), deck.Schema.ID, now.Unix(),
			fields, note.Question, fieldChecksum(note.Question),
		)
		if err != nil {
			return fmt.Errorf("insert note %d: %w", i, err)
		}

		_, err = tx.Exec(
			`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor,
                                reps, lapses, left, odue, odid, flags, data)
             VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
			cardID, noteID, deck.ID, now.Unix(), i+1,
		)
		if err != nil {
			return fmt.Errorf("insert card %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit collection: %w", err)
	}

	return nil
}

func writeArchive(dbPath, destPath string) (err error) {
	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		if cerr := dest.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close archive: %w", cerr)
		}
	}()

	archive := zip.NewWriter(dest)

	collection, err := archive.Create(collectionName)
	if err != nil {
		return fmt.Errorf("add collection entry: %w", err)
	}
	db, err := os.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open collection db: %w", err)
	}
	defer db.Close()
	if _, err := io.Copy(collection, db); err != nil {
		return fmt.Errorf("copy collection: %w", err)
	}

	// No media files in a text-only deck; Anki still expects the map.
	media, err := archive.Create("media")
	if err != nil {
		return fmt.Errorf("add media entry: %w", err)
	}
	if _, err := media.Write([]byte("{}")); err != nil {
		return fmt.Errorf("write media map: %w", err)
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}

	return nil
}

// noteGUID is stable for identical field content, so re-importing the
// same deck updates notes instead of duplicating them.
func noteGUID(fields string) string {
	sum := sha256.Sum256([]byte(fields))
	return hex.EncodeToString(sum[:])[:10]
}

// fieldChecksum matches Anki's duplicate check: the integer value of
// the first 8 hex digits of the sha1 of the sort field.
func fieldChecksum(sortField string) int64 {
	sum := sha1.Sum([]byte(sortField))
	digest := hex.EncodeToString(sum[:])
	checksum, err := strconv.ParseInt(strings.ToLower(digest[:8]), 16, 64)
	if err != nil {
		return 0
	}
	return checksum
}
