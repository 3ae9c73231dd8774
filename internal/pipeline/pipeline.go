// Package pipeline runs the document-to-deck conversion as a strict
// linear sequence. Every stage failure aborts the run; there are no
// retries and no partial-success paths.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/ankigen/internal/anki"
	"github.com/kpauljoseph/ankigen/internal/cards"
	"github.com/kpauljoseph/ankigen/internal/gateway"
	"github.com/kpauljoseph/ankigen/internal/pdf"
	"github.com/kpauljoseph/ankigen/internal/prompt"
	"github.com/kpauljoseph/ankigen/pkg/logger"
)

type Options struct {
	PDFPath        string
	OutputDir      string
	FileName       string
	DeckName       string
	MaxWords       int
	PromptTemplate string
}

type Result struct {
	PackagePath string
	Reply       string
	NoteCount   int
}

type Pipeline struct {
	extractor pdf.TextExtractor
	completer gateway.Completer
	logger    *logger.Logger
}

func New(extractor pdf.TextExtractor, completer gateway.Completer, log *logger.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		completer: completer,
		logger:    log,
	}
}

// Run executes extraction, budget check, prompt build, completion,
// parsing, validation, assembly, and the package write, in that order.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	text, err := p.extractor.ExtractText(ctx, opts.PDFPath)
	if err != nil {
		return nil, err
	}
	words := prompt.CountWords(text)
	p.logger.Debug("Extracted text has %d words", words)

	// The budget gate runs before anything touches the network.
	if err := prompt.CheckWordCount(words, opts.MaxWords); err != nil {
		return nil, err
	}

	request, err := prompt.Build(opts.PromptTemplate, text)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Requesting flashcards from the completion service...")
	reply, err := p.completer.Complete(ctx, request)
	if err != nil {
		return nil, err
	}
	p.logger.Info("Received completion reply: %s", reply)

	candidates, err := cards.Parse(reply)
	if err != nil {
		return nil, err
	}

	flashcards := cards.Filter(candidates)
	if len(flashcards) < len(candidates) {
		p.logger.Warn("Dropped %d candidate(s) missing a question or answer", len(candidates)-len(flashcards))
	}

	deck := anki.AssembleDeck(opts.DeckName, flashcards)

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create output directory: %w", anki.ErrWrite, err)
	}

	dest := filepath.Join(opts.OutputDir, opts.FileName+".apkg")
	if err := anki.WritePackage(deck, dest); err != nil {
		return nil, err
	}

	return &Result{
		PackagePath: dest,
		Reply:       reply,
		NoteCount:   len(deck.Notes),
	}, nil
}
