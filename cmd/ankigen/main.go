package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/kpauljoseph/ankigen/internal/config"
	"github.com/kpauljoseph/ankigen/internal/gateway"
	"github.com/kpauljoseph/ankigen/internal/pdf"
	"github.com/kpauljoseph/ankigen/internal/pipeline"
	"github.com/kpauljoseph/ankigen/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to optional config file")
	pdfInput := flag.String("pdf", "", "path to the input PDF file")
	outputDir := flag.String("out-dir", "", "output directory for the .apkg file (overrides config)")
	fileName := flag.String("file-name", "", "base name of the resulting .apkg file (overrides config)")
	deckName := flag.String("deck-name", "", "name of the deck (overrides config)")
	apiKey := flag.String("api-key", "", "OpenAI API key (overrides config and OPENAI_API_KEY)")
	orgID := flag.String("org-id", "", "OpenAI organization ID (overrides config and OPENAI_ORG_ID)")
	model := flag.String("model", "", "completion model name (overrides config)")
	maxWords := flag.Int("max-words", 0, "maximum number of words in the PDF (overrides config)")
	promptTemplate := flag.String("prompt", "", "prompt template, {} marks where the text goes (overrides config)")
	timeout := flag.Int("timeout", 0, "completion request timeout in seconds (overrides config)")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	log := logger.New(logger.WithPrefix("[ankigen] "))
	log.SetVerbose(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Error loading config: %v", err)
	}

	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *fileName != "" {
		cfg.FileName = *fileName
	}
	if *deckName != "" {
		cfg.DeckName = *deckName
	}
	if *apiKey != "" {
		cfg.OpenAI.APIKey = *apiKey
	}
	if *orgID != "" {
		cfg.OpenAI.OrganizationID = *orgID
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *maxWords > 0 {
		cfg.MaxWords = *maxWords
	}
	if *promptTemplate != "" {
		cfg.PromptTemplate = *promptTemplate
	}
	if *timeout > 0 {
		cfg.TimeoutSeconds = *timeout
	}

	if *pdfInput == "" {
		log.Fatal("The -pdf flag is required")
	}
	if _, err := os.Stat(*pdfInput); os.IsNotExist(err) {
		log.Fatal("PDF file does not exist: %s", *pdfInput)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			log.Warn("Invalid configuration: %s", e)
		}
		log.Fatal("Configuration is invalid")
	}

	extractor := pdf.NewExtractor(log)
	completer := gateway.NewOpenAIGateway(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.OrganizationID,
		cfg.Model,
		time.Duration(cfg.TimeoutSeconds)*time.Second,
		log,
	)

	run := pipeline.New(extractor, completer, log)

	result, err := run.Run(context.Background(), pipeline.Options{
		PDFPath:        *pdfInput,
		OutputDir:      cfg.OutputDir,
		FileName:       cfg.FileName,
		DeckName:       cfg.DeckName,
		MaxWords:       cfg.MaxWords,
		PromptTemplate: cfg.PromptTemplate,
	})
	if err != nil {
		log.Fatal("%v", err)
	}

	log.Info("Saved deck %q with %d note(s) at %s", cfg.DeckName, result.NoteCount, result.PackagePath)
}
