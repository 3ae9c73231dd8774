package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/ankigen/internal/prompt"
)

// Debug tool: reports per-page dimensions and word counts so an
// over-budget PDF can be traced to its heavy pages before a run.
func main() {
	pdfPath := flag.String("file", "", "Path to PDF file")
	maxWords := flag.Int("max-words", 1000, "word budget to compare against")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a PDF file path using -file flag")
		os.Exit(1)
	}

	fmt.Printf("Analyzing PDF: %s\n", *pdfPath)

	dims, err := api.PageDimsFile(*pdfPath)
	if err != nil {
		fmt.Printf("Error getting page dimensions: %v\n", err)
		os.Exit(1)
	}

	doc, err := fitz.New(*pdfPath)
	if err != nil {
		fmt.Printf("Error opening PDF: %v\n", err)
		os.Exit(1)
	}
	defer doc.Close()

	total := 0
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			fmt.Printf("Error extracting text from page %d: %v\n", pageNum+1, err)
			os.Exit(1)
		}

		words := prompt.CountWords(text)
		total += words

		fmt.Printf("\nPage %d:\n", pageNum+1)
		if pageNum < len(dims) {
			fmt.Printf("Dimensions (Width x Height): %.3f x %.3f points\n", dims[pageNum].Width, dims[pageNum].Height)
		}
		fmt.Printf("Words: %d\n", words)
	}

	fmt.Printf("\nTotal words: %d (budget %d)\n", total, *maxWords)
	if total > *maxWords {
		fmt.Println("PDF is over budget and would be rejected")
		os.Exit(1)
	}
}
