package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

func printFatalError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

func main() {
	cfg, err := parseArgs()
	if err != nil {
		printFatalError(err)
		flag.Usage()
		os.Exit(1)
	}

	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	fmt.Println("Welcome to the Ubuntu Image Fetcher")
	fmt.Println("A tool for mindfully collecting images from the web")
	fmt.Println()

	urls, err := collectURLs(cfg)
	if err != nil {
		printFatalError(err)
		os.Exit(2)
	}

	processURLs(context.Background(), cfg, urls)

	fmt.Println("\nConnection strengthened. Community enriched.")
}

// collectURLs gathers the urls to fetch from the configured source: an
// input file, a scraped html page, or the interactive prompt.
func collectURLs(cfg *Config) ([]string, error) {
	if cfg.InputFile != "" {
		return urlsFromFile(cfg.InputFile)
	}
	if cfg.ScrapeURL != "" {
		return scrapeImageURLs(context.Background(), cfg)
	}
	return promptForURLs(os.Stdin)
}

// promptForURLs reads one line of comma-separated urls from r.
func promptForURLs(r io.Reader) ([]string, error) {
	fmt.Print("Please enter image URL(s) (comma-separated): ")

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return splitURLs(scanner.Text()), nil
}
