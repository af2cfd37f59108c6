package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDir is where fetched images are saved unless overridden.
const DefaultDir = "Fetched_Images"

type Config struct {
	Dir       string        // Directory to save fetched images to.
	Timeout   time.Duration // Per-request http timeout.
	Verbose   bool          // True for verbose output.
	InputFile string        // Read urls from this file instead of prompting.
	ScrapeURL string        // Fetch every image embedded in this html page.
}

func parseArgs() (*Config, error) {
	dir := flag.String("d", DefaultDir, "directory to save images to")
	timeout := flag.Int("t", 10, "http request timeout in seconds")
	verbose := flag.Bool("v", false, "verbose output")
	inputFile := flag.String("i", "", "read urls from `file` instead of prompting")
	scrapeURL := flag.String("s", "", "fetch every image embedded in the html page at `url`")

	flag.Usage = usage
	flag.Parse()

	if len(flag.Args()) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", flag.Args()[0])
	}

	if *inputFile != "" && *scrapeURL != "" {
		return nil, fmt.Errorf("-i and -s are mutually exclusive")
	}

	if *timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive: have=%d", *timeout)
	}

	return &Config{
		Dir:       *dir,
		Timeout:   time.Duration(*timeout) * time.Second,
		Verbose:   *verbose,
		InputFile: *inputFile,
		ScrapeURL: *scrapeURL,
	}, nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [option]...\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(flag.CommandLine.Output(), "Fetches images from the web into a local directory.\n")
	flag.PrintDefaults()
}
