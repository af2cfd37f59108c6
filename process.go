package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"mvdan.cc/xurls/v2"

	"imgfetch/fetch"
	"imgfetch/media"
	"imgfetch/media/imgur"
	"imgfetch/web"
)

// processURLs fetches each url in order, one at a time. A failure or
// skip on one url never affects the ones after it.
func processURLs(ctx context.Context, cfg *Config, urls []string) {
	p := fetch.NewPipeline(cfg.Dir, cfg.Timeout)

	resolvers := []media.Resolver{
		imgur.NewResolver(p.HTTPClient(), cfg.Timeout),
	}

	for _, u := range urls {
		for _, direct := range resolveURL(ctx, resolvers, u) {
			printResult(direct, p.Fetch(ctx, direct))
		}
	}
}

// resolveURL expands a url recognized by one of the media resolvers
// into its direct image urls. Unrecognized urls pass through untouched.
// A url whose resolver fails also passes through: the pipeline will
// report the fetch failure itself.
func resolveURL(ctx context.Context, resolvers []media.Resolver, u string) []string {
	for _, r := range resolvers {
		direct, ok, err := r.Resolve(ctx, u)
		if err != nil {
			log.WithError(err).Errorf("failed to resolve media url: url=%s", u)
			return []string{u}
		}
		if ok {
			log.Debugf("resolved %s to %d direct image url(s)", u, len(direct))
			return direct
		}
	}

	return []string{u}
}

// printResult reports the outcome of one fetch attempt on stdout.
func printResult(u string, r fetch.Result) {
	switch r.Outcome {
	case fetch.Saved:
		fmt.Printf("✓ Successfully fetched: %s\n", r.Filename)
		fmt.Printf("✓ Image saved to %s\n", r.Path)

	case fetch.SkippedNotImage:
		fmt.Printf("✗ Skipped: %s (Not an image, got %s)\n", u, r.ContentType)

	case fetch.SkippedDuplicate:
		fmt.Printf("✗ Duplicate skipped: %s\n", r.Filename)

	case fetch.Failed:
		if isConnectionError(r.Err) {
			fmt.Printf("✗ Connection error for %s: %v\n", u, r.Err)
		} else {
			fmt.Printf("✗ An unexpected error occurred: %v\n", r.Err)
		}
	}
}

// isConnectionError reports whether err came from the http exchange
// itself (transport failure or bad status) rather than from local
// processing.
func isConnectionError(err error) bool {
	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) {
		return true
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// splitURLs splits a comma-separated line of urls, trimming surrounding
// whitespace and discarding empty entries.
func splitURLs(line string) []string {
	var urls []string
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			urls = append(urls, part)
		}
	}
	return urls
}

// urlsFromFile extracts urls from the given text file. The file needs
// no particular structure: urls are picked out of the surrounding text.
func urlsFromFile(filename string) ([]string, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	urls := xurls.Strict().FindAllString(string(b), -1)
	log.Debugf("extracted %d url(s) from %s", len(urls), filename)
	return urls, nil
}

// scrapeImageURLs fetches the configured html page and returns the urls
// of all images embedded in it.
func scrapeImageURLs(ctx context.Context, cfg *Config) ([]string, error) {
	base, err := url.Parse(cfg.ScrapeURL)
	if err != nil {
		return nil, fmt.Errorf("bad page url: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	rsp, err := fetch.GetBody(ctx, &http.Client{}, cfg.ScrapeURL, nil)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	doc, err := html.Parse(fetch.NewContextReader(ctx, rsp.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	urls := web.ImageURLs(doc, base)
	log.Debugf("scraped %d image link(s) from %s", len(urls), cfg.ScrapeURL)
	return urls, nil
}
