package main

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"imgfetch/fetch"
	"imgfetch/media"
)

func TestSplitURLs(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"single", "http://a.com/x.png", []string{"http://a.com/x.png"}},
		{"comma separated", "http://a.com/x.png,http://b.com/y.jpg", []string{"http://a.com/x.png", "http://b.com/y.jpg"}},
		{"whitespace trimmed", "  http://a.com/x.png , http://b.com/y.jpg  ", []string{"http://a.com/x.png", "http://b.com/y.jpg"}},
		{"empty entries dropped", "http://a.com/x.png,,,", []string{"http://a.com/x.png"}},
		{"blank line", "   ", nil},
		{"empty line", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, splitURLs(tt.line))
		})
	}
}

func TestURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	text := `Some notes I kept:
first image http://a.com/x.png looks good,
also see https://b.com/y.jpg (better quality)
not-a-url, plain words`
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))

	urls, err := urlsFromFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"http://a.com/x.png", "https://b.com/y.jpg"}, urls)
}

func TestURLsFromFileMissing(t *testing.T) {
	_, err := urlsFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

type stubResolver struct {
	match string
	urls  []string
	err   error
}

func (s *stubResolver) Resolve(ctx context.Context, u string) ([]string, bool, error) {
	if u != s.match {
		return nil, false, nil
	}
	return s.urls, true, s.err
}

func TestResolveURLPassthrough(t *testing.T) {
	resolvers := []media.Resolver{
		&stubResolver{match: "http://known.com/page", urls: []string{"http://known.com/a.png", "http://known.com/b.png"}},
	}

	got := resolveURL(context.Background(), resolvers, "http://other.com/pic.png")
	require.Equal(t, []string{"http://other.com/pic.png"}, got)
}

func TestResolveURLExpansion(t *testing.T) {
	resolvers := []media.Resolver{
		&stubResolver{match: "http://known.com/page", urls: []string{"http://known.com/a.png", "http://known.com/b.png"}},
	}

	got := resolveURL(context.Background(), resolvers, "http://known.com/page")
	require.Equal(t, []string{"http://known.com/a.png", "http://known.com/b.png"}, got)
}

func TestResolveURLFailureFallsBack(t *testing.T) {
	resolvers := []media.Resolver{
		&stubResolver{match: "http://known.com/page", err: errors.New("api down")},
	}

	// The original url is handed to the pipeline, which reports the
	// fetch failure itself.
	got := resolveURL(context.Background(), resolvers, "http://known.com/page")
	require.Equal(t, []string{"http://known.com/page"}, got)
}

func TestIsConnectionError(t *testing.T) {
	require.True(t, isConnectionError(&fetch.StatusError{Code: 404, Status: "404 Not Found"}))
	require.True(t, isConnectionError(&url.Error{Op: "Get", URL: "http://a.com", Err: errors.New("refused")}))
	require.True(t, isConnectionError(errors.Join(errors.New("wrapped"), &fetch.StatusError{Code: 500, Status: "500"})))
	require.False(t, isConnectionError(errors.New("disk full")))
}
