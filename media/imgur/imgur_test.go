package imgur

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newResolver() *Resolver {
	return NewResolver(&http.Client{}, time.Second)
}

func TestResolveDirectImage(t *testing.T) {
	urls, ok, err := newResolver().Resolve(context.Background(), "https://i.imgur.com/abc1234.png")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"https://i.imgur.com/abc1234.png"}, urls)
}

func TestResolveImagePage(t *testing.T) {
	urls, ok, err := newResolver().Resolve(context.Background(), "https://imgur.com/abc1234")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"https://i.imgur.com/abc1234.jpeg"}, urls)
}

func TestResolveUnrecognized(t *testing.T) {
	tests := []string{
		"https://example.com/pic.png",
		"https://imgur.com/gallery/something",
		"https://imgur.com/toolong-id",
	}

	for _, u := range tests {
		urls, ok, err := newResolver().Resolve(context.Background(), u)
		require.NoError(t, err, u)
		require.False(t, ok, u)
		require.Nil(t, urls, u)
	}
}

func TestResolveAlbum(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/abcdefg", r.URL.Path)
		require.Equal(t, "Client-ID "+clientID, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"images": [
					{"link": "https://i.imgur.com/one1111.jpg"},
					{"link": "https://i.imgur.com/two2222.png"}
				]
			},
			"success": true,
			"status": 200
		}`))
	}))
	defer srv.Close()

	oldBase := apiBase
	apiBase = srv.URL + "/"
	defer func() { apiBase = oldBase }()

	urls, ok, err := newResolver().Resolve(context.Background(), "https://imgur.com/a/abcdefg")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{
		"https://i.imgur.com/one1111.jpg",
		"https://i.imgur.com/two2222.png",
	}, urls)
}

func TestResolveAlbumTitledSlug(t *testing.T) {
	// Album urls sometimes carry a title prefix; only the trailing
	// 7-character hash identifies the album.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/zyxwvut", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"images": []}, "success": true, "status": 200}`))
	}))
	defer srv.Close()

	oldBase := apiBase
	apiBase = srv.URL + "/"
	defer func() { apiBase = oldBase }()

	_, ok, err := newResolver().Resolve(context.Background(), "https://imgur.com/a/my-vacation-zyxwvut")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestResolveAlbumBadHash(t *testing.T) {
	_, ok, err := newResolver().Resolve(context.Background(), "https://imgur.com/a/xy")
	require.True(t, ok)
	require.Error(t, err)
}

func TestResolveAlbumFailureFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": null, "success": false, "status": 403}`))
	}))
	defer srv.Close()

	oldBase := apiBase
	apiBase = srv.URL + "/"
	defer func() { apiBase = oldBase }()

	_, ok, err := newResolver().Resolve(context.Background(), "https://imgur.com/a/abcdefg")
	require.True(t, ok)
	require.Error(t, err)
}
