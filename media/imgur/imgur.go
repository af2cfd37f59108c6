package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/koffeinsource/go-imgur"
	log "github.com/sirupsen/logrus"

	"imgfetch/fetch"
)

const (
	clientID = "ab1802d70cb1deb"

	albumPrefix = "https://imgur.com/a/"
	imagePrefix = "https://i.imgur.com/"
	pagePrefix  = "https://imgur.com/"
)

// apiBase is a variable so tests can point album lookups at a stub
// server.
var apiBase = "https://api.imgur.com/3/album/"

var getHeader = http.Header{
	"Authorization": []string{"Client-ID " + clientID},
	"referer":       []string{"https://imgur.com/"},
	"origin":        []string{"https://imgur.com"},
	"content-type":  []string{"application/json"},
	"user-agent":    []string{"curl/7.84.0"},
}

type albumInfoDataWrapper struct {
	AI      *imgur.AlbumInfo `json:"data"`
	Success bool             `json:"success"`
	Status  int              `json:"status"`
}

// Resolver expands imgur urls into direct image urls. It handles
// albums, image pages, and direct image links. It implements the
// media.Resolver interface.
type Resolver struct {
	hc      *http.Client
	timeout time.Duration
}

func NewResolver(hc *http.Client, timeout time.Duration) *Resolver {
	return &Resolver{
		hc:      hc,
		timeout: timeout,
	}
}

// Resolve returns the direct image urls behind the given imgur url. See
// media.Resolver#Resolve for API details.
func (r *Resolver) Resolve(ctx context.Context, u string) ([]string, bool, error) {
	// Album: one url per constituent image.
	if strings.HasPrefix(u, albumPrefix) {
		urls, err := r.albumLinks(ctx, u)
		return urls, true, err
	}

	// Direct image link: already fetchable as-is.
	if strings.HasPrefix(u, imagePrefix) {
		return []string{u}, true, nil
	}

	// Image page url format:
	//     https://imgur.com/<image_id>
	imageID := strings.TrimPrefix(u, pagePrefix)
	if imageID != u && len(imageID) == 7 && !strings.Contains(imageID, "/") {
		return []string{imagePrefix + imageID + ".jpeg"}, true, nil
	}

	return nil, false, nil
}

// albumLinks reads the imgur album at the specified url and returns the
// urls of all its images.
func (r *Resolver) albumLinks(ctx context.Context, u string) ([]string, error) {
	log.Debugf("scanning imgur album: %s", u)

	hash := strings.TrimPrefix(u, albumPrefix)
	if len(hash) < 7 {
		return nil, fmt.Errorf("imgur album hash length too short: have=%d want=7 hash=%s", len(hash), hash)
	}
	if len(hash) > 7 {
		trimmed := hash[len(hash)-7:]
		log.Debugf("removing imgur album prefix: %s --> %s", hash, trimmed)
		hash = trimmed
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	b, err := fetch.Get(ctx, r.hc, apiBase+hash, getHeader)
	if err != nil {
		return nil, err
	}

	aidw := &albumInfoDataWrapper{}
	err = json.Unmarshal(b, aidw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode album info: %w", err)
	}

	if !aidw.Success {
		return nil, fmt.Errorf("album info response has success=false")
	}

	var links []string
	for _, img := range aidw.AI.Images {
		log.Debugf("detected imgur album image link: %s", img.Link)
		links = append(links, img.Link)
	}

	return links, nil
}
