// Package fetch implements the image download pipeline: fetch a url,
// validate that the content is an image, derive a collision-free local
// filename, reject duplicate content, and write the file.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"

	"imgfetch/dedup"
	"imgfetch/fileutil"
)

// DefaultTimeout bounds one http request, including reading the body.
const DefaultTimeout = 10 * time.Second

// Outcome is the terminal classification of one fetch attempt.
type Outcome int

const (
	Saved Outcome = iota
	SkippedNotImage
	SkippedDuplicate
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case SkippedNotImage:
		return "skipped-not-image"
	case SkippedDuplicate:
		return "skipped-duplicate"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(o))
	}
}

// Result reports how one fetch attempt ended. Filename and Path are set
// when a file was (or would have been) written; ContentType is set
// whenever the server declared one; Err is set only for Failed.
type Result struct {
	Outcome     Outcome
	Filename    string // final name inside the target directory
	Path        string // full path of the saved file (Saved only)
	ContentType string // as declared by the server
	Err         error  // Failed only
}

// Pipeline downloads images into a target directory. URLs are fetched
// one at a time; the pipeline holds no state besides the directory and
// the http client, so the filesystem is re-examined on every call.
type Pipeline struct {
	dir     string // constant
	timeout time.Duration

	hc *http.Client
}

func NewPipeline(dir string, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{
		dir:     dir,
		timeout: timeout,
		hc:      &http.Client{},
	}
}

// Dir returns the pipeline's target directory.
func (p *Pipeline) Dir() string {
	return p.dir
}

// HTTPClient returns the pipeline's http client.
func (p *Pipeline) HTTPClient() *http.Client {
	return p.hc
}

// Fetch downloads the image at url=u into the pipeline's directory,
// creating it if needed. It never returns a Go error: every failure is
// absorbed into a Result with Outcome=Failed, so one bad url cannot
// abort a batch. Content whose declared type is not image/* yields
// SkippedNotImage; content whose hash matches an already-stored file
// yields SkippedDuplicate. There are no retries.
func (p *Pipeline) Fetch(ctx context.Context, u string) Result {
	if err := fileutil.EnsureDir(p.dir); err != nil {
		return Result{Outcome: Failed, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rsp, err := GetBody(ctx, p.hc, u, nil)
	if err != nil {
		return Result{Outcome: Failed, Err: err}
	}
	defer rsp.Body.Close()

	contentType := rsp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		log.Debugf("rejecting %s: content type %q is not an image", u, contentType)
		return Result{Outcome: SkippedNotImage, ContentType: contentType}
	}

	b, err := io.ReadAll(NewContextReader(ctx, rsp.Body))
	if err != nil {
		return Result{
			Outcome:     Failed,
			ContentType: contentType,
			Err:         fmt.Errorf("failed to read response body: %w", err),
		}
	}

	logDimensions(u, b)

	filename, err := fileutil.UniqueName(p.dir, fileutil.FilenameFromURL(u))
	if err != nil {
		return Result{Outcome: Failed, ContentType: contentType, Err: err}
	}

	dup, err := dedup.IsDuplicate(p.dir, b)
	if err != nil {
		return Result{Outcome: Failed, ContentType: contentType, Err: err}
	}
	if dup {
		return Result{Outcome: SkippedDuplicate, Filename: filename, ContentType: contentType}
	}

	path := filepath.Join(p.dir, filename)
	log.Debugf("saving %s", path)
	if err := os.WriteFile(path, b, 0644); err != nil {
		return Result{
			Outcome:     Failed,
			Filename:    filename,
			ContentType: contentType,
			Err:         fmt.Errorf("failed to save http response: %w", err),
		}
	}

	return Result{
		Outcome:     Saved,
		Filename:    filename,
		Path:        path,
		ContentType: contentType,
	}
}

// logDimensions logs the pixel dimensions of downloaded image content
// at debug level. Content that does not decode as a known image format
// is left alone; the content type header has already been accepted.
func logDimensions(u string, b []byte) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		log.Debugf("could not decode image header: url=%s err=%v", u, err)
		return
	}
	log.Debugf("downloaded %s: format=%s size=%dx%d", u, format, cfg.Width, cfg.Height)
}
