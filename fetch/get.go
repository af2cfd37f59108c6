package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// StatusError indicates an http response with a non-2xx status code.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("error status: %s", e.Status)
}

// GetBody performs an http GET with url=u using the supplied client and
// header. On success the caller owns the response and must close its
// body. The caller controls the deadline through ctx.
func GetBody(ctx context.Context, hc *http.Client, u string, header http.Header) (*http.Response, error) {
	log.Debugf("get: %s", u)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rsp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		rsp.Body.Close()
		return nil, &StatusError{Code: rsp.StatusCode, Status: rsp.Status}
	}

	return rsp, nil
}

// Get calls GetBody(), then reads the full response and returns the
// result.
func Get(ctx context.Context, hc *http.Client, u string, header http.Header) ([]byte, error) {
	rsp, err := GetBody(ctx, hc, u, header)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	return io.ReadAll(NewContextReader(ctx, rsp.Body))
}
