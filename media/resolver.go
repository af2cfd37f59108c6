package media

import "context"

// Resolver expands a url recognized by a particular image host into the
// direct image urls behind it. Most resolver implementations only know
// how to handle one web site (e.g., imgur).
type Resolver interface {
	// Resolve returns the direct image urls for u. ok is false if the
	// resolver does not recognize the url, in which case urls is nil
	// and the caller should try the next resolver or fetch u as-is.
	Resolve(ctx context.Context, u string) (urls []string, ok bool, err error)
}
