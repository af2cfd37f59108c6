// Package web extracts image links from html documents.
package web

import (
	"net/url"

	"golang.org/x/net/html"
)

// ForEachNode applies a function to the given node and each of its
// descendants.
func ForEachNode(node *html.Node, fn func(n *html.Node) error) error {
	var iter func(n *html.Node) error
	iter = func(n *html.Node) error {
		err := fn(n)
		if err != nil {
			return err
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			err := iter(c)
			if err != nil {
				return err
			}
		}

		return nil
	}

	return iter(node)
}

// ImageURLs returns the urls of all images embedded in the given html
// document, in document order and with duplicates removed. Relative
// srcs are resolved against base; base may be nil, in which case
// relative srcs are returned as-is.
func ImageURLs(doc *html.Node, base *url.URL) []string {
	seen := map[string]struct{}{}
	var urls []string

	ForEachNode(doc, func(n *html.Node) error {
		if n.Type != html.ElementNode || n.Data != "img" {
			return nil
		}

		for _, a := range n.Attr {
			if a.Key != "src" || a.Val == "" {
				continue
			}

			u := absoluteURL(base, a.Val)
			if u == "" {
				break
			}
			if _, ok := seen[u]; !ok {
				seen[u] = struct{}{}
				urls = append(urls, u)
			}
			break
		}

		return nil
	})

	return urls
}

// absoluteURL resolves src against base. It returns the empty string if
// src cannot be parsed.
func absoluteURL(base *url.URL, src string) string {
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
