package extract

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Links scans an HTML body for hyperlink references and returns them
// normalized to absolute URLs. References consisting only of a fragment
// ("#top") point back at the page itself and are skipped. The result is
// not yet filtered; callers apply the acceptance predicate afterwards.
//
// Design decision: We use the x/net/html tokenizer rather than a regex
// because:
//  1. It correctly handles malformed HTML common on the web
//  2. Attribute values come back unescaped
//  3. It never backtracks, so pathological pages cannot stall the walk
//
// Every element's href attribute is considered, not just <a>, matching
// the behavior of scanning the raw markup for href values: <link> and
// <area> targets are as good as anchors for generating traffic.
func Links(body, rootURL string) []string {
	z := html.NewTokenizer(strings.NewReader(body))

	var links []string
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// EOF or unrecoverable markup; either way we are done
			return links
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		for _, attr := range z.Token().Attr {
			if attr.Key != "href" {
				continue
			}
			href := strings.TrimSpace(attr.Val)
			if href == "" || strings.HasPrefix(href, "#") {
				continue
			}
			if normalized, ok := Normalize(href, rootURL); ok {
				links = append(links, normalized)
			}
		}
	}
}

// Normalize resolves a hyperlink reference extracted from a page into an
// absolute URL, so it can be requested directly. For example, a "/images"
// reference found on https://imgur.com becomes "https://imgur.com/images".
//
// Rules, in order:
//   - "//host/path" (protocol-relative) inherits the root's scheme and
//     keeps the reference's authority and path.
//   - A reference without a scheme is resolved against the root URL per
//     RFC 3986 relative resolution.
//   - A reference with a scheme is returned unchanged.
//
// References that cannot be parsed at all (for example a stray "]" that
// looks like a malformed IPv6 literal) yield ok=false and are dropped.
func Normalize(href, rootURL string) (string, bool) {
	href = strings.TrimSpace(href)

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	if strings.HasPrefix(href, "//") {
		root, err := url.Parse(rootURL)
		if err != nil {
			return "", false
		}
		return root.Scheme + "://" + ref.Host + ref.Path, true
	}

	if ref.Scheme == "" {
		root, err := url.Parse(rootURL)
		if err != nil {
			return "", false
		}
		return root.ResolveReference(ref).String(), true
	}

	return href, true
}
