package extract

import "regexp"

// validURL is the absolute-URL grammar a candidate must match before the
// walk will request it. It accepts http, https, ftp, and ftps schemes,
// followed by either a dotted domain name or a dotted-quad IPv4 address,
// an optional port, and an optional path or query.
//
// The grammar is deliberately syntactic: "http://256.256.256.256" passes
// because each octet is just 1-3 digits. The filter exists to discard
// href values that are not URLs at all ("javascript:void(0)", "mailto:"),
// not to predict whether a request will succeed; the walk's dead-end
// handling covers unreachable hosts.
var validURL = regexp.MustCompile(`(?i)^(?:http|ftp)s?://` +
	`(?:(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+(?:[a-z]{2,6}\.?|[a-z0-9-]{2,}\.?)|` + // domain
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` + // or IPv4
	`(?::\d+)?` + // optional port
	`(?:/?|[/?]\S+)$`) // optional path/query

// IsValidURL reports whether url matches the absolute-URL grammar.
func IsValidURL(url string) bool {
	return validURL.MatchString(url)
}

// Accept is the acceptance predicate applied to every normalized link
// before it may enter the frontier: the URL must be non-empty, match the
// absolute-URL grammar, and not be blacklisted. It has no side effects.
func Accept(url string, blacklist *Blacklist) bool {
	return url != "" && IsValidURL(url) && !blacklist.Matches(url)
}

// FilterLinks returns the subset of links that pass Accept.
// The input order is preserved; duplicates are kept, because a page that
// links to the same URL twice genuinely doubles that URL's chance of
// being the next hop, the same as a human clicking at random.
func FilterLinks(links []string, blacklist *Blacklist) []string {
	var accepted []string
	for _, link := range links {
		if Accept(link, blacklist) {
			accepted = append(accepted, link)
		}
	}
	return accepted
}
