package extract

import "strings"

// Blacklist is a growable list of substrings that disqualify URLs.
// A URL matches when it contains any entry as a literal substring, so a
// single entry like "doubleclick.net" covers every URL on that host.
//
// The list only ever grows: the walk adds every dead-end URL it finds so
// the same dead end is never fetched twice within a run. Entries are not
// deduplicated; duplicates are harmless and the walk never adds the same
// URL twice anyway, because a blacklisted URL can't re-enter the frontier.
//
// Blacklist is not safe for concurrent use. The walk and session loop are
// a single flow of control, which is the only mutator.
type Blacklist struct {
	entries []string
}

// NewBlacklist creates a Blacklist seeded with the given substrings.
// The seed slice is copied, so the configuration's own list is never
// mutated as the session blacklists dead ends.
func NewBlacklist(seed []string) *Blacklist {
	entries := make([]string, len(seed))
	copy(entries, seed)
	return &Blacklist{entries: entries}
}

// Matches reports whether url contains any blacklist entry.
func (b *Blacklist) Matches(url string) bool {
	for _, entry := range b.entries {
		if strings.Contains(url, entry) {
			return true
		}
	}
	return false
}

// Add appends an entry to the blacklist.
func (b *Blacklist) Add(entry string) {
	b.entries = append(b.entries, entry)
}

// Len returns the number of entries.
func (b *Blacklist) Len() int {
	return len(b.entries)
}
