package listing

import "strings"

// Find resolves a human-supplied identifier (address or MLS number)
// against the ordered collection and returns the index of the match, or -1.
//
// Matching is two-tiered, case-insensitive after trimming:
//
//	exact tier: first mlsNumber equality, then first address equality
//	fuzzy tier: first address containment, then first mlsNumber containment
//
// The fuzzy tier is only reached when the exact tier yields nothing, and
// never re-checks equality. First match wins; earlier records beat later
// ones. No score-based ranking.
func Find(listings []Listing, identifier string) int {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "" {
		return -1
	}

	for i := range listings {
		if strings.ToLower(listings[i].MLSNumber) == id {
			return i
		}
	}
	for i := range listings {
		if strings.ToLower(listings[i].Address) == id {
			return i
		}
	}

	for i := range listings {
		if strings.Contains(strings.ToLower(listings[i].Address), id) {
			return i
		}
	}
	for i := range listings {
		if strings.Contains(strings.ToLower(listings[i].MLSNumber), id) {
			return i
		}
	}

	return -1
}

// FindExact returns the index of the first listing whose address equals
// the given address, case-insensitively after trimming, or -1. Add's
// duplicate detection uses this deliberately narrower check so a new
// listing is never merged into a fuzzy match.
func FindExact(listings []Listing, address string) int {
	addr := strings.ToLower(strings.TrimSpace(address))
	for i := range listings {
		if strings.ToLower(strings.TrimSpace(listings[i].Address)) == addr {
			return i
		}
	}
	return -1
}
