package store

import "github.com/whitakerexclusives/listingd/app/listing"

// ListingStore persists the canonical ordered listing collection. The
// whole collection is rewritten on every mutation; there are no partial
// writes.
type ListingStore interface {
	Load() ([]listing.Listing, error)
	Save(listings []listing.Listing) error
}
