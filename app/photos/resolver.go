package photos

import "context"

// Resolver is the photo acquisition capability. Exactly one variant is
// active per deployment, selected by the profile:
//
//	AttachmentResolver downloads email attachments into the site's photo
//	tree and returns relative storage paths.
//	LinkResolver passes through hosted URLs already present in the body.
//
// Acquire never mixes the two reference styles within one listing
// lifecycle. Remove discards a listing's photo storage on deletion.
type Resolver interface {
	Acquire(ctx context.Context, listingID, messageID string, extracted []string) ([]string, error)
	Remove(listingID string) error
}
