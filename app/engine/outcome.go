package engine

import "github.com/whitakerexclusives/listingd/app/listing"

// OutcomeKind names every way a handler can resolve. Failure kinds are
// part of the contract: the run loop aggregates them into the summary
// and the journal instead of relying on log lines.
type OutcomeKind string

const (
	OutcomeAdded   OutcomeKind = "added"
	OutcomeUpdated OutcomeKind = "updated"
	OutcomeDeleted OutcomeKind = "deleted"

	// OutcomeMissingAddress: Add body carried no address field.
	OutcomeMissingAddress OutcomeKind = "missing_address"
	// OutcomeMissingIdentifier: Update/Delete body was blank.
	OutcomeMissingIdentifier OutcomeKind = "missing_identifier"
	// OutcomeListingNotFound: no record matched the identifier.
	OutcomeListingNotFound OutcomeKind = "listing_not_found"
	// OutcomeStoreFailure: the collection could not be persisted.
	OutcomeStoreFailure OutcomeKind = "store_failure"
)

// Outcome is the explicit result of one handler invocation.
type Outcome struct {
	Intent  listing.Intent
	Kind    OutcomeKind
	Address string   // resolved listing address, when known
	Detail  string   // identifier or error context for failures
	Updated []string // field keys overwritten by Update
}

func (o Outcome) Success() bool {
	switch o.Kind {
	case OutcomeAdded, OutcomeUpdated, OutcomeDeleted:
		return true
	}
	return false
}
