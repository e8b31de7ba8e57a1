package api

import (
	"github.com/whitakerexclusives/listingd/app/journal"
	"github.com/whitakerexclusives/listingd/app/store"
)

type Handler struct {
	store    store.ListingStore
	recorder journal.Recorder
	version  string
}
