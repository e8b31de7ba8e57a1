package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/whitakerexclusives/listingd/app/listing"
	"github.com/whitakerexclusives/listingd/app/mail"
	"github.com/whitakerexclusives/listingd/app/photos"
	"github.com/whitakerexclusives/listingd/app/profile"
	"github.com/whitakerexclusives/listingd/app/publish"
	"github.com/whitakerexclusives/listingd/app/store"
)

// Engine applies one classified command to the mutable listing
// collection. Handlers are best-effort, not transactional: once matching
// succeeds the in-memory mutation and the persisted write happen
// unconditionally; publish and notify are independent downstream steps
// whose failure never undoes them.
type Engine struct {
	store        store.ListingStore
	gateway      mail.Gateway
	photos       photos.Resolver
	publisher    publish.Publisher
	extractor    *listing.Extractor
	site         profile.Site
	publishPaths []string
	now          func() time.Time
}

func New(st store.ListingStore, gateway mail.Gateway, resolver photos.Resolver,
	publisher publish.Publisher, extractor *listing.Extractor, site profile.Site,
	publishPaths []string) *Engine {
	return &Engine{
		store:        st,
		gateway:      gateway,
		photos:       resolver,
		publisher:    publisher,
		extractor:    extractor,
		site:         site,
		publishPaths: publishPaths,
		now:          time.Now,
	}
}

// Add parses a full listing from the body and upserts it. Duplicate
// detection is deliberately exact (case-insensitive address equality),
// never the fuzzy matcher: an Add must not merge into a near-miss.
func (e *Engine) Add(ctx context.Context, msg *mail.Message, listings *[]listing.Listing) Outcome {
	fields := e.extractor.Run(msg.Body)
	e.extractor.ApplyDefaults(&fields)

	if fields.Address == nil {
		slog.Error("Add command without an address", "message_id", msg.ID)
		return Outcome{Intent: listing.IntentAdd, Kind: OutcomeMissingAddress}
	}
	address := *fields.Address

	l := listing.Listing{
		ID:        listing.Slug(address),
		Address:   address,
		Status:    listing.StatusActive,
		AddedDate: e.now().Format("2006-01-02"),
		Photos:    []string{},
	}
	fields.Apply(&l)

	acquired, err := e.photos.Acquire(ctx, l.ID, msg.ID, fields.Photos)
	if err != nil {
		slog.Warn("Photo acquisition failed", "listing", l.ID, "error", err)
	} else if len(acquired) > 0 {
		l.Photos = acquired
	}

	if idx := listing.FindExact(*listings, address); idx >= 0 {
		existing := (*listings)[idx]
		slog.Info("Listing already exists, updating instead", "address", address)
		// Identity and creation date survive the overwrite.
		l.ID = existing.ID
		l.AddedDate = existing.AddedDate
		(*listings)[idx] = l
	} else {
		*listings = append(*listings, l)
	}

	if err := e.store.Save(*listings); err != nil {
		slog.Error("Failed to persist listings", "error", err)
		return Outcome{Intent: listing.IntentAdd, Kind: OutcomeStoreFailure, Address: address, Detail: err.Error()}
	}

	e.publish(ctx, "add", address)
	e.notify(ctx, msg.From, "Listing Added: "+address, fmt.Sprintf(
		"Your listing at %s has been added to %s.\n\nPrice: %s\nPhotos: %d\nStatus: Active",
		address, e.siteName(), formatPrice(l.Price), len(l.Photos)))

	slog.Info("Listing added", "address", address, "id", l.ID, "photos", len(l.Photos))
	return Outcome{Intent: listing.IntentAdd, Kind: OutcomeAdded, Address: address}
}

// Update resolves the listing named by the body's identifier and
// overwrites only the fields the body actually carries. Identity is
// never changed and deployment defaults are not injected here.
func (e *Engine) Update(ctx context.Context, msg *mail.Message, listings *[]listing.Listing) Outcome {
	identifier := listing.ExtractIdentifier(msg.Body)
	if identifier == "" {
		slog.Error("Update command without an identifier", "message_id", msg.ID)
		return Outcome{Intent: listing.IntentUpdate, Kind: OutcomeMissingIdentifier}
	}

	idx := listing.Find(*listings, identifier)
	if idx < 0 {
		slog.Error("Listing not found", "identifier", identifier)
		e.notify(ctx, msg.From, "Update Failed",
			fmt.Sprintf("Could not find listing matching: %s", identifier))
		return Outcome{Intent: listing.IntentUpdate, Kind: OutcomeListingNotFound, Detail: identifier}
	}

	fields := e.extractor.Run(msg.Body)
	updated := fields.Keys()

	l := &(*listings)[idx]
	fields.Apply(l)

	if err := e.store.Save(*listings); err != nil {
		slog.Error("Failed to persist listings", "error", err)
		return Outcome{Intent: listing.IntentUpdate, Kind: OutcomeStoreFailure, Address: l.Address, Detail: err.Error()}
	}

	e.publish(ctx, "update", l.Address)
	e.notify(ctx, msg.From, "Listing Updated: "+l.Address, fmt.Sprintf(
		"Your listing at %s has been updated on %s.\n\nUpdated fields: %s",
		l.Address, e.siteName(), strings.Join(updated, ", ")))

	slog.Info("Listing updated", "address", l.Address, "fields", updated)
	return Outcome{Intent: listing.IntentUpdate, Kind: OutcomeUpdated, Address: l.Address, Updated: updated}
}

// Delete removes the resolved listing from the collection, discards its
// photo storage, and publishes the shrunken store.
func (e *Engine) Delete(ctx context.Context, msg *mail.Message, listings *[]listing.Listing) Outcome {
	identifier := listing.ExtractIdentifier(msg.Body)
	if identifier == "" {
		slog.Error("Delete command without an identifier", "message_id", msg.ID)
		return Outcome{Intent: listing.IntentDelete, Kind: OutcomeMissingIdentifier}
	}

	idx := listing.Find(*listings, identifier)
	if idx < 0 {
		slog.Error("Listing not found", "identifier", identifier)
		e.notify(ctx, msg.From, "Delete Failed",
			fmt.Sprintf("Could not find listing matching: %s", identifier))
		return Outcome{Intent: listing.IntentDelete, Kind: OutcomeListingNotFound, Detail: identifier}
	}

	removed := (*listings)[idx]
	*listings = append((*listings)[:idx], (*listings)[idx+1:]...)

	if err := e.store.Save(*listings); err != nil {
		slog.Error("Failed to persist listings", "error", err)
		return Outcome{Intent: listing.IntentDelete, Kind: OutcomeStoreFailure, Address: removed.Address, Detail: err.Error()}
	}

	if err := e.photos.Remove(removed.ID); err != nil {
		slog.Warn("Failed to remove photo storage", "listing", removed.ID, "error", err)
	}

	e.publish(ctx, "delete", removed.Address)
	e.notify(ctx, msg.From, "Listing Deleted: "+removed.Address, fmt.Sprintf(
		"The listing at %s has been removed from %s.",
		removed.Address, e.siteName()))

	slog.Info("Listing deleted", "address", removed.Address, "id", removed.ID)
	return Outcome{Intent: listing.IntentDelete, Kind: OutcomeDeleted, Address: removed.Address}
}

// publish pushes the store and photo assets. Failure is logged and
// swallowed; the local state is already committed.
func (e *Engine) publish(ctx context.Context, action, address string) {
	message := fmt.Sprintf("Listing update: %s %s", action, address)
	if err := e.publisher.Publish(ctx, e.publishPaths, message); err != nil {
		slog.Warn("Publish failed", "action", action, "address", address, "error", err)
	}
}

// notify sends a confirmation when the sender is known. Gateway failure
// degrades to a log line.
func (e *Engine) notify(ctx context.Context, to, subject, body string) {
	if to == "" {
		return
	}
	if err := e.gateway.Send(ctx, to, subject, body); err != nil {
		slog.Warn("Failed to send notification", "to", to, "subject", subject, "error", err)
	}
}

func (e *Engine) siteName() string {
	if e.site.Domain != "" {
		return e.site.Domain
	}
	if e.site.Name != "" {
		return e.site.Name
	}
	return "the site"
}

// formatPrice renders a price for a confirmation email: thousands
// separators for parsed values, the raw text as-is otherwise.
func formatPrice(p *listing.FlexInt) string {
	if p == nil {
		return "N/A"
	}
	if p.IsRaw() {
		return p.Raw
	}
	return "$" + groupDigits(p.Value)
}

func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
