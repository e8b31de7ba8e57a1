package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/whitakerexclusives/listingd/app/engine"
	"github.com/whitakerexclusives/listingd/app/journal"
	"github.com/whitakerexclusives/listingd/app/listing"
	"github.com/whitakerexclusives/listingd/app/mail"
	"github.com/whitakerexclusives/listingd/app/store"
)

// CommandHandler dispatches one classified command against the listing
// collection. Implemented by engine.Engine.
type CommandHandler interface {
	Add(ctx context.Context, msg *mail.Message, listings *[]listing.Listing) engine.Outcome
	Update(ctx context.Context, msg *mail.Message, listings *[]listing.Listing) engine.Outcome
	Delete(ctx context.Context, msg *mail.Message, listings *[]listing.Listing) engine.Outcome
}

// ProcessInboxTask drains the unprocessed inbox once: it classifies
// every message by subject, dispatches recognized commands, journals
// the outcomes, and labels the messages processed.
type ProcessInboxTask struct {
	Task
	store    store.ListingStore
	gateway  mail.Gateway
	handler  CommandHandler
	recorder journal.Recorder
}

func NewProcessInboxTask(st store.ListingStore, gateway mail.Gateway, handler CommandHandler,
	recorder journal.Recorder) *ProcessInboxTask {
	return &ProcessInboxTask{
		Task:     NewTask(TaskTypeProcessInbox),
		store:    st,
		gateway:  gateway,
		handler:  handler,
		recorder: recorder,
	}
}

func (t *ProcessInboxTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	summaries, err := t.gateway.Search(ctx)
	if err != nil {
		return fmt.Errorf("failed to search inbox: %w", err)
	}
	if len(summaries) == 0 {
		slog.Debug("No unprocessed messages")
		return nil
	}

	listings, err := t.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load listings: %w", err)
	}

	skippedCount := 0
	dispatchedCount := 0
	succeededCount := 0

	for _, summary := range summaries {
		intent := listing.ClassifyIntent(summary.Subject)
		if intent == listing.IntentNone {
			// Not a command; leave it unlabeled so a human sees it.
			slog.Debug("Message is not a listing command, skipping", "message_id", summary.ID, "subject", summary.Subject)
			skippedCount++
			continue
		}

		seen, err := t.recorder.Seen(summary.ID)
		if err != nil {
			slog.Warn("Failed to check journal, processing anyway", "message_id", summary.ID, "error", err)
		} else if seen {
			// Already dispatched once; the label write must have
			// failed last time. Re-label without re-dispatching.
			slog.Info("Message already journaled, re-labeling", "message_id", summary.ID)
			t.markProcessed(ctx, summary.ID)
			skippedCount++
			continue
		}

		msg, err := t.gateway.Fetch(ctx, summary.ID)
		if err != nil {
			// Left unlabeled so the next run retries it.
			slog.Warn("Failed to fetch message, will retry next run", "message_id", summary.ID, "error", err)
			continue
		}

		outcome := t.dispatch(ctx, intent, msg, &listings)
		dispatchedCount++
		if outcome.Success() {
			succeededCount++
		}

		if err := t.recorder.Record(journal.Entry{
			MessageID:   summary.ID,
			Intent:      intent.String(),
			Outcome:     string(outcome.Kind),
			Detail:      outcome.Detail,
			ProcessedAt: time.Now().UTC(),
		}); err != nil {
			slog.Warn("Failed to journal message", "message_id", summary.ID, "error", err)
		}

		// Labeled regardless of outcome: a malformed command is
		// consumed, not retried forever.
		t.markProcessed(ctx, summary.ID)
	}

	slog.Info("Task completed",
		"type", "ProcessInbox",
		"duration", t.GetDuration(),
		"total", len(summaries),
		"skipped", skippedCount,
		"dispatched", dispatchedCount,
		"succeeded", succeededCount)

	return nil
}

func (t *ProcessInboxTask) dispatch(ctx context.Context, intent listing.Intent, msg *mail.Message, listings *[]listing.Listing) engine.Outcome {
	switch intent {
	case listing.IntentAdd:
		return t.handler.Add(ctx, msg, listings)
	case listing.IntentUpdate:
		return t.handler.Update(ctx, msg, listings)
	case listing.IntentDelete:
		return t.handler.Delete(ctx, msg, listings)
	}
	return engine.Outcome{Intent: intent}
}

func (t *ProcessInboxTask) markProcessed(ctx context.Context, messageID string) {
	if err := t.gateway.MarkProcessed(ctx, messageID); err != nil {
		slog.Warn("Failed to mark message processed", "message_id", messageID, "error", err)
	}
}
