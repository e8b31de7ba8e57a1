package mail

import "context"

// Gateway is the mail transport the run loop and the reconciliation
// engine depend on. Search returns only messages not yet marked
// processed; MarkProcessed is idempotent and removes a message from
// future Search results.
type Gateway interface {
	Search(ctx context.Context) ([]Summary, error)
	Fetch(ctx context.Context, messageID string) (*Message, error)
	Send(ctx context.Context, to, subject, body string) error
	MarkProcessed(ctx context.Context, messageID string) error
}
