package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// processedLabel marks command emails the pipeline has already dispatched.
const processedLabel = "processed"

// runner executes an external command and returns its stdout. Swappable
// in tests.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, err
	}
	return out, nil
}

var _ Gateway = (*GogGateway)(nil)

// GogGateway drives the gog mail CLI, the same transport the production
// inbox runs on. Every call shells out; there is no connection state.
type GogGateway struct {
	account string
	bin     string
	run     runner
}

func NewGogGateway(account, bin string) *GogGateway {
	return &GogGateway{
		account: account,
		bin:     bin,
		run:     execRunner,
	}
}

// Search lists inbox messages that do not carry the processed label yet.
func (g *GogGateway) Search(ctx context.Context) ([]Summary, error) {
	out, err := g.run(ctx, g.bin, "mail", "list",
		"--account", g.account,
		"--label", "INBOX",
		"--exclude-label", processedLabel,
		"--format", "json")
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}

	if len(strings.TrimSpace(string(out))) == 0 {
		return nil, nil
	}

	var summaries []Summary
	if err := json.Unmarshal(out, &summaries); err != nil {
		return nil, fmt.Errorf("failed to parse inbox listing: %w", err)
	}
	return summaries, nil
}

// Fetch retrieves one message in full. HTML-only messages are flattened
// to plain text so the extractor always sees line-oriented input.
func (g *GogGateway) Fetch(ctx context.Context, messageID string) (*Message, error) {
	out, err := g.run(ctx, g.bin, "mail", "read",
		"--account", g.account,
		"--message-id", messageID,
		"--format", "json")
	if err != nil {
		return nil, fmt.Errorf("failed to read message %s: %w", messageID, err)
	}

	var msg Message
	if err := json.Unmarshal(out, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message %s: %w", messageID, err)
	}
	if msg.ID == "" {
		msg.ID = messageID
	}

	if strings.TrimSpace(msg.Body) == "" && msg.BodyHTML != "" {
		text, err := FlattenHTML(msg.BodyHTML)
		if err != nil {
			slog.Warn("Failed to flatten HTML body", "message_id", messageID, "error", err)
		} else {
			msg.Body = text
		}
	}

	return &msg, nil
}

// Send delivers a notification email from the configured account.
func (g *GogGateway) Send(ctx context.Context, to, subject, body string) error {
	_, err := g.run(ctx, g.bin, "mail", "send",
		"--account", g.account,
		"--to", to,
		"--subject", subject,
		"--body", body)
	if err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// MarkProcessed labels a message so future Search calls skip it.
// Labeling an already-labeled message is a no-op on the gog side.
func (g *GogGateway) MarkProcessed(ctx context.Context, messageID string) error {
	_, err := g.run(ctx, g.bin, "mail", "label",
		"--account", g.account,
		"--message-id", messageID,
		"--add", processedLabel)
	if err != nil {
		return fmt.Errorf("failed to label message %s: %w", messageID, err)
	}
	return nil
}
