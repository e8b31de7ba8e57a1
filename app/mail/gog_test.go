package mail

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type recordedCall struct {
	name string
	args []string
}

func fakeRunner(calls *[]recordedCall, output string, err error) runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, recordedCall{name: name, args: args})
		return []byte(output), err
	}
}

func TestGogGateway_Search(t *testing.T) {
	var calls []recordedCall
	g := NewGogGateway("chad@whitakerexclusives.com", "gog")
	g.run = fakeRunner(&calls, `[{"id":"m1","subject":"Add Listing","from":"assistant@example.com"}]`, nil)

	summaries, err := g.Search(context.Background())
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != "m1" {
		t.Errorf("Expected one summary with id m1, got %+v", summaries)
	}

	if len(calls) != 1 {
		t.Fatalf("Expected one gog invocation, got %d", len(calls))
	}
	joined := strings.Join(calls[0].args, " ")
	if !strings.Contains(joined, "--exclude-label processed") {
		t.Errorf("Search must exclude processed messages, got args: %s", joined)
	}
	if !strings.Contains(joined, "--account chad@whitakerexclusives.com") {
		t.Errorf("Search must scope to the account, got args: %s", joined)
	}
}

func TestGogGateway_SearchEmptyOutput(t *testing.T) {
	var calls []recordedCall
	g := NewGogGateway("a@b.com", "gog")
	g.run = fakeRunner(&calls, "", nil)

	summaries, err := g.Search(context.Background())
	if err != nil {
		t.Fatalf("Empty inbox output should not error: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("Expected no summaries, got %+v", summaries)
	}
}

func TestGogGateway_FetchFlattensHTMLOnlyBody(t *testing.T) {
	var calls []recordedCall
	g := NewGogGateway("a@b.com", "gog")
	g.run = fakeRunner(&calls, `{"subject":"Add Listing","from":"x@y.com","body":"","body_html":"<div>Address: 42 Palm Ave</div><div>Price: $500,000</div>"}`, nil)

	msg, err := g.Fetch(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if msg.ID != "m1" {
		t.Errorf("Fetch should backfill the message id, got '%s'", msg.ID)
	}
	if !strings.Contains(msg.Body, "Address: 42 Palm Ave") || !strings.Contains(msg.Body, "Price: $500,000") {
		t.Errorf("Expected flattened field lines, got body: %q", msg.Body)
	}
}

func TestGogGateway_SendAndLabel(t *testing.T) {
	var calls []recordedCall
	g := NewGogGateway("a@b.com", "gog")
	g.run = fakeRunner(&calls, "", nil)

	if err := g.Send(context.Background(), "x@y.com", "Listing Added", "body"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if err := g.MarkProcessed(context.Background(), "m1"); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("Expected 2 invocations, got %d", len(calls))
	}
	if !strings.Contains(strings.Join(calls[1].args, " "), "--add processed") {
		t.Errorf("MarkProcessed should add the processed label, got: %v", calls[1].args)
	}
}

func TestGogGateway_SearchError(t *testing.T) {
	var calls []recordedCall
	g := NewGogGateway("a@b.com", "gog")
	g.run = fakeRunner(&calls, "", fmt.Errorf("exit status 1"))

	if _, err := g.Search(context.Background()); err == nil {
		t.Error("Expected error when gog fails")
	}
}
