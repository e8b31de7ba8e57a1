package publish

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type gitCall struct {
	dir  string
	args []string
}

func TestGitPublisher_StagesCommitsPushes(t *testing.T) {
	var calls []gitCall
	p := NewGitPublisher("/srv/site")
	p.run = func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		calls = append(calls, gitCall{dir: dir, args: args})
		return nil, nil
	}

	err := p.Publish(context.Background(), []string{"listings.json", "photos"}, "Listing update: add 42 Palm Ave")
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if len(calls) != 3 {
		t.Fatalf("Expected add/commit/push, got %d calls", len(calls))
	}
	if strings.Join(calls[0].args, " ") != "add listings.json photos" {
		t.Errorf("Unexpected add args: %v", calls[0].args)
	}
	if calls[1].args[0] != "commit" || calls[1].args[2] != "Listing update: add 42 Palm Ave" {
		t.Errorf("Unexpected commit args: %v", calls[1].args)
	}
	if calls[2].args[0] != "push" {
		t.Errorf("Expected push last, got: %v", calls[2].args)
	}
	if calls[0].dir != "/srv/site" {
		t.Errorf("Commands should run in the site worktree, got '%s'", calls[0].dir)
	}
}

func TestGitPublisher_CommitFailureIgnored(t *testing.T) {
	p := NewGitPublisher("/srv/site")
	p.run = func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		if args[0] == "commit" {
			return []byte("nothing to commit"), fmt.Errorf("exit status 1")
		}
		return nil, nil
	}

	if err := p.Publish(context.Background(), []string{"listings.json"}, "msg"); err != nil {
		t.Errorf("Commit failure should not fail the publish, got %v", err)
	}
}

func TestGitPublisher_PushFailureReturned(t *testing.T) {
	p := NewGitPublisher("/srv/site")
	p.run = func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		if args[0] == "push" {
			return []byte("rejected"), fmt.Errorf("exit status 1")
		}
		return nil, nil
	}

	if err := p.Publish(context.Background(), []string{"listings.json"}, "msg"); err == nil {
		t.Error("Expected error when push is rejected")
	}
}
