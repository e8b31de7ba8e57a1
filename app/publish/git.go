package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Publisher propagates store and photo changes to the durable, versioned
// destination. Failure is non-fatal: the local mutation and the persisted
// write are already committed and are never rolled back.
type Publisher interface {
	Publish(ctx context.Context, paths []string, message string) error
}

type runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

var _ Publisher = (*GitPublisher)(nil)

// GitPublisher stages, commits, and pushes the changed paths in the site
// worktree. The site host redeploys on push.
type GitPublisher struct {
	dir string
	run runner
}

func NewGitPublisher(dir string) *GitPublisher {
	return &GitPublisher{dir: dir, run: execRunner}
}

// Publish stages and commits the given paths, then pushes. Stage and
// commit errors are expected noise (commit fails when nothing changed)
// and only logged; a rejected push is the error that matters.
func (p *GitPublisher) Publish(ctx context.Context, paths []string, message string) error {
	addArgs := append([]string{"add"}, paths...)
	if out, err := p.run(ctx, p.dir, "git", addArgs...); err != nil {
		slog.Debug("git add reported an error", "output", strings.TrimSpace(string(out)), "error", err)
	}

	if out, err := p.run(ctx, p.dir, "git", "commit", "-m", message); err != nil {
		slog.Debug("git commit reported an error", "output", strings.TrimSpace(string(out)), "error", err)
	}

	if out, err := p.run(ctx, p.dir, "git", "push"); err != nil {
		return fmt.Errorf("git push failed: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}
