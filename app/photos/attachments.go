package photos

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

var _ Resolver = (*AttachmentResolver)(nil)

// AttachmentResolver saves a message's attachments under
// <photosDir>/<listing-id>/ via the gog CLI and reports them as paths
// relative to the site root (e.g. "photos/42-palm-ave/front.jpg"), which
// is how the store references them.
type AttachmentResolver struct {
	account    string
	bin        string
	photosDir  string // absolute directory holding per-listing photo dirs
	relBase    string // site-relative name of photosDir, e.g. "photos"
	extensions []string
	run        runner
}

func NewAttachmentResolver(account, bin, photosDir, relBase string, extensions []string) *AttachmentResolver {
	return &AttachmentResolver{
		account:    account,
		bin:        bin,
		photosDir:  photosDir,
		relBase:    relBase,
		extensions: extensions,
		run:        execRunner,
	}
}

// Acquire downloads the message's attachments and returns the stored
// image files in name order. A failed download yields no photos, not an
// aborted command.
func (r *AttachmentResolver) Acquire(ctx context.Context, listingID, messageID string, _ []string) ([]string, error) {
	if messageID == "" {
		return nil, nil
	}

	dir := filepath.Join(r.photosDir, listingID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}

	if _, err := r.run(ctx, r.bin, "mail", "attachments",
		"--account", r.account,
		"--message-id", messageID,
		"--output-dir", dir); err != nil {
		return nil, fmt.Errorf("failed to download attachments: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan photo directory: %w", err)
	}

	var photos []string
	for _, entry := range entries {
		if entry.IsDir() || !r.isImage(entry.Name()) {
			continue
		}
		photos = append(photos, path.Join(r.relBase, listingID, entry.Name()))
	}
	sort.Strings(photos)
	return photos, nil
}

// Remove deletes the listing's photo directory.
func (r *AttachmentResolver) Remove(listingID string) error {
	if listingID == "" {
		return nil
	}
	return os.RemoveAll(filepath.Join(r.photosDir, listingID))
}

func (r *AttachmentResolver) isImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range r.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
