package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listingd.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write profile: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load of missing profile should not error: %v", err)
	}
	if p.Photos.Mode != ModeAttachments {
		t.Errorf("Expected default mode 'attachments', got '%s'", p.Photos.Mode)
	}
	if len(p.Photos.Extensions) == 0 {
		t.Error("Expected default photo extensions")
	}
}

func TestLoad_FullProfile(t *testing.T) {
	path := writeProfile(t, `
site:
  name: Whitaker Exclusives
  domain: whitakerexclusives.com
defaults:
  city: Fort Lauderdale
  state: FL
  agent: Chad Whitaker
photos:
  mode: links
  url_prefix: https://photos.whitakerexclusives.com/
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Site.Domain != "whitakerexclusives.com" {
		t.Errorf("Expected site domain, got '%s'", p.Site.Domain)
	}
	if p.Defaults.City != "Fort Lauderdale" || p.Defaults.State != "FL" {
		t.Errorf("Expected configured defaults, got %+v", p.Defaults)
	}
	if p.Photos.Mode != ModeLinks {
		t.Errorf("Expected links mode, got '%s'", p.Photos.Mode)
	}
}

func TestLoad_LinksModeRequiresPrefix(t *testing.T) {
	path := writeProfile(t, "photos:\n  mode: links\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for links mode without url_prefix")
	}
}

func TestLoad_UnknownModeRejected(t *testing.T) {
	path := writeProfile(t, "photos:\n  mode: carrier-pigeon\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for unknown photo mode")
	}
}
