package profile

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the deployment profile from a YAML file. A missing file
// yields the built-in defaults, so a bare deployment still runs.
func Load(path string) (*Profile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("Profile file not found, using defaults", "path", path)
		p := &Profile{}
		setDefaults(p)
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	setDefaults(&p)
	if err := validate(&p); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return &p, nil
}

func setDefaults(p *Profile) {
	if p.Photos.Mode == "" {
		p.Photos.Mode = ModeAttachments
	}
	if len(p.Photos.Extensions) == 0 {
		p.Photos.Extensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}
	}
}

func validate(p *Profile) error {
	switch p.Photos.Mode {
	case ModeAttachments:
	case ModeLinks:
		if p.Photos.URLPrefix == "" {
			return fmt.Errorf("photos.url_prefix is required in links mode")
		}
	default:
		return fmt.Errorf("unknown photos.mode: %s", p.Photos.Mode)
	}
	return nil
}
