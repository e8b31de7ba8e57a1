package cfg

import "path/filepath"

type Cfg struct {
	// Mail account configuration
	Account string
	GogBin  string

	// Site worktree configuration
	SiteDir     string
	StoreFile   string
	PhotosDir   string
	ProfileFile string
	JournalFile string

	// Application configuration
	PollInterval int // seconds
	Port         string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

// StorePath is the absolute location of listings.json inside the site
// worktree.
func (c *Cfg) StorePath() string {
	return filepath.Join(c.SiteDir, c.StoreFile)
}

// PhotosPath is the absolute location of the photo asset tree.
func (c *Cfg) PhotosPath() string {
	return filepath.Join(c.SiteDir, c.PhotosDir)
}

// ProfilePath is the absolute location of the deployment profile.
func (c *Cfg) ProfilePath() string {
	return filepath.Join(c.SiteDir, c.ProfileFile)
}

// JournalPath is the absolute location of the processing journal database.
func (c *Cfg) JournalPath() string {
	return filepath.Join(c.SiteDir, c.JournalFile)
}
