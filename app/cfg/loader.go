package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Mail account configuration
	Account string `long:"account" env:"LISTINGD_ACCOUNT" description:"Mail account the commands arrive on (required)" required:"true"`
	GogBin  string `long:"gog-bin" env:"LISTINGD_GOG_BIN" default:"gog" description:"Path to the gog mail CLI"`

	// Site worktree configuration
	SiteDir     string `long:"site-dir" env:"LISTINGD_SITE_DIR" default:"." description:"Git worktree of the published site"`
	StoreFile   string `long:"store-file" env:"LISTINGD_STORE_FILE" default:"listings.json" description:"Listing store file, relative to the site dir"`
	PhotosDir   string `long:"photos-dir" env:"LISTINGD_PHOTOS_DIR" default:"photos" description:"Photo asset directory, relative to the site dir"`
	ProfileFile string `long:"profile" env:"LISTINGD_PROFILE" default:"listingd.yml" description:"Deployment profile, relative to the site dir"`
	JournalFile string `long:"journal" env:"LISTINGD_JOURNAL" default:"listingd.db" description:"Processing journal database, relative to the site dir"`

	// Application configuration
	PollInterval int    `long:"poll-interval" env:"LISTINGD_POLL_INTERVAL" default:"900" description:"Inbox poll interval in seconds"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g. UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Account:      raw.Account,
		GogBin:       raw.GogBin,
		SiteDir:      raw.SiteDir,
		StoreFile:    raw.StoreFile,
		PhotosDir:    raw.PhotosDir,
		ProfileFile:  raw.ProfileFile,
		JournalFile:  raw.JournalFile,
		PollInterval: raw.PollInterval,
		Port:         raw.Port,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
