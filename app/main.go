package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/whitakerexclusives/listingd/app/api"
	"github.com/whitakerexclusives/listingd/app/cfg"
	"github.com/whitakerexclusives/listingd/app/engine"
	"github.com/whitakerexclusives/listingd/app/journal"
	"github.com/whitakerexclusives/listingd/app/listing"
	"github.com/whitakerexclusives/listingd/app/mail"
	"github.com/whitakerexclusives/listingd/app/photos"
	"github.com/whitakerexclusives/listingd/app/profile"
	"github.com/whitakerexclusives/listingd/app/publish"
	"github.com/whitakerexclusives/listingd/app/store"
	"github.com/whitakerexclusives/listingd/app/tasks"
)

func main() {
	c, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if c == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if c.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting listingd", "version", c.Version, "site_dir", c.SiteDir)

	prof, err := profile.Load(c.ProfilePath())
	if err != nil {
		slog.Error("Failed to load deployment profile", "path", c.ProfilePath(), "error", err)
		os.Exit(1)
	}

	jr, err := journal.Open(c.JournalPath())
	if err != nil {
		slog.Error("Failed to open processing journal", "path", c.JournalPath(), "error", err)
		os.Exit(1)
	}
	defer jr.Close()

	listingStore := store.NewFileStore(c.StorePath())
	gateway := mail.NewGogGateway(c.Account, c.GogBin)

	var resolver photos.Resolver
	var photoURLPrefix string
	switch prof.Photos.Mode {
	case profile.ModeLinks:
		resolver = photos.NewLinkResolver()
		photoURLPrefix = prof.Photos.URLPrefix
	default:
		resolver = photos.NewAttachmentResolver(c.Account, c.GogBin, c.PhotosPath(), c.PhotosDir, prof.Photos.Extensions)
	}

	extractor := listing.NewExtractor(listing.Defaults{
		City:  prof.Defaults.City,
		State: prof.Defaults.State,
		Agent: prof.Defaults.Agent,
	}, photoURLPrefix)

	publisher := publish.NewGitPublisher(c.SiteDir)

	handler := engine.New(listingStore, gateway, resolver, publisher, extractor,
		prof.Site, []string{c.StoreFile, c.PhotosDir})

	slog.Info("Starting inbox scheduler", "account", c.Account, "poll_interval", c.PollInterval)
	scheduler := tasks.NewScheduler(listingStore, gateway, handler, jr)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(listingStore, jr, c.Version)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("listingd started successfully")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
