package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/whitakerexclusives/listingd/app/journal"
	"github.com/whitakerexclusives/listingd/app/listing"
	"github.com/whitakerexclusives/listingd/app/store"
)

func NewHandler(st store.ListingStore, recorder journal.Recorder, version string) *Handler {
	return &Handler{
		store:    st,
		recorder: recorder,
		version:  version,
	}
}

// GetListings serves the current listing collection, mirroring the file
// the publisher deploys.
func (h *Handler) GetListings(c *gin.Context) {
	listings, err := h.store.Load()
	if err != nil {
		slog.Error("Failed to load listings", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("X-Listing-Count", strconv.Itoa(len(listings)))
	c.JSON(http.StatusOK, listings)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if listings, err := h.store.Load(); err == nil {
		health["listings"] = len(listings)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"version": h.version,
	}

	listings, err := h.store.Load()
	if err != nil {
		slog.Error("Failed to load listings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listings"})
		return
	}

	activeCount := 0
	photoCount := 0
	for _, l := range listings {
		if l.Status == listing.StatusActive {
			activeCount++
		}
		photoCount += len(l.Photos)
	}

	stats["listings"] = map[string]interface{}{
		"total":  len(listings),
		"active": activeCount,
		"photos": photoCount,
	}

	if counts, err := h.recorder.OutcomeCounts(); err == nil {
		processed := 0
		for _, count := range counts {
			processed += count
		}
		stats["processed"] = map[string]interface{}{
			"total":    processed,
			"outcomes": counts,
		}
	} else {
		slog.Error("Failed to aggregate journal", "error", err)
	}

	c.JSON(http.StatusOK, stats)
}
