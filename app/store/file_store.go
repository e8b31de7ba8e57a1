package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/whitakerexclusives/listingd/app/listing"
)

var _ ListingStore = (*FileStore)(nil)

// FileStore keeps the collection in a single human-readable JSON file
// (listings.json), the exact document the static site fetches. Insertion
// order is preserved across load/save.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the collection. A missing file is an empty collection, not
// an error.
func (s *FileStore) Load() ([]listing.Listing, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []listing.Listing{}, nil
		}
		return nil, fmt.Errorf("failed to read listings file: %w", err)
	}

	var listings []listing.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to parse listings file: %w", err)
	}
	return listings, nil
}

// Save rewrites the file in full.
func (s *FileStore) Save(listings []listing.Listing) error {
	if listings == nil {
		listings = []listing.Listing{}
	}

	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode listings: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write listings file: %w", err)
	}
	return nil
}
