// Package catalog reads venue catalogs from TOML and loads them into storage.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/juanibiapina/venue/internal/storage"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample.toml
var sampleCatalog []byte

// File is the parsed catalog.
type File struct {
	Venues       []VenueEntry  `toml:"venue"`
	Testimonials []ReviewEntry `toml:"testimonial"`
}

// VenueEntry is one [[venue]] table.
type VenueEntry struct {
	ID          string        `toml:"id"`
	Kind        string        `toml:"kind"`
	Name        string        `toml:"name"`
	City        string        `toml:"city"`
	Capacity    int           `toml:"capacity"`
	PriceFrom   int           `toml:"price_from"`
	Rating      float64       `toml:"rating"`
	Description string        `toml:"description"`
	Reviews     []ReviewEntry `toml:"review"`
}

// ReviewEntry is a [[venue.review]] or [[testimonial]] table.
type ReviewEntry struct {
	ID     string    `toml:"id"`
	Author string    `toml:"author"`
	Rating int       `toml:"rating"`
	Body   string    `toml:"body"`
	Date   time.Time `toml:"date"`
}

// Read parses the catalog at path.
// Returns nil, nil if the file doesn't exist.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return Parse(data)
}

// Sample returns the catalog shipped with the binary.
func Sample() (*File, error) {
	return Parse(sampleCatalog)
}

// Parse decodes and validates a catalog.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	seen := make(map[string]bool)
	for i, v := range f.Venues {
		if v.ID == "" || v.Name == "" {
			return fmt.Errorf("venue #%d: id and name are required", i+1)
		}
		if seen[v.ID] {
			return fmt.Errorf("venue %s: duplicate id", v.ID)
		}
		seen[v.ID] = true
		if _, err := storage.ParseKind(v.Kind); err != nil {
			return fmt.Errorf("venue %s: %w", v.ID, err)
		}
		for _, r := range v.Reviews {
			if err := r.validate(); err != nil {
				return fmt.Errorf("venue %s: %w", v.ID, err)
			}
		}
	}
	for _, r := range f.Testimonials {
		if err := r.validate(); err != nil {
			return fmt.Errorf("testimonial: %w", err)
		}
	}
	return nil
}

func (r ReviewEntry) validate() error {
	if r.ID == "" {
		return fmt.Errorf("review without id")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("review %s: rating must be 1-5, got %d", r.ID, r.Rating)
	}
	return nil
}

// Writer is the subset of storage the import needs.
type Writer interface {
	UpsertVenue(ctx context.Context, v *storage.Venue) error
	InsertReview(ctx context.Context, r *storage.Review) error
}

// Stats reports what an import wrote.
type Stats struct {
	Venues       int
	Reviews      int
	Testimonials int
}

// Import writes every venue and review in f. Re-importing is idempotent:
// venues are upserted and reviews with known IDs are skipped.
func Import(ctx context.Context, w Writer, f *File) (Stats, error) {
	var stats Stats
	for _, entry := range f.Venues {
		kind, _ := storage.ParseKind(entry.Kind)
		v := &storage.Venue{
			ID:          entry.ID,
			Kind:        kind,
			Name:        entry.Name,
			City:        entry.City,
			Capacity:    entry.Capacity,
			PriceFrom:   entry.PriceFrom,
			Rating:      entry.Rating,
			Description: entry.Description,
		}
		if err := w.UpsertVenue(ctx, v); err != nil {
			return stats, err
		}
		stats.Venues++

		for _, r := range entry.Reviews {
			if err := w.InsertReview(ctx, r.toReview(entry.ID)); err != nil {
				return stats, err
			}
			stats.Reviews++
		}
	}
	for _, r := range f.Testimonials {
		if err := w.InsertReview(ctx, r.toReview("")); err != nil {
			return stats, err
		}
		stats.Testimonials++
	}
	return stats, nil
}

func (r ReviewEntry) toReview(venueID string) *storage.Review {
	return &storage.Review{
		ID:        r.ID,
		VenueID:   venueID,
		Author:    r.Author,
		Rating:    r.Rating,
		Body:      r.Body,
		CreatedAt: r.Date,
	}
}
