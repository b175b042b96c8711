package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juanibiapina/venue/internal/storage"
)

type memoryWriter struct {
	venues  map[string]storage.Venue
	reviews map[string]storage.Review
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{venues: map[string]storage.Venue{}, reviews: map[string]storage.Review{}}
}

func (m *memoryWriter) UpsertVenue(ctx context.Context, v *storage.Venue) error {
	m.venues[v.ID] = *v
	return nil
}

func (m *memoryWriter) InsertReview(ctx context.Context, r *storage.Review) error {
	if _, ok := m.reviews[r.ID]; !ok {
		m.reviews[r.ID] = *r
	}
	return nil
}

func TestSample(t *testing.T) {
	f, err := Sample()
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	w := newMemoryWriter()
	stats, err := Import(context.Background(), w, f)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if stats.Venues != len(f.Venues) || stats.Testimonials != len(f.Testimonials) {
		t.Errorf("stats = %+v", stats)
	}

	grand := w.venues["grand-hall"]
	if grand.Kind != storage.KindEventCenter {
		t.Errorf("grand-hall kind = %q", grand.Kind)
	}
	var grandReviews int
	for _, r := range w.reviews {
		if r.VenueID == "grand-hall" {
			grandReviews++
		}
		if r.CreatedAt.IsZero() {
			t.Errorf("review %s has no date", r.ID)
		}
	}
	if grandReviews != 7 {
		t.Errorf("grand-hall has %d reviews, want 7", grandReviews)
	}
	if w.reviews["t-1"].VenueID != "" {
		t.Error("testimonial stored with a venue")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "bad toml", data: "[[venue]\n", wantErr: "parse catalog"},
		{name: "missing name", data: "[[venue]]\nid = \"a\"\nkind = \"caterer\"\n", wantErr: "required"},
		{name: "bad kind", data: "[[venue]]\nid = \"a\"\nname = \"A\"\nkind = \"boat\"\n", wantErr: "unknown venue kind"},
		{
			name:    "duplicate id",
			data:    "[[venue]]\nid = \"a\"\nname = \"A\"\nkind = \"caterer\"\n[[venue]]\nid = \"a\"\nname = \"B\"\nkind = \"caterer\"\n",
			wantErr: "duplicate",
		},
		{name: "bad rating", data: "[[testimonial]]\nid = \"t\"\nrating = 9\n", wantErr: "rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRead(t *testing.T) {
	f, err := Read(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil || f != nil {
		t.Errorf("Read(missing) = %v, %v; want nil, nil", f, err)
	}

	path := filepath.Join(t.TempDir(), "catalog.toml")
	os.WriteFile(path, []byte("[[venue]]\nid = \"a\"\nname = \"A\"\nkind = \"hall\"\n"), 0o644)
	f, err = Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(f.Venues) != 1 {
		t.Errorf("Read() venues = %d, want 1", len(f.Venues))
	}
}
