package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind separates event centers from caterers.
type Kind string

const (
	KindEventCenter Kind = "event_center"
	KindCaterer     Kind = "caterer"
)

// ParseKind accepts the stored form and a few friendly aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "event_center", "event-center", "center", "hall":
		return KindEventCenter, nil
	case "caterer", "catering":
		return KindCaterer, nil
	default:
		return "", fmt.Errorf("unknown venue kind %q", s)
	}
}

// Venue is a bookable event center or caterer.
type Venue struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Capacity    int       `json:"capacity"`
	PriceFrom   int       `json:"price_from"`
	Rating      float64   `json:"rating"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Review is a rating left for a venue. Testimonials have an empty VenueID.
type Review struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venue_id,omitempty"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// VenueFilter narrows ListVenues. Zero values mean "no constraint",
// except that PriceBounded applies both price bounds as given, zero included.
type VenueFilter struct {
	Kind         Kind
	MinPrice     int
	MaxPrice     int
	PriceBounded bool
	Limit        int
	Offset       int
}

func (f VenueFilter) where() (string, []any) {
	var clauses []string
	var args []any
	if f.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.PriceBounded || f.MinPrice > 0 {
		clauses = append(clauses, "price_from >= ?")
		args = append(args, f.MinPrice)
	}
	if f.PriceBounded || f.MaxPrice > 0 {
		clauses = append(clauses, "price_from <= ?")
		args = append(args, f.MaxPrice)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

const venueColumns = "id, kind, name, city, capacity, price_from, rating, description, created_at"

// UpsertVenue inserts a venue or replaces an existing one with the same ID.
func (s *Store) UpsertVenue(ctx context.Context, v *Venue) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO venues (`+venueColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			name = excluded.name,
			city = excluded.city,
			capacity = excluded.capacity,
			price_from = excluded.price_from,
			rating = excluded.rating,
			description = excluded.description
	`, v.ID, string(v.Kind), v.Name, v.City, v.Capacity, v.PriceFrom, v.Rating, v.Description,
		v.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert venue %s: %w", v.ID, err)
	}
	return nil
}

// ListVenues returns venues ordered by rating (best first), then name.
func (s *Store) ListVenues(ctx context.Context, f VenueFilter) ([]Venue, error) {
	where, args := f.where()
	query := "SELECT " + venueColumns + " FROM venues" + where + " ORDER BY rating DESC, name ASC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	var venues []Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// CountVenues returns how many venues match the filter, ignoring Limit/Offset.
func (s *Store) CountVenues(ctx context.Context, f VenueFilter) (int, error) {
	where, args := f.where()
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM venues"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}
	return n, nil
}

// GetVenue returns a venue by ID or ErrNotFound.
func (s *Store) GetVenue(ctx context.Context, id string) (*Venue, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = ?", id)
	v, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("venue %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVenue(row scanner) (Venue, error) {
	var (
		v            Venue
		kind         string
		createdAtStr string
	)
	if err := row.Scan(&v.ID, &kind, &v.Name, &v.City, &v.Capacity, &v.PriceFrom, &v.Rating, &v.Description, &createdAtStr); err != nil {
		return Venue{}, err
	}
	v.Kind = Kind(kind)
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return Venue{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	v.CreatedAt = createdAt
	return v, nil
}

// InsertReview stores a review. An empty VenueID stores a site testimonial.
func (s *Store) InsertReview(ctx context.Context, r *Review) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, venue_id, author, rating, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, r.ID, nullableString(r.VenueID), r.Author, r.Rating, r.Body, r.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert review %s: %w", r.ID, err)
	}
	return nil
}

// ListReviews returns a venue's reviews, newest first.
func (s *Store) ListReviews(ctx context.Context, venueID string) ([]Review, error) {
	return s.queryReviews(ctx, "WHERE venue_id = ?", venueID)
}

// ListTestimonials returns site-wide testimonials, newest first.
func (s *Store) ListTestimonials(ctx context.Context) ([]Review, error) {
	return s.queryReviews(ctx, "WHERE venue_id IS NULL")
}

func (s *Store) queryReviews(ctx context.Context, where string, args ...any) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, venue_id, author, rating, body, created_at
		FROM reviews `+where+`
		ORDER BY created_at DESC, id ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var (
			r            Review
			venueID      sql.NullString
			createdAtStr string
		)
		if err := rows.Scan(&r.ID, &venueID, &r.Author, &r.Rating, &r.Body, &createdAtStr); err != nil {
			return nil, err
		}
		r.VenueID = venueID.String
		createdAt, err := time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		r.CreatedAt = createdAt
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
