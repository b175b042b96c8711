package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// BookingStatus is the lifecycle of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
)

// Booking reserves a venue for an event date.
type Booking struct {
	ID          string        `json:"id"`
	VenueID     string        `json:"venue_id"`
	Email       string        `json:"email"`
	EventDate   time.Time     `json:"event_date"`
	Guests      int           `json:"guests"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`
}

const dateLayout = "2006-01-02"

// InsertBooking stores a new booking.
func (s *Store) InsertBooking(ctx context.Context, b *Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (id, venue_id, email, event_date, guests, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.VenueID, b.Email, b.EventDate.Format(dateLayout), b.Guests, string(b.Status),
		b.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// ConfirmBooking marks a pending booking as confirmed.
func (s *Store) ConfirmBooking(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE bookings SET status = ?, confirmed_at = ?
		WHERE id = ? AND status = ?
	`, string(BookingConfirmed), at.UTC().Format(time.RFC3339), id, string(BookingPending))
	if err != nil {
		return fmt.Errorf("failed to confirm booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("pending booking %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetBooking returns a booking by ID or ErrNotFound.
func (s *Store) GetBooking(ctx context.Context, id string) (*Booking, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, venue_id, email, event_date, guests, status, created_at, confirmed_at
		FROM bookings WHERE id = ?
	`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBookings returns the bookings made by email, newest first.
func (s *Store) ListBookings(ctx context.Context, email string) ([]Booking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, venue_id, email, event_date, guests, status, created_at, confirmed_at
		FROM bookings WHERE email = ?
		ORDER BY created_at DESC, id DESC
	`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row scanner) (Booking, error) {
	var (
		b              Booking
		status         string
		eventDateStr   string
		createdAtStr   string
		confirmedAtStr sql.NullString
	)
	if err := row.Scan(&b.ID, &b.VenueID, &b.Email, &eventDateStr, &b.Guests, &status, &createdAtStr, &confirmedAtStr); err != nil {
		return Booking{}, err
	}
	b.Status = BookingStatus(status)

	var err error
	if b.EventDate, err = time.Parse(dateLayout, eventDateStr); err != nil {
		return Booking{}, fmt.Errorf("failed to parse event_date: %w", err)
	}
	if b.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return Booking{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if confirmedAtStr.Valid {
		confirmedAt, err := time.Parse(time.RFC3339, confirmedAtStr.String)
		if err != nil {
			return Booking{}, fmt.Errorf("failed to parse confirmed_at: %w", err)
		}
		b.ConfirmedAt = &confirmedAt
	}
	return b, nil
}
