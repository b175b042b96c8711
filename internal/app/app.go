// Package app wires configuration, storage, the listing client and the
// session together behind the operations the CLI, TUI and MCP server share.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/juanibiapina/venue/internal/carousel"
	"github.com/juanibiapina/venue/internal/catalog"
	"github.com/juanibiapina/venue/internal/config"
	"github.com/juanibiapina/venue/internal/listing"
	"github.com/juanibiapina/venue/internal/session"
	"github.com/juanibiapina/venue/internal/storage"
	"github.com/rs/xid"
)

var (
	ErrInvalidDate   = errors.New("event date must be YYYY-MM-DD and not in the past")
	ErrInvalidGuests = errors.New("guests must be a positive number")
	ErrOverCapacity  = errors.New("guest count exceeds venue capacity")
	ErrNotYours      = errors.New("booking belongs to another user")
	ErrNoSuchPage    = errors.New("no such page")
)

// App is the assembled application.
type App struct {
	Config  *config.Config
	Store   *storage.Store
	Listing *listing.Client
	Auth    *session.Auth
	Codes   *session.Codes

	now func() time.Time
}

// Open opens storage at cfg.DatabasePath and assembles the app.
func Open(cfg *config.Config) (*App, error) {
	if _, err := config.EnsureStateDir(); err != nil {
		return nil, err
	}
	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	a, err := New(cfg, store)
	if err != nil {
		store.Close()
		return nil, err
	}
	return a, nil
}

// New assembles the app over an already open store.
func New(cfg *config.Config, store *storage.Store) (*App, error) {
	persistent := store.KV()

	key := []byte(cfg.SigningKey)
	if len(key) == 0 {
		var err error
		if key, err = session.SigningKey(persistent); err != nil {
			return nil, err
		}
	}
	tokens, err := session.NewTokens(key, 0)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Store:   store,
		Listing: listing.NewClient(store),
		Auth:    session.NewAuth(persistent, session.NewMemoryStore(), tokens),
		Codes:   session.NewCodes(store, session.LogMailer{Logger: Logger}, cfg.CodeLength),
		now:     time.Now,
	}
	// tokens are issued with a.now, so verify against the same clock
	a.Auth.Now = func() time.Time { return a.now() }
	return a, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.Store.Close()
}

// QueryVenues runs a listing query.
func (a *App) QueryVenues(ctx context.Context, q listing.Query) listing.Result {
	r := a.Listing.Query(ctx, q)
	if r.Err != nil {
		Logger.Error("listing query failed", "query", q, "error", r.Err)
	}
	return r
}

// Venue returns a venue by ID.
func (a *App) Venue(ctx context.Context, id string) (*storage.Venue, error) {
	return a.Store.GetVenue(ctx, id)
}

// Reviews returns the reviews of a venue, newest first.
func (a *App) Reviews(ctx context.Context, venueID string) ([]storage.Review, error) {
	return a.Store.ListReviews(ctx, venueID)
}

// ReviewPage returns the reviews of venueID windowed to page (0-based),
// paged the same way as the venue screen. A venue without reviews has no
// pages, and page 0 of it is empty rather than an error.
func (a *App) ReviewPage(ctx context.Context, venueID string, page int) (carousel.Pager[storage.Review], error) {
	if _, err := a.Store.GetVenue(ctx, venueID); err != nil {
		return carousel.Pager[storage.Review]{}, err
	}
	reviews, err := a.Store.ListReviews(ctx, venueID)
	if err != nil {
		return carousel.Pager[storage.Review]{}, err
	}
	p := carousel.NewPager(reviews, a.Config.ReviewPageSize)
	if p.TotalPages() == 0 && page == 0 {
		return p, nil
	}
	if !carousel.InRange(page, p.TotalPages()) {
		return p, fmt.Errorf("%w: page %d of %d", ErrNoSuchPage, page+1, p.TotalPages())
	}
	return p.Dispatch(carousel.JumpEvent(page)), nil
}

// Testimonials returns site-wide testimonials.
func (a *App) Testimonials(ctx context.Context) ([]storage.Review, error) {
	return a.Store.ListTestimonials(ctx)
}

// Seed imports the built-in catalog, or the TOML catalog at path when set.
func (a *App) Seed(ctx context.Context, path string) (catalog.Stats, error) {
	var (
		f   *catalog.File
		err error
	)
	if path == "" {
		f, err = catalog.Sample()
	} else {
		f, err = catalog.Read(path)
		if err == nil && f == nil {
			err = fmt.Errorf("catalog %s does not exist", path)
		}
	}
	if err != nil {
		return catalog.Stats{}, err
	}
	stats, err := catalog.Import(ctx, a.Store, f)
	if err != nil {
		return stats, err
	}
	Logger.Info("catalog imported", "venues", stats.Venues, "reviews", stats.Reviews, "testimonials", stats.Testimonials)
	return stats, nil
}

// RequestLoginCode sends a login code to email and returns it.
func (a *App) RequestLoginCode(ctx context.Context, email string) (string, error) {
	return a.Codes.Request(ctx, email, session.PurposeLogin)
}

// Login verifies the code and stores a session token. It returns the path a
// previously denied action recorded, or fallback.
func (a *App) Login(ctx context.Context, email, code string, remember bool, fallback string) (string, error) {
	email, err := session.NormalizeEmail(email)
	if err != nil {
		return "", err
	}
	if err := a.Codes.Verify(ctx, email, session.PurposeLogin, code); err != nil {
		return "", err
	}
	token, err := a.Auth.Tokens.Issue(email, a.now())
	if err != nil {
		return "", err
	}
	if err := a.Auth.Login(token, remember); err != nil {
		return "", err
	}
	Logger.Info("logged in", "email", email, "remember", remember)
	return a.Auth.TakeRedirect(fallback), nil
}

// Logout clears the session.
func (a *App) Logout() error {
	return a.Auth.Logout()
}

// CurrentUser returns the logged-in email or session.ErrNotLoggedIn.
func (a *App) CurrentUser() (string, error) {
	return a.Auth.CurrentUser()
}

// Require guards path; see session.Auth.Require.
func (a *App) Require(path string) string {
	return a.Auth.Require(path)
}

// BookingRequest describes a booking to create.
type BookingRequest struct {
	VenueID   string
	EventDate string
	Guests    int
}

// CreateBooking stores a pending booking for the current user and sends the
// confirmation code. The booking is confirmed with ConfirmBooking.
func (a *App) CreateBooking(ctx context.Context, req BookingRequest) (*storage.Booking, string, error) {
	email, err := a.CurrentUser()
	if err != nil {
		return nil, "", err
	}
	venue, err := a.Store.GetVenue(ctx, req.VenueID)
	if err != nil {
		return nil, "", err
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.EventDate))
	if err != nil {
		return nil, "", ErrInvalidDate
	}
	today := a.now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, "", ErrInvalidDate
	}
	if req.Guests <= 0 {
		return nil, "", ErrInvalidGuests
	}
	if venue.Capacity > 0 && req.Guests > venue.Capacity {
		return nil, "", fmt.Errorf("%w: %s holds %d", ErrOverCapacity, venue.Name, venue.Capacity)
	}

	b := &storage.Booking{
		ID:        xid.New().String(),
		VenueID:   venue.ID,
		Email:     email,
		EventDate: date,
		Guests:    req.Guests,
		Status:    storage.BookingPending,
	}
	if err := a.Store.InsertBooking(ctx, b); err != nil {
		return nil, "", err
	}
	code, err := a.Codes.Request(ctx, email, bookingPurpose(b.ID))
	if err != nil {
		return nil, "", err
	}
	Logger.Info("booking created", "booking", b.ID, "venue", venue.ID, "guests", b.Guests)
	return b, code, nil
}

// ResendBookingCode issues a new confirmation code for a pending booking.
func (a *App) ResendBookingCode(ctx context.Context, bookingID string) (string, error) {
	email, err := a.ownBooking(ctx, bookingID)
	if err != nil {
		return "", err
	}
	return a.Codes.Request(ctx, email, bookingPurpose(bookingID))
}

// ConfirmBooking checks the confirmation code and confirms the booking.
func (a *App) ConfirmBooking(ctx context.Context, bookingID, code string) error {
	email, err := a.ownBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := a.Codes.Verify(ctx, email, bookingPurpose(bookingID), code); err != nil {
		return err
	}
	if err := a.Store.ConfirmBooking(ctx, bookingID, a.now()); err != nil {
		return err
	}
	Logger.Info("booking confirmed", "booking", bookingID)
	return nil
}

// Bookings lists the current user's bookings.
func (a *App) Bookings(ctx context.Context) ([]storage.Booking, error) {
	email, err := a.CurrentUser()
	if err != nil {
		return nil, err
	}
	return a.Store.ListBookings(ctx, email)
}

func (a *App) ownBooking(ctx context.Context, bookingID string) (string, error) {
	email, err := a.CurrentUser()
	if err != nil {
		return "", err
	}
	b, err := a.Store.GetBooking(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if b.Email != email {
		return "", ErrNotYours
	}
	return email, nil
}

func bookingPurpose(bookingID string) string {
	return session.PurposeBooking + ":" + bookingID
}
