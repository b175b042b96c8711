package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/carousel"
	"github.com/juanibiapina/venue/internal/catalog"
	"github.com/juanibiapina/venue/internal/listing"
	"github.com/juanibiapina/venue/internal/session"
	"github.com/juanibiapina/venue/internal/storage"
)

type fakeBackend struct {
	lastQuery listing.Query
	user      string
	reviews   []storage.Review
}

func (f *fakeBackend) QueryVenues(ctx context.Context, q listing.Query) listing.Result {
	f.lastQuery = q
	return listing.Result{
		Query: q,
		Data:  []storage.Venue{{ID: "grand-hall", Name: "Grand Hall", Kind: q.Kind}},
		Total: 17,
	}
}

func (f *fakeBackend) Venue(ctx context.Context, id string) (*storage.Venue, error) {
	if id != "grand-hall" {
		return nil, storage.ErrNotFound
	}
	return &storage.Venue{ID: id, Name: "Grand Hall", Description: "Big."}, nil
}

func (f *fakeBackend) ReviewPage(ctx context.Context, venueID string, page int) (carousel.Pager[storage.Review], error) {
	p := carousel.NewPager(f.reviews, 3)
	if !carousel.InRange(page, p.TotalPages()) {
		return p, app.ErrNoSuchPage
	}
	return p.Dispatch(carousel.JumpEvent(page)), nil
}

func (f *fakeBackend) RequestLoginCode(ctx context.Context, email string) (string, error) {
	return "1234", nil
}

func (f *fakeBackend) Login(ctx context.Context, email, code string, remember bool, fallback string) (string, error) {
	if code != "1234" {
		return "", session.ErrInvalidCode
	}
	f.user = email
	return fallback, nil
}

func (f *fakeBackend) Logout() error {
	f.user = ""
	return nil
}

func (f *fakeBackend) CurrentUser() (string, error) {
	if f.user == "" {
		return "", session.ErrNotLoggedIn
	}
	return f.user, nil
}

func (f *fakeBackend) CreateBooking(ctx context.Context, req app.BookingRequest) (*storage.Booking, string, error) {
	if f.user == "" {
		return nil, "", session.ErrNotLoggedIn
	}
	return &storage.Booking{ID: "bk1", VenueID: req.VenueID, Guests: req.Guests, Status: storage.BookingPending}, "9999", nil
}

func (f *fakeBackend) ConfirmBooking(ctx context.Context, bookingID, code string) error {
	return nil
}

func (f *fakeBackend) Bookings(ctx context.Context) ([]storage.Booking, error) {
	return nil, nil
}

func (f *fakeBackend) Seed(ctx context.Context, path string) (catalog.Stats, error) {
	return catalog.Stats{Venues: 7}, nil
}

type toolResult struct {
	Result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	} `json:"result"`
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) (string, bool) {
	t.Helper()
	req, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  map[string]any{"name": name, "arguments": args},
	})
	if err != nil {
		t.Fatal(err)
	}
	resp := s.mcpServer.HandleMessage(context.Background(), req)
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	var out toolResult
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	if len(out.Result.Content) == 0 {
		t.Fatalf("no content in %s", raw)
	}
	return out.Result.Content[0].Text, out.Result.IsError
}

func TestListToolNames(t *testing.T) {
	names := NewServer("test", nil).ListToolNames()
	if len(names) != 11 {
		t.Fatalf("got %d tools: %v", len(names), names)
	}
	for _, n := range names {
		if !strings.HasPrefix(n, "venue_") {
			t.Errorf("tool %q lacks the venue_ prefix", n)
		}
	}
}

func TestVenuesTool_Pages(t *testing.T) {
	f := &fakeBackend{}
	s := NewServer("test", f)

	text, isErr := callTool(t, s, "venue_venues", map[string]any{"page": 2, "limit": 5, "max_price": 50000})
	if isErr {
		t.Fatalf("error result: %s", text)
	}
	if f.lastQuery.Offset != 5 || f.lastQuery.Limit != 5 || f.lastQuery.MaxPrice != 50000 {
		t.Errorf("query = %+v", f.lastQuery)
	}
	if f.lastQuery.Kind != storage.KindEventCenter {
		t.Errorf("kind = %q", f.lastQuery.Kind)
	}
	if !strings.Contains(text, `"total_pages":4`) {
		t.Errorf("result = %s", text)
	}

	if _, isErr := callTool(t, s, "venue_catering", map[string]any{"page": 0}); !isErr {
		t.Error("page 0 should be rejected")
	}
}

func TestReviewsTool(t *testing.T) {
	f := &fakeBackend{}
	for i := 0; i < 7; i++ {
		f.reviews = append(f.reviews, storage.Review{Author: fmt.Sprintf("guest %d", i)})
	}
	s := NewServer("test", f)

	text, isErr := callTool(t, s, "venue_reviews", map[string]any{"venue_id": "grand-hall", "page": 3})
	if isErr {
		t.Fatalf("error result: %s", text)
	}
	if !strings.Contains(text, "guest 6") || strings.Contains(text, "guest 5") {
		t.Errorf("page 3 = %s", text)
	}

	if _, isErr := callTool(t, s, "venue_reviews", map[string]any{"venue_id": "grand-hall", "page": 4}); !isErr {
		t.Error("page past the end should be an error result")
	}
}

func TestLoginThenBook(t *testing.T) {
	f := &fakeBackend{}
	s := NewServer("test", f)

	if _, isErr := callTool(t, s, "venue_book", map[string]any{"venue_id": "grand-hall", "date": "2030-01-01", "guests": 10}); !isErr {
		t.Fatal("booking without login should fail")
	}

	text, _ := callTool(t, s, "venue_login", map[string]any{"email": "ada@example.com"})
	if !strings.Contains(text, `"code_sent":true`) {
		t.Errorf("first login call = %s", text)
	}
	if _, isErr := callTool(t, s, "venue_login", map[string]any{"email": "ada@example.com", "code": "0000"}); !isErr {
		t.Error("wrong code accepted")
	}
	if _, isErr := callTool(t, s, "venue_login", map[string]any{"email": "ada@example.com", "code": "1234"}); isErr {
		t.Fatal("login failed")
	}

	text, isErr := callTool(t, s, "venue_book", map[string]any{"venue_id": "grand-hall", "date": "2030-01-01", "guests": 10})
	if isErr {
		t.Fatalf("book: %s", text)
	}
	if !strings.Contains(text, `"booking_id":"bk1"`) || strings.Contains(text, "9999") {
		t.Errorf("book result = %s", text)
	}
}
