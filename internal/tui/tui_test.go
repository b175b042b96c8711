package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/listing"
	"github.com/juanibiapina/venue/internal/nav"
	"github.com/juanibiapina/venue/internal/pricerange"
	"github.com/juanibiapina/venue/internal/session"
	"github.com/juanibiapina/venue/internal/storage"
)

type fakeBackend struct {
	venues   []storage.Venue
	reviews  []storage.Review
	queryErr error
	queries  []listing.Query

	user     string
	redirect string
	code     string
	loginErr error

	bookings  []storage.Booking
	confirmed []string
}

func (f *fakeBackend) QueryVenues(ctx context.Context, q listing.Query) listing.Result {
	f.queries = append(f.queries, q)
	if f.queryErr != nil {
		return listing.Result{Query: q, Err: f.queryErr}
	}
	var data []storage.Venue
	for _, v := range f.venues {
		if q.Kind == "" || v.Kind == q.Kind {
			data = append(data, v)
		}
	}
	total := len(data)
	if q.Offset < len(data) {
		data = data[q.Offset:]
	} else {
		data = nil
	}
	if q.Limit > 0 && len(data) > q.Limit {
		data = data[:q.Limit]
	}
	return listing.Result{Query: q, Data: data, Total: total}
}

func (f *fakeBackend) Venue(ctx context.Context, id string) (*storage.Venue, error) {
	for _, v := range f.venues {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeBackend) Reviews(ctx context.Context, venueID string) ([]storage.Review, error) {
	return f.reviews, nil
}

func (f *fakeBackend) Testimonials(ctx context.Context) ([]storage.Review, error) {
	return f.reviews, nil
}

func (f *fakeBackend) RequestLoginCode(ctx context.Context, email string) (string, error) {
	f.code = "1234"
	return f.code, nil
}

func (f *fakeBackend) Login(ctx context.Context, email, code string, remember bool, fallback string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	if code != f.code {
		return "", session.ErrInvalidCode
	}
	f.user = email
	next := fallback
	if f.redirect != "" {
		next, f.redirect = f.redirect, ""
	}
	return next, nil
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

func (f *fakeBackend) Require(path string) string {
	if f.user != "" {
		return ""
	}
	f.redirect = path
	return session.LoginPath
}

func (f *fakeBackend) CreateBooking(ctx context.Context, req app.BookingRequest) (*storage.Booking, string, error) {
	if f.user == "" {
		return nil, "", session.ErrNotLoggedIn
	}
	b := storage.Booking{ID: "bk1", VenueID: req.VenueID, Email: f.user, Guests: req.Guests, Status: storage.BookingPending}
	f.bookings = append(f.bookings, b)
	f.code = "4321"
	return &b, f.code, nil
}

func (f *fakeBackend) ResendBookingCode(ctx context.Context, bookingID string) (string, error) {
	return f.code, nil
}

func (f *fakeBackend) ConfirmBooking(ctx context.Context, bookingID, code string) error {
	if code != f.code {
		return session.ErrInvalidCode
	}
	f.confirmed = append(f.confirmed, bookingID)
	return nil
}

func (f *fakeBackend) Bookings(ctx context.Context) ([]storage.Booking, error) {
	return f.bookings, nil
}

func sampleBackend() *fakeBackend {
	f := &fakeBackend{}
	for i := 0; i < 11; i++ {
		f.venues = append(f.venues, storage.Venue{
			ID:        fmt.Sprintf("hall-%d", i),
			Kind:      storage.KindEventCenter,
			Name:      fmt.Sprintf("Hall %d", i),
			City:      "Lagos",
			Capacity:  100 * (i + 1),
			PriceFrom: 10000 * (i + 1),
		})
	}
	for i := 0; i < 7; i++ {
		f.reviews = append(f.reviews, storage.Review{
			ID:     fmt.Sprintf("r%d", i),
			Author: fmt.Sprintf("Guest %d", i),
			Rating: 5,
			Body:   fmt.Sprintf("review body %d", i),
		})
	}
	return f
}

func testOptions() Options {
	return Options{
		ReviewPageSize: 3,
		ListPageSize:   8,
		SkeletonRows:   3,
		CodeLength:     4,
		Price:          pricerange.New(0, 100000, 20000, 80000),
		Remember:       true,
	}
}

// runCmd executes cmd and any batch it expands to, skipping spinner ticks.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	case nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// drive feeds msg to m and then every message its commands produce.
func drive(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next, cmd := m.Update(queue[0])
		m = next.(Model)
		queue = append(queue[1:], runCmd(cmd)...)
	}
	return m
}

func start(t *testing.T, f *fakeBackend, opts Options) Model {
	t.Helper()
	m := New(f, opts)
	m = drive(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	for _, msg := range runCmd(m.Init()) {
		m = drive(t, m, msg)
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = drive(t, m, keyPress(k))
	}
	return m
}

func plainView(m Model) string {
	return ansi.Strip(m.View())
}

func TestHome_SkeletonsWhileLoading(t *testing.T) {
	m := New(sampleBackend(), testOptions())
	m = drive(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if !m.featured.Loading {
		t.Fatal("featured listing should be loading before Init runs")
	}
	content, _ := m.renderHome(60)
	got := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "░") {
			got++
		}
	}
	if got != 3 {
		t.Errorf("got %d skeleton rows, want 3", got)
	}
}

func TestHome_LoadsFeaturedAndTestimonials(t *testing.T) {
	m := start(t, sampleBackend(), testOptions())

	view := plainView(m)
	for _, want := range []string{"Hall 0", "Hall 2", "Guest 0", "‹ ● ○ ○ ›"} {
		if !strings.Contains(view, want) {
			t.Errorf("home view missing %q", want)
		}
	}
	if strings.Contains(view, "Hall 3") {
		t.Error("home should only feature three venues")
	}
}

func TestHome_TestimonialCarouselWraps(t *testing.T) {
	m := start(t, sampleBackend(), testOptions())

	m = press(t, m, "left")
	if m.testimonials.Page() != 2 {
		t.Fatalf("page after prev = %d, want 2", m.testimonials.Page())
	}
	if !strings.Contains(plainView(m), "Guest 6") {
		t.Error("last page should show the seventh testimonial")
	}

	m = press(t, m, "right")
	if m.testimonials.Page() != 0 {
		t.Errorf("page after next = %d, want 0", m.testimonials.Page())
	}

	m = press(t, m, "2")
	if m.testimonials.Page() != 1 {
		t.Errorf("page after jump = %d, want 1", m.testimonials.Page())
	}
}

func controlRow(t *testing.T, m Model) int {
	t.Helper()
	_, controls := m.screenContent(m.contentWidth())
	if controls < 0 {
		t.Fatal("home should render carousel controls")
	}
	return contentTop + controls
}

func click(t *testing.T, m Model, x, y int) Model {
	t.Helper()
	return drive(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func TestHome_ClickOnDots(t *testing.T) {
	m := start(t, sampleBackend(), testOptions())
	y := controlRow(t, m)

	// third dot: columns 6-7 of the control row
	m = click(t, m, contentLeft+6, y)
	if m.testimonials.Page() != 2 {
		t.Fatalf("page after clicking third dot = %d, want 2", m.testimonials.Page())
	}

	// the last page is shorter, so the control row moves up
	lastY := controlRow(t, m)
	if lastY >= y {
		t.Fatalf("control row on the short last page = %d, want above %d", lastY, y)
	}

	nextX := contentLeft + dotsStart + dotWidth*m.testimonials.TotalPages()
	m = click(t, m, nextX, lastY)
	if m.testimonials.Page() != 0 {
		t.Errorf("page after clicking next = %d, want 0 (wrapped)", m.testimonials.Page())
	}

	// clicks elsewhere do nothing
	y = controlRow(t, m)
	m = click(t, m, contentLeft+6, y-1)
	if m.testimonials.Page() != 0 {
		t.Errorf("click off the control row moved the carousel")
	}
}

func TestList_Pages(t *testing.T) {
	f := sampleBackend()
	m := start(t, f, testOptions())
	m = press(t, m, "e")

	if m.route.Screen != nav.ScreenVenues {
		t.Fatalf("screen = %v, want venues", m.route.Screen)
	}
	if m.listPage.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2", m.listPage.TotalPages)
	}
	if got := len(m.list.Result.Data); got != 8 {
		t.Errorf("first page has %d venues, want 8", got)
	}

	m = press(t, m, "right")
	if m.listPage.Page != 1 || len(m.list.Result.Data) != 3 {
		t.Errorf("page %d with %d venues, want page 1 with 3", m.listPage.Page, len(m.list.Result.Data))
	}
	last := f.queries[len(f.queries)-1]
	if last.Offset != 8 || last.Limit != 8 {
		t.Errorf("last query offset %d limit %d, want 8 and 8", last.Offset, last.Limit)
	}

	m = press(t, m, "right")
	if m.listPage.Page != 0 {
		t.Errorf("page after wrapping = %d, want 0", m.listPage.Page)
	}
}

func TestList_ErrorThenManualRetry(t *testing.T) {
	f := sampleBackend()
	f.queryErr = errors.New("disk on fire")
	m := start(t, f, testOptions())
	m = press(t, m, "e")

	if m.list.Phase() != listing.PhaseError {
		t.Fatalf("phase = %v, want error", m.list.Phase())
	}
	if !strings.Contains(plainView(m), "disk on fire") {
		t.Error("error should be shown inline")
	}
	queries := len(f.queries)

	f.queryErr = nil
	m = press(t, m, "r")
	if len(f.queries) != queries+1 {
		t.Errorf("r issued %d queries, want 1", len(f.queries)-queries)
	}
	if m.list.Phase() != listing.PhaseReady {
		t.Errorf("phase after retry = %v, want ready", m.list.Phase())
	}
}

func TestList_EmptyIsAnError(t *testing.T) {
	f := sampleBackend()
	m := start(t, f, testOptions())
	m = press(t, m, "t") // no caterers in the sample

	if m.list.Phase() != listing.PhaseError {
		t.Fatalf("phase = %v, want error", m.list.Phase())
	}
	if !strings.Contains(plainView(m), "No venues found") {
		t.Error("empty listing should show the inline message")
	}
}

func TestList_StaleResultDropped(t *testing.T) {
	m := start(t, sampleBackend(), testOptions())
	m = press(t, m, "e")

	old := m.list.Result.Query
	m, _ = m.queryList()
	stale := listingMsg{target: targetList, result: listing.Result{Query: listing.Query{Kind: old.Kind, Offset: 99}}}
	m = drive(t, m, stale)
	if !m.list.Loading {
		t.Error("a result for another query must not finish the current load")
	}
}

func TestList_PriceFilterApplied(t *testing.T) {
	f := sampleBackend()
	m := start(t, f, testOptions())
	m = press(t, m, "e", "f")
	if m.modal != modalPrice {
		t.Fatalf("modal = %v, want price", m.modal)
	}

	m = press(t, m, "right", "tab", "left", "enter")
	if m.modal != modalNone {
		t.Fatalf("modal still open")
	}
	q := f.queries[len(f.queries)-1]
	if q.MinPrice != 25000 || q.MaxPrice != 75000 || !q.PriceBounded {
		t.Errorf("query price %d-%d bounded=%v, want 25000-75000 bounded", q.MinPrice, q.MaxPrice, q.PriceBounded)
	}
}

func TestList_PriceFilterBothAtMinimum(t *testing.T) {
	f := sampleBackend()
	m := start(t, f, testOptions())
	m = press(t, m, "e", "f", "home", "tab", "home", "enter")

	if !m.priceApplied {
		t.Fatal("a zero-width range at the minimum must still apply")
	}
	q := f.queries[len(f.queries)-1]
	if q.MinPrice != 0 || q.MaxPrice != 0 || !q.PriceBounded {
		t.Errorf("query = %+v, want bounded 0-0", q)
	}
}

func TestList_PriceFilterCancel(t *testing.T) {
	f := sampleBackend()
	m := start(t, f, testOptions())
	m = press(t, m, "e", "f", "right", "esc")

	if m.price.rng.Low != 20000 {
		t.Errorf("cancel changed the filter: low = %d", m.price.rng.Low)
	}
	if m.priceApplied {
		t.Error("cancel applied the filter")
	}
}

func TestList_Search(t *testing.T) {
	f := sampleBackend()
	m := start(t, f, testOptions())
	m = press(t, m, "e", "/", "h", "a", "l", "l", " ", "1", "enter")

	if m.searchTerm != "hall 1" {
		t.Errorf("searchTerm = %q", m.searchTerm)
	}
	if q := f.queries[len(f.queries)-1]; q.Search != "hall 1" || q.Offset != 0 {
		t.Errorf("query = %+v", q)
	}
}

func TestVenue_ReviewCarousel(t *testing.T) {
	f := sampleBackend()
	m := start(t, f, testOptions())
	m = press(t, m, "enter")

	if m.route.Screen != nav.ScreenVenue || m.route.ID != "hall-0" {
		t.Fatalf("route = %+v, want venue hall-0", m.route)
	}
	if m.reviews.TotalPages() != 3 {
		t.Fatalf("review pages = %d, want 3", m.reviews.TotalPages())
	}
	if got := len(m.reviews.Visible()); got != 3 {
		t.Errorf("visible reviews = %d, want 3", got)
	}

	m = press(t, m, "3")
	if got := len(m.reviews.Visible()); got != 1 {
		t.Errorf("last page shows %d reviews, want 1", got)
	}
	m = press(t, m, "right")
	if m.reviews.Page() != 0 {
		t.Errorf("next from last page = %d, want 0", m.reviews.Page())
	}

	m = press(t, m, "esc")
	if m.route.Screen != nav.ScreenHome {
		t.Errorf("esc went to %v, want home", m.route.Screen)
	}
}

func TestVenue_NotFound(t *testing.T) {
	opts := testOptions()
	opts.StartPath = nav.VenuePath("nope")
	m := start(t, sampleBackend(), opts)

	if !errors.Is(m.venueErr, storage.ErrNotFound) {
		t.Errorf("venueErr = %v, want ErrNotFound", m.venueErr)
	}
	if !strings.Contains(plainView(m), "No venue nope") {
		t.Error("missing venue should be reported inline")
	}
}

func TestBook_RequiresLoginThenRedirects(t *testing.T) {
	f := sampleBackend()
	m := start(t, f, testOptions())
	m = press(t, m, "enter", "b")

	if m.route.Screen != nav.ScreenLogin {
		t.Fatalf("screen = %v, want login", m.route.Screen)
	}
	if f.redirect != nav.BookPath("hall-0") {
		t.Errorf("recorded redirect = %q", f.redirect)
	}

	m = press(t, m, "a", "@", "b", ".", "c", "enter")
	if m.loginStep != stepCode {
		t.Fatalf("login step = %v, want code", m.loginStep)
	}

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1234"), Paste: true})
	if m.loginCode.Value() != "1234" {
		t.Fatalf("pasted code = %q", m.loginCode.Value())
	}
	m = press(t, m, "enter")

	if m.user != "a@b.c" {
		t.Errorf("user = %q", m.user)
	}
	if m.route.Path != nav.BookPath("hall-0") {
		t.Fatalf("after login at %q, want book path", m.route.Path)
	}

	// login was replaced, so back returns to the venue
	m = press(t, m, "esc")
	if m.route.Path != nav.VenuePath("hall-0") {
		t.Errorf("back went to %q, want venue", m.route.Path)
	}
}

func TestLogin_IncompleteCodeNotSent(t *testing.T) {
	f := sampleBackend()
	m := start(t, f, testOptions())
	m = press(t, m, "L", "a", "@", "b", ".", "c", "enter", "1", "2", "enter")

	if m.user != "" {
		t.Error("incomplete code logged in")
	}
	if !strings.Contains(plainView(m), "2 of 4 digits") {
		t.Error("incomplete code should show a validation message")
	}
}

func TestLogin_WrongCode(t *testing.T) {
	f := sampleBackend()
	m := start(t, f, testOptions())
	m = press(t, m, "L", "a", "@", "b", ".", "c", "enter", "9", "9", "9", "9", "enter")

	if m.user != "" {
		t.Error("wrong code logged in")
	}
	if !strings.Contains(m.loginErr, "not right") {
		t.Errorf("loginErr = %q", m.loginErr)
	}
	if m.loginCode.Value() != "" {
		t.Errorf("code not cleared after failure: %q", m.loginCode.Value())
	}
}

func TestBookingFlow(t *testing.T) {
	f := sampleBackend()
	f.user = "ada@example.com"
	opts := testOptions()
	opts.StartPath = nav.BookPath("hall-1")
	m := start(t, f, opts)

	if m.route.Screen != nav.ScreenBook {
		t.Fatalf("screen = %v, want book", m.route.Screen)
	}

	m = press(t, m, "2", "0", "3", "0", "-", "0", "1", "-", "0", "1", "enter", "1", "5", "0", "enter")
	if len(f.bookings) != 1 || f.bookings[0].Guests != 150 {
		t.Fatalf("bookings = %+v", f.bookings)
	}
	if m.route.Path != nav.ConfirmPath("bk1") {
		t.Fatalf("path = %q, want confirm", m.route.Path)
	}

	m = press(t, m, "4", "3", "2", "1", "enter")
	if len(f.confirmed) != 1 || f.confirmed[0] != "bk1" {
		t.Errorf("confirmed = %v", f.confirmed)
	}
	if m.route.Screen != nav.ScreenBookings {
		t.Errorf("screen = %v, want bookings", m.route.Screen)
	}
}

func TestBook_GuestsMustBeNumber(t *testing.T) {
	f := sampleBackend()
	f.user = "ada@example.com"
	opts := testOptions()
	opts.StartPath = nav.BookPath("hall-1")
	m := start(t, f, opts)

	m = press(t, m, "tab", "x", "enter")
	if m.bookErr == "" {
		t.Error("expected a validation message")
	}
	if len(f.bookings) != 0 {
		t.Error("booking created with invalid guests")
	}
}

func TestLogout_LeavesGuardedScreen(t *testing.T) {
	f := sampleBackend()
	f.user = "ada@example.com"
	opts := testOptions()
	opts.StartPath = nav.PathBookings
	m := start(t, f, opts)

	if m.route.Screen != nav.ScreenBookings {
		t.Fatalf("screen = %v, want bookings", m.route.Screen)
	}
	m = press(t, m, "O")
	if m.user != "" {
		t.Error("still logged in")
	}
	if m.route.Screen != nav.ScreenHome {
		t.Errorf("screen = %v, want home", m.route.Screen)
	}
}

func TestTyping_ShortcutsGoToInput(t *testing.T) {
	m := start(t, sampleBackend(), testOptions())
	m = press(t, m, "L", "q")

	if m.email.Value() != "q" {
		t.Errorf("email = %q, want q typed into the field", m.email.Value())
	}
}

func TestHelpModal(t *testing.T) {
	m := start(t, sampleBackend(), testOptions())
	m = press(t, m, "?")
	if m.modal != modalHelp {
		t.Fatal("help did not open")
	}
	if !strings.Contains(plainView(m), "Keyboard Shortcuts") {
		t.Error("help modal not rendered")
	}
	m = press(t, m, "esc")
	if m.modal != modalNone {
		t.Error("help did not close")
	}
}
