package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/carousel"
	"github.com/juanibiapina/venue/internal/listing"
	"github.com/juanibiapina/venue/internal/nav"
	"github.com/juanibiapina/venue/internal/pricerange"
	"github.com/juanibiapina/venue/internal/storage"
	"github.com/juanibiapina/venue/internal/telemetry"
)

// Backend is everything the screens read and act on. *app.App implements it.
type Backend interface {
	QueryVenues(ctx context.Context, q listing.Query) listing.Result
	Venue(ctx context.Context, id string) (*storage.Venue, error)
	Reviews(ctx context.Context, venueID string) ([]storage.Review, error)
	Testimonials(ctx context.Context) ([]storage.Review, error)
	RequestLoginCode(ctx context.Context, email string) (string, error)
	Login(ctx context.Context, email, code string, remember bool, fallback string) (string, error)
	Logout() error
	CurrentUser() (string, error)
	Require(path string) string
	CreateBooking(ctx context.Context, req app.BookingRequest) (*storage.Booking, string, error)
	ResendBookingCode(ctx context.Context, bookingID string) (string, error)
	ConfirmBooking(ctx context.Context, bookingID, code string) error
	Bookings(ctx context.Context) ([]storage.Booking, error)
}

var _ Backend = (*app.App)(nil)

// Options tune the screens.
type Options struct {
	StartPath      string
	ReviewPageSize int
	ListPageSize   int
	SkeletonRows   int
	CodeLength     int
	Price          pricerange.Range
	Remember       bool
	// RevealCodes shows issued one-time codes in the status bar, for
	// local use where no mail is delivered.
	RevealCodes bool
}

// Modal overlays
type modalMode int

const (
	modalNone modalMode = iota
	modalHelp
	modalSearch
	modalPrice
)

// Layout: header line, panel border, then content indented by border and padding.
const (
	contentTop  = 2
	contentLeft = 2
	aboutHeight = 4
)

type listTarget int

const (
	targetFeatured listTarget = iota
	targetList
)

// Messages

type listingMsg struct {
	target listTarget
	result listing.Result
}

type testimonialsMsg struct {
	reviews []storage.Review
	err     error
}

type venueMsg struct {
	id      string
	venue   *storage.Venue
	reviews []storage.Review
	err     error
}

type codeSentMsg struct {
	purpose string
	code    string
	err     error
}

type loginMsg struct {
	email string
	next  string
	err   error
}

type logoutMsg struct {
	err error
}

type bookingCreatedMsg struct {
	booking *storage.Booking
	code    string
	err     error
}

type bookingConfirmedMsg struct {
	id  string
	err error
}

type bookingsMsg struct {
	bookings []storage.Booking
	err      error
}

// actionResultMsg is sent when an action completes
type actionResultMsg struct {
	message string
	isError bool
}

// Model is the root bubbletea model. Screens are chosen by the current
// path in history.
type Model struct {
	backend Backend
	opts    Options
	ctx     context.Context
	initCmd tea.Cmd

	history *nav.History
	route   nav.Route
	user    string

	width       int
	height      int
	ready       bool
	modal       modalMode
	message     string
	messageTime time.Time
	isError     bool

	help    help.Model
	spinner spinner.Model
	cursor  int

	// home
	featured     listing.View
	testimonials carousel.Pager[storage.Review]
	quotesErr    error

	// venue listings
	kind         storage.Kind
	list         listing.View
	listPage     carousel.State
	search       textinput.Model
	searchTerm   string
	price        priceFilter
	pricePending priceFilter
	priceApplied bool

	// venue detail and reviews
	venue        *storage.Venue
	venueErr     error
	venueLoading bool
	reviews      carousel.Pager[storage.Review]
	about        viewport.Model

	// login
	email       textinput.Model
	loginEmail  string
	loginStep   loginStep
	loginCode   codeInput
	loginErr    string
	remember    bool
	requestBusy bool

	// booking
	bookDate     textinput.Model
	bookGuests   textinput.Model
	bookField    int
	bookErr      string
	booking      *storage.Booking
	confirm      codeInput
	confirmErr   string
	submitting   bool
	bookings     carousel.Pager[storage.Booking]
	bookingsErr  error
	bookingsBusy bool
}

func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// New creates the model and resolves the start path.
func New(backend Backend, opts Options) Model {
	if opts.ListPageSize <= 0 {
		opts.ListPageSize = 8
	}
	if opts.ReviewPageSize <= 0 {
		opts.ReviewPageSize = 3
	}
	if opts.CodeLength <= 0 {
		opts.CodeLength = 4
	}
	if opts.StartPath == "" {
		opts.StartPath = nav.PathHome
	}

	h := help.New()
	h.ShowAll = true

	m := Model{
		backend:    backend,
		opts:       opts,
		ctx:        context.Background(),
		history:    nav.NewHistory(nav.PathHome),
		help:       h,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		search:     newTextInput("venue name...", 64),
		price:      newPriceFilter(opts.Price),
		email:      newTextInput("you@example.com", 254),
		bookDate:   newTextInput("YYYY-MM-DD", 10),
		bookGuests: newTextInput("number of guests", 6),
		loginCode:  newCodeInput(opts.CodeLength),
		confirm:    newCodeInput(opts.CodeLength),
		remember:   opts.Remember,
		about:      viewport.New(60, aboutHeight),
	}
	m.user, _ = backend.CurrentUser()

	if opts.StartPath == nav.PathHome {
		m, m.initCmd = m.enter(nav.Parse(nav.PathHome))
	} else {
		m, m.initCmd = m.navigate(opts.StartPath)
	}
	return m
}

// Init starts the loads of the first screen.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.about.Width = m.contentWidth()
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case listingMsg:
		return m.finishListing(msg), nil

	case testimonialsMsg:
		m.quotesErr = msg.err
		m.testimonials = carousel.NewPager(msg.reviews, m.opts.ReviewPageSize)
		return m, nil

	case venueMsg:
		return m.finishVenue(msg), nil

	case codeSentMsg:
		return m.codeSent(msg), nil

	case loginMsg:
		return m.loggedIn(msg)

	case logoutMsg:
		return m.loggedOut(msg)

	case bookingCreatedMsg:
		return m.bookingCreated(msg)

	case bookingConfirmedMsg:
		return m.bookingConfirmed(msg)

	case bookingsMsg:
		m.bookingsBusy = false
		m.bookingsErr = msg.err
		m.bookings = carousel.NewPager(msg.bookings, m.opts.ListPageSize)
		m.cursor = 0
		return m, nil

	case clipboardMsg:
		switch m.route.Screen {
		case nav.ScreenLogin:
			m.loginCode = m.loginCode.Pasted(msg)
		case nav.ScreenConfirm:
			m.confirm = m.confirm.Pasted(msg)
		}
		return m, nil

	case actionResultMsg:
		return m.flash(msg.message, msg.isError), nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		// Clear old messages
		if time.Since(m.messageTime) > 3*time.Second {
			m.message = ""
		}

		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.updateMain(msg)
	}

	return m, nil
}

func (m Model) flash(message string, isError bool) Model {
	m.message = message
	m.isError = isError
	m.messageTime = time.Now()
	return m
}

func (m Model) loading() bool {
	return m.featured.Loading || m.list.Loading || m.venueLoading || m.bookingsBusy ||
		m.requestBusy || m.submitting
}

// typing reports whether keys go to a text field instead of shortcuts.
func (m Model) typing() bool {
	switch m.route.Screen {
	case nav.ScreenLogin:
		return m.user == ""
	case nav.ScreenBook, nav.ScreenConfirm:
		return true
	}
	return false
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.typing() {
		return m.updateScreen(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.modal = modalHelp
		return m, nil
	case key.Matches(msg, keys.Escape):
		return m.back()
	case key.Matches(msg, keys.Home):
		return m.navigate(nav.PathHome)
	case key.Matches(msg, keys.Venues):
		return m.navigate(nav.PathVenues)
	case key.Matches(msg, keys.Catering):
		return m.navigate(nav.PathCatering)
	case key.Matches(msg, keys.Bookings):
		return m.navigate(nav.PathBookings)
	case key.Matches(msg, keys.Login):
		return m.navigate(nav.PathLogin)
	case key.Matches(msg, keys.Logout):
		if m.user == "" {
			return m, nil
		}
		return m, m.logout()
	}
	return m.updateScreen(msg)
}

func (m Model) updateScreen(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.route.Screen {
	case nav.ScreenHome:
		return m.updateHome(msg)
	case nav.ScreenVenues, nav.ScreenCatering:
		return m.updateList(msg)
	case nav.ScreenVenue, nav.ScreenReviews:
		return m.updateVenue(msg)
	case nav.ScreenLogin:
		return m.updateLogin(msg)
	case nav.ScreenBook:
		return m.updateBook(msg)
	case nav.ScreenConfirm:
		return m.updateConfirm(msg)
	case nav.ScreenBookings:
		return m.updateBookings(msg)
	}
	return m, nil
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.modal {
	case modalHelp:
		switch msg.String() {
		case "esc", "?", "q":
			m.modal = modalNone
		}
		return m, nil

	case modalSearch:
		switch msg.Type {
		case tea.KeyEsc:
			m.modal = modalNone
			m.search.Blur()
			return m, nil
		case tea.KeyEnter:
			m.modal = modalNone
			m.search.Blur()
			m.searchTerm = strings.TrimSpace(m.search.Value())
			m.listPage.Page = 0
			m.cursor = 0
			telemetry.TUIActionExecute("search")
			return m.queryList()
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case modalPrice:
		f, action := m.pricePending.Update(msg)
		m.pricePending = f
		switch action {
		case filterApply:
			m.modal = modalNone
			m.price = f
			m.priceApplied = f.rng.Low != f.rng.Min || f.rng.High != f.rng.Max
			m.listPage.Page = 0
			m.cursor = 0
			telemetry.TUIActionExecute("price_filter")
			return m.queryList()
		case filterCancel:
			m.modal = modalNone
		}
		return m, nil
	}
	return m, nil
}

// updateMouse resolves clicks on the carousel control row of the screen.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	_, controls := m.screenContent(m.contentWidth())
	if controls < 0 || msg.Y-contentTop != controls {
		return m, nil
	}

	switch m.route.Screen {
	case nav.ScreenHome:
		if ev, ok := carouselClick(msg.X-contentLeft, m.testimonials.TotalPages()); ok {
			m.testimonials = dispatch(m.testimonials, ev)
		}
	case nav.ScreenVenue, nav.ScreenReviews:
		if ev, ok := carouselClick(msg.X-contentLeft, m.reviews.TotalPages()); ok {
			m.reviews = dispatch(m.reviews, ev)
		}
	}
	return m, nil
}

// dispatch applies a carousel event to a pager and records it.
func dispatch[T any](p carousel.Pager[T], ev carousel.Event) carousel.Pager[T] {
	telemetry.TUIActionExecute(carouselAction(ev))
	return p.Dispatch(ev)
}

// Navigation

// navigate moves to path. Guarded screens send a logged-out user to the
// login screen, which returns here after login.
func (m Model) navigate(path string) (Model, tea.Cmd) {
	route := nav.Parse(path)
	if route.RequiresLogin() {
		if dest := m.backend.Require(path); dest != "" {
			m = m.flash("Log in to continue", false)
			path, route = dest, nav.Parse(dest)
		}
	}
	m.history.Navigate(path)
	return m.enter(route)
}

// redirect replaces the current location, so back skips it.
func (m Model) redirect(path string) (Model, tea.Cmd) {
	m.history.Replace(path)
	return m.enter(nav.Parse(path))
}

func (m Model) back() (Model, tea.Cmd) {
	if !m.history.Back() {
		return m, nil
	}
	path := m.history.Current()
	route := nav.Parse(path)
	if route.RequiresLogin() && m.user == "" {
		return m.back()
	}
	return m.enter(route)
}

// enter sets up the screen for route and starts its loads.
func (m Model) enter(route nav.Route) (Model, tea.Cmd) {
	m.route = route
	m.cursor = 0
	m.modal = modalNone

	switch route.Screen {
	case nav.ScreenHome:
		return m.loadHome()
	case nav.ScreenVenues:
		return m.openList(storage.KindEventCenter)
	case nav.ScreenCatering:
		return m.openList(storage.KindCaterer)
	case nav.ScreenVenue, nav.ScreenReviews:
		return m.openVenue(route.ID)
	case nav.ScreenLogin:
		return m.openLogin()
	case nav.ScreenBook:
		return m.openBook(route.ID)
	case nav.ScreenConfirm:
		return m.openConfirm(route.ID)
	case nav.ScreenBookings:
		return m.loadBookings()
	}
	return m, nil
}

// Rendering

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	return w
}

// screenContent renders the current screen's panel content and reports the
// line of a carousel control row in it, or -1.
func (m Model) screenContent(width int) (string, int) {
	switch m.route.Screen {
	case nav.ScreenHome:
		return m.renderHome(width)
	case nav.ScreenVenues, nav.ScreenCatering:
		return m.renderList(width), -1
	case nav.ScreenVenue:
		return m.renderVenue(width)
	case nav.ScreenReviews:
		return m.renderReviews(width)
	case nav.ScreenLogin:
		return m.renderLogin(), -1
	case nav.ScreenBook:
		return m.renderBook(), -1
	case nav.ScreenConfirm:
		return m.renderConfirm(), -1
	case nav.ScreenBookings:
		return m.renderBookings(width), -1
	}
	return errorStyle.Render("Nothing here: "+m.route.Path) + "\n\n" + mutedStyle.Render("press esc to go back"), -1
}

func (m Model) title() string {
	switch m.route.Screen {
	case nav.ScreenHome:
		return "Home"
	case nav.ScreenVenues:
		return "Event centers"
	case nav.ScreenCatering:
		return "Catering"
	case nav.ScreenVenue, nav.ScreenReviews, nav.ScreenBook:
		if m.venue != nil {
			return m.venue.Name
		}
		return venueTitle(m.route.ID)
	case nav.ScreenLogin:
		return "Log in"
	case nav.ScreenConfirm:
		return "Confirm booking"
	case nav.ScreenBookings:
		return "My bookings"
	}
	return "Not found"
}

func venueTitle(id string) string {
	if id == "" {
		return "Venue"
	}
	return id
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	content, _ := m.screenContent(m.contentWidth())
	panelHeight := m.height - 2
	if panelHeight < 3 {
		panelHeight = 3
	}

	view := m.renderHeader() + "\n" +
		renderPanel(m.title(), content, m.width, panelHeight) + "\n" +
		m.renderStatusBar()

	switch m.modal {
	case modalHelp:
		view = centerOverlay(m.renderHelpModal(), view, m.width, m.height)
	case modalSearch:
		view = centerOverlay(m.renderSearchModal(), view, m.width, m.height)
	case modalPrice:
		view = centerOverlay(m.pricePending.View(40), view, m.width, m.height)
	}
	return view
}

func (m Model) renderHeader() string {
	left := headerStyle.Render("venue") + headerPathStyle.Render(m.history.Current())
	if m.loading() {
		left += " " + m.spinner.View()
	}
	right := headerUserStyle.Render("not logged in")
	if m.user != "" {
		right = headerUserStyle.Render(m.user)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return FitToWidth(left+strings.Repeat(" ", gap)+right, m.width)
}

// renderPanel draws a rounded box with the title set into the top border.
func renderPanel(title, content string, width, height int) string {
	border := lipgloss.NewStyle().Foreground(colorBlue)
	h, v := "─", "│"

	styledTitle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Render(title)
	right := width - 3 - lipgloss.Width(styledTitle) - 1
	if right < 0 {
		right = 0
	}
	top := border.Render("╭"+h) + styledTitle + border.Render(strings.Repeat(h, right+1)+"╮")
	bottom := border.Render("╰" + strings.Repeat(h, max(width-2, 0)) + "╯")
	side := border.Render(v)

	contentWidth := width - 4
	lines := strings.Split(content, "\n")
	rows := make([]string, 0, height-2)
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, side+" "+FitToWidth(line, contentWidth)+" "+side)
	}
	return top + "\n" + strings.Join(rows, "\n") + "\n" + bottom
}

func (m Model) renderStatusBar() string {
	var content string

	if m.message != "" && time.Since(m.messageTime) < 3*time.Second {
		styled := successStyle.Render(m.message)
		if m.isError {
			styled = errorStyle.Render(m.message)
		}
		content = " " + styled
	} else {
		content = " " + strings.Join(m.screenHints(), " ")
	}
	return statusBarStyle.Render(FitToWidth(content, m.width))
}

func (m Model) screenHints() []string {
	var parts []string
	switch m.route.Screen {
	case nav.ScreenHome:
		parts = append(parts,
			renderKey("↑↓", "select"),
			renderKey("enter", "open"),
			renderKey("←→", "testimonials"),
			renderKey("e", "event centers"),
			renderKey("t", "catering"),
		)
	case nav.ScreenVenues, nav.ScreenCatering:
		parts = append(parts,
			renderKey("↑↓", "select"),
			renderKey("←→", "page"),
			renderKey("/", "search"),
			renderKey("f", "price"),
			renderKey("r", "reload"),
		)
	case nav.ScreenVenue:
		parts = append(parts,
			renderKey("←→/1-9", "reviews"),
			renderKey("v", "all reviews"),
			renderKey("b", "book"),
			renderKey("pgup/pgdn", "about"),
		)
	case nav.ScreenReviews:
		parts = append(parts,
			renderKey("←→/1-9", "page"),
			renderKey("b", "book"),
		)
	case nav.ScreenLogin, nav.ScreenConfirm:
		parts = append(parts,
			renderKey("enter", "submit"),
			renderKey("ctrl+v", "paste"),
			renderKey("ctrl+r", "resend"),
		)
	case nav.ScreenBook:
		parts = append(parts,
			renderKey("tab", "next field"),
			renderKey("enter", "book"),
		)
	case nav.ScreenBookings:
		parts = append(parts,
			renderKey("↑↓", "select"),
			renderKey("←→", "page"),
			renderKey("enter", "confirm"),
			renderKey("c", "copy ref"),
		)
	}
	if m.typing() {
		return append(parts, renderKey("esc", "back"), renderKey("ctrl+c", "quit"))
	}
	return append(parts, renderKey("esc", "back"), renderKey("?", "help"), renderKey("q", "quit"))
}

func renderKey(key, desc string) string {
	return helpKeyStyle.Render(key) + " " + helpDescStyle.Render(desc)
}

func (m Model) renderHelpModal() string {
	title := dialogTitleStyle.Render("Keyboard Shortcuts")
	footer := helpDescStyle.Render("press esc or ? to close")
	return dialogStyle.Render(title + "\n\n" + m.help.View(keys) + "\n\n" + footer)
}

func (m Model) renderSearchModal() string {
	title := dialogTitleStyle.Render("Search venues")
	hint := helpDescStyle.Render("enter: search • empty clears • esc: cancel")
	return dialogStyle.Render(title + "\n\n" + focusedInputStyle.Render(m.search.View()) + "\n\n" + hint)
}

// Start runs the TUI until the user quits.
func Start(backend Backend, opts Options) error {
	telemetry.TUISessionStart()
	defer telemetry.TUISessionEnd()

	p := tea.NewProgram(New(backend, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
