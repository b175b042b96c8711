package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/juanibiapina/venue/internal/carousel"
	"github.com/juanibiapina/venue/internal/listing"
	"github.com/juanibiapina/venue/internal/nav"
	"github.com/juanibiapina/venue/internal/storage"
	"github.com/juanibiapina/venue/internal/telemetry"
)

// screenBuilder collects screen lines and remembers where a carousel's
// control row lands.
type screenBuilder struct {
	lines    []string
	controls int
}

func newScreenBuilder() *screenBuilder {
	return &screenBuilder{controls: -1}
}

func (b *screenBuilder) add(s string) {
	b.lines = append(b.lines, strings.Split(s, "\n")...)
}

func (b *screenBuilder) addCarousel(c carouselView) {
	if line := c.ControlsLine(); line >= 0 {
		b.controls = len(b.lines) + line
	}
	b.add(c.View())
}

func (b *screenBuilder) String() string {
	return strings.Join(b.lines, "\n")
}

// Loads

func (m Model) queryCmd(target listTarget, q listing.Query) tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		return listingMsg{target: target, result: backend.QueryVenues(ctx, q)}
	}
}

func (m Model) loadHome() (Model, tea.Cmd) {
	q := listing.Query{Kind: storage.KindEventCenter, Limit: m.featuredCount()}
	m.featured = m.featured.Start(q)

	backend, ctx := m.backend, m.ctx
	quotes := func() tea.Msg {
		reviews, err := backend.Testimonials(ctx)
		return testimonialsMsg{reviews: reviews, err: err}
	}
	return m, tea.Batch(m.queryCmd(targetFeatured, q), quotes, m.spinner.Tick)
}

func (m Model) featuredCount() int {
	if m.opts.SkeletonRows > 0 {
		return m.opts.SkeletonRows
	}
	return 3
}

// openList shows the listing of kind, keeping page, search and filter when
// returning to the same kind.
func (m Model) openList(kind storage.Kind) (Model, tea.Cmd) {
	if kind != m.kind {
		m.kind = kind
		m.listPage = carousel.State{}
		m.searchTerm = ""
		m.search.SetValue("")
	}
	return m.queryList()
}

func (m Model) listQuery() listing.Query {
	q := listing.Query{
		Kind:   m.kind,
		Search: m.searchTerm,
		Limit:  m.opts.ListPageSize,
		Offset: m.listPage.Page * m.opts.ListPageSize,
	}
	if m.priceApplied {
		q.MinPrice = m.price.rng.Low
		q.MaxPrice = m.price.rng.High
		q.PriceBounded = true
	}
	return q
}

// queryList starts loading the current page. Listing loads are never
// retried on their own; r calls this again.
func (m Model) queryList() (Model, tea.Cmd) {
	q := m.listQuery()
	m.list = m.list.Start(q)
	return m, tea.Batch(m.queryCmd(targetList, q), m.spinner.Tick)
}

func (m Model) finishListing(msg listingMsg) Model {
	switch msg.target {
	case targetFeatured:
		m.featured = m.featured.Finish(msg.result)
	case targetList:
		m.list = m.list.Finish(msg.result)
		if m.list.Loading {
			return m
		}
		if msg.result.Err == nil {
			m.listPage.TotalPages = carousel.TotalPages(msg.result.Total, m.opts.ListPageSize)
		}
		if m.cursor >= len(m.list.Result.Data) {
			m.cursor = 0
		}
	}
	return m
}

// Home

func (m Model) updateHome(msg tea.KeyMsg) (Model, tea.Cmd) {
	if ev, ok := carouselKey(msg, m.testimonials.TotalPages()); ok {
		m.testimonials = dispatch(m.testimonials, ev)
		return m, nil
	}

	data := m.featured.Result.Data
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(data)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if m.featured.Phase() == listing.PhaseReady && m.cursor < len(data) {
			return m.navigate(nav.VenuePath(data[m.cursor].ID))
		}
	case key.Matches(msg, keys.Refresh):
		return m.loadHome()
	}
	return m, nil
}

func (m Model) renderHome(width int) (string, int) {
	b := newScreenBuilder()
	b.add(sectionStyle.Render("Featured event centers"))
	b.add(m.renderVenueRows(m.featured, width, m.cursor))
	b.add("")
	b.add(mutedStyle.Render("e: all event centers • t: catering"))
	b.add("")
	b.add(sectionStyle.Render("What our customers say"))

	switch {
	case m.quotesErr != nil:
		b.add(errorStyle.Render("Could not load testimonials: " + m.quotesErr.Error()))
	case m.testimonials.TotalPages() == 0:
		b.add(mutedStyle.Render("No testimonials yet"))
	default:
		b.addCarousel(m.reviewCarousel(m.testimonials, width))
	}
	return b.String(), b.controls
}

// Venue listings

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	data := m.list.Result.Data

	if ev, ok := m.listPageEvent(msg); ok {
		next := carousel.Reduce(m.listPage, ev)
		if next.Page == m.listPage.Page {
			return m, nil
		}
		m.listPage = next
		m.cursor = 0
		return m.queryList()
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(data)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if m.list.Phase() == listing.PhaseReady && m.cursor < len(data) {
			return m.navigate(nav.VenuePath(data[m.cursor].ID))
		}
	case key.Matches(msg, keys.Refresh):
		telemetry.TUIActionExecute("reload")
		return m.queryList()
	case key.Matches(msg, keys.Search):
		m.modal = modalSearch
		m.search.SetValue(m.searchTerm)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, keys.Filter):
		m.modal = modalPrice
		m.pricePending = m.price
		return m, nil
	}
	return m, nil
}

// listPageEvent pages through listing results. Only arrows page, so digits
// stay free.
func (m Model) listPageEvent(msg tea.KeyMsg) (carousel.Event, bool) {
	if m.listPage.TotalPages <= 1 {
		return carousel.Event{}, false
	}
	switch {
	case key.Matches(msg, keys.Prev):
		return carousel.PrevEvent(), true
	case key.Matches(msg, keys.Next):
		return carousel.NextEvent(), true
	}
	return carousel.Event{}, false
}

func (m Model) renderList(width int) string {
	b := newScreenBuilder()

	var filters []string
	if m.searchTerm != "" {
		filters = append(filters, fmt.Sprintf("search %q", m.searchTerm))
	}
	if m.priceApplied {
		filters = append(filters, "price "+m.price.Label())
	}
	summary := "all venues"
	if len(filters) > 0 {
		summary = strings.Join(filters, " • ")
	}
	b.add(mutedStyle.Render(summary))
	b.add("")
	b.add(m.renderVenueRows(m.list, width, m.cursor))

	if m.list.Phase() == listing.PhaseReady {
		b.add("")
		b.add(mutedStyle.Render(fmt.Sprintf("page %d of %d • %s venues",
			m.listPage.Page+1, max(m.listPage.TotalPages, 1), listing.FormatCount(m.list.Result.Total))))
	}
	return b.String()
}

// renderVenueRows draws a listing: skeleton rows while loading, an inline
// message on error or no data, otherwise one row per venue.
func (m Model) renderVenueRows(v listing.View, width, cursor int) string {
	switch v.Phase() {
	case listing.PhaseLoading:
		return renderSkeletons(m.opts.SkeletonRows, width)
	case listing.PhaseError:
		return renderListError(v.Error())
	}

	rows := make([]string, len(v.Result.Data))
	for i, venue := range v.Result.Data {
		rows[i] = formatVenueRow(venue, i == cursor, width)
	}
	return strings.Join(rows, "\n")
}

func renderSkeletons(n, width int) string {
	rows := make([]string, n)
	for i := range rows {
		w := width - 4*i
		if w < 8 {
			w = 8
		}
		rows[i] = skeletonStyle.Render(strings.Repeat("░", min(w, width)))
	}
	return strings.Join(rows, "\n")
}

func renderListError(err error) string {
	if errors.Is(err, listing.ErrEmpty) {
		return errorStyle.Render("No venues found.") + "\n" +
			mutedStyle.Render("press r to reload, / to search or f to change the price range")
	}
	return errorStyle.Render("Could not load venues: "+err.Error()) + "\n" +
		mutedStyle.Render("press r to try again")
}

func formatVenueRow(v storage.Venue, selected bool, width int) string {
	nameW := width * 35 / 100
	cityW := width * 20 / 100

	name := FitCellContent(v.Name, nameW)
	city := FitCellContent(v.City, cityW)
	capacity := FitCellContent(listing.FormatCount(v.Capacity)+" guests", 14)
	price := FitCellContent("from "+listing.FormatPrice(v.PriceFrom), 16)
	rating := fmt.Sprintf("★ %.1f", v.Rating)

	if selected {
		line := strings.Join([]string{name, city, capacity, price, rating}, " ")
		return selectedRowStyle.Render(FitToWidth(line, width))
	}
	return strings.Join([]string{
		venueNameStyle.Render(name),
		mutedStyle.Render(city),
		capacity,
		priceStyle.Render(price),
		ratingStyle.Render(rating),
	}, " ")
}
