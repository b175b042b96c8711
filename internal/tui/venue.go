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
)

// openVenue loads venue id and its reviews unless they are already shown.
func (m Model) openVenue(id string) (Model, tea.Cmd) {
	if m.venue != nil && m.venue.ID == id && m.venueErr == nil {
		return m, nil
	}
	m.venue = nil
	m.venueErr = nil
	m.venueLoading = true
	m.reviews = carousel.NewPager[storage.Review](nil, m.opts.ReviewPageSize)

	backend, ctx := m.backend, m.ctx
	load := func() tea.Msg {
		venue, err := backend.Venue(ctx, id)
		if err != nil {
			return venueMsg{id: id, err: err}
		}
		reviews, err := backend.Reviews(ctx, id)
		return venueMsg{id: id, venue: venue, reviews: reviews, err: err}
	}
	return m, tea.Batch(load, m.spinner.Tick)
}

func (m Model) finishVenue(msg venueMsg) Model {
	if !m.venueLoading || (m.route.ID != msg.id) {
		return m
	}
	m.venueLoading = false
	m.venueErr = msg.err
	m.venue = msg.venue
	m.reviews = carousel.NewPager(msg.reviews, m.opts.ReviewPageSize)
	if m.venue != nil {
		m.about.SetContent(wrap(m.venue.Description, m.contentWidth()))
		m.about.GotoTop()
	}
	return m
}

func (m Model) updateVenue(msg tea.KeyMsg) (Model, tea.Cmd) {
	if ev, ok := carouselKey(msg, m.reviews.TotalPages()); ok {
		m.reviews = dispatch(m.reviews, ev)
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Book):
		if m.venue != nil {
			return m.navigate(nav.BookPath(m.venue.ID))
		}
	case key.Matches(msg, keys.Reviews):
		if m.venue != nil && m.route.Screen == nav.ScreenVenue {
			return m.navigate(nav.ReviewsPath(m.venue.ID))
		}
	case key.Matches(msg, keys.Refresh):
		if m.venueErr != nil || m.venue == nil {
			m.venue = nil
			return m.openVenue(m.route.ID)
		}
	case msg.String() == "pgdown":
		m.about.LineDown(aboutHeight)
	case msg.String() == "pgup":
		m.about.LineUp(aboutHeight)
	}
	return m, nil
}

func (m Model) renderVenueStatus() (string, bool) {
	switch {
	case m.venueLoading:
		return renderSkeletons(m.opts.SkeletonRows, 40), false
	case errors.Is(m.venueErr, storage.ErrNotFound):
		return errorStyle.Render("No venue "+m.route.ID) + "\n" + mutedStyle.Render("press esc to go back"), false
	case m.venueErr != nil:
		return errorStyle.Render("Could not load venue: "+m.venueErr.Error()) + "\n" + mutedStyle.Render("press r to try again"), false
	case m.venue == nil:
		return "", false
	}
	return "", true
}

func (m Model) renderVenue(width int) (string, int) {
	if status, ok := m.renderVenueStatus(); !ok {
		return status, -1
	}
	v := m.venue

	b := newScreenBuilder()
	b.add(titleStyle.Render(v.Name))
	b.add(venueFacts(v))
	b.add("")
	b.add(m.about.View())
	b.add("")
	b.add(sectionStyle.Render(fmt.Sprintf("Reviews (%d)", len(m.reviews.Items()))))
	if m.reviews.TotalPages() == 0 {
		b.add(mutedStyle.Render("No reviews yet"))
	} else {
		b.addCarousel(m.reviewCarousel(m.reviews, width))
	}
	return b.String(), b.controls
}

func (m Model) renderReviews(width int) (string, int) {
	if status, ok := m.renderVenueStatus(); !ok {
		return status, -1
	}

	b := newScreenBuilder()
	b.add(titleStyle.Render("Reviews of " + m.venue.Name))
	b.add(mutedStyle.Render(fmt.Sprintf("%d reviews • page %d of %d",
		len(m.reviews.Items()), m.reviews.Page()+1, max(m.reviews.TotalPages(), 1))))
	b.add("")
	if m.reviews.TotalPages() == 0 {
		b.add(mutedStyle.Render("No reviews yet"))
	} else {
		b.addCarousel(m.reviewCarousel(m.reviews, width))
	}
	return b.String(), b.controls
}

func venueFacts(v *storage.Venue) string {
	kind := "Event center"
	if v.Kind == storage.KindCaterer {
		kind = "Caterer"
	}
	facts := []string{
		kind,
		v.City,
		"up to " + listing.FormatCount(v.Capacity) + " guests",
		priceStyle.Render("from " + listing.FormatPrice(v.PriceFrom)),
		ratingStyle.Render(fmt.Sprintf("★ %.1f", v.Rating)),
	}
	return strings.Join(facts, mutedStyle.Render(" · "))
}

// reviewCarousel renders the current window of p as cards.
func (m Model) reviewCarousel(p carousel.Pager[storage.Review], width int) carouselView {
	visible := p.Visible()
	cards := make([]string, len(visible))
	for i, r := range visible {
		cards[i] = renderReviewCard(r, width)
	}
	return carouselView{Cards: cards, Page: p.Page(), TotalPages: p.TotalPages()}
}

func renderReviewCard(r storage.Review, width int) string {
	rating := min(max(r.Rating, 0), 5)
	stars := ratingStyle.Render(strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating))
	head := stars + "  " + venueNameStyle.Render(r.Author)
	if !r.CreatedAt.IsZero() {
		head += mutedStyle.Render(" · " + r.CreatedAt.Format("Jan 2, 2006"))
	}
	return head + "\n" + wrap(r.Body, width)
}
