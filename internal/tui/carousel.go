package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/juanibiapina/venue/internal/carousel"
)

// Control row layout: "‹ ● ○ ○ ›". The previous arrow sits in column 0,
// each dot takes two columns starting at dotsStart, and the next arrow
// follows the last dot.
const (
	prevArrow = "‹"
	nextArrow = "›"
	dotsStart = 2
	dotWidth  = 2
)

// carouselView renders one page of a carousel. It keeps no page of its own:
// the owner passes the visible window and its state in, and applies the
// events carouselKey and carouselClick hand back with carousel.Reduce.
type carouselView struct {
	Cards      []string
	Page       int
	TotalPages int
}

// View stacks the cards, separated by blank lines, above the control row.
// An empty carousel renders nothing.
func (c carouselView) View() string {
	if c.TotalPages <= 0 {
		return ""
	}
	return strings.Join(c.Cards, "\n\n") + "\n\n" + c.Controls()
}

// ControlsLine is the line index of the control row within View.
func (c carouselView) ControlsLine() int {
	if c.TotalPages <= 0 {
		return -1
	}
	if len(c.Cards) == 0 {
		return 2
	}
	// each card is followed by one blank line
	lines := len(c.Cards)
	for _, card := range c.Cards {
		lines += strings.Count(card, "\n") + 1
	}
	return lines
}

// Controls renders the arrows around one dot per page.
func (c carouselView) Controls() string {
	if c.TotalPages <= 0 {
		return ""
	}
	return arrowStyle.Render(prevArrow) + " " + c.dots().View() + arrowStyle.Render(nextArrow)
}

// dots builds a paginator purely for rendering. Its key map is empty so it
// never moves on its own.
func (c carouselView) dots() paginator.Model {
	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = activeDotStyle.Render("●") + " "
	p.InactiveDot = mutedStyle.Render("○") + " "
	p.KeyMap = paginator.KeyMap{}
	p.TotalPages = c.TotalPages
	p.Page = c.Page
	return p
}

// carouselKey maps a key press to a carousel event. Digits 1-9 jump to an
// existing page.
func carouselKey(msg tea.KeyMsg, totalPages int) (carousel.Event, bool) {
	if totalPages <= 0 {
		return carousel.Event{}, false
	}
	switch {
	case key.Matches(msg, keys.Prev):
		return carousel.PrevEvent(), true
	case key.Matches(msg, keys.Next):
		return carousel.NextEvent(), true
	}
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if page := int(s[0] - '1'); page < totalPages {
			return carousel.JumpEvent(page), true
		}
	}
	return carousel.Event{}, false
}

// carouselClick resolves a click at column x of the control row.
func carouselClick(x, totalPages int) (carousel.Event, bool) {
	if totalPages <= 0 {
		return carousel.Event{}, false
	}
	dotsEnd := dotsStart + dotWidth*totalPages
	switch {
	case x == 0:
		return carousel.PrevEvent(), true
	case x == dotsEnd:
		return carousel.NextEvent(), true
	case x >= dotsStart && x < dotsEnd:
		return carousel.JumpEvent((x - dotsStart) / dotWidth), true
	}
	return carousel.Event{}, false
}

// carouselAction names a carousel event for telemetry.
func carouselAction(e carousel.Event) string {
	switch e.Type {
	case carousel.EventNext:
		return "carousel_next"
	case carousel.EventPrev:
		return "carousel_prev"
	default:
		return "carousel_jump"
	}
}
