package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/juanibiapina/venue/internal/listing"
	"github.com/juanibiapina/venue/internal/pricerange"
)

type priceHandle int

const (
	handleLow priceHandle = iota
	handleHigh
)

type filterAction int

const (
	filterNone filterAction = iota
	filterApply
	filterCancel
)

// priceFilter edits a pricerange.Range with two keyboard-driven handles.
type priceFilter struct {
	rng    pricerange.Range
	active priceHandle
	steps  int
}

func newPriceFilter(rng pricerange.Range) priceFilter {
	return priceFilter{rng: rng, steps: 20}
}

func (f priceFilter) step() int {
	s := (f.rng.Max - f.rng.Min) / f.steps
	if s < 1 {
		s = 1
	}
	return s
}

// Update moves the active handle. Requests past the bounds or the other
// handle are clamped by the range, so handles can touch but never cross.
func (f priceFilter) Update(msg tea.KeyMsg) (priceFilter, filterAction) {
	switch {
	case key.Matches(msg, keys.Tab):
		f.active = 1 - f.active
	case key.Matches(msg, keys.Prev):
		f = f.move(-f.step())
	case key.Matches(msg, keys.Next):
		f = f.move(f.step())
	case msg.String() == "home":
		f = f.set(f.rng.Min)
	case msg.String() == "end":
		f = f.set(f.rng.Max)
	case key.Matches(msg, keys.Enter):
		return f, filterApply
	case key.Matches(msg, keys.Escape):
		return f, filterCancel
	}
	return f, filterNone
}

func (f priceFilter) move(delta int) priceFilter {
	if f.active == handleLow {
		return f.set(f.rng.Low + delta)
	}
	return f.set(f.rng.High + delta)
}

func (f priceFilter) set(v int) priceFilter {
	if f.active == handleLow {
		f.rng = f.rng.WithLow(v)
	} else {
		f.rng = f.rng.WithHigh(v)
	}
	return f
}

// trackPositions maps both handles onto a track width columns wide.
func (f priceFilter) trackPositions(width int) (low, high int) {
	if width <= 1 {
		return 0, 0
	}
	last := float64(width - 1)
	low = int(f.rng.LowPercent()/100*last + 0.5)
	high = int(f.rng.HighPercent()/100*last + 0.5)
	return low, high
}

// Track renders the slider: the selected span is highlighted between the handles.
func (f priceFilter) Track(width int) string {
	if width < 2 {
		width = 2
	}
	low, high := f.trackPositions(width)

	lowStyle, highStyle := handleStyle, handleStyle
	if f.active == handleLow {
		lowStyle = activeHandleStyle
	} else {
		highStyle = activeHandleStyle
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == high && f.active == handleHigh:
			b.WriteString(highStyle.Render("●"))
		case i == low:
			b.WriteString(lowStyle.Render("●"))
		case i == high:
			b.WriteString(highStyle.Render("●"))
		case i > low && i < high:
			b.WriteString(trackRangeStyle.Render("━"))
		default:
			b.WriteString(trackStyle.Render("─"))
		}
	}
	return b.String()
}

// Label describes the selected span.
func (f priceFilter) Label() string {
	return fmt.Sprintf("%s – %s", listing.FormatPrice(f.rng.Low), listing.FormatPrice(f.rng.High))
}

func (f priceFilter) View(width int) string {
	handle := "minimum"
	if f.active == handleHigh {
		handle = "maximum"
	}
	var b strings.Builder
	b.WriteString(dialogTitleStyle.Render("Price range"))
	b.WriteString("\n\n")
	b.WriteString(f.Track(width))
	b.WriteString("\n")
	b.WriteString(FitToWidth(mutedStyle.Render(listing.FormatPrice(f.rng.Min)), width/2))
	b.WriteString(lipgloss.PlaceHorizontal(width-width/2, lipgloss.Right, mutedStyle.Render(listing.FormatPrice(f.rng.Max))))
	b.WriteString("\n\n")
	b.WriteString(priceStyle.Render(f.Label()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("adjusting " + handle))
	b.WriteString("\n\n")
	b.WriteString(helpDescStyle.Render("←/→: move • tab: switch handle • enter: apply • esc: cancel"))
	return dialogStyle.Render(b.String())
}
