package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/juanibiapina/venue/internal/carousel"
)

func TestCarouselView_Dots(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       string
	}{
		{"first of three", 0, 3, "‹ ● ○ ○ ›"},
		{"last of three", 2, 3, "‹ ○ ○ ● ›"},
		{"single page", 0, 1, "‹ ● ›"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := carouselView{Page: tt.page, TotalPages: tt.totalPages}
			got := ansi.Strip(c.Controls())
			if got != tt.want {
				t.Errorf("Controls() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCarouselView_Empty(t *testing.T) {
	c := carouselView{}
	if got := c.View(); got != "" {
		t.Errorf("View() = %q, want empty", got)
	}
	if got := c.ControlsLine(); got != -1 {
		t.Errorf("ControlsLine() = %d, want -1", got)
	}
}

func TestCarouselView_ControlsLine(t *testing.T) {
	c := carouselView{
		Cards:      []string{"a\nb", "c", "d\ne\nf"},
		Page:       1,
		TotalPages: 3,
	}
	lines := strings.Split(c.View(), "\n")
	line := c.ControlsLine()
	if line >= len(lines) {
		t.Fatalf("ControlsLine() = %d, view has %d lines", line, len(lines))
	}
	if got := ansi.Strip(lines[line]); got != "‹ ○ ● ○ ›" {
		t.Errorf("line %d = %q, want control row", line, got)
	}
}

func TestCarouselKey(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		total  int
		want   carousel.Event
		wantOK bool
	}{
		{"right is next", tea.KeyMsg{Type: tea.KeyRight}, 3, carousel.NextEvent(), true},
		{"l is next", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}, 3, carousel.NextEvent(), true},
		{"left is prev", tea.KeyMsg{Type: tea.KeyLeft}, 3, carousel.PrevEvent(), true},
		{"digit jumps", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")}, 3, carousel.JumpEvent(1), true},
		{"digit past the end ignored", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")}, 3, carousel.Event{}, false},
		{"no pages", tea.KeyMsg{Type: tea.KeyRight}, 0, carousel.Event{}, false},
		{"unrelated key", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, 3, carousel.Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := carouselKey(tt.msg, tt.total)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("carouselKey = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCarouselClick(t *testing.T) {
	// "‹ ● ○ ○ ›": prev at 0, dots at 2,4,6, next at 8
	tests := []struct {
		x      int
		want   carousel.Event
		wantOK bool
	}{
		{0, carousel.PrevEvent(), true},
		{1, carousel.Event{}, false},
		{2, carousel.JumpEvent(0), true},
		{3, carousel.JumpEvent(0), true},
		{4, carousel.JumpEvent(1), true},
		{7, carousel.JumpEvent(2), true},
		{8, carousel.NextEvent(), true},
		{9, carousel.Event{}, false},
	}

	for _, tt := range tests {
		got, ok := carouselClick(tt.x, 3)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("carouselClick(%d) = %v, %v; want %v, %v", tt.x, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCarouselClick_MatchesRenderedRow(t *testing.T) {
	c := carouselView{Page: 0, TotalPages: 4}
	row := []rune(ansi.Strip(c.Controls()))
	for x, r := range row {
		ev, ok := carouselClick(x, c.TotalPages)
		switch r {
		case '‹':
			if !ok || ev != carousel.PrevEvent() {
				t.Errorf("column %d (%q) = %v, %v", x, r, ev, ok)
			}
		case '›':
			if !ok || ev != carousel.NextEvent() {
				t.Errorf("column %d (%q) = %v, %v", x, r, ev, ok)
			}
		case '●', '○':
			if !ok || ev.Type != carousel.EventJump {
				t.Errorf("column %d (%q) = %v, %v", x, r, ev, ok)
			}
		}
	}
}

// The presenter only reports events; the page moves when the owner reduces.
func TestCarousel_OwnerAppliesEvents(t *testing.T) {
	reviews := []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7"}
	pager := carousel.NewPager(reviews, 3)

	ev, _ := carouselKey(tea.KeyMsg{Type: tea.KeyLeft}, pager.TotalPages())
	pager = pager.Dispatch(ev)
	if pager.Page() != 2 {
		t.Fatalf("page after prev = %d, want 2", pager.Page())
	}

	view := carouselView{Cards: pager.Visible(), Page: pager.Page(), TotalPages: pager.TotalPages()}
	if !strings.HasPrefix(view.View(), "r7\n\n") {
		t.Errorf("View() = %q, want last page with r7", view.View())
	}
}
