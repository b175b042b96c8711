// Package nav names the screens of the app by path and keeps the history of
// where the user has been.
package nav

import (
	"fmt"
	"strings"
)

// Navigator moves the UI to a destination path.
type Navigator interface {
	Navigate(path string)
}

// Screen identifies what a path renders.
type Screen int

const (
	ScreenNotFound Screen = iota
	ScreenHome
	ScreenVenues
	ScreenCatering
	ScreenVenue
	ScreenReviews
	ScreenLogin
	ScreenBook
	ScreenConfirm
	ScreenBookings
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenVenues:
		return "venues"
	case ScreenCatering:
		return "catering"
	case ScreenVenue:
		return "venue"
	case ScreenReviews:
		return "reviews"
	case ScreenLogin:
		return "login"
	case ScreenBook:
		return "book"
	case ScreenConfirm:
		return "confirm"
	case ScreenBookings:
		return "bookings"
	default:
		return "not_found"
	}
}

// Route is a parsed destination.
type Route struct {
	Path   string
	Screen Screen
	ID     string // venue or booking ID for parameterised screens
}

// Paths used across the app.
const (
	PathHome     = "/"
	PathVenues   = "/venues"
	PathCatering = "/catering"
	PathLogin    = "/login"
	PathBookings = "/bookings"
)

func VenuePath(id string) string   { return "/venues/" + id }
func ReviewsPath(id string) string { return "/venues/" + id + "/reviews" }
func BookPath(id string) string    { return "/book/" + id }

// ConfirmPath is the payment confirmation screen of a pending booking.
func ConfirmPath(bookingID string) string { return "/book/" + bookingID + "/confirm" }

// Parse resolves path to a Route. Unknown paths map to ScreenNotFound.
func Parse(path string) Route {
	r := Route{Path: path}
	clean := strings.Trim(path, "/")
	if clean == "" {
		r.Screen = ScreenHome
		return r
	}

	parts := strings.Split(clean, "/")
	switch {
	case len(parts) == 1 && parts[0] == "venues":
		r.Screen = ScreenVenues
	case len(parts) == 1 && parts[0] == "catering":
		r.Screen = ScreenCatering
	case len(parts) == 1 && parts[0] == "login":
		r.Screen = ScreenLogin
	case len(parts) == 1 && parts[0] == "bookings":
		r.Screen = ScreenBookings
	case len(parts) == 2 && parts[0] == "venues":
		r.Screen, r.ID = ScreenVenue, parts[1]
	case len(parts) == 3 && parts[0] == "venues" && parts[2] == "reviews":
		r.Screen, r.ID = ScreenReviews, parts[1]
	case len(parts) == 2 && parts[0] == "book":
		r.Screen, r.ID = ScreenBook, parts[1]
	case len(parts) == 3 && parts[0] == "book" && parts[2] == "confirm":
		r.Screen, r.ID = ScreenConfirm, parts[1]
	}
	return r
}

// RequiresLogin reports whether the screen is only reachable when logged in.
func (r Route) RequiresLogin() bool {
	switch r.Screen {
	case ScreenBook, ScreenConfirm, ScreenBookings:
		return true
	}
	return false
}

// History is a Navigator that records visited paths so "back" can return.
type History struct {
	stack []string
}

var _ Navigator = (*History)(nil)

// NewHistory starts at path.
func NewHistory(path string) *History {
	return &History{stack: []string{path}}
}

// Navigate pushes path unless it is already the current location.
func (h *History) Navigate(path string) {
	if h.Current() == path {
		return
	}
	h.stack = append(h.stack, path)
}

// Replace swaps the current location without growing the history.
// Used for redirects so "back" skips the login screen.
func (h *History) Replace(path string) {
	if len(h.stack) == 0 {
		h.stack = []string{path}
		return
	}
	h.stack[len(h.stack)-1] = path
}

// Back pops the current location. The first entry is never popped.
// Reports whether the location changed.
func (h *History) Back() bool {
	if len(h.stack) <= 1 {
		return false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return true
}

// Current returns the current path.
func (h *History) Current() string {
	if len(h.stack) == 0 {
		return PathHome
	}
	return h.stack[len(h.stack)-1]
}

// Depth returns the number of entries.
func (h *History) Depth() int { return len(h.stack) }

func (h *History) String() string {
	return fmt.Sprintf("History%v", h.stack)
}
