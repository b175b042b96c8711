package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/listing"
	"github.com/juanibiapina/venue/internal/nav"
	"github.com/juanibiapina/venue/internal/session"
	"github.com/juanibiapina/venue/internal/storage"
	"github.com/juanibiapina/venue/internal/telemetry"
)

type loginStep int

const (
	stepEmail loginStep = iota
	stepCode
)

// Login

func (m Model) openLogin() (Model, tea.Cmd) {
	m.loginStep = stepEmail
	m.loginErr = ""
	m.loginCode = m.loginCode.Reset()
	if m.user != "" {
		return m, nil
	}
	cmd := m.email.Focus()
	return m, cmd
}

func (m Model) requestLoginCode(email string) tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		code, err := backend.RequestLoginCode(ctx, email)
		return codeSentMsg{purpose: session.PurposeLogin, code: code, err: err}
	}
}

func (m Model) updateLogin(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.user != "" {
		return m, nil
	}

	if m.loginStep == stepEmail {
		switch {
		case key.Matches(msg, keys.Escape):
			m.email.Blur()
			return m.back()
		case key.Matches(msg, keys.Tab):
			m.remember = !m.remember
			return m, nil
		case key.Matches(msg, keys.Enter):
			email := strings.TrimSpace(m.email.Value())
			if email == "" {
				m.loginErr = "enter your email address"
				return m, nil
			}
			m.loginEmail = email
			m.loginErr = ""
			m.requestBusy = true
			return m, tea.Batch(m.requestLoginCode(email), m.spinner.Tick)
		}
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Escape):
		m.loginStep = stepEmail
		m.loginErr = ""
		m.loginCode = m.loginCode.Reset()
		cmd := m.email.Focus()
		return m, cmd
	case key.Matches(msg, keys.Resend):
		m.loginCode = m.loginCode.Reset()
		return m, m.requestLoginCode(m.loginEmail)
	}

	code, action, cmd := m.loginCode.Update(msg)
	m.loginCode = code
	if action != codeSubmit {
		return m, cmd
	}

	backend, ctx := m.backend, m.ctx
	email, value, remember := m.loginEmail, code.Value(), m.remember
	m.loginErr = ""
	return m, func() tea.Msg {
		next, err := backend.Login(ctx, email, value, remember, nav.PathHome)
		return loginMsg{email: email, next: next, err: err}
	}
}

func (m Model) codeSent(msg codeSentMsg) Model {
	m.requestBusy = false
	if msg.err != nil {
		if msg.purpose == session.PurposeLogin {
			m.loginErr = msg.err.Error()
			return m
		}
		return m.flash(msg.err.Error(), true)
	}

	if msg.purpose == session.PurposeLogin && m.route.Screen == nav.ScreenLogin {
		m.loginStep = stepCode
		m.email.Blur()
	}
	notice := "Code sent"
	if m.opts.RevealCodes {
		notice += ": " + msg.code
	}
	return m.flash(notice, false)
}

func (m Model) loggedIn(msg loginMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.loginErr = loginProblem(msg.err)
		m.loginCode = m.loginCode.Reset()
		return m, nil
	}
	telemetry.TUIActionExecute("login")
	m.user, _ = m.backend.CurrentUser()
	if m.user == "" {
		m.user = msg.email
	}
	m.email.Reset()
	m = m.flash("Welcome, "+m.user, false)
	return m.redirect(msg.next)
}

func loginProblem(err error) string {
	switch {
	case errors.Is(err, session.ErrInvalidCode):
		return "That code is not right. Press ctrl+r for a new one."
	case errors.Is(err, session.ErrCodeExpired):
		return "That code has expired. Press ctrl+r for a new one."
	case errors.Is(err, session.ErrNoCode):
		return "No code is waiting. Press ctrl+r to send one."
	}
	return err.Error()
}

func (m Model) logout() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		return logoutMsg{err: backend.Logout()}
	}
}

func (m Model) loggedOut(msg logoutMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		return m.flash("Logout failed: "+msg.err.Error(), true), nil
	}
	telemetry.TUIActionExecute("logout")
	m.user = ""
	m.booking = nil
	m = m.flash("Logged out", false)
	if m.route.RequiresLogin() {
		return m.redirect(nav.PathHome)
	}
	return m, nil
}

func (m Model) renderLogin() string {
	b := newScreenBuilder()
	if m.user != "" {
		b.add("Logged in as " + headerUserStyle.Render(m.user))
		b.add("")
		b.add(mutedStyle.Render("press O to log out"))
		return b.String()
	}

	if m.loginStep == stepEmail {
		b.add(fmt.Sprintf("We will send a %d-digit code to your email.", m.opts.CodeLength))
		b.add("")
		b.add(focusedInputStyle.Render(m.email.View()))
		box := "[ ]"
		if m.remember {
			box = "[x]"
		}
		b.add(mutedStyle.Render(box + " keep me logged in (tab)"))
		if m.requestBusy {
			b.add(m.spinner.View() + " sending code...")
		}
	} else {
		b.add("Enter the code sent to " + headerUserStyle.Render(m.loginEmail))
		b.add("")
		b.add(m.loginCode.View())
	}
	if m.loginErr != "" {
		b.add("")
		b.add(errorStyle.Render(m.loginErr))
	}
	return b.String()
}

// Booking

func (m Model) openBook(venueID string) (Model, tea.Cmd) {
	m.bookErr = ""
	m.bookField = 0
	m.bookDate.Reset()
	m.bookGuests.Reset()
	m.bookGuests.Blur()
	focus := m.bookDate.Focus()
	m, load := m.openVenue(venueID)
	return m, tea.Batch(load, focus)
}

func (m Model) updateBook(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		return m.back()
	case key.Matches(msg, keys.Tab):
		return m.focusBookField(1 - m.bookField)
	case key.Matches(msg, keys.Enter):
		if m.bookField == 0 {
			return m.focusBookField(1)
		}
		return m.submitBooking()
	}

	var cmd tea.Cmd
	if m.bookField == 0 {
		m.bookDate, cmd = m.bookDate.Update(msg)
	} else {
		m.bookGuests, cmd = m.bookGuests.Update(msg)
	}
	return m, cmd
}

func (m Model) focusBookField(field int) (Model, tea.Cmd) {
	m.bookField = field
	var cmd tea.Cmd
	if field == 0 {
		m.bookGuests.Blur()
		cmd = m.bookDate.Focus()
	} else {
		m.bookDate.Blur()
		cmd = m.bookGuests.Focus()
	}
	return m, cmd
}

func (m Model) submitBooking() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	guests, err := strconv.Atoi(strings.TrimSpace(m.bookGuests.Value()))
	if err != nil {
		m.bookErr = "guests must be a number"
		return m, nil
	}
	req := app.BookingRequest{
		VenueID:   m.route.ID,
		EventDate: m.bookDate.Value(),
		Guests:    guests,
	}
	m.bookErr = ""
	m.submitting = true

	backend, ctx := m.backend, m.ctx
	return m, func() tea.Msg {
		b, code, err := backend.CreateBooking(ctx, req)
		return bookingCreatedMsg{booking: b, code: code, err: err}
	}
}

func (m Model) bookingCreated(msg bookingCreatedMsg) (Model, tea.Cmd) {
	m.submitting = false
	if errors.Is(msg.err, session.ErrNotLoggedIn) {
		m.user = ""
		return m.navigate(m.route.Path)
	}
	if msg.err != nil {
		m.bookErr = msg.err.Error()
		return m, nil
	}

	telemetry.TUIActionExecute("book")
	m.booking = msg.booking
	notice := "Booking created, confirmation code sent"
	if m.opts.RevealCodes {
		notice += ": " + msg.code
	}
	m = m.flash(notice, false)
	return m.redirect(nav.ConfirmPath(msg.booking.ID))
}

func (m Model) renderBook() string {
	b := newScreenBuilder()
	if status, ok := m.renderVenueStatus(); !ok && !m.venueLoading {
		return status
	}
	if m.venue != nil {
		b.add(titleStyle.Render("Book " + m.venue.Name))
		b.add(venueFacts(m.venue))
		b.add("")
	}

	dateStyle, guestsStyle := focusedInputStyle, inputStyle
	if m.bookField == 1 {
		dateStyle, guestsStyle = inputStyle, focusedInputStyle
	}
	b.add("Event date")
	b.add(dateStyle.Render(m.bookDate.View()))
	b.add("Guests")
	b.add(guestsStyle.Render(m.bookGuests.View()))

	if m.submitting {
		b.add(m.spinner.View() + " booking...")
	}
	if m.bookErr != "" {
		b.add("")
		b.add(errorStyle.Render(m.bookErr))
	}
	return b.String()
}

// Confirmation

func (m Model) openConfirm(bookingID string) (Model, tea.Cmd) {
	m.confirm = m.confirm.Reset()
	m.confirmErr = ""
	if m.booking != nil && m.booking.ID != bookingID {
		m.booking = nil
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	bookingID := m.route.ID
	backend, ctx := m.backend, m.ctx

	switch {
	case key.Matches(msg, keys.Escape):
		return m.back()
	case key.Matches(msg, keys.Resend):
		m.confirm = m.confirm.Reset()
		return m, func() tea.Msg {
			code, err := backend.ResendBookingCode(ctx, bookingID)
			return codeSentMsg{purpose: session.PurposeBooking, code: code, err: err}
		}
	}

	code, action, cmd := m.confirm.Update(msg)
	m.confirm = code
	if action != codeSubmit || m.submitting {
		return m, cmd
	}

	value := code.Value()
	m.confirmErr = ""
	m.submitting = true
	return m, func() tea.Msg {
		return bookingConfirmedMsg{id: bookingID, err: backend.ConfirmBooking(ctx, bookingID, value)}
	}
}

func (m Model) bookingConfirmed(msg bookingConfirmedMsg) (Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		m.confirmErr = loginProblem(msg.err)
		m.confirm = m.confirm.Reset()
		return m, nil
	}
	telemetry.TUIActionExecute("confirm_booking")
	m.booking = nil
	m = m.flash("Booking "+msg.id+" confirmed", false)
	return m.redirect(nav.PathBookings)
}

func (m Model) renderConfirm() string {
	b := newScreenBuilder()
	b.add("Booking " + idStyle.Render(m.route.ID))
	if bk := m.booking; bk != nil {
		b.add(fmt.Sprintf("%s • %s guests • %s", bk.EventDate.Format("Mon Jan 2, 2006"),
			listing.FormatCount(bk.Guests), bk.VenueID))
	}
	b.add("")
	b.add(fmt.Sprintf("Enter the %d-digit code we sent to confirm your booking.", m.opts.CodeLength))
	b.add("")
	b.add(m.confirm.View())
	if m.submitting {
		b.add(m.spinner.View() + " confirming...")
	}
	if m.confirmErr != "" {
		b.add("")
		b.add(errorStyle.Render(m.confirmErr))
	}
	return b.String()
}

// Bookings

func (m Model) loadBookings() (Model, tea.Cmd) {
	m.bookingsBusy = true
	m.bookingsErr = nil
	backend, ctx := m.backend, m.ctx
	load := func() tea.Msg {
		bookings, err := backend.Bookings(ctx)
		return bookingsMsg{bookings: bookings, err: err}
	}
	return m, tea.Batch(load, m.spinner.Tick)
}

func (m Model) updateBookings(msg tea.KeyMsg) (Model, tea.Cmd) {
	if ev, ok := carouselKey(msg, m.bookings.TotalPages()); ok {
		m.bookings = dispatch(m.bookings, ev)
		m.cursor = 0
		return m, nil
	}

	visible := m.bookings.Visible()
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Refresh):
		return m.loadBookings()
	case key.Matches(msg, keys.Enter):
		if m.cursor < len(visible) && visible[m.cursor].Status == storage.BookingPending {
			bk := visible[m.cursor]
			m.booking = &bk
			return m.navigate(nav.ConfirmPath(bk.ID))
		}
	case key.Matches(msg, keys.Copy):
		if m.cursor < len(visible) {
			return m, copyReference(visible[m.cursor].ID)
		}
	}
	return m, nil
}

func copyReference(id string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(id); err != nil {
			return actionResultMsg{message: "Failed to copy: " + err.Error(), isError: true}
		}
		telemetry.TUIActionExecute("copy_reference")
		return actionResultMsg{message: "Copied " + id}
	}
}

func (m Model) renderBookings(width int) string {
	switch {
	case m.bookingsBusy:
		return renderSkeletons(m.opts.SkeletonRows, width)
	case m.bookingsErr != nil:
		return errorStyle.Render("Could not load bookings: "+m.bookingsErr.Error()) + "\n" +
			mutedStyle.Render("press r to try again")
	case m.bookings.TotalPages() == 0:
		return mutedStyle.Render("No bookings yet. Find a venue and press b to book it.")
	}

	b := newScreenBuilder()
	for i, bk := range m.bookings.Visible() {
		b.add(formatBookingRow(bk, i == m.cursor, width))
	}
	b.add("")
	b.add(carouselView{Page: m.bookings.Page(), TotalPages: m.bookings.TotalPages()}.Controls())
	return b.String()
}

func formatBookingRow(bk storage.Booking, selected bool, width int) string {
	status := FitCellContent(string(bk.Status), 10)
	date := bk.EventDate.Format("2006-01-02")
	guests := FitCellContent(listing.FormatCount(bk.Guests)+" guests", 14)
	venue := FitCellContent(bk.VenueID, width*30/100)

	if selected {
		line := strings.Join([]string{status, date, guests, venue, bk.ID}, " ")
		return selectedRowStyle.Render(FitToWidth(line, width))
	}

	statusStyle := pendingStyle
	if bk.Status == storage.BookingConfirmed {
		statusStyle = confirmedStyle
	}
	return strings.Join([]string{
		statusStyle.Render(status),
		date,
		guests,
		venueNameStyle.Render(venue),
		idStyle.Render(bk.ID),
	}, " ")
}
