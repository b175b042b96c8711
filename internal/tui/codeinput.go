package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/juanibiapina/venue/internal/otp"
)

type codeAction int

const (
	codeNone codeAction = iota
	codeSubmit
)

// clipboardMsg carries the system clipboard into the code input.
type clipboardMsg struct {
	text string
	err  error
}

func readClipboard() tea.Msg {
	text, err := clipboard.ReadAll()
	return clipboardMsg{text: text, err: err}
}

// codeInput is the on-screen form of an otp.Code: one box per digit.
type codeInput struct {
	code    *otp.Code
	problem string
}

func newCodeInput(length int) codeInput {
	return codeInput{code: otp.New(length)}
}

// Update handles a key while the code has focus. Pastes never reach any
// other handler: a bracketed paste is offered to the code whole, ctrl+v
// reads the clipboard first.
func (c codeInput) Update(msg tea.KeyMsg) (codeInput, codeAction, tea.Cmd) {
	if msg.Paste {
		c = c.paste(string(msg.Runes))
		return c, codeNone, nil
	}

	focus := c.code.Focus()
	switch {
	case key.Matches(msg, keys.Paste):
		return c, codeNone, readClipboard
	case key.Matches(msg, keys.Enter):
		if _, err := c.code.Submit(); err != nil {
			c.problem = err.Error()
			return c, codeNone, nil
		}
		c.problem = ""
		return c, codeSubmit, nil
	case msg.Type == tea.KeyBackspace:
		if c.code.Cell(focus) != "" {
			c.code.OnDigit(focus, "")
		} else {
			c.code.OnBackspace(focus)
		}
	case msg.Type == tea.KeyLeft:
		c.code.SetFocus(focus - 1)
	case msg.Type == tea.KeyRight:
		c.code.SetFocus(focus + 1)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		if c.code.OnDigit(focus, string(msg.Runes)) {
			c.problem = ""
		}
	}
	return c, codeNone, nil
}

// Pasted applies clipboard text read by readClipboard.
func (c codeInput) Pasted(msg clipboardMsg) codeInput {
	if msg.err != nil {
		c.problem = "clipboard unavailable"
		return c
	}
	return c.paste(msg.text)
}

func (c codeInput) paste(text string) codeInput {
	if c.code.OnPaste(text) {
		c.problem = ""
	} else {
		c.problem = fmt.Sprintf("paste must be exactly %d digits", c.code.Len())
	}
	return c
}

// Value is the entered code.
func (c codeInput) Value() string { return c.code.Value() }

// Reset clears every cell.
func (c codeInput) Reset() codeInput {
	c.code.Reset()
	c.problem = ""
	return c
}

func (c codeInput) View() string {
	cells := make([]string, c.code.Len())
	for i := range cells {
		style := cellStyle
		if i == c.code.Focus() {
			style = focusedCellStyle
		}
		cells[i] = style.Render(c.code.Cell(i))
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if c.problem != "" {
		view += "\n" + errorStyle.Render(c.problem)
	}
	return view
}
