// Package otp models the segmented one-time-code input: a fixed number of
// single-digit cells plus the index of the cell that receives the next key.
package otp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteCode is returned by Submit when any cell is empty or the
// cells do not form an all-digit code of the configured length.
var ErrIncompleteCode = errors.New("enter the complete code")

// Code is the view-model behind the code input widget.
type Code struct {
	cells []string
	focus int
}

// New returns an empty code with n cells and focus on the first one.
func New(n int) *Code {
	if n < 1 {
		n = 1
	}
	return &Code{cells: make([]string, n)}
}

// Len returns the number of cells.
func (c *Code) Len() int { return len(c.cells) }

// Focus returns the index of the focused cell.
func (c *Code) Focus() int { return c.focus }

// SetFocus moves focus to index if it is a valid cell.
func (c *Code) SetFocus(index int) {
	if index >= 0 && index < len(c.cells) {
		c.focus = index
	}
}

// Cell returns the content of cell index ("" when empty).
func (c *Code) Cell(index int) string {
	if index < 0 || index >= len(c.cells) {
		return ""
	}
	return c.cells[index]
}

// Cells returns a copy of all cells.
func (c *Code) Cells() []string {
	out := make([]string, len(c.cells))
	copy(out, c.cells)
	return out
}

// OnDigit writes s into cell index. Only a single digit or "" (delete) is
// accepted; anything else is ignored. A written digit advances focus unless
// index is the last cell. Reports whether the input was accepted.
func (c *Code) OnDigit(index int, s string) bool {
	if index < 0 || index >= len(c.cells) {
		return false
	}
	if s != "" && !isDigits(s, 1) {
		return false
	}
	c.cells[index] = s
	if s != "" && index < len(c.cells)-1 {
		c.focus = index + 1
	}
	return true
}

// OnBackspace moves focus back when cell index is already empty.
// The previous cell keeps its content.
func (c *Code) OnBackspace(index int) {
	if index < 0 || index >= len(c.cells) {
		return
	}
	if c.cells[index] == "" && index > 0 {
		c.focus = index - 1
	}
}

// OnPaste fills every cell from text if it is exactly Len() digits and moves
// focus to the last cell. Any other text leaves the code untouched.
// The caller suppresses the default paste handling either way.
func (c *Code) OnPaste(text string) bool {
	if !isDigits(text, len(c.cells)) {
		return false
	}
	for i, r := range text {
		c.cells[i] = string(r)
	}
	c.focus = len(c.cells) - 1
	return true
}

// Value concatenates all cells.
func (c *Code) Value() string {
	return strings.Join(c.cells, "")
}

// Complete reports whether every cell holds a digit.
func (c *Code) Complete() bool {
	return isDigits(c.Value(), len(c.cells))
}

// Submit returns the code if it is complete.
func (c *Code) Submit() (string, error) {
	v := c.Value()
	if !isDigits(v, len(c.cells)) {
		return "", fmt.Errorf("%w: %d of %d digits", ErrIncompleteCode, len(v), len(c.cells))
	}
	return v, nil
}

// Reset clears every cell and focuses the first.
func (c *Code) Reset() {
	for i := range c.cells {
		c.cells[i] = ""
	}
	c.focus = 0
}

// isDigits reports whether s is exactly n ASCII digits.
func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
