package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits.
// Used for the port, refresh interval, reminder offset and occasion day.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything that is not a digit.
// Pasted text bypasses this filter; Validator and IntValue handle that case.
func (e *NumericalEntry) TypedRune(r rune) {
	if r >= '0' && r <= '9' {
		e.Entry.TypedRune(r)
	}
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// IntValue parses the current text.
func (e *NumericalEntry) IntValue() (int, error) {
	return strconv.Atoi(strings.TrimSpace(e.Text))
}

// IntOr returns the parsed value, or fallback when the text is empty or invalid.
func (e *NumericalEntry) IntOr(fallback int) int {
	if v, err := e.IntValue(); err == nil {
		return v
	}
	return fallback
}

// SetInt replaces the text with v.
func (e *NumericalEntry) SetInt(v int) {
	e.SetText(strconv.Itoa(v))
}
