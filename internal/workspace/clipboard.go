// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrNoClipboard is returned when no clipboard utility is installed.
var ErrNoClipboard = errors.New("no clipboard utility found: install xclip, xsel or wl-clipboard")

// SystemClipboard is the operating system clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the system clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// ReadAll returns the text currently on the system clipboard.
func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// Available reports whether a clipboard utility is usable on this system.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// CheckClipboard returns ErrNoClipboard when cb reports itself unavailable.
// Clipboards without an Available method are assumed usable.
func CheckClipboard(cb any) error {
	if a, ok := cb.(interface{ Available() bool }); ok && !a.Available() {
		return ErrNoClipboard
	}
	return nil
}
