package display

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Terminal clears an ANSI terminal and writes each frame from the top-left
// corner. A non-nil Star style colours every star glyph.
type Terminal struct {
	w     io.Writer
	Star  *lipgloss.Style
	Glyph rune
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w, Glyph: '*'}
}

func (t *Terminal) Start() error {
	_, err := io.WriteString(t.w, hideCursor)
	return err
}

func (t *Terminal) Stop() error {
	_, err := io.WriteString(t.w, showCursor)
	return err
}

func (t *Terminal) Render(frame string) error {
	var b strings.Builder
	b.Grow(len(clearScreen) + len(frame))
	b.WriteString(clearScreen)
	if t.Star == nil {
		b.WriteString(frame)
	} else {
		styled := t.Star.Render(string(t.Glyph))
		for _, r := range frame {
			if r == t.Glyph {
				b.WriteString(styled)
				continue
			}
			b.WriteRune(r)
		}
	}
	_, err := io.WriteString(t.w, b.String())
	return err
}
