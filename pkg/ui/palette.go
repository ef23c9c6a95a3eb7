package ui

import (
	"github.com/arthur-debert/cuepine/pkg/style"
	"github.com/charmbracelet/lipgloss"
)

// palette decorates the pieces of a line. The text renderer uses the plain
// palette, the terminal renderer the styled one; layout is shared.
type palette struct {
	header  func(string) string
	section func(string) string
	group   func(string) string
	ok      func(string) string
	bad     func(string) string
	warn    func(string) string
	muted   func(string) string
	path    func(string) string
	command func(string) string
}

func plainPalette() palette {
	id := func(s string) string { return s }
	return palette{
		header: id, section: id, group: id,
		ok: id, bad: id, warn: id,
		muted: id, path: id, command: id,
	}
}

func render(st lipgloss.Style) func(string) string {
	return func(s string) string { return st.Render(s) }
}

func termPalette() palette {
	return palette{
		header:  render(style.ManifestHeaderStyle),
		section: render(style.SectionStyle),
		group:   render(style.GroupStyle),
		ok:      render(style.SuccessStyle),
		bad:     render(style.ErrorStyle),
		warn:    render(style.WarningStyle),
		muted:   render(style.MutedStyle),
		path:    render(style.PathStyle),
		command: render(style.CommandStyle),
	}
}
