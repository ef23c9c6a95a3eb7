package ui

import (
	"io"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown writes content to w. With styled set it is rendered with
// glamour, wrapped at width; otherwise the markdown source is written as is.
func RenderMarkdown(w io.Writer, content string, styled bool, width int) error {
	if styled {
		options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
		if width > 0 {
			options = append(options, glamour.WithWordWrap(width))
		}
		if renderer, err := glamour.NewTermRenderer(options...); err == nil {
			if rendered, err := renderer.Render(content); err == nil {
				content = rendered
			}
		}
	}
	_, err := io.WriteString(w, content)
	return err
}
