package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// minWrapWidth keeps glamour from wrapping every word on tiny terminals.
const minWrapWidth = 24

// helpMarkdown is the tip panel shown by the help key.
const helpMarkdown = `
## Moving cards

- Press a card with the left mouse button and drag it.
- Release over a column to move the task there.
- Releasing outside the board puts the card back.
- **esc** abandons a drag without changing anything.

Cards keep their slot while lifted, so nothing shifts until you let go.
`

// markdownRenderer caches one glamour renderer per wrap width.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// render returns styled markdown, or the trimmed source if glamour fails.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	wrap := max(width, minWrapWidth)
	if r.renderer == nil || r.width != wrap {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return markdown
		}
		r.renderer, r.width = renderer, wrap
	}
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.Trim(out, "\n")
}
