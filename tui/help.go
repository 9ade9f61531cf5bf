package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# img2ascii

Converts an image to ASCII art with the ramp ` + "`\" .:-=+*#%@\"`" + `,
darkest to brightest.

## Viewing

| Key | Action |
|-----|--------|
| s / m / l | small, medium or large output |
| c | copy the art to the clipboard |
| d | save the art as ascii-art.txt |
| x | clear the image |
| o | open another image |
| ? | toggle this help |
| q | quit |

## Opening

Type to filter the file list, move with the arrow keys and press enter to
open. Esc goes back to the current image.
`

// helpRenderer renders the help screen, caching the result per width.
type helpRenderer struct {
	width    int
	rendered string
}

func (h *helpRenderer) render(width int) string {
	if width <= 0 {
		width = 80
	}
	if h.rendered != "" && h.width == width {
		return h.rendered
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}

	h.width = width
	h.rendered = strings.TrimRight(out, "\n ")
	return h.rendered
}
