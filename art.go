package img2ascii

import (
	"io"
	"strings"
)

// Art is the result of one conversion.
type Art struct {
	// Width and Height are the grid dimensions in characters.
	Width  int
	Height int

	// Profile is the size profile the art was rendered for.
	Profile SizeProfile

	// Text holds Height rows of Width characters, each followed by '\n'.
	Text string
}

// String returns the art text.
func (a Art) String() string {
	return a.Text
}

// Empty reports whether there is anything to show or export.
func (a Art) Empty() bool {
	return a.Text == ""
}

// Lines returns the rows without their line terminators.
func (a Art) Lines() []string {
	if a.Text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(a.Text, "\n"), "\n")
}

// WriteTo writes the art text to w.
func (a Art) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, a.Text)
	return int64(n), err
}
