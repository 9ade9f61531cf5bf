package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/wbrown/img2ascii/imageutil"
)

// picker is a fuzzy-filtered list of the image files in one directory.
type picker struct {
	dir      string
	names    []string
	visible  []string
	filter   string
	selected int
	offset   int
	// rows is how many entries fit on screen; zero shows them all.
	rows int
	err  error
}

func newPicker(dir string) picker {
	p := picker{dir: dir}
	p.names, p.err = listImages(dir)
	p.applyFilter()
	return p
}

// listImages returns the sorted names of the decodable files in dir.
func listImages(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !imageutil.IsImagePath(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (p *picker) setFilter(f string) {
	p.filter = f
	p.selected = 0
	p.offset = 0
	p.applyFilter()
}

func (p *picker) applyFilter() {
	if p.filter == "" {
		p.visible = append([]string(nil), p.names...)
		return
	}
	matches := fuzzy.Find(p.filter, p.names)
	p.visible = make([]string, len(matches))
	for i, m := range matches {
		p.visible[i] = m.Str
	}
}

func (p *picker) up() {
	if p.selected > 0 {
		p.selected--
	}
	p.scroll()
}

func (p *picker) down() {
	if p.selected < len(p.visible)-1 {
		p.selected++
	}
	p.scroll()
}

func (p *picker) setRows(rows int) {
	p.rows = max(rows, 0)
	p.scroll()
}

// scroll moves the window just far enough to show the selection.
func (p *picker) scroll() {
	switch {
	case p.rows == 0:
		p.offset = 0
	case p.selected < p.offset:
		p.offset = p.selected
	case p.selected >= p.offset+p.rows:
		p.offset = p.selected - p.rows + 1
	}
}

// current returns the path of the highlighted file.
func (p *picker) current() (string, bool) {
	if len(p.visible) == 0 {
		return "", false
	}
	return filepath.Join(p.dir, p.visible[p.selected]), true
}

// view renders the window of entries starting at offset.
func (p picker) view(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Open image"))
	b.WriteString("  ")
	b.WriteString(filterStyle.Render("> " + p.filter))
	b.WriteByte('\n')

	switch {
	case p.err != nil:
		b.WriteString(errorStyle.Render(p.err.Error()))
		return b.String()
	case len(p.names) == 0:
		b.WriteString(dimStyle.Render("no images in " + p.dirLabel()))
		return b.String()
	case len(p.visible) == 0:
		b.WriteString(dimStyle.Render("no matches"))
		return b.String()
	}

	rows := p.rows
	if rows == 0 {
		rows = len(p.visible)
	}
	end := min(p.offset+rows, len(p.visible))
	for i := p.offset; i < end; i++ {
		line := "  " + p.visible[i]
		if width > 0 {
			line = runewidth.Truncate(line, width, "…")
		}
		if i == p.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (p picker) dirLabel() string {
	if p.dir == "" {
		return "."
	}
	return p.dir
}
