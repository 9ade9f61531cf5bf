// Package tui is the terminal front-end: a Bubble Tea program that picks an
// image file, shows its ASCII art and offers the copy and save actions of a
// session.Session.
package tui

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/internal/log"
	"github.com/wbrown/img2ascii/session"
)

type mode int

const (
	modeBrowse mode = iota
	modeView
	modeNotice
	modeHelp
)

// decodedMsg carries the result of decoding a file off the event loop.
type decodedMsg struct {
	path string
	img  image.Image
	err  error
}

// decodeFile returns a command that decodes path.
func decodeFile(path string) tea.Cmd {
	return func() tea.Msg {
		img, _, err := imageutil.LoadImage(path)
		return decodedMsg{path: path, img: img, err: err}
	}
}

// Options configures a Model.
type Options struct {
	// Dir is listed by the file picker.
	Dir string
	// SaveDir receives ascii-art.txt.
	SaveDir string
	// Path, when set, is opened on start.
	Path string
}

// Model is the Bubble Tea model. The session it wraps is only touched from
// Update.
type Model struct {
	sess *session.Session
	opts Options

	mode   mode
	prev   mode
	notice string

	picker  picker
	loading string
	help    *helpRenderer

	width  int
	height int
}

// NewModel creates a model over sess.
func NewModel(sess *session.Session, opts Options) Model {
	m := Model{
		sess:   sess,
		opts:   opts,
		picker: newPicker(opts.Dir),
		help:   &helpRenderer{},
	}
	if sess.HasImage() {
		m.mode = modeView
	}
	return m
}

// Init opens Options.Path, if any.
func (m Model) Init() tea.Cmd {
	if m.opts.Path == "" {
		return nil
	}
	return decodeFile(m.opts.Path)
}

// Update handles key, window and decode messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.picker.setRows(m.pickerRows())
		return m, nil

	case decodedMsg:
		return m.handleDecoded(msg), nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeNotice:
			m.mode = m.prev
			m.notice = ""
			return m, nil
		case modeHelp:
			m.mode = modeView
			return m, nil
		case modeBrowse:
			return m.updateBrowse(msg)
		case modeView:
			return m.updateView(msg)
		}
	}
	return m, nil
}

func (m Model) handleDecoded(msg decodedMsg) Model {
	m.loading = ""
	if msg.err != nil {
		log.Warn("decode failed", "path", msg.path, "err", msg.err)
		return m.showNotice(fmt.Sprintf("Could not open %v", msg.err))
	}
	if err := m.sess.SetImage(msg.img); err != nil {
		if errors.Is(err, img2ascii.ErrDegenerateImage) {
			return m.showNotice(filepath.Base(msg.path) + " has no pixels to convert.")
		}
		return m.showNotice(err.Error())
	}
	m.mode = modeView
	return m
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.picker.up()
	case tea.KeyDown:
		m.picker.down()
	case tea.KeyEnter:
		path, ok := m.picker.current()
		if !ok || m.loading != "" {
			return m, nil
		}
		m.loading = path
		return m, decodeFile(path)
	case tea.KeyEsc:
		if m.sess.HasImage() {
			m.mode = modeView
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyBackspace:
		if f := m.picker.filter; f != "" {
			r := []rune(f)
			m.picker.setFilter(string(r[:len(r)-1]))
		}
	case tea.KeyRunes, tea.KeySpace:
		m.picker.setFilter(m.picker.filter + string(msg.Runes))
	}
	return m, nil
}

func (m Model) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "s":
		return m.setProfile(img2ascii.Small), nil
	case "m":
		return m.setProfile(img2ascii.Medium), nil
	case "l":
		return m.setProfile(img2ascii.Large), nil
	case "c":
		if !m.sess.ExportEnabled() {
			return m, nil
		}
		if _, err := m.sess.Copy(); err != nil {
			return m.showNotice(session.CopyFailedNotice), nil
		}
		return m.showNotice(session.CopiedNotice), nil
	case "d":
		path, err := m.sess.Save(m.opts.SaveDir)
		if err != nil {
			return m.showNotice(err.Error()), nil
		}
		if path != "" {
			return m.showNotice("Saved " + path), nil
		}
	case "x":
		m.sess.Clear()
		m.mode = modeBrowse
	case "o":
		m.picker = newPicker(m.opts.Dir)
		m.picker.setRows(m.pickerRows())
		m.mode = modeBrowse
	case "?":
		m.mode = modeHelp
	}
	return m, nil
}

func (m Model) setProfile(p img2ascii.SizeProfile) Model {
	if err := m.sess.SetProfile(p); err != nil {
		return m.showNotice(err.Error())
	}
	return m
}

func (m Model) showNotice(text string) Model {
	if m.mode != modeNotice {
		m.prev = m.mode
	}
	m.mode = modeNotice
	m.notice = text
	return m
}

// View renders the current mode.
func (m Model) View() string {
	switch m.mode {
	case modeNotice:
		box := noticeStyle.Render(m.notice + "\n\n" + dimStyle.Render("press any key"))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	case modeHelp:
		return m.help.render(m.width)
	case modeView:
		return m.viewArt()
	default:
		out := m.picker.view(m.width)
		if m.loading != "" {
			out += "\n" + dimStyle.Render("opening "+filepath.Base(m.loading)+"…")
		}
		return out
	}
}

// pickerRows leaves room for the picker's title and the loading line.
func (m Model) pickerRows() int {
	if m.height > 2 {
		return m.height - 2
	}
	return 0
}

func (m Model) viewArt() string {
	lines := m.sess.Art().Lines()
	if m.height > 1 && len(lines) > m.height-1 {
		lines = lines[:m.height-1]
	}
	if m.width > 0 {
		for i, line := range lines {
			lines[i] = runewidth.Truncate(line, m.width, "")
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteByte('\n')
	b.WriteString(m.statusBar())
	return b.String()
}

func (m Model) statusBar() string {
	art := m.sess.Art()
	left := profileStyle.Render(profileLabel(m.sess.Profile()))
	info := fmt.Sprintf("%dx%d  s/m/l size  c copy  d save  x clear  o open  ? help  q quit",
		art.Width, art.Height)
	if m.width > 0 {
		info = runewidth.Truncate(info, max(m.width-lipgloss.Width(left)-2, 0), "…")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, statusStyle.Render(info))
}
