package tui

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/session"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) Write(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func writePNG(t *testing.T, path string, img *imageutil.RGBAImage) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img.RGBA); err != nil {
		t.Fatal(err)
	}
}

// imageDir returns a directory with two images and one unrelated file.
func imageDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "gradient.png"), imageutil.CreateGradientImage(200, 100))
	writePNG(t, filepath.Join(dir, "bars.png"), imageutil.CreateColorBarsImage(60, 60))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// send feeds msg to m and runs any returned command that yields a
// decodedMsg, the way the program loop would.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	if cmd == nil {
		return model, nil
	}
	if decoded, ok := cmd().(decodedMsg); ok {
		return send(t, model, decoded)
	}
	return model, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func openGradient(t *testing.T, m Model) Model {
	t.Helper()

	m, _ = send(t, m, runes("grad"))
	m, _ = send(t, m, key(tea.KeyEnter))
	if m.mode != modeView {
		t.Fatalf("expected view mode after open, got %v (notice %q)", m.mode, m.notice)
	}
	return m
}

func TestPickerListsImagesOnly(t *testing.T) {
	t.Parallel()

	p := newPicker(imageDir(t))
	if len(p.names) != 2 || p.names[0] != "bars.png" || p.names[1] != "gradient.png" {
		t.Errorf("unexpected listing %v", p.names)
	}

	p.setFilter("grd")
	if len(p.visible) != 1 || p.visible[0] != "gradient.png" {
		t.Errorf("fuzzy filter should keep gradient.png, got %v", p.visible)
	}
	p.setFilter("zzz")
	if _, ok := p.current(); ok {
		t.Error("no match should leave nothing selected")
	}
}

func TestPickerMissingDir(t *testing.T) {
	t.Parallel()

	p := newPicker(filepath.Join(t.TempDir(), "missing"))
	if p.err == nil {
		t.Fatal("expected a listing error")
	}
	if !strings.Contains(p.view(80), "failed to list") {
		t.Error("the error should be shown in the picker")
	}
}

func TestOpenRendersMedium(t *testing.T) {
	t.Parallel()

	sess := session.New(nil)
	m := openGradient(t, NewModel(sess, Options{Dir: imageDir(t)}))

	art := sess.Art()
	if art.Width != 100 || art.Height != 50 {
		t.Errorf("expected 100x50, got %dx%d", art.Width, art.Height)
	}
	if !strings.Contains(m.View(), "Medium") {
		t.Error("status bar should name the profile")
	}
}

func TestInitOpensPath(t *testing.T) {
	t.Parallel()

	dir := imageDir(t)
	sess := session.New(nil)
	m := NewModel(sess, Options{Dir: dir, Path: filepath.Join(dir, "bars.png")})

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected a decode command")
	}
	m, _ = send(t, m, cmd())
	if m.mode != modeView || !sess.HasImage() {
		t.Error("initial path should be opened and shown")
	}
}

func TestProfileKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key           string
		width, height int
	}{
		{"s", 50, 25},
		{"l", 150, 75},
		{"m", 100, 50},
	}

	sess := session.New(nil)
	m := openGradient(t, NewModel(sess, Options{Dir: imageDir(t)}))

	for _, tt := range tests {
		m, _ = send(t, m, runes(tt.key))
		art := sess.Art()
		if art.Width != tt.width || art.Height != tt.height {
			t.Errorf("%s: expected %dx%d, got %dx%d", tt.key, tt.width, tt.height, art.Width, art.Height)
		}
	}
}

func TestCopyShowsNotice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"success", nil, session.CopiedNotice},
		{"failure", errors.New("denied"), session.CopyFailedNotice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cb := &fakeClipboard{err: tt.err}
			sess := session.New(nil, session.WithClipboard(cb))
			m := openGradient(t, NewModel(sess, Options{Dir: imageDir(t)}))
			before := sess.Art()

			m, _ = send(t, m, runes("c"))
			if m.mode != modeNotice || m.notice != tt.want {
				t.Errorf("expected notice %q, got %v %q", tt.want, m.mode, m.notice)
			}
			if sess.Art() != before {
				t.Error("copying must not change the art")
			}

			// Any key dismisses the notice.
			m, _ = send(t, m, runes("z"))
			if m.mode != modeView {
				t.Errorf("expected view mode after dismiss, got %v", m.mode)
			}
		})
	}
}

func TestSaveWritesFile(t *testing.T) {
	t.Parallel()

	saveDir := t.TempDir()
	sess := session.New(nil)
	m := openGradient(t, NewModel(sess, Options{Dir: imageDir(t), SaveDir: saveDir}))

	m, _ = send(t, m, runes("d"))
	if m.mode != modeNotice {
		t.Fatalf("expected a notice, got %v", m.mode)
	}
	data, err := os.ReadFile(filepath.Join(saveDir, session.DownloadName))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != sess.Art().Text {
		t.Error("saved file should hold the art")
	}
}

func TestClearReturnsToBrowse(t *testing.T) {
	t.Parallel()

	cb := &fakeClipboard{}
	sess := session.New(nil, session.WithClipboard(cb))
	m := openGradient(t, NewModel(sess, Options{Dir: imageDir(t)}))

	m, _ = send(t, m, runes("x"))
	if m.mode != modeBrowse || sess.HasImage() || sess.ExportEnabled() {
		t.Fatal("clear should empty the session and go back to the picker")
	}

	// Esc with nothing loaded quits.
	_, cmd := send(t, m, key(tea.KeyEsc))
	if !isQuit(cmd) {
		t.Error("esc in an empty picker should quit")
	}
}

func TestOpenKeepsImageUntilReplaced(t *testing.T) {
	t.Parallel()

	sess := session.New(nil)
	m := openGradient(t, NewModel(sess, Options{Dir: imageDir(t)}))
	before := sess.Art()

	m, _ = send(t, m, runes("o"))
	if m.mode != modeBrowse || !sess.HasImage() {
		t.Fatal("o should show the picker and keep the image")
	}
	m, _ = send(t, m, key(tea.KeyEsc))
	if m.mode != modeView || sess.Art() != before {
		t.Error("esc should return to the unchanged image")
	}
}

func TestDecodeFailureShowsNotice(t *testing.T) {
	t.Parallel()

	dir := imageDir(t)
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	sess := session.New(nil)
	m := NewModel(sess, Options{Dir: dir})
	m, _ = send(t, m, runes("broken"))
	m, _ = send(t, m, key(tea.KeyEnter))

	if m.mode != modeNotice || !strings.Contains(m.notice, "broken.png") {
		t.Errorf("expected a notice naming the file, got %v %q", m.mode, m.notice)
	}
	if sess.HasImage() {
		t.Error("a failed decode must not fill the slot")
	}
	m, _ = send(t, m, key(tea.KeyEnter))
	if m.mode != modeBrowse {
		t.Errorf("dismissing should return to the picker, got %v", m.mode)
	}
}

func TestViewTruncatesToWidth(t *testing.T) {
	t.Parallel()

	sess := session.New(nil, session.WithProfile(img2ascii.Large))
	m := openGradient(t, NewModel(sess, Options{Dir: imageDir(t)}))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 20 {
		t.Errorf("expected 19 art rows plus the status bar, got %d lines", len(lines))
	}
	for i, line := range lines[:len(lines)-1] {
		if len(line) > 40 {
			t.Errorf("line %d is %d wide", i, len(line))
		}
	}
}

func TestHelpToggle(t *testing.T) {
	t.Parallel()

	sess := session.New(nil)
	m := openGradient(t, NewModel(sess, Options{Dir: imageDir(t)}))

	m, _ = send(t, m, runes("?"))
	if m.mode != modeHelp {
		t.Fatalf("expected help mode, got %v", m.mode)
	}
	if m.View() == "" {
		t.Error("help should render")
	}
	m, _ = send(t, m, runes("?"))
	if m.mode != modeView {
		t.Errorf("any key should close help, got %v", m.mode)
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()

	sess := session.New(nil)
	m := openGradient(t, NewModel(sess, Options{Dir: imageDir(t)}))
	if _, cmd := send(t, m, runes("q")); !isQuit(cmd) {
		t.Error("q should quit")
	}
	if _, cmd := send(t, m, key(tea.KeyCtrlC)); !isQuit(cmd) {
		t.Error("ctrl+c should quit")
	}
}

func TestProfileLabel(t *testing.T) {
	t.Parallel()

	for p, want := range map[img2ascii.SizeProfile]string{
		img2ascii.Small:  "Small",
		img2ascii.Medium: "Medium",
		img2ascii.Large:  "Large",
	} {
		if got := profileLabel(p); got != want {
			t.Errorf("profileLabel(%s) = %q, want %q", p, got, want)
		}
	}
}

func TestPickerScrollPersists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range 10 {
		writePNG(t, filepath.Join(dir, fmt.Sprintf("img%d.png", i)), imageutil.CreateGradientImage(4, 4))
	}

	m := NewModel(session.New(nil), Options{Dir: dir})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 5})

	for range 5 {
		m, _ = send(t, m, key(tea.KeyDown))
		_ = m.View()
	}
	if m.picker.selected != 5 || m.picker.offset != 3 {
		t.Fatalf("expected selection 5 in window at 3, got %d at %d", m.picker.selected, m.picker.offset)
	}
	view := m.View()
	if strings.Contains(view, "img2.png") || !strings.Contains(view, "img5.png") {
		t.Errorf("window should show img3 to img5, got %q", view)
	}

	// Moving up inside the window must not jump back to the top.
	m, _ = send(t, m, key(tea.KeyUp))
	if m.picker.offset != 3 {
		t.Errorf("window should stay at 3, got %d", m.picker.offset)
	}
	for range 2 {
		m, _ = send(t, m, key(tea.KeyUp))
	}
	if m.picker.selected != 2 || m.picker.offset != 2 {
		t.Errorf("expected selection 2 in window at 2, got %d at %d", m.picker.selected, m.picker.offset)
	}
}
