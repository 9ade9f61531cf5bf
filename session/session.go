// Package session holds the state behind an interactive front-end: the
// single "current image" slot, the selected size profile and the most
// recent rendering, plus the copy and download actions on it.
//
// A Session is driven by discrete user actions. It is not safe for
// concurrent use; each front-end calls it from its one event loop.
package session

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/internal/log"
)

// DownloadName is the file name used when exporting art.
const DownloadName = "ascii-art.txt"

// Notifications shown after a copy attempt.
const (
	CopiedNotice     = "ASCII Art copied to clipboard!"
	CopyFailedNotice = "Failed to copy ASCII Art. Please try again."
)

// Clipboard receives copied art.
type Clipboard interface {
	Write(text string) error
}

// ClipboardError reports a failed clipboard write. The session state is
// unchanged when it is returned.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard write failed: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}

// ErrNoClipboard is wrapped in a ClipboardError when the session was built
// without a clipboard.
var ErrNoClipboard = errors.New("no clipboard configured")

// Session is the controller shared by the event handlers of one front-end.
type Session struct {
	renderer  *img2ascii.Renderer
	clipboard Clipboard
	profile   img2ascii.SizeProfile

	current image.Image
	art     img2ascii.Art
}

// Option configures a Session.
type Option func(*Session)

// WithClipboard sets the clipboard used by Copy.
func WithClipboard(c Clipboard) Option {
	return func(s *Session) {
		s.clipboard = c
	}
}

// WithProfile sets the initial size profile.
func WithProfile(p img2ascii.SizeProfile) Option {
	return func(s *Session) {
		s.profile = p
	}
}

// New creates an empty session. A nil renderer selects the defaults.
func New(renderer *img2ascii.Renderer, opts ...Option) *Session {
	if renderer == nil {
		renderer = img2ascii.NewRenderer()
	}
	s := &Session{
		renderer: renderer,
		profile:  img2ascii.DefaultProfile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open decodes an image from r and makes it current. If decoding fails
// the session is left as it was.
func (s *Session) Open(r io.Reader) error {
	img, format, err := imageutil.Decode(r)
	if err != nil {
		return err
	}
	log.Debug("decoded image", "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return s.SetImage(img)
}

// OpenFile opens and decodes the image at path.
func (s *Session) OpenFile(path string) error {
	img, format, err := imageutil.LoadImage(path)
	if err != nil {
		return err
	}
	log.Debug("loaded image", "path", path, "format", format)
	return s.SetImage(img)
}

// SetImage stores an already decoded image in the current slot, replacing
// any previous one, and renders it with the selected profile. A rejected
// image leaves the session unchanged.
func (s *Session) SetImage(img image.Image) error {
	art, err := s.renderer.Render(img, s.profile)
	if err != nil {
		return err
	}
	s.current = img
	s.art = art
	log.Debug("rendered", "profile", s.profile, "width", art.Width, "height", art.Height)
	return nil
}

// Clear forgets the current image and its rendering. Export actions become
// no-ops until another image is set.
func (s *Session) Clear() {
	s.current = nil
	s.art = img2ascii.Art{}
}

// SetProfile selects a size profile and re-renders the current image, if
// there is one.
func (s *Session) SetProfile(p img2ascii.SizeProfile) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", img2ascii.ErrUnknownProfile, int(p))
	}
	s.profile = p
	if s.current == nil {
		return nil
	}

	art, err := s.renderer.Render(s.current, p)
	if err != nil {
		return err
	}
	s.art = art
	log.Debug("re-rendered", "profile", p, "width", art.Width, "height", art.Height)
	return nil
}

// Profile returns the selected size profile.
func (s *Session) Profile() img2ascii.SizeProfile {
	return s.profile
}

// Art returns the most recent rendering; empty when no image is held.
func (s *Session) Art() img2ascii.Art {
	return s.art
}

// HasImage reports whether the current slot is filled.
func (s *Session) HasImage() bool {
	return s.current != nil
}

// ExportEnabled reports whether copy and download have anything to act on.
func (s *Session) ExportEnabled() bool {
	return !s.art.Empty()
}

// Copy writes the art to the clipboard. It reports false with no error
// when there is nothing to copy.
func (s *Session) Copy() (bool, error) {
	if !s.ExportEnabled() {
		return false, nil
	}
	if s.clipboard == nil {
		return false, &ClipboardError{Err: ErrNoClipboard}
	}
	if err := s.clipboard.Write(s.art.Text); err != nil {
		log.Warn("copy failed", "err", err)
		return false, &ClipboardError{Err: err}
	}
	return true, nil
}

// WriteTo writes the art as UTF-8 text. Nothing is written when there is
// no art.
func (s *Session) WriteTo(w io.Writer) (int64, error) {
	if !s.ExportEnabled() {
		return 0, nil
	}
	return s.art.WriteTo(w)
}

// Save writes the art to DownloadName inside dir and returns the path.
// It returns an empty path with no error when there is nothing to save.
func (s *Session) Save(dir string) (string, error) {
	if !s.ExportEnabled() {
		return "", nil
	}
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, DownloadName)
	if err := os.WriteFile(path, []byte(s.art.Text), 0o644); err != nil {
		return "", fmt.Errorf("failed to save art: %w", err)
	}
	log.Info("saved art", "path", path)
	return path, nil
}
