// Package clipboard writes text to the system clipboard by piping it to
// the platform's clipboard command.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupported is returned when no clipboard command is known for the
// running platform.
var ErrUnsupported = errors.New("clipboard not supported")

// System writes to the clipboard of the machine the process runs on.
type System struct{}

// Write copies text to the system clipboard.
func (System) Write(text string) error {
	return Write(text)
}

// Write copies text to the system clipboard.
func Write(text string) error {
	cmd, args := clipboardCmd(runtime.GOOS, os.Getenv)
	if cmd == "" {
		return fmt.Errorf("%w on %s", ErrUnsupported, runtime.GOOS)
	}

	c := exec.Command(cmd, args...)
	c.Stdin = strings.NewReader(text)
	if out, err := c.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", cmd, err, msg)
		}
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}

// clipboardCmd returns the clipboard command and arguments for goos.
func clipboardCmd(goos string, getenv func(string) string) (string, []string) {
	switch goos {
	case "darwin":
		return "pbcopy", nil
	case "linux", "freebsd", "openbsd", "netbsd":
		if getenv("WAYLAND_DISPLAY") != "" {
			return "wl-copy", nil
		}
		return "xclip", []string{"-selection", "clipboard"}
	case "windows":
		return "clip.exe", nil
	default:
		return "", nil
	}
}
