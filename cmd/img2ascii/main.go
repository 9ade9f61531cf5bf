// Command img2ascii converts images to ASCII art from the command line, in
// a terminal UI or through a small web page.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/clipboard"
	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/internal/config"
	"github.com/wbrown/img2ascii/internal/log"
	"github.com/wbrown/img2ascii/server"
	"github.com/wbrown/img2ascii/session"
	"github.com/wbrown/img2ascii/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := environment{
		stdin:         os.Stdin,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		stdinTerminal: term.IsTerminal(int(os.Stdin.Fd())),
		clipboard:     clipboard.System{},
	}
	err := run(ctx, os.Args[1:], env)
	code := exitCode(err)
	if code == 1 {
		fmt.Fprintf(os.Stderr, "img2ascii: %v\n", err)
	}
	stop()
	os.Exit(code)
}

// usageError is a flag parsing failure. The flag set has already printed
// the problem and the usage text.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitCode follows the flag package: 0 for success and -h, 2 for bad
// usage, 1 for anything else.
func exitCode(err error) int {
	var usage usageError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &usage):
		return 2
	default:
		return 1
	}
}

// environment is what run needs from the process.
type environment struct {
	stdin         io.Reader
	stdout        io.Writer
	stderr        io.Writer
	stdinTerminal bool
	clipboard     session.Clipboard
}

type options struct {
	input       string
	size        string
	output      string
	copy        bool
	interp      string
	configPath  string
	serve       bool
	addr        string
	tui         bool
	dir         string
	verbose     bool
	printConfig bool
}

func parseFlags(args []string, stderr io.Writer) (options, map[string]bool, error) {
	var o options
	fs := flag.NewFlagSet("img2ascii", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.input, "input", "",
		"Path to the input image, - for stdin")
	fs.StringVar(&o.size, "size", "",
		"Output size: small (50x40), medium (100x80) or large (150x120)")
	fs.StringVar(&o.output, "output", "",
		"Write the art to this file instead of stdout; a .png name writes a preview image")
	fs.BoolVar(&o.copy, "copy", false,
		"Copy the art to the clipboard")
	fs.StringVar(&o.interp, "interp", "",
		"Resampling filter: bilinear, nearest, catmull-rom, lanczos or opencv")
	fs.StringVar(&o.configPath, "config", "",
		"Path to a YAML config file (default "+config.DefaultPath()+")")
	fs.BoolVar(&o.serve, "serve", false,
		"Serve the web page instead of converting once")
	fs.StringVar(&o.addr, "addr", "",
		"Listen address for -serve")
	fs.BoolVar(&o.tui, "tui", false,
		"Start the terminal UI")
	fs.StringVar(&o.dir, "dir", "",
		"Directory listed by the terminal UI")
	fs.BoolVar(&o.verbose, "v", false,
		"Verbose logging")
	fs.BoolVar(&o.printConfig, "print-config", false,
		"Print the effective configuration and exit")

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	if fs.NArg() > 0 && o.input == "" {
		o.input = fs.Arg(0)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return o, set, nil
}

// loadConfig reads the config file and lays the explicitly set flags over
// it.
func loadConfig(o options, set map[string]bool) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	if set["size"] {
		p, err := img2ascii.ParseProfile(o.size)
		if err != nil {
			return nil, err
		}
		cfg.Size = p
	}
	if set["interp"] {
		interp, err := imageutil.ParseInterpolation(o.interp)
		if err != nil {
			return nil, err
		}
		cfg.Interpolation = interp
	}
	if set["addr"] {
		cfg.Server.Listen = o.addr
	}
	if set["dir"] {
		cfg.TUI.Dir = o.dir
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, env environment) error {
	o, set, err := parseFlags(args, env.stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError{err: err}
	}

	log.SetOutput(env.stderr)
	cfg, err := loadConfig(o, set)
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if o.printConfig {
		out, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = env.stdout.Write(out)
		return err
	}

	if cfg.Interpolation == imageutil.InterpolationOpenCV && !imageutil.OpenCVAvailable {
		log.Warn("built without gocv, using bilinear")
	}
	renderer := img2ascii.NewRenderer(img2ascii.WithInterpolation(cfg.Interpolation))
	preview := img2ascii.PreviewOptions{FontSize: cfg.Preview.FontSize, DPI: cfg.Preview.DPI}

	if o.serve {
		srv := server.New(renderer, cfg.Server,
			server.WithDefaultProfile(cfg.Size),
			server.WithPreviewOptions(preview))
		return srv.Run(ctx)
	}

	sess := session.New(renderer,
		session.WithClipboard(env.clipboard),
		session.WithProfile(cfg.Size))

	if o.tui || (o.input == "" && env.stdinTerminal) {
		if log.GetLevel() > slog.LevelDebug {
			// Keep log lines from drawing over the UI.
			log.SetOutput(io.Discard)
		}
		return tui.Run(ctx, sess, tui.Options{
			Dir:     cfg.TUI.Dir,
			SaveDir: cfg.TUI.SaveDir,
			Path:    o.input,
		})
	}

	if o.input == "" || o.input == "-" {
		if err := sess.Open(env.stdin); err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
	} else if err := sess.OpenFile(o.input); err != nil {
		return err
	}

	if err := writeArt(sess, o.output, preview, env.stdout); err != nil {
		return err
	}

	if o.copy {
		if _, err := sess.Copy(); err != nil {
			log.Debug("copy failed", "err", err)
			fmt.Fprintln(env.stderr, session.CopyFailedNotice)
			return err
		}
		fmt.Fprintln(env.stderr, session.CopiedNotice)
	}
	return nil
}

// writeArt writes the session's art to stdout, a text file or a PNG
// preview, depending on the output name.
func writeArt(sess *session.Session, output string, preview img2ascii.PreviewOptions, stdout io.Writer) error {
	if output == "" {
		_, err := sess.WriteTo(stdout)
		return err
	}

	if strings.EqualFold(filepath.Ext(output), ".png") {
		img, err := img2ascii.RenderImage(sess.Art(), preview)
		if err != nil {
			return err
		}
		if err := imageutil.SavePNG(img, output); err != nil {
			return err
		}
		log.Info("wrote preview", "path", output)
		return nil
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if _, err := sess.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("wrote art", "path", output)
	return nil
}
