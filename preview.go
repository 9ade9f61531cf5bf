package img2ascii

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// ErrEmptyArt is returned when asked to preview art with no rows.
var ErrEmptyArt = errors.New("img2ascii: nothing to preview")

// PreviewOptions controls how art is drawn to a bitmap.
type PreviewOptions struct {
	// FontSize in points. Default 12.
	FontSize float64
	// DPI used to turn points into pixels. Default 72.
	DPI float64
	// Padding around the text block in pixels. Zero selects the default
	// of 8; a negative value disables padding.
	Padding int
	// Foreground and Background colors. Defaults are white on near-black,
	// so the ramp's space reads as the darkest cell.
	Foreground color.Color
	Background color.Color
}

func (o PreviewOptions) withDefaults() PreviewOptions {
	if o.FontSize <= 0 {
		o.FontSize = 12
	}
	if o.DPI <= 0 {
		o.DPI = 72
	}
	if o.Padding < 0 {
		o.Padding = 0
	} else if o.Padding == 0 {
		o.Padding = 8
	}
	if o.Foreground == nil {
		o.Foreground = color.White
	}
	if o.Background == nil {
		o.Background = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	}
	return o
}

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(gomono.TTF)
})

// RenderImage draws the art with the Go Mono face, one glyph cell per
// character.
func RenderImage(art Art, opts PreviewOptions) (*image.RGBA, error) {
	lines := art.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyArt
	}
	opts = opts.withDefaults()

	ttf, err := monoFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview font: %w", err)
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.FontSize,
		DPI:     opts.DPI,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	advance, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, fmt.Errorf("preview font has no advance for 'M'")
	}
	metrics := face.Metrics()
	cellWidth := advance.Ceil()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	columns := 0
	for _, line := range lines {
		columns = max(columns, len(line))
	}

	width := columns*cellWidth + 2*opts.Padding
	height := len(lines)*lineHeight + 2*opts.Padding
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(opts.DPI)
	ctx.SetFont(ttf)
	ctx.SetFontSize(opts.FontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(opts.Foreground))
	ctx.SetHinting(font.HintingFull)

	for row, line := range lines {
		baseline := opts.Padding + row*lineHeight + ascent
		for col := 0; col < len(line); col++ {
			if line[col] == ' ' {
				continue
			}
			// Place each glyph on the grid so rows stay aligned even if
			// hinting nudges individual advances.
			pt := freetype.Pt(opts.Padding+col*cellWidth, baseline)
			if _, err := ctx.DrawString(line[col:col+1], pt); err != nil {
				return nil, fmt.Errorf("failed to draw glyph %q: %w", line[col], err)
			}
		}
	}

	return img, nil
}

// RenderPNG writes a PNG preview of the art to w.
func RenderPNG(w io.Writer, art Art, opts PreviewOptions) error {
	img, err := RenderImage(art, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
