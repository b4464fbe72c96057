// Package qr builds the review URL payload and renders it as a QR code.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/mdp/qrterminal/v3"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// ReviewURLTemplate is the Google review URL with a %s placeholder for the
// place identifier.
const ReviewURLTemplate = "https://search.google.com/local/writereview?placeid=%s"

var (
	// ErrEmptyPayload is returned when there is nothing to encode.
	ErrEmptyPayload = errors.New("qr: empty payload")
	// ErrEncode wraps failures reported by the encoder, most commonly a
	// payload too long for the configured recovery level.
	ErrEncode = errors.New("qr: encode failed")
)

// ReviewURL returns the review submission URL for placeID. The identifier is
// substituted verbatim.
func ReviewURL(placeID string) string {
	return fmt.Sprintf(ReviewURLTemplate, placeID)
}

// Options controls how a payload is rendered.
type Options struct {
	Level       qrcode.RecoveryLevel
	BoxSize     int // pixels per module
	Border      int // quiet zone width in modules
	DisplaySize int // edge length in pixels of the on-screen image
}

// DefaultOptions uses the lowest recovery level, 10px modules, a 4 module
// border and a 200px display image.
func DefaultOptions() Options {
	return Options{
		Level:       qrcode.Low,
		BoxSize:     10,
		Border:      4,
		DisplaySize: 200,
	}
}

// ParseLevel maps the usual single letter names (L, M, Q, H) to a recovery
// level.
func ParseLevel(s string) (qrcode.RecoveryLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L", "LOW":
		return qrcode.Low, nil
	case "M", "MEDIUM":
		return qrcode.Medium, nil
	case "Q", "HIGH":
		return qrcode.High, nil
	case "H", "HIGHEST":
		return qrcode.Highest, nil
	}
	return 0, fmt.Errorf("unknown recovery level %q", s)
}

// Code is a rendered QR code.
type Code struct {
	Payload string
	Modules [][]bool // true is a dark module, excludes the border
	Image   image.Image
	opts    Options
}

// Encode builds the module matrix for payload and paints it using opts.
func Encode(payload string, opts Options) (*Code, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	if opts.BoxSize <= 0 {
		opts.BoxSize = 1
	}
	if opts.Border < 0 {
		opts.Border = 0
	}

	q, err := qrcode.New(payload, opts.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	// The border is painted below so its width follows opts.Border.
	q.DisableBorder = true
	modules := q.Bitmap()

	return &Code{
		Payload: payload,
		Modules: modules,
		Image:   paint(modules, opts.BoxSize, opts.Border),
		opts:    opts,
	}, nil
}

var palette = color.Palette{color.White, color.Black}

func paint(modules [][]bool, box, border int) image.Image {
	n := len(modules)
	edge := (n + 2*border) * box
	img := image.NewPaletted(image.Rect(0, 0, edge, edge), palette)

	for y, row := range modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := (x + border) * box
			y0 := (y + border) * box
			for py := y0; py < y0+box; py++ {
				for px := x0; px < x0+box; px++ {
					img.SetColorIndex(px, py, 1)
				}
			}
		}
	}
	return img
}

// Size returns the number of modules per side, excluding the border.
func (c *Code) Size() int { return len(c.Modules) }

// PNG encodes the full-size image.
func (c *Code) PNG() ([]byte, error) {
	return encodePNG(c.Image)
}

// MinPixelsPerModule is the smallest module size FitSize will produce.
const MinPixelsPerModule = 2

// MinDisplaySize is the smallest display size that can hold the smallest QR
// version with the given border at MinPixelsPerModule.
func MinDisplaySize(border int) int {
	return (21 + 2*border) * MinPixelsPerModule
}

// DisplayPNG encodes the image scaled to the configured display size, or at
// full size when no display size is set.
func (c *Code) DisplayPNG() ([]byte, error) {
	return c.ScaledPNG(c.opts.DisplaySize)
}

// FitSize returns the edge length closest to size that is a whole number of
// pixels per module, never less than MinPixelsPerModule.
func (c *Code) FitSize(size int) int {
	edge := c.Size() + 2*c.opts.Border
	per := (size + edge/2) / edge
	if per < MinPixelsPerModule {
		per = MinPixelsPerModule
	}
	return per * edge
}

// ScaledPNG encodes the image scaled to roughly size x size pixels. The edge
// is snapped with FitSize so every module maps to a whole pixel block.
func (c *Code) ScaledPNG(size int) ([]byte, error) {
	if size <= 0 {
		return c.PNG()
	}
	size = c.FitSize(size)
	if size == c.Image.Bounds().Dx() {
		return c.PNG()
	}
	dst := image.NewPaletted(image.Rect(0, 0, size, size), palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), c.Image, c.Image.Bounds(), draw.Src, nil)
	return encodePNG(dst)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Terminal writes the payload as a half-block QR code suitable for a text
// terminal.
func (c *Code) Terminal(w io.Writer) {
	level := qrterminal.L
	switch c.opts.Level {
	case qrcode.Medium:
		level = qrterminal.M
	case qrcode.High, qrcode.Highest:
		level = qrterminal.H
	}
	qrterminal.GenerateHalfBlock(c.Payload, level, w)
}
