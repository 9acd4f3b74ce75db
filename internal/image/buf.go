package image

import (
	"errors"
	"image"
	"image/color"
	"iter"

	"github.com/gogpu/region"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// ImageBuf is a pixel buffer with its origin at (0, 0).
//
// ImageBuf stores pixel data in a contiguous byte slice with optional stride
// for memory alignment. It implements image.Image, draw.Image and
// region.Coverage: a pixel is covered when its coverage byte (alpha, or
// luminance for FormatGray8) exceeds the buffer's threshold.
//
// Thread safety: ImageBuf is safe for concurrent read access. Writes
// require external synchronization.
type ImageBuf struct {
	data      []byte
	width     int
	height    int
	stride    int
	format    Format
	threshold uint8
}

// NewImageBuf creates a new zeroed image buffer with the given dimensions
// and format. Returns an error if dimensions are invalid or format is unknown.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	stride := format.RowBytes(width)
	return &ImageBuf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// FromRaw creates an ImageBuf from existing data without copying.
// The caller must ensure data remains valid for the lifetime of the ImageBuf.
// Stride must be at least format.RowBytes(width).
func FromRaw(data []byte, width, height int, format Format, stride int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if stride < format.RowBytes(width) {
		return nil, ErrInvalidStride
	}

	requiredSize := stride * height
	if len(data) < requiredSize {
		return nil, ErrDataTooSmall
	}

	return &ImageBuf{
		data:   data[:requiredSize],
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	c := *b
	c.data = make([]byte, len(b.data))
	copy(c.data, b.data)
	return &c
}

// WithThreshold returns a view of b sharing its pixels whose coverage
// threshold is t.
func (b *ImageBuf) WithThreshold(t uint8) *ImageBuf {
	c := *b
	c.threshold = t
	return &c
}

// Threshold returns the coverage threshold.
func (b *ImageBuf) Threshold() uint8 {
	return b.threshold
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row (including padding).
func (b *ImageBuf) Stride() int {
	return b.stride
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Bounds implements image.Image.
func (b *ImageBuf) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Data returns the raw pixel data slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.format.RowBytes(b.width)]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// AlphaAt returns the coverage byte of pixel (x, y), or 0 outside the image.
func (b *ImageBuf) AlphaAt(x, y int) uint8 {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0
	}
	return b.data[off+b.format.Info().CoverageOffset]
}

// SetAlpha sets the coverage byte of pixel (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetAlpha(x, y int, a uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	b.data[off+b.format.Info().CoverageOffset] = a
	return nil
}

// GetRGBA returns the color at (x, y) as (r, g, b, a) in 0-255 range.
// For Gray8, r=g=b=gray and a=255; for Alpha8, r=g=b=0.
// Returns (0,0,0,0) if coordinates are out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := b.data[off:]

	switch b.format {
	case FormatGray8:
		return p[0], p[0], p[0], 255
	case FormatAlpha8:
		return 0, 0, 0, p[0]
	case FormatRGBA8, FormatRGBAPremul:
		return p[0], p[1], p[2], p[3]
	case FormatBGRA8:
		return p[2], p[1], p[0], p[3]
	default:
		return 0, 0, 0, 0
	}
}

// SetRGBA sets the color at (x, y) from (r, g, b, a) in 0-255 range.
// Gray8 stores luminance with standard weights; Alpha8 stores a.
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	p := b.data[off:]

	switch b.format {
	case FormatGray8:
		// Standard luminance: 0.299*R + 0.587*G + 0.114*B
		p[0] = byte((int(r)*299 + int(g)*587 + int(bl)*114) / 1000)
	case FormatAlpha8:
		p[0] = a
	case FormatRGBA8, FormatRGBAPremul:
		p[0], p[1], p[2], p[3] = r, g, bl, a
	case FormatBGRA8:
		p[0], p[1], p[2], p[3] = bl, g, r, a
	}
	return nil
}

// ColorModel implements image.Image.
func (b *ImageBuf) ColorModel() color.Model {
	switch b.format {
	case FormatGray8:
		return color.GrayModel
	case FormatAlpha8:
		return color.AlphaModel
	case FormatRGBAPremul:
		return color.RGBAModel
	default:
		return color.NRGBAModel
	}
}

// At implements image.Image.
func (b *ImageBuf) At(x, y int) color.Color {
	r, g, bl, a := b.GetRGBA(x, y)
	switch b.format {
	case FormatGray8:
		return color.Gray{Y: r}
	case FormatAlpha8:
		return color.Alpha{A: a}
	case FormatRGBAPremul:
		return color.RGBA{R: r, G: g, B: bl, A: a}
	default:
		return color.NRGBA{R: r, G: g, B: bl, A: a}
	}
}

// Set implements draw.Image. Pixels outside the image are ignored.
func (b *ImageBuf) Set(x, y int, c color.Color) {
	var r, g, bl, a uint8
	if b.format == FormatRGBAPremul {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		r, g, bl, a = rgba.R, rgba.G, rgba.B, rgba.A
	} else {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		r, g, bl, a = n.R, n.G, n.B, n.A
	}
	_ = b.SetRGBA(x, y, r, g, bl, a)
}

// Clear sets all pixels to zero (transparent black for formats with alpha).
func (b *ImageBuf) Clear() {
	clear(b.data)
}

// CoverageSpans implements region.Coverage. It yields the runs of pixels
// whose coverage byte exceeds the threshold, in row-major order.
func (b *ImageBuf) CoverageSpans() iter.Seq[region.Span] {
	return func(yield func(region.Span) bool) {
		bpp := b.format.BytesPerPixel()
		off := b.format.Info().CoverageOffset
		for y := range b.height {
			row := b.RowBytes(y)
			start := -1
			for x := range b.width {
				covered := row[x*bpp+off] > b.threshold
				switch {
				case covered && start < 0:
					start = x
				case !covered && start >= 0:
					if !yield(region.Span{Y: y, X1: start, X2: x}) {
						return
					}
					start = -1
				}
			}
			if start >= 0 {
				if !yield(region.Span{Y: y, X1: start, X2: b.width}) {
					return
				}
			}
		}
	}
}

// ToNRGBA converts the buffer to a non-premultiplied *image.NRGBA.
// Alpha8 masks become white with the mask as alpha, so they stay visible
// when saved.
func (b *ImageBuf) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(b.Bounds())

	if b.format == FormatRGBA8 {
		for y := range b.height {
			copy(out.Pix[y*out.Stride:], b.RowBytes(y))
		}
		return out
	}

	for y := range b.height {
		for x := range b.width {
			r, g, bl, a := b.GetRGBA(x, y)
			switch b.format {
			case FormatAlpha8:
				r, g, bl = 255, 255, 255
			case FormatRGBAPremul:
				if a != 0 && a != 255 {
					r = unpremul(r, a)
					g = unpremul(g, a)
					bl = unpremul(bl, a)
				}
			}
			o := y*out.Stride + x*4
			out.Pix[o], out.Pix[o+1], out.Pix[o+2], out.Pix[o+3] = r, g, bl, a
		}
	}
	return out
}

func unpremul(c, a uint8) uint8 {
	return uint8(min((int(c)*255+int(a)/2)/int(a), 255)) //nolint:gosec // clamped to 255
}
