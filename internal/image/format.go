// Package image provides the pixel buffers that regions are derived from
// and rasterised into.
//
// An ImageBuf is a plain image.Image and draw.Image, and it also reports its
// coverage directly as spans, so region.FromImage can consume it without a
// per-pixel interface call.
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel). Luminance is
	// treated as coverage.
	FormatGray8 Format = iota

	// FormatAlpha8 is an 8-bit coverage mask (1 byte per pixel).
	FormatAlpha8

	// FormatRGBA8 is 32-bit RGBA, non-premultiplied (4 bytes per pixel).
	// This is the standard format for decoded images.
	FormatRGBA8

	// FormatRGBAPremul is 32-bit RGBA with premultiplied alpha (4 bytes per pixel).
	FormatRGBAPremul

	// FormatBGRA8 is 32-bit BGRA, non-premultiplied (4 bytes per pixel).
	// Common for window-system surfaces.
	FormatBGRA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of channels.
	Channels int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsPremultiplied indicates if alpha is premultiplied.
	IsPremultiplied bool

	// CoverageOffset is the byte within a pixel that holds coverage:
	// alpha, or luminance for grayscale.
	CoverageOffset int
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8:      {BytesPerPixel: 1, Channels: 1},
	FormatAlpha8:     {BytesPerPixel: 1, Channels: 1, HasAlpha: true},
	FormatRGBA8:      {BytesPerPixel: 4, Channels: 4, HasAlpha: true, CoverageOffset: 3},
	FormatRGBAPremul: {BytesPerPixel: 4, Channels: 4, HasAlpha: true, IsPremultiplied: true, CoverageOffset: 3},
	FormatBGRA8:      {BytesPerPixel: 4, Channels: 4, HasAlpha: true, CoverageOffset: 3},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// Channels returns the number of channels.
func (f Format) Channels() int {
	return f.Info().Channels
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsPremultiplied returns true if alpha is premultiplied.
func (f Format) IsPremultiplied() bool {
	return f.Info().IsPremultiplied
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatAlpha8:
		return "Alpha8"
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBAPremul:
		return "RGBAPremul"
	case FormatBGRA8:
		return "BGRA8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}
