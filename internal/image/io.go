package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// LoadImage loads an image from the given file path, detecting the format
// from its content. Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
func LoadImage(path string) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadImageFromBytes loads an image from a byte slice, auto-detecting the format.
func LoadImageFromBytes(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img), nil
}

// FromStdImage creates an ImageBuf from a standard library image.Image,
// rebased to the origin.
//
// *image.Alpha and *image.Gray keep their single channel (Alpha8 and Gray8);
// everything else is converted to RGBA8.
func FromStdImage(img image.Image) *ImageBuf {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return &ImageBuf{format: FormatRGBA8}
	}

	switch src := img.(type) {
	case *image.Alpha:
		buf, _ := NewImageBuf(width, height, FormatAlpha8)
		for y := range height {
			srcStart := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.RowBytes(y), src.Pix[srcStart:srcStart+width])
		}
		return buf
	case *image.Gray:
		buf, _ := NewImageBuf(width, height, FormatGray8)
		for y := range height {
			srcStart := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.RowBytes(y), src.Pix[srcStart:srcStart+width])
		}
		return buf
	}

	buf, _ := NewImageBuf(width, height, FormatRGBA8)
	dst := &image.NRGBA{Pix: buf.data, Stride: buf.stride, Rect: buf.Bounds()}
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return buf
}

// Encode writes img to w in the named format: "png", "bmp" or "tiff".
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch strings.ToLower(format) {
	case "png":
		err = png.Encode(w, img)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tif", "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", format, err)
	}
	return nil
}

// SaveImage writes img to path, choosing the encoder from the file
// extension (.png, .bmp, .tif, .tiff).
func SaveImage(path string, img image.Image) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch format {
	case "png", "bmp", "tif", "tiff":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
