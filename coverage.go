// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

import (
	"fmt"
	"image"
	"iter"
	"slices"
)

// Span is a covered run of pixels [X1, X2) on scanline row Y.
type Span struct {
	Y, X1, X2 int
}

// Coverage is implemented by pixel sources that can report which pixels
// are covered, such as the opaque pixels of a mask image.
//
// CoverageSpans yields covered spans in row-major order: rows top to
// bottom, spans within a row left to right. Sources that do not follow
// this order are still accepted but take a slower path.
type Coverage interface {
	CoverageSpans() iter.Seq[Span]
}

// SpanList is a Coverage backed by a slice of spans.
type SpanList []Span

// CoverageSpans implements Coverage.
func (l SpanList) CoverageSpans() iter.Seq[Span] {
	return slices.Values(l)
}

// FromCoverage builds the region covering every span yielded by src.
// Empty spans are ignored.
func FromCoverage(src Coverage) (*Region, error) {
	bld := newBuilder(64)
	var (
		row      []Box // covered spans of row rowY, merged as they arrive
		rowY     int
		prev     int
		fallback bool
		extra    []Box
		err      error
	)

	flush := func() {
		if len(row) == 0 {
			return
		}
		cur := len(bld.boxes)
		for _, b := range row {
			bld.add(b.X1, b.Y1, b.X2, b.Y2)
		}
		prev = bld.coalesce(prev, cur)
		row = row[:0]
	}

	for s := range src.CoverageSpans() {
		if s.X1 >= s.X2 {
			continue
		}
		b := Box{X1: s.X1, Y1: s.Y, X2: s.X2, Y2: s.Y + 1}
		if !inRange(b) {
			err = fmt.Errorf("%w: span %+v", ErrCoordRange, s)
			break
		}
		if fallback {
			extra = append(extra, b)
			continue
		}
		switch {
		case len(row) == 0 || s.Y > rowY:
			flush()
			rowY = s.Y
			row = append(row, b)
		case s.Y == rowY && s.X1 >= row[len(row)-1].X1:
			last := &row[len(row)-1]
			if s.X1 <= last.X2 {
				last.X2 = max(last.X2, s.X2)
			} else {
				row = append(row, b)
			}
		default:
			fallback = true
			extra = append(extra, b)
		}
	}
	if err != nil {
		return nil, err
	}
	if bld.err != nil {
		return nil, bld.err
	}

	r := &Region{}
	if fallback {
		all := make([]Box, 0, len(bld.boxes)+len(row)+len(extra))
		all = append(all, bld.boxes...)
		all = append(all, row...)
		all = append(all, extra...)
		Logger().Debug("region: coverage fallback to union",
			"boxes", len(bld.boxes), "unordered", len(extra))
		if len(all) > maxBoxes {
			return nil, ErrTooManyBoxes
		}
		union, err := unionAll(all)
		if err != nil {
			return nil, err
		}
		r.setBoxes(union)
		return r, nil
	}

	flush()
	if bld.err != nil {
		return nil, bld.err
	}
	r.setBoxes(bld.boxes)
	return r, nil
}

// FromImage builds the region covering the pixels of img whose alpha
// exceeds the configured threshold (by default, every pixel with non-zero
// alpha).
//
// If img implements Coverage and no options are given, its own coverage
// is used.
func FromImage(img image.Image, opts ...CoverageOption) (*Region, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if c, ok := img.(Coverage); ok && len(opts) == 0 {
		return FromCoverage(c)
	}

	o := defaultCoverageOptions()
	for _, opt := range opts {
		opt(&o)
	}
	bounds := img.Bounds()
	if o.hasBounds {
		bounds = bounds.Intersect(o.bounds)
	}
	return FromCoverage(&imageCoverage{img: img, bounds: bounds, threshold: o.threshold})
}

// alphaSource is implemented by buffers that expose their 8-bit coverage
// channel directly, including luminance for formats without alpha.
type alphaSource interface {
	AlphaAt(x, y int) uint8
}

// imageCoverage adapts an image.Image to Coverage.
type imageCoverage struct {
	img       image.Image
	bounds    image.Rectangle
	threshold uint8
}

// CoverageSpans implements Coverage.
func (c *imageCoverage) CoverageSpans() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		alpha := c.alphaFunc()
		for y := c.bounds.Min.Y; y < c.bounds.Max.Y; y++ {
			start := -1
			for x := c.bounds.Min.X; x < c.bounds.Max.X; x++ {
				covered := alpha(x, y) > c.threshold
				switch {
				case covered && start < 0:
					start = x
				case !covered && start >= 0:
					if !yield(Span{Y: y, X1: start, X2: x}) {
						return
					}
					start = -1
				}
			}
			if start >= 0 {
				if !yield(Span{Y: y, X1: start, X2: c.bounds.Max.X}) {
					return
				}
			}
		}
	}
}

// alphaFunc returns an 8-bit alpha accessor, reading pixel memory directly
// for the common image types.
func (c *imageCoverage) alphaFunc() func(x, y int) uint8 {
	switch img := c.img.(type) {
	case *image.Alpha:
		return func(x, y int) uint8 { return img.Pix[img.PixOffset(x, y)] }
	case *image.NRGBA:
		return func(x, y int) uint8 { return img.Pix[img.PixOffset(x, y)+3] }
	case *image.RGBA:
		return func(x, y int) uint8 { return img.Pix[img.PixOffset(x, y)+3] }
	case *image.Gray:
		// Gray images have no alpha; treat luminance as coverage.
		return func(x, y int) uint8 { return img.Pix[img.PixOffset(x, y)] }
	case alphaSource:
		return img.AlphaAt
	default:
		return func(x, y int) uint8 {
			_, _, _, a := img.At(x, y).RGBA()
			return uint8(a >> 8) //nolint:gosec // 16-bit alpha scaled to 8 bits
		}
	}
}
