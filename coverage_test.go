// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

import (
	"errors"
	"image"
	"image/color"
	"iter"
	"slices"
	"testing"
)

func TestFromCoverage_RowMajor(t *testing.T) {
	spans := SpanList{
		{Y: 0, X1: 0, X2: 10},
		{Y: 1, X1: 0, X2: 5},
		{Y: 1, X1: 5, X2: 10}, // touches the previous span
		{Y: 2, X1: 0, X2: 10},
		{Y: 3, X1: 0, X2: 3},
		{Y: 3, X1: 7, X2: 10},
		{Y: 5, X1: 2, X2: 2}, // empty
	}
	r, err := FromCoverage(spans)
	if err != nil {
		t.Fatalf("FromCoverage() error = %v", err)
	}
	mustSelfCheck(t, r)

	want := []Box{{0, 0, 10, 3}, {0, 3, 3, 4}, {7, 3, 10, 4}}
	if got := r.Rects(); !slices.Equal(got, want) {
		t.Errorf("FromCoverage() = %v, want %v", got, want)
	}
}

func TestFromCoverage_Unordered(t *testing.T) {
	ordered := SpanList{
		{Y: 0, X1: 0, X2: 4},
		{Y: 0, X1: 6, X2: 8},
		{Y: 1, X1: 2, X2: 6},
		{Y: 4, X1: 0, X2: 1},
	}
	shuffled := SpanList{ordered[2], ordered[3], ordered[1], ordered[0], ordered[2]}

	want, err := FromCoverage(ordered)
	if err != nil {
		t.Fatal(err)
	}
	got, err := FromCoverage(shuffled)
	if err != nil {
		t.Fatalf("FromCoverage(shuffled) error = %v", err)
	}
	mustSelfCheck(t, got)
	if !got.Equal(want) {
		t.Errorf("FromCoverage(shuffled) = %v, want %v", got, want)
	}
}

func TestFromCoverage_OutOfRange(t *testing.T) {
	over := int64(MaxCoord) + 1
	_, err := FromCoverage(SpanList{{Y: 0, X1: 0, X2: int(over)}})
	if !errors.Is(err, ErrCoordRange) {
		t.Errorf("FromCoverage(out of range) error = %v, want ErrCoordRange", err)
	}
}

func TestFromCoverage_TooManyBoxes(t *testing.T) {
	orig := maxBoxes
	t.Cleanup(func() { maxBoxes = orig })
	maxBoxes = 3

	var spans SpanList
	for x := 0; x < 10; x += 2 {
		spans = append(spans, Span{Y: 0, X1: x, X2: x + 1})
	}
	if _, err := FromCoverage(spans); !errors.Is(err, ErrTooManyBoxes) {
		t.Errorf("FromCoverage() error = %v, want ErrTooManyBoxes", err)
	}
}

// stopCoverage records whether its consumer stopped iterating early.
type stopCoverage struct {
	spans   []Span
	stopped bool
}

func (c *stopCoverage) CoverageSpans() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for _, s := range c.spans {
			if !yield(s) {
				c.stopped = true
				return
			}
		}
	}
}

func TestFromCoverage_ConsumesAll(t *testing.T) {
	c := &stopCoverage{spans: []Span{{Y: 0, X1: 0, X2: 1}, {Y: 1, X1: 0, X2: 1}}}
	r, err := FromCoverage(c)
	if err != nil {
		t.Fatal(err)
	}
	if c.stopped {
		t.Error("FromCoverage() stopped iterating early")
	}
	if want := (Box{0, 0, 1, 2}); r.Extents() != want {
		t.Errorf("Extents() = %v, want %v", r.Extents(), want)
	}
}

func TestFromImage_Alpha(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 8, 8))
	for y := 2; y < 6; y++ {
		for x := 1; x < 4; x++ {
			img.SetAlpha(x, y, color.Alpha{A: 255})
		}
	}
	img.SetAlpha(7, 7, color.Alpha{A: 10})

	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	mustSelfCheck(t, r)
	want := []Box{{1, 2, 4, 6}, {7, 7, 8, 8}}
	if got := r.Rects(); !slices.Equal(got, want) {
		t.Errorf("FromImage() = %v, want %v", got, want)
	}

	r, err = FromImage(img, WithAlphaThreshold(127))
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Rects(); !slices.Equal(got, []Box{{1, 2, 4, 6}}) {
		t.Errorf("FromImage(threshold) = %v", got)
	}

	r, err = FromImage(img, WithBounds(image.Rect(2, 0, 100, 4)))
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Rects(); !slices.Equal(got, []Box{{2, 2, 4, 4}}) {
		t.Errorf("FromImage(bounds) = %v", got)
	}
}

func TestFromImage_PixelFormats(t *testing.T) {
	rect := image.Rect(-2, -2, 6, 6)
	inner := image.Rect(0, 0, 3, 2)

	nrgba := image.NewNRGBA(rect)
	rgba := image.NewRGBA(rect)
	gray := image.NewGray(rect)
	paletted := image.NewPaletted(rect, color.Palette{color.Transparent, color.Black})
	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		for x := inner.Min.X; x < inner.Max.X; x++ {
			nrgba.Set(x, y, color.NRGBA{R: 255, A: 200})
			rgba.Set(x, y, color.RGBA{A: 255})
			gray.SetGray(x, y, color.Gray{Y: 128})
			paletted.SetColorIndex(x, y, 1)
		}
	}

	want := []Box{BoxFromImageRect(inner)}
	for name, img := range map[string]image.Image{
		"NRGBA":    nrgba,
		"RGBA":     rgba,
		"Gray":     gray,
		"Paletted": paletted,
	} {
		t.Run(name, func(t *testing.T) {
			r, err := FromImage(img)
			if err != nil {
				t.Fatalf("FromImage() error = %v", err)
			}
			mustSelfCheck(t, r)
			if got := r.Rects(); !slices.Equal(got, want) {
				t.Errorf("FromImage() = %v, want %v", got, want)
			}
		})
	}
}

func TestFromImage_Nil(t *testing.T) {
	if _, err := FromImage(nil); !errors.Is(err, ErrNilImage) {
		t.Errorf("FromImage(nil) error = %v, want ErrNilImage", err)
	}
}

// coverageImage is an image that reports its own coverage.
type coverageImage struct {
	*image.Alpha
	spans SpanList
}

func (c coverageImage) CoverageSpans() iter.Seq[Span] { return c.spans.CoverageSpans() }

func TestFromImage_UsesCoverage(t *testing.T) {
	img := coverageImage{
		Alpha: image.NewAlpha(image.Rect(0, 0, 4, 4)),
		spans: SpanList{{Y: 0, X1: 0, X2: 2}},
	}

	r, err := FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Rects(); !slices.Equal(got, []Box{{0, 0, 2, 1}}) {
		t.Errorf("FromImage(Coverage) = %v", got)
	}

	// Options force a pixel scan; the alpha plane itself is transparent.
	r, err = FromImage(img, WithAlphaThreshold(0))
	if err != nil {
		t.Fatal(err)
	}
	if r.NotEmpty() {
		t.Errorf("FromImage(Coverage, opts) = %v, want empty", r)
	}
}

func TestFromCoverage_MatchesFromRects(t *testing.T) {
	spans := SpanList{
		{Y: 0, X1: 0, X2: 4},
		{Y: 1, X1: 0, X2: 4},
		{Y: 2, X1: 2, X2: 6},
	}
	var boxes []Box
	for _, s := range spans {
		boxes = append(boxes, Box{s.X1, s.Y, s.X2, s.Y + 1})
	}

	a, err := FromCoverage(spans)
	if err != nil {
		t.Fatal(err)
	}
	b, ok := FromRects(boxes)
	if !ok {
		t.Fatal("FromRects() rejected disjoint rows")
	}
	if !a.Equal(b) {
		t.Errorf("FromCoverage() = %v, FromRects() = %v", a, b)
	}
}
