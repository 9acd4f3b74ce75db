package image

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/region"
)

func TestFillRegion(t *testing.T) {
	var r region.Region
	if err := r.SubtractRect(region.NewRect(0, 0, 6, 6), region.Box{X1: 2, Y1: 2, X2: 4, Y2: 4}); err != nil {
		t.Fatal(err)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	red := color.NRGBA{R: 255, A: 255}
	FillRegion(dst, &r, red)

	for y := range 8 {
		for x := range 8 {
			_, want := r.ContainsPoint(x, y)
			got := dst.NRGBAAt(x, y) == red
			if got != want {
				t.Errorf("pixel (%d, %d) filled = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillRegion_Clipped(t *testing.T) {
	r := region.NewRect(-10, -10, 15, 15)
	dst, _ := NewImageBuf(4, 4, FormatAlpha8)
	FillRegion(dst, r, color.Alpha{A: 255})

	for y := range 4 {
		for x := range 4 {
			if got := dst.AlphaAt(x, y); got != 255 {
				t.Errorf("AlphaAt(%d, %d) = %d, want 255", x, y, got)
			}
		}
	}

	// Entirely outside: nothing drawn.
	dst.Clear()
	FillRegion(dst, region.NewRect(10, 10, 5, 5), color.Alpha{A: 255})
	FillRegion(dst, nil, color.Alpha{A: 255})
	FillRegion(dst, region.New(), color.Alpha{A: 255})
	for _, b := range dst.Data() {
		if b != 0 {
			t.Fatal("FillRegion() drew outside the region")
		}
	}
}

func TestRasterize_RoundTrip(t *testing.T) {
	r, _ := region.FromRects([]region.Box{
		{X1: 1, Y1: 1, X2: 5, Y2: 3},
		{X1: 7, Y1: 0, X2: 9, Y2: 9},
		{X1: 2, Y1: 6, X2: 4, Y2: 8},
	})

	mask, err := Rasterize(r, 10, 10)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	back, err := region.FromImage(mask)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if !back.Equal(r) {
		t.Errorf("round trip = %v, want %v", back, r)
	}

	if _, err := Rasterize(r, 0, 10); err == nil {
		t.Error("Rasterize(zero width) should fail")
	}
}
