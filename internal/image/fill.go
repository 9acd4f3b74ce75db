package image

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/region"
)

// FillRegion paints every box of r, clipped to dst's bounds, with c.
// Pixels outside r are left untouched.
func FillRegion(dst draw.Image, r *region.Region, c color.Color) {
	if r == nil || r.IsEmpty() {
		return
	}
	bounds := dst.Bounds()
	if !r.Extents().ImageRect().Overlaps(bounds) {
		return
	}

	src := image.NewUniform(c)
	for b := range r.All() {
		rect := b.ImageRect().Intersect(bounds)
		if rect.Empty() {
			continue
		}
		draw.Draw(dst, rect, src, image.Point{}, draw.Src)
	}
}

// Rasterize returns an Alpha8 mask of the given size with the pixels of r
// set to 255. Parts of r outside [0, width) x [0, height) are dropped.
func Rasterize(r *region.Region, width, height int) (*ImageBuf, error) {
	buf, err := NewImageBuf(width, height, FormatAlpha8)
	if err != nil {
		return nil, err
	}
	FillRegion(buf, r, color.Alpha{A: 255})
	return buf, nil
}
