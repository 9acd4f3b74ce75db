package region

import "image"

// CoverageOption configures how FromImage decides which pixels are covered.
// Use functional options to customize the conversion.
//
// Example:
//
//	// Every pixel with non-zero alpha
//	r, err := region.FromImage(img)
//
//	// Only mostly-opaque pixels inside a sub-rectangle
//	r, err := region.FromImage(img,
//	    region.WithAlphaThreshold(127),
//	    region.WithBounds(image.Rect(0, 0, 64, 64)))
type CoverageOption func(*coverageOptions)

// coverageOptions holds optional configuration for FromImage.
type coverageOptions struct {
	threshold uint8
	bounds    image.Rectangle
	hasBounds bool
}

// defaultCoverageOptions returns the default coverage options.
func defaultCoverageOptions() coverageOptions {
	return coverageOptions{
		threshold: 0, // any non-zero alpha counts as covered
	}
}

// WithAlphaThreshold sets the alpha value a pixel must exceed to be covered.
// The default is 0: every pixel with non-zero alpha is covered.
func WithAlphaThreshold(t uint8) CoverageOption {
	return func(o *coverageOptions) {
		o.threshold = t
	}
}

// WithBounds restricts the scan to r intersected with the image bounds.
func WithBounds(r image.Rectangle) CoverageOption {
	return func(o *coverageOptions) {
		o.bounds = r
		o.hasBounds = true
	}
}
