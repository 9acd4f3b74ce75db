// Command regiondemo combines rectangles and image masks with region
// operators and reports or renders the result.
//
// Usage:
//
//	regiondemo -op union -rect 0,0,10,10 -rect 20,0,10,10
//	regiondemo -op subtract -mask a.png -mask b.png -output diff.png -scale 4
//	regiondemo -op inverse -rect 2,2,6,6 -clip 0,0,10,10 -preview
//	regiondemo -mask sprite.png -tile 16
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/region"
	"github.com/gogpu/region/internal/damage"
	rimage "github.com/gogpu/region/internal/image"
)

var errNoOperands = errors.New("regiondemo: no -rect or -mask operands")

// boxList is a repeatable flag of x,y,w,h rectangles.
type boxList []region.Box

func (l *boxList) String() string {
	parts := make([]string, len(*l))
	for i, b := range *l {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}

func (l *boxList) Set(s string) error {
	b, err := parseBox(s)
	if err != nil {
		return err
	}
	*l = append(*l, b)
	return nil
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

// parseBox parses "x,y,w,h".
func parseBox(s string) (region.Box, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return region.Box{}, fmt.Errorf("rectangle %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return region.Box{}, fmt.Errorf("rectangle %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] < 0 || v[3] < 0 {
		return region.Box{}, fmt.Errorf("rectangle %q: %w", s, region.ErrInvalidRect)
	}
	b := region.XYWH(v[0], v[1], v[2], v[3])
	if !b.Valid() {
		return region.Box{}, fmt.Errorf("rectangle %q: %w", s, region.ErrCoordRange)
	}
	return b, nil
}

// config holds the parsed command line.
type config struct {
	op        string
	rects     boxList
	masks     stringList
	threshold uint
	clip      string
	output    string
	scale     int
	tile      int
	preview   bool
	verbose   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.op, "op", "union", "operator: union, intersect, subtract, xor or inverse")
	flag.Var(&cfg.rects, "rect", "operand rectangle x,y,w,h (repeatable)")
	flag.Var(&cfg.masks, "mask", "operand image mask file (repeatable)")
	flag.UintVar(&cfg.threshold, "threshold", 0, "alpha a mask pixel must exceed to be covered (0-255)")
	flag.StringVar(&cfg.clip, "clip", "", "clip rectangle x,y,w,h; also the bounds for -op inverse")
	flag.StringVar(&cfg.output, "output", "", "write the result as an image (.png, .bmp, .tif)")
	flag.IntVar(&cfg.scale, "scale", 1, "output upscale factor")
	flag.IntVar(&cfg.tile, "tile", 0, "widen the result to a grid of NxN tiles anchored at the canvas origin")
	flag.BoolVar(&cfg.preview, "preview", false, "preview the result in the terminal")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	flag.Parse()

	if cfg.verbose {
		region.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	r, canvas, err := run(context.Background(), &cfg, os.Stdout)
	if err != nil {
		log.Fatalf("regiondemo: %v", err)
	}

	if cfg.preview {
		if err := preview(r, canvas); err != nil {
			log.Fatalf("regiondemo: preview: %v", err)
		}
	}
}

// run computes the result region, prints a report to w and writes the
// output image if requested. It returns the result and the box it was
// rendered within.
func run(ctx context.Context, cfg *config, w io.Writer) (*region.Region, region.Box, error) {
	if cfg.threshold > 255 {
		return nil, region.Box{}, fmt.Errorf("threshold %d out of range 0-255", cfg.threshold)
	}
	if cfg.scale < 1 {
		return nil, region.Box{}, fmt.Errorf("scale %d must be at least 1", cfg.scale)
	}
	if cfg.tile < 0 {
		return nil, region.Box{}, fmt.Errorf("tile size %d must not be negative", cfg.tile)
	}

	var clip *region.Box
	if cfg.clip != "" {
		b, err := parseBox(cfg.clip)
		if err != nil {
			return nil, region.Box{}, err
		}
		clip = &b
	}

	operands, err := loadOperands(ctx, cfg)
	if err != nil {
		return nil, region.Box{}, err
	}

	r, err := combine(cfg.op, operands, clip)
	if err != nil {
		return nil, region.Box{}, err
	}
	if err := r.SelfCheck(); err != nil {
		return nil, region.Box{}, err
	}

	canvas := r.Extents()
	if clip != nil {
		canvas = *clip
	}
	if cfg.tile > 0 {
		if tr := damage.NewTracker(canvas, cfg.tile, cfg.tile); tr != nil {
			if err := tr.MarkRegion(r); err != nil {
				return nil, region.Box{}, err
			}
			_, _ = fmt.Fprintf(w, "tiles:      %d of %d\n", len(tr.DirtyTiles()), tr.TilesX()*tr.TilesY())
			r = tr.Take()
		}
	}
	report(w, r)

	if cfg.output != "" {
		if err := render(cfg.output, r, canvas, cfg.scale); err != nil {
			return nil, region.Box{}, err
		}
		_, _ = fmt.Fprintf(w, "wrote %s\n", cfg.output)
	}
	return r, canvas, nil
}

// loadOperands returns the rectangle operands followed by the mask
// operands, in command-line order. Masks are decoded concurrently.
func loadOperands(ctx context.Context, cfg *config) ([]*region.Region, error) {
	operands := make([]*region.Region, 0, len(cfg.rects)+len(cfg.masks))
	for _, b := range cfg.rects {
		r := region.New()
		if err := r.Reset(b); err != nil {
			return nil, fmt.Errorf("rectangle %v: %w", b, err)
		}
		operands = append(operands, r)
	}

	masks := make([]*region.Region, len(cfg.masks))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range cfg.masks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf, err := rimage.LoadImage(path)
			if err != nil {
				return fmt.Errorf("mask %s: %w", path, err)
			}
			r, err := region.FromImage(buf.WithThreshold(uint8(cfg.threshold))) //nolint:gosec // checked <= 255
			if err != nil {
				return fmt.Errorf("mask %s: %w", path, err)
			}
			region.Logger().Debug("regiondemo: loaded mask",
				"path", path, "rects", r.NumRects(), "extents", r.Extents().String())
			masks[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	operands = append(operands, masks...)
	if len(operands) == 0 {
		return nil, errNoOperands
	}
	return operands, nil
}

// combine folds the operands left to right with op and clips the result.
// inverse takes the union of the operands and inverts it within clip, or
// within its own extents when no clip is given.
func combine(op string, operands []*region.Region, clip *region.Box) (*region.Region, error) {
	var fold func(r, a, b *region.Region) error
	switch op {
	case "union", "inverse":
		fold = (*region.Region).Union
	case "intersect":
		fold = (*region.Region).Intersect
	case "subtract":
		fold = (*region.Region).Subtract
	case "xor":
		fold = (*region.Region).Xor
	default:
		return nil, fmt.Errorf("unknown operator %q", op)
	}

	r := operands[0].Clone()
	for _, o := range operands[1:] {
		if err := fold(r, r, o); err != nil {
			return nil, err
		}
	}

	if op == "inverse" {
		bounds := r.Extents()
		if clip != nil {
			bounds = *clip
		}
		if err := r.Inverse(r, bounds); err != nil {
			return nil, err
		}
		return r, nil
	}

	if clip != nil {
		if err := r.IntersectRect(r, *clip); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// report prints a summary of r with locale-aware number formatting.
func report(w io.Writer, r *region.Region) {
	p := message.NewPrinter(language.English)
	_, _ = p.Fprintf(w, "rectangles: %d\n", r.NumRects())
	_, _ = p.Fprintf(w, "extents:    %v\n", r.Extents())
	_, _ = p.Fprintf(w, "area:       %d\n", r.Area())
	for i, band := range r.Bands() {
		_, _ = p.Fprintf(w, "band %d: %v\n", i, band)
	}
}

// maxOutputSide bounds the rendered image size.
const maxOutputSide = 1 << 14

var (
	backgroundColor = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}
	fillColor       = color.NRGBA{R: 0x89, G: 0xb4, B: 0xfa, A: 0xff}
)

// render draws r within canvas and writes it to path, upscaled by scale.
func render(path string, r *region.Region, canvas region.Box, scale int) error {
	if canvas.Empty() {
		return fmt.Errorf("nothing to render: empty canvas %v", canvas)
	}
	if scale > maxOutputSide/canvas.Width() || scale > maxOutputSide/canvas.Height() {
		return fmt.Errorf("output %dx%d at scale %d larger than %d pixels per side",
			canvas.Width(), canvas.Height(), scale, maxOutputSide)
	}

	img := image.NewNRGBA(image.Rect(0, 0, canvas.Width(), canvas.Height()))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	rimage.FillRegion(img, r.Clone().Translate(-canvas.X1, -canvas.Y1), fillColor)

	var out image.Image = img
	if scale > 1 {
		scaled := image.NewNRGBA(image.Rect(0, 0, canvas.Width()*scale, canvas.Height()*scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		out = scaled
	}
	return rimage.SaveImage(path, out)
}
