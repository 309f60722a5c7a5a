// Command tilefilldemo exercises the tile-graph flood-fill engine end to
// end: it loads an image, floods a region starting at a seed pixel, and
// writes the composited result back out.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/Fepozopo/tilefill/pkg/cli"
	"github.com/Fepozopo/tilefill/pkg/compose"
	"github.com/Fepozopo/tilefill/pkg/engine"
	"github.com/Fepozopo/tilefill/pkg/fill"
	"github.com/Fepozopo/tilefill/pkg/surface"
	"github.com/Fepozopo/tilefill/pkg/tile"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env, if present, feeds any update-check credentials; a missing file
	// is not an error, matching the teacher's own godotenv usage.
	_ = cli.LoadDotEnv(".env")

	var (
		in           = flag.String("in", "", "input image path (PNG/JPEG/GIF)")
		out          = flag.String("out", "", "output image path")
		seedX        = flag.Int("x", 0, "seed pixel x")
		seedY        = flag.Int("y", 0, "seed pixel y")
		r            = flag.Int("r", 255, "fill color red [0,255]")
		g            = flag.Int("g", 0, "fill color green [0,255]")
		b            = flag.Int("b", 0, "fill color blue [0,255]")
		tolerance    = flag.Float64("tolerance", 0.1, "color tolerance [0,1]")
		offset       = flag.Int("offset", 0, "dilate (>0) or erode (<0) the fill, clamped to [-N,N]")
		feather      = flag.Int("feather", 0, "feather blur radius, clamped to [0,N]")
		gapMax       = flag.Int("gap-max", 0, "max gap size for gap-closing fill; 0 disables gap closing")
		gapRetract   = flag.Bool("gap-retract", true, "retract seeps that bridge a gap")
		mode         = flag.String("mode", "normal", "blend mode: normal|destination-out|source-atop|multiply|screen|overlay|add|difference")
		checkUpdate  = flag.Bool("check-update", false, "check for a newer release and exit")
	)
	flag.Parse()

	if *checkUpdate {
		return cli.CheckForUpdates()
	}

	if *in == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("tilefilldemo: both -in and -out are required")
	}

	img, _, err := cli.LoadImage(*in)
	if err != nil {
		return fmt.Errorf("loading %s: %w", *in, err)
	}

	bounds := img.Bounds()
	src := imageToSurface(img)
	dst := imageToSurface(img) // composite onto a copy of the source

	modeVal, err := parseMode(*mode)
	if err != nil {
		return err
	}

	var gapOpts *fill.GapClosingOptions
	if *gapMax > 0 {
		gapOpts = &fill.GapClosingOptions{MaxGapSize: *gapMax, RetractSeeps: *gapRetract}
	}

	opts := engine.Options{
		Color:      compose.Color{R: uint8(*r), G: uint8(*g), B: uint8(*b)},
		Tolerance:  *tolerance,
		Offset:     *offset,
		Feather:    *feather,
		GapClosing: gapOpts,
		Mode:       modeVal,
		Framed:     true,
		BBoxX:      bounds.Min.X, BBoxY: bounds.Min.Y,
		BBoxW: bounds.Dx(), BBoxH: bounds.Dy(),
	}

	if err := engine.FloodFill(src, *seedX, *seedY, opts, dst); err != nil {
		return fmt.Errorf("flood fill: %w", err)
	}

	result := surfaceToImage(dst, bounds)
	if err := cli.SaveImage(*out, result); err != nil {
		return fmt.Errorf("saving %s: %w", *out, err)
	}
	return nil
}

func parseMode(s string) (compose.Mode, error) {
	switch s {
	case "normal":
		return compose.Normal, nil
	case "destination-out":
		return compose.DestinationOut, nil
	case "source-atop":
		return compose.SourceAtop, nil
	case "multiply":
		return compose.Multiply, nil
	case "screen":
		return compose.Screen, nil
	case "overlay":
		return compose.Overlay, nil
	case "add":
		return compose.Add, nil
	case "difference":
		return compose.Difference, nil
	default:
		return 0, fmt.Errorf("unknown blend mode %q", s)
	}
}

// imageToSurface copies img's pixels into a fresh MemSurface, converting
// straight 8-bit RGBA into the engine's premultiplied uint16 scale.
func imageToSurface(img image.Image) *surface.MemSurface {
	s := surface.NewMemSurface()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			nc := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			a16 := uint16(uint32(nc.A) * uint32(tile.Opaque) / 255)
			r16 := uint16(uint32(nc.R) * uint32(a16) / 255)
			g16 := uint16(uint32(nc.G) * uint32(a16) / 255)
			b16 := uint16(uint32(nc.B) * uint32(a16) / 255)
			if a16 == 0 && r16 == 0 && g16 == 0 && b16 == 0 {
				continue
			}
			_ = s.SetPixel(x, y, r16, g16, b16, a16)
		}
	}
	return s
}

// surfaceToImage reads a MemSurface back out as a straight 8-bit NRGBA
// image covering bounds.
func surfaceToImage(s *surface.MemSurface, bounds image.Rectangle) *image.NRGBA {
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := s.Pixel(x, y)
			var r8, g8, b8, a8 uint8
			a8 = uint8(uint32(a16) * 255 / uint32(tile.Opaque))
			if a16 > 0 {
				r8 = uint8(uint32(r16) * 255 / uint32(a16))
				g8 = uint8(uint32(g16) * 255 / uint32(a16))
				b8 = uint8(uint32(b16) * 255 / uint32(a16))
			}
			out.SetNRGBA(x, y, color.NRGBA{R: r8, G: g8, B: b8, A: a8})
		}
	}
	return out
}
