// Package render runs the fusion kernel over a whole bracket, and
// writes out the results and the diagnostics that go with them.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/hdrfuse/pkg/dispatch"
	"github.com/abworrall/hdrfuse/pkg/estimate"
	"github.com/abworrall/hdrfuse/pkg/exposure"
	"github.com/abworrall/hdrfuse/pkg/fusion"
)

// FusedImage holds the bracket and fuses it into a single image. Once
// fused it implements hdr.Image over the linear-light values, so it can
// be written as Radiance HDR or handed to the tmo operators.
type FusedImage struct {
	exposure.Bracket
	Config fusion.Config

	ResponseFits map[fusion.Exposure]estimate.ResponseFit // only if responses were estimated

	Output *image.RGBA // the tonemapped 8-bit result
	Pixels []Pixel     // row-major over Bounds()

	kernel fusion.Kernel
}

// Implement image.Image
func (fi *FusedImage) ColorModel() color.Model { return hdrcolor.RGBModel }
func (fi *FusedImage) Bounds() image.Rectangle { return fi.Base.Bounds() }
func (fi *FusedImage) At(x, y int) color.Color { return fi.HDRAt(x, y) }

// Implement hdr.Image
func (fi *FusedImage) HDRAt(x, y int) hdrcolor.Color { return fi.Pix(x, y).HDR() }
func (fi *FusedImage) Size() int                     { return fi.Bounds().Dx() * fi.Bounds().Dy() }

// Pixel access
func (fi *FusedImage) Pix(x, y int) Pixel { return fi.Pixels[fi.index(x, y)] }

func (fi *FusedImage) index(x, y int) int {
	b := fi.Bounds()
	return (y-b.Min.Y)*b.Dx() + (x - b.Min.X)
}

// NewFusedImage resolves the stack into a bracket and binds the config
// into a kernel.
func NewFusedImage(stack *exposure.Stack, cfg fusion.Config) (*FusedImage, error) {
	bracket, err := stack.Bracket()
	if err != nil {
		return nil, err
	}

	fi := &FusedImage{
		Bracket:      bracket,
		Config:       cfg,
		ResponseFits: map[fusion.Exposure]estimate.ResponseFit{},
	}
	if err := fi.rebind(); err != nil {
		return nil, err
	}
	return fi, nil
}

func (fi *FusedImage) rebind() error {
	k, err := fusion.NewKernel(fi.Config)
	if err != nil {
		return fmt.Errorf("fused image config: %w", err)
	}
	fi.kernel = k
	return nil
}

func (fi *FusedImage) Kernel() fusion.Kernel { return fi.kernel }

func (fi *FusedImage) String() string {
	return fmt.Sprintf("FusedImage %s [\n  darker   %s\n  base     %s\n  brighter %s\n] %s, tonescale %.4f",
		fi.Bounds(), fi.Darker, fi.Base, fi.Brighter, fi.Config.Responses, fi.Config.ToneScale)
}

// EstimateResponses fits the darker and brighter responses against the
// base exposure, replacing whatever the config had for them. If plotDir
// is set, a plot of each fit is written there.
func (fi *FusedImage) EstimateResponses(plotDir string) error {
	for _, e := range []fusion.Exposure{fusion.Darker, fusion.Brighter} {
		rf, err := estimate.FitResponse(fi.Layer(e).RGBA, fi.Base.RGBA, fi.Config.FitResponseOffset)
		if err != nil {
			return fmt.Errorf("estimate %s response: %w", e, err)
		}
		log.Printf("Estimated %s %s", e, rf)
		fi.ResponseFits[e] = rf

		if e == fusion.Darker {
			fi.Config.Responses.Darker = rf.Response
		} else {
			fi.Config.Responses.Brighter = rf.Response
		}

		if plotDir != "" {
			filename := filepath.Join(plotDir, fmt.Sprintf("response-%s.png", e))
			if err := estimate.PlotResponse(rf, e.String(), filename); err != nil {
				return err
			}
		}
	}

	return fi.rebind()
}

// EstimateToneScale derives the tone scale from the scene's log-average
// luminance, using the current responses.
func (fi *FusedImage) EstimateToneScale() error {
	fi.Config.ToneScale = estimate.ToneScale(fi.kernel, fi.Base.RGBA, fi.Neighbors())
	log.Printf("Estimated tonescale %.4f", fi.Config.ToneScale)
	return fi.rebind()
}

// Fuse runs the kernel over every pixel, using the configured
// dispatcher. Output receives the 8-bit result; Pixels receives the
// linear-light values and notes on how each one was built.
func (fi *FusedImage) Fuse(ctx context.Context) error {
	d, err := dispatch.New(fi.Config.Dispatcher, fi.Config.Workers)
	if err != nil {
		return err
	}

	bounds := fi.Bounds()
	if fi.Config.Verbosity > 0 {
		log.Printf("Fusing %s with %s fuser, %s dispatcher", bounds, fi.Config.Fuser, fi.Config.Dispatcher)
	}

	out := image.NewRGBA(bounds)
	pixels := make([]Pixel, bounds.Dx()*bounds.Dy())
	k := fi.kernel
	base := fi.Base.RGBA
	n := fi.Neighbors()

	err = d.Dispatch(ctx, bounds, func(x, y int) {
		fs := k.Fuse(fusion.Sample(x, y, base.RGBAAt(x, y), n))
		out.SetRGBA(x, y, k.Display(fs))
		pixels[fi.index(x, y)] = NewPixel(fs, fs.Linear())
	})
	if err != nil {
		return fmt.Errorf("fuse: %w", err)
	}

	fi.Output = out
	fi.Pixels = pixels
	return nil
}

// WriteToHDR outputs a HDR image. You can load this into photoshop or other HDR tools.
func (fi *FusedImage) WriteToHDR(filename string) error {
	if fi.Pixels == nil {
		return fmt.Errorf("FusedImage.WriteToHDR '%s': not fused yet", filename)
	}

	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("FusedImage.WriteToHDR, open+w '%s': %w", filename, err)
	}

	if err := rgbe.Encode(writer, fi); err != nil {
		writer.Close()
		return fmt.Errorf("FusedImage.WriteToHDR, encoding RGBE file: %w", err)
	}
	return writer.Close()
}

// WritePNG writes the tonemapped 8-bit output.
func (fi *FusedImage) WritePNG(filename string) error {
	if fi.Output == nil {
		return fmt.Errorf("FusedImage.WritePNG '%s': not fused yet", filename)
	}
	return WritePNG(fi.Output, filename)
}
