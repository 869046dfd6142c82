package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/abworrall/hdrfuse/pkg/dispatch"
	"github.com/abworrall/hdrfuse/pkg/exposure"
	"github.com/abworrall/hdrfuse/pkg/fusion"
	"github.com/abworrall/hdrfuse/pkg/render"
)

// options are the command line flags, as set by the user.
type options struct {
	Verbosity     int
	Output        string
	HDROutput     string
	Fuser         string
	ToneScale     float64 // negative means not set
	AutoToneScale bool
	Estimate      bool
	FitOffset     bool
	Dispatcher    string
	Workers       int
	Compare       string
	WeightMap     bool
	PlotResponse  bool
}

var opts options

func init() {
	flag.IntVar(&opts.Verbosity, "v", 0, "how verbose to get")
	flag.StringVar(&opts.Output, "o", "fused.png", "where to write the tonemapped 8-bit output")
	flag.StringVar(&opts.HDROutput, "hdr", "", "also write the fused linear image as Radiance HDR")

	flag.StringVar(&opts.Fuser, "fuser", "", "how to fuse the exposures: "+strings.Join(fusion.Fusers, ", "))
	flag.Float64Var(&opts.ToneScale, "tonescale", -1, "tonemapper scale; bigger compresses highlights harder")
	flag.BoolVar(&opts.AutoToneScale, "autotonescale", false, "derive the tonescale from the scene's log-average luminance")
	flag.BoolVar(&opts.Estimate, "estimate", false, "estimate the darker and brighter responses from the images")
	flag.BoolVar(&opts.FitOffset, "fitoffset", false, "when estimating responses, fit an offset as well as a gain")

	flag.StringVar(&opts.Dispatcher, "dispatcher", "", "how to spread the work: "+strings.Join(dispatch.Names, ", "))
	flag.IntVar(&opts.Workers, "workers", 0, "number of workers (0 means one per CPU)")

	flag.StringVar(&opts.Compare, "compare", "", "comma separated tmo operators to also run, or 'all': "+render.ListTonemappers())
	flag.BoolVar(&opts.WeightMap, "weightmap", false, "write base weight and neighbor maps")
	flag.BoolVar(&opts.PlotResponse, "plotresponse", false, "plot the estimated responses")
}

// mergeConfig starts from the config file found among the inputs (if
// any, else the defaults), then applies the flags that were set. Flags
// can switch booleans on but not off.
func mergeConfig(fileCfg *fusion.Config, o options) fusion.Config {
	cfg := fusion.NewConfig()
	if fileCfg != nil {
		cfg = *fileCfg
	}

	if o.Fuser != "" {
		cfg.Fuser = o.Fuser
	}
	if o.ToneScale >= 0 {
		cfg.ToneScale = o.ToneScale
	}
	if o.Dispatcher != "" {
		cfg.Dispatcher = o.Dispatcher
	}
	if o.Workers > 0 {
		cfg.Workers = o.Workers
	}
	cfg.AutoToneScale = cfg.AutoToneScale || o.AutoToneScale
	cfg.EstimateResponses = cfg.EstimateResponses || o.Estimate
	cfg.FitResponseOffset = cfg.FitResponseOffset || o.FitOffset
	if o.Verbosity > cfg.Verbosity {
		cfg.Verbosity = o.Verbosity
	}

	return cfg
}

func main() {
	flag.Parse()
	log.Printf("hdrfuse starting\n")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stack := exposure.NewStack()
	if err := stack.LoadFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}

	cfg := mergeConfig(stack.Config, opts)
	img, err := render.NewFusedImage(&stack, cfg)
	if err != nil {
		log.Fatal(err)
	}

	outDir := filepath.Dir(opts.Output)

	if cfg.EstimateResponses {
		plotDir := ""
		if opts.PlotResponse {
			plotDir = outDir
		}
		if err := img.EstimateResponses(plotDir); err != nil {
			log.Fatal(err)
		}
	}
	if cfg.AutoToneScale {
		if err := img.EstimateToneScale(); err != nil {
			log.Fatal(err)
		}
	}

	if img.Config.Verbosity > 0 {
		log.Printf("%s\nFinal configuration:-\n\n%s\n", img, img.Config.AsYaml())
	}

	if err := img.Fuse(ctx); err != nil {
		log.Fatal(err)
	}
	if err := img.WritePNG(opts.Output); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s", opts.Output)

	if opts.HDROutput != "" {
		if err := img.WriteToHDR(opts.HDROutput); err != nil {
			log.Fatal(err)
		}
	}

	if opts.WeightMap {
		if err := img.WeightMap(filepath.Join(outDir, "weightmap.png")); err != nil {
			log.Fatal(err)
		}
		if err := img.NeighborMap(filepath.Join(outDir, "neighbormap.png")); err != nil {
			log.Fatal(err)
		}
	}

	if opts.Compare != "" {
		var names []string
		if opts.Compare != "all" {
			names = strings.Split(opts.Compare, ",")
		}
		if err := img.CompareTonemappers(outDir, names...); err != nil {
			log.Fatal(err)
		}
	}

	if img.Config.Verbosity > 0 {
		if stats, err := img.Stats(); err != nil {
			log.Printf("stats: %v", err)
		} else {
			log.Printf("Stats:-\n%s", stats)
		}
	}
}
