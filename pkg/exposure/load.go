package exposure

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"

	"github.com/abworrall/hdrfuse/pkg/fusion"
)

// LoadFilesAndDirs loads every image and config file named, recursing
// into directories.
func (s *Stack) LoadFilesAndDirs(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %w", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %w", arg, err)
			}
			for _, content := range contents {
				if err := s.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return fmt.Errorf("load %s: %w", arg, err)
				}
			}

		default: // is a file, load it
			if err := s.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %w", arg, err)
			}
		}
	}

	return nil
}

func (s *Stack) loadFile(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {

	case ".tif", ".tiff":
		l, err := loadImage(filename, tiff.Decode)
		if err != nil {
			return fmt.Errorf("loading %s as TIFF failed: %w", filename, err)
		}
		s.AddLayer(l)

	case ".png", ".jpg", ".jpeg":
		l, err := loadImage(filename, decodeAny)
		if err != nil {
			return fmt.Errorf("loading %s as image failed: %w", filename, err)
		}
		s.AddLayer(l)

	case ".yaml", ".yml":
		cfg, err := fusion.LoadConfig(filename)
		if err != nil {
			return fmt.Errorf("loading %s as config YAML failed: %w", filename, err)
		}
		s.Config = &cfg
		log.Printf("Loaded base configuration from %s\n", filename)
	}

	return nil
}

func decodeAny(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

func loadImage(filename string, decode func(io.Reader) (image.Image, error)) (Layer, error) {
	var l Layer

	if reader, err := os.Open(filename); err != nil {
		return l, fmt.Errorf("open+r img '%s': %w", filename, err)
	} else {
		defer reader.Close()
		img, err := decode(reader)
		if err != nil {
			return l, fmt.Errorf("decoding '%s': %w", filename, err)
		}
		l = NewLayer(filename, img)
	}

	// Exposure metadata is optional; without it the stack orders layers by brightness
	if ev, err := loadExposureValue(filename); err != nil {
		log.Printf("%s: no usable exposure info (%v)\n", l.Filename(), err)
	} else {
		l.ExposureValue = ev
		l.HasExposure = true
	}

	return l, nil
}

func loadExposureValue(filename string) (ExposureValue, error) {
	ev := ExposureValue{}

	reader, err := os.Open(filename)
	if err != nil {
		return ev, fmt.Errorf("open+r exif '%s': %w", filename, err)
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return ev, fmt.Errorf("exif parsing '%s': %w", filename, err)
	}

	if tag, err := ex.Get(exif.ISOSpeedRatings); err != nil {
		return ev, fmt.Errorf("exif ISO '%s': %w", filename, err)
	} else if val, err := tag.Int64(0); err != nil {
		return ev, fmt.Errorf("exif ISO '%s': %w", filename, err)
	} else {
		ev.ISO = val
	}

	if tag, err := ex.Get(exif.FNumber); err != nil {
		return ev, fmt.Errorf("exif FNumber '%s': %w", filename, err)
	} else if num, denom, err := tag.Rat2(0); err != nil {
		return ev, fmt.Errorf("exif FNumber '%s': %w", filename, err)
	} else if denom == 0 {
		return ev, fmt.Errorf("exif FNumber '%s': zero denominator", filename)
	} else {
		ev.ApertureX10 = num * 10 / denom
	}

	if tag, err := ex.Get(exif.ExposureTime); err != nil {
		return ev, fmt.Errorf("exif ExposureTime '%s': %w", filename, err)
	} else if num, denom, err := tag.Rat2(0); err != nil {
		return ev, fmt.Errorf("exif ExposureTime '%s': %w", filename, err)
	} else {
		ev.ShutterSpeed = rat64{num, denom}
	}

	// Exposure compensation is ignored; aperture, shutter and ISO fully
	// define how much light it took to expose a pixel.
	if err := ev.Validate(); err != nil {
		return ev, fmt.Errorf("image '%s' EV: %w", filename, err)
	}

	return ev, nil
}
