package render

// A few helper routines for golang's image libraries

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

func WritePNG(img image.Image, filename string) error {
	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %w", filename, err)
	}

	if err := png.Encode(writer, img); err != nil {
		writer.Close()
		return fmt.Errorf("png encode '%s': %w", filename, err)
	}
	return writer.Close()
}
