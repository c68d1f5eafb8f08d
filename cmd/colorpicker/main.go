// colorpicker - dominant colour palette extraction
//
// colorpicker finds the dominant colours of an image with seeded k-means
// clustering and renders them as hex codes and a swatch image.
package main

import (
	"os"

	"github.com/MuhammadMiqdad/tugas-color-picker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
