package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MuhammadMiqdad/tugas-color-picker/internal/colour"
	"github.com/MuhammadMiqdad/tugas-color-picker/internal/image"
	"github.com/MuhammadMiqdad/tugas-color-picker/internal/seed"
	httputil "github.com/MuhammadMiqdad/tugas-color-picker/internal/util/http"
)

func newExtractCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image|url>",
		Short: "Extract the dominant colours of an image",
		Long: `Extract the dominant colours of an image.

The image is converted to RGB, resized to a working width while keeping its
aspect ratio, and every pixel is clustered with k-means in RGB space. Each
cluster centre becomes one colour. Colours are listed in cluster order, not
sorted by popularity.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Every flag can also be set with a COLORPICKER_ environment variable
(COLORPICKER_COLOURS, COLORPICKER_MAX_ITERATIONS, ...) or a config file.

Examples:
  # Extract 5 colours (default) from an image
  colorpicker extract photo.jpg

  # Extract 8 colours with a different seed
  colorpicker extract -c 8 --seed 7 photo.png

  # Seed from the image content and output JSON
  colorpicker extract --seed content -f json photo.jpg

  # Show hex, RGB and cluster weight as a table
  colorpicker extract -f table photo.jpg

  # Write a labelled swatch image alongside the hex codes
  colorpicker extract --palette swatch.png --labels photo.jpg

  # Extract from a URL, keeping the download for later runs
  colorpicker extract --cache https://example.com/photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadSettings(v, cmd); err != nil {
				return err
			}
			return runExtract(cmd, v, args[0])
		},
	}

	defaults := colour.DefaultConfig()
	flags := cmd.Flags()
	flags.IntP("colours", "c", defaults.ClusterCount, "number of colours to extract")
	flags.String("seed", fmt.Sprint(defaults.Seed), "random seed: an integer, or content, filepath or random")
	flags.Int("width", defaults.TargetWidth, "working width the image is resized to")
	flags.StringP("algorithm", "a", string(defaults.Algorithm), "extraction algorithm (kmeans, prominent, dominant)")
	flags.Int("max-iterations", defaults.MaxIterations, "maximum k-means iterations")
	flags.Float64("tolerance", defaults.Tolerance, "stop once no centroid moves further than this")
	flags.Int("runs", defaults.Runs, "number of k-means initialisations; the tightest clustering wins")
	flags.Int("workers", defaults.Workers, "goroutines used for the k-means assignment step")
	flags.StringP("format", "f", "hex", "output format (hex, rgb, json, table)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("palette", "p", "", "write a PNG swatch of the palette to this path")
	flags.Bool("labels", false, "draw hex codes on the swatch bands")
	flags.String("preview", "auto", "show colour previews in the terminal (auto, always, never)")
	flags.Duration("timeout", httputil.DefaultTimeout, "timeout when fetching an image URL")
	flags.Bool("cache", false, "keep downloaded URL images in the user cache directory")
	flags.String("cache-dir", "", "keep downloaded URL images in this directory (implies --cache)")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, v *viper.Viper, imagePath string) error {
	logger := newLogger(v, cmd.ErrOrStderr())

	config, seedConfig, err := extractionConfig(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	format := strings.ToLower(v.GetString("format"))
	if !isValidFormat(format) {
		return fmt.Errorf("unsupported format: %s (supported: hex, rgb, json, table)", format)
	}

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	logger.Debug("loading image", "path", imagePath)
	loader := image.NewSmartLoader(httputil.FetchOptions{Timeout: v.GetDuration("timeout")})
	if dir := v.GetString("cache-dir"); dir != "" || v.GetBool("cache") {
		loader = loader.WithCache(dir)
	}
	img, err := loader.Load(cmd.Context(), imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	config.Seed, err = seed.Calculate(img, imagePath, seedConfig)
	if err != nil {
		return fmt.Errorf("failed to resolve seed: %w", err)
	}

	logger.Debug("extracting colours", "colours", config.ClusterCount, "algorithm", config.Algorithm, "seed", config.Seed, "width", config.TargetWidth)
	extractor, err := colour.NewExtractor(config, logger)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	start := time.Now()
	palette, err := extractor.Extract(img)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	logger.Debug("extracted colours", "count", palette.Len(), "elapsed", time.Since(start))

	if path := v.GetString("palette"); path != "" {
		if err := writeSwatch(path, palette, v.GetBool("labels")); err != nil {
			return err
		}
		logger.Info("wrote palette image", "path", path)
	}

	outputPath := v.GetString("output")
	preview, err := wantPreview(v.GetString("preview"), outputPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	output, err := formatPalette(palette, format, preview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(output), 0o644); err != nil { // #nosec G306 -- palette output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("wrote palette", "path", outputPath)
		return nil
	}

	_, err = io.WriteString(cmd.OutOrStdout(), output)
	return err
}

// writeSwatch renders the palette as stacked bands and saves it as PNG.
func writeSwatch(path string, palette *colour.Palette, labels bool) error {
	f, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create palette image: %w", err)
	}

	img := palette.Render(colour.RenderOptions{Labels: labels})
	if err := colour.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write palette image: %w", err)
	}
	return nil
}

// wantPreview decides whether ANSI previews are printed. In auto mode they are
// shown only when writing to a terminal.
func wantPreview(mode, outputPath string, out io.Writer) (bool, error) {
	switch strings.ToLower(mode) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if outputPath != "" {
			return false, nil
		}
		f, ok := out.(*os.File)
		return ok && colour.IsTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid preview mode: %s (valid: auto, always, never)", mode)
	}
}

func isValidFormat(format string) bool {
	switch format {
	case "hex", "rgb", "json", "table":
		return true
	}
	return false
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case "table":
		return formatTable(palette), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json, table)", format)
	}
}

// formatHex formats the palette as hex colour codes, one per line.
func formatHex(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for _, c := range palette.Colours {
		if showPreview {
			b.WriteString(colour.FormatColourWithPreview(c, 8))
		} else {
			b.WriteString(c.Hex())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// formatRGB formats the palette as RGB values, one per line.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for _, c := range palette.Colours {
		if showPreview {
			b.WriteString(colour.ColourPreview(c, 8) + "  ")
		}
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}
