// Package cli provides the command-line interface for colorpicker.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MuhammadMiqdad/tugas-color-picker/internal/version"
)

// NewRootCmd builds the colorpicker command tree. Each call returns an
// independent tree with its own configuration state.
func NewRootCmd() *cobra.Command {
	v := newViper()

	rootCmd := &cobra.Command{
		Use:   "colorpicker",
		Short: "Extract dominant colour palettes from images",
		Long: `colorpicker finds the dominant colours of an image with seeded k-means
clustering and prints them as hex codes, RGB triples or JSON. It can also
render the colours as a stacked swatch image.

Runs are reproducible: the same image, colour count and seed always produce
the same palette, in the same order.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().String("config", "", "config file (yaml, toml or json)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(v))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
