package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MuhammadMiqdad/tugas-color-picker/internal/colour"
	"github.com/MuhammadMiqdad/tugas-color-picker/internal/seed"
)

// EnvPrefix prefixes environment overrides, e.g. COLORPICKER_COLOURS=8.
const EnvPrefix = "COLORPICKER"

// newViper returns a viper instance reading COLORPICKER_* environment variables.
// Dashes in flag names map to underscores (max-iterations -> COLORPICKER_MAX_ITERATIONS).
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags makes every flag in fs resolvable through v. Explicitly set flags
// win over the environment and config file; unset flags supply the defaults.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// loadSettings binds the command's flags and reads the optional config file.
func loadSettings(v *viper.Viper, cmd *cobra.Command) error {
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	if err := bindFlags(v, cmd.InheritedFlags()); err != nil {
		return err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return nil
}

// extractionConfig turns resolved settings into a pipeline configuration and
// the seed to resolve once the image is loaded.
func extractionConfig(v *viper.Viper) (colour.Config, seed.Config, error) {
	seedConfig, err := seed.Parse(v.GetString("seed"))
	if err != nil {
		return colour.Config{}, seed.Config{}, err
	}

	config := colour.Config{
		ClusterCount:  v.GetInt("colours"),
		Seed:          seedConfig.Value,
		TargetWidth:   v.GetInt("width"),
		Algorithm:     colour.Algorithm(strings.ToLower(v.GetString("algorithm"))),
		MaxIterations: v.GetInt("max-iterations"),
		Tolerance:     v.GetFloat64("tolerance"),
		Runs:          v.GetInt("runs"),
		Workers:       v.GetInt("workers"),
	}
	if err := config.Validate(); err != nil {
		return colour.Config{}, seed.Config{}, err
	}

	return config, seedConfig, nil
}

// newLogger builds the command logger: debug with --verbose, errors only with
// --quiet, info otherwise.
func newLogger(v *viper.Viper, w io.Writer) hclog.Logger {
	level := hclog.Info
	switch {
	case v.GetBool("verbose"):
		level = hclog.Debug
	case v.GetBool("quiet"):
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "colorpicker",
		Output: w,
		Level:  level,
	})
}
