// Package config loads the settings of a housing run from defaults, an
// optional TOML file, HOUSING_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"io"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/housing/linear"
	"github.com/YuminosukeSato/housing/pkg/errors"
)

// EnvPrefix is the prefix of environment variables, e.g. HOUSING_DATA_PATH.
const EnvPrefix = "HOUSING"

// Config is the complete configuration of a run.
type Config struct {
	Wait  bool        `mapstructure:"wait" toml:"wait"`
	Data  DataConfig  `mapstructure:"data" toml:"data"`
	Model ModelConfig `mapstructure:"model" toml:"model"`
	Plot  PlotConfig  `mapstructure:"plot" toml:"plot"`
	Log   LogConfig   `mapstructure:"log" toml:"log"`
}

// DataConfig selects the input file and the columns the analysis uses.
type DataConfig struct {
	Path         string  `mapstructure:"path" toml:"path" validate:"required"`
	Separator    string  `mapstructure:"separator" toml:"separator" validate:"len=1"`
	Feature      string  `mapstructure:"feature" toml:"feature" validate:"required"`
	Label        string  `mapstructure:"label" toml:"label" validate:"required"`
	FilterColumn string  `mapstructure:"filter_column" toml:"filter_column" validate:"required"`
	FilterMax    float64 `mapstructure:"filter_max" toml:"filter_max"`
	LabelDivisor float64 `mapstructure:"label_divisor" toml:"label_divisor" validate:"ne=0"`
	// Required lists further columns that must be present and numeric.
	Required []string `mapstructure:"required" toml:"required"`
}

// SeparatorRune returns the field delimiter.
func (d DataConfig) SeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(d.Separator)
	return r
}

// ModelConfig selects the fitter.
type ModelConfig struct {
	Fitter    string  `mapstructure:"fitter" toml:"fitter" validate:"oneof=closed-form normal-equations"`
	Tolerance float64 `mapstructure:"tolerance" toml:"tolerance" validate:"gte=0"`
}

// PlotConfig controls the scatterplot.
type PlotConfig struct {
	Enabled bool    `mapstructure:"enabled" toml:"enabled"`
	Path    string  `mapstructure:"path" toml:"path" validate:"required_if=Enabled true"`
	Title   string  `mapstructure:"title" toml:"title"`
	Width   float64 `mapstructure:"width" toml:"width" validate:"gt=0"`   // inches
	Height  float64 `mapstructure:"height" toml:"height" validate:"gt=0"` // inches
	Open    bool    `mapstructure:"open" toml:"open"`
}

// LogConfig controls structured logging on stderr.
type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" toml:"format" validate:"oneof=json console"`
}

// Default returns the configuration of the California housing analysis.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path:         "Data/california_housing.csv",
			Separator:    ",",
			Feature:      "median_income",
			Label:        "median_house_value",
			FilterColumn: "median_house_value",
			FilterMax:    500000,
			LabelDivisor: 1000,
			Required:     []string{"total_rooms"},
		},
		Model: ModelConfig{
			Fitter:    linear.FitterClosedForm,
			Tolerance: linear.DefaultTolerance,
		},
		Plot: PlotConfig{
			Enabled: true,
			Path:    "training.png",
			Title:   "Training",
			Width:   8,
			Height:  6,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"data":          "data.path",
	"separator":     "data.separator",
	"feature":       "data.feature",
	"label":         "data.label",
	"filter-column": "data.filter_column",
	"filter-max":    "data.filter_max",
	"label-divisor": "data.label_divisor",
	"require":       "data.required",
	"fitter":        "model.fitter",
	"tolerance":     "model.tolerance",
	"plot":          "plot.path",
	"plot-title":    "plot.title",
	"open":          "plot.open",
	"wait":          "wait",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("wait", d.Wait)
	v.SetDefault("data.path", d.Data.Path)
	v.SetDefault("data.separator", d.Data.Separator)
	v.SetDefault("data.feature", d.Data.Feature)
	v.SetDefault("data.label", d.Data.Label)
	v.SetDefault("data.filter_column", d.Data.FilterColumn)
	v.SetDefault("data.filter_max", d.Data.FilterMax)
	v.SetDefault("data.label_divisor", d.Data.LabelDivisor)
	v.SetDefault("data.required", d.Data.Required)
	v.SetDefault("model.fitter", d.Model.Fitter)
	v.SetDefault("model.tolerance", d.Model.Tolerance)
	v.SetDefault("plot.enabled", d.Plot.Enabled)
	v.SetDefault("plot.path", d.Plot.Path)
	v.SetDefault("plot.title", d.Plot.Title)
	v.SetDefault("plot.width", d.Plot.Width)
	v.SetDefault("plot.height", d.Plot.Height)
	v.SetDefault("plot.open", d.Plot.Open)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load builds the configuration. path may be empty to skip the file; flags
// may be nil. Only flags that were set on the command line take effect. A
// set "no-plot" flag disables plotting.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if flags != nil && flags.Changed("no-plot") {
		if noPlot, err := flags.GetBool("no-plot"); err == nil && noPlot {
			cfg.Plot.Enabled = false
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field constraint. The first violation is returned
// as a *errors.ValidationError naming the configuration key.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		reason := "failed on " + fe.Tag()
		if fe.Param() != "" {
			reason += " " + fe.Param()
		}
		return errors.NewValidationError(key, reason, fe.Value())
	}
	return errors.Wrap(err, "validate config")
}

// WriteTOML encodes c as TOML.
func (c *Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(err, "encode config")
	}
	return nil
}
