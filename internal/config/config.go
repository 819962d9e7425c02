// Package config loads the list description used by the demos.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/vwindow"
)

// ErrInvalidConfig is returned for configurations that parse but cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

var logger = slog.New(slog.DiscardHandler)

// SetLogger sets where extent expression failures are reported. Nil
// discards them.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}

// Config represents a vwindow.yaml list description.
//
//	title: Variable rows
//	count: 99999
//	axis: vertical
//	overscan: 10
//	viewport: {width: 300, height: 300}
//	extent_expr: "index % 2 == 0 ? 50 : 92"
type Config struct {
	Title    string         `yaml:"title,omitempty"`
	Count    int            `yaml:"count"`
	Axis     string         `yaml:"axis,omitempty"`
	Overscan int            `yaml:"overscan"`
	Viewport ViewportConfig `yaml:"viewport"`

	// Extent is the fixed item extent. ExtentExpr, when set, wins and makes
	// the list variable-sized.
	Extent     float64 `yaml:"extent,omitempty"`
	ExtentExpr string  `yaml:"extent_expr,omitempty"`
}

// ViewportConfig is the initial viewport (window) size.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ExtentEnv is the environment extent expressions run against.
type ExtentEnv struct {
	Index int `expr:"index"`
	Data  int `expr:"data"`
}

// Horizontal returns the defaults for the horizontal uniform list.
func Horizontal() *Config {
	return &Config{
		Title:    "Horizontal list",
		Count:    99999,
		Axis:     vwindow.AxisHorizontal.String(),
		Overscan: 10,
		Viewport: ViewportConfig{Width: 300, Height: 300},
		Extent:   60,
	}
}

// Vertical returns the defaults for the vertical variable list.
func Vertical() *Config {
	return &Config{
		Title:      "Variable rows",
		Count:      99999,
		Axis:       vwindow.AxisVertical.String(),
		Overscan:   10,
		Viewport:   ViewportConfig{Width: 300, Height: 300},
		ExtentExpr: "index % 2 == 0 ? 50 : 92",
	}
}

// Load reads path on top of defaults. An empty path returns a copy of the
// defaults.
func Load(path string, defaults *Config) (*Config, error) {
	if path == "" {
		cfg := *defaults
		return &cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := Parse(data, defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of defaults and validates the result.
// Keys missing from data keep their default values.
func Parse(data []byte, defaults *Config) (*Config, error) {
	cfg := *defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the ranges of every field and compiles ExtentExpr.
func (c *Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: count must not be negative (got %d)", ErrInvalidConfig, c.Count)
	}
	if c.Overscan < 0 {
		return fmt.Errorf("%w: overscan must not be negative (got %d)", ErrInvalidConfig, c.Overscan)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport must be positive (got %vx%v)", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	}
	if _, err := c.AxisValue(); err != nil {
		return err
	}
	if c.ExtentExpr == "" {
		if c.Extent <= 0 {
			return fmt.Errorf("%w: extent must be positive (got %v)", ErrInvalidConfig, c.Extent)
		}
		return nil
	}
	_, _, err := c.compile()
	return err
}

// AxisValue parses Axis. Empty means vertical.
func (c *Config) AxisValue() (vwindow.Axis, error) {
	switch strings.ToLower(strings.TrimSpace(c.Axis)) {
	case "", "vertical", "y":
		return vwindow.AxisVertical, nil
	case "horizontal", "x":
		return vwindow.AxisHorizontal, nil
	}
	return 0, fmt.Errorf("%w: unknown axis %q", ErrInvalidConfig, c.Axis)
}

// Items returns the list described by Count: the integers 0..Count-1.
func (c *Config) Items() []int {
	items := make([]int, c.Count)
	for i := range items {
		items[i] = i
	}
	return items
}

// ItemExtent builds the item extent: Fixed for Extent, Variable for
// ExtentExpr. Expressions see `index` and `data` and must yield a number.
func (c *Config) ItemExtent() (vwindow.Extent[int], error) {
	if c.ExtentExpr == "" {
		if c.Extent <= 0 {
			return vwindow.Extent[int]{}, fmt.Errorf("%w: extent must be positive (got %v)", ErrInvalidConfig, c.Extent)
		}
		return vwindow.Fixed[int](c.Extent), nil
	}

	program, first, err := c.compile()
	if err != nil {
		return vwindow.Extent[int]{}, err
	}
	// A failing item takes the last valid extent; zero would break index lookups.
	last := first
	return vwindow.Variable(func(index int, data int) float64 {
		out, err := expr.Run(program, ExtentEnv{Index: index, Data: data})
		v, ok := out.(float64)
		if err != nil || !ok || !(v > 0) {
			logger.Warn("extent_expr failed, reusing last extent",
				"index", index, "result", out, "err", err, "extent", last)
			return last
		}
		last = v
		return v
	}), nil
}

// Options returns the engine options described by the config.
func (c *Config) Options() []vwindow.Option {
	axis, _ := c.AxisValue()
	return []vwindow.Option{
		vwindow.WithAxis(axis),
		vwindow.WithOverscan(c.Overscan),
	}
}

// ViewportSize returns the configured viewport as a vwindow.Size.
func (c *Config) ViewportSize() vwindow.Size {
	return vwindow.Size{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// compile compiles ExtentExpr and probes it on the first item so runtime
// failures surface as config errors rather than zero-sized rows.
func (c *Config) compile() (*vm.Program, float64, error) {
	program, err := expr.Compile(c.ExtentExpr,
		expr.Env(ExtentEnv{}),
		expr.AsFloat64(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: extent_expr: %w", ErrInvalidConfig, err)
	}

	out, err := expr.Run(program, ExtentEnv{})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: extent_expr evaluation failed: %w", ErrInvalidConfig, err)
	}
	v, ok := out.(float64)
	if !ok || !(v > 0) {
		return nil, 0, fmt.Errorf("%w: extent_expr must yield a positive extent (got %v for index 0)", ErrInvalidConfig, out)
	}
	return program, v, nil
}
