// Package config loads engine defaults from a YAML file with environment
// overrides on top. A missing file yields the built-in defaults; malformed
// YAML is an error. The package reads only the path handed to it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/clustermap/pkg/colorscale"
	"github.com/vanderheijden86/clustermap/pkg/linkage"
)

// ClusterConfig selects how axes are clustered.
type ClusterConfig struct {
	Method          string `yaml:"method,omitempty"` // ward, single, complete, average, weighted
	Metric          string `yaml:"metric,omitempty"` // euclidean, sqeuclidean, manhattan, cosine, correlation
	OptimalOrdering bool   `yaml:"optimal_ordering,omitempty"`
	Rows            *bool  `yaml:"rows,omitempty"`    // cluster rows (default true)
	Columns         *bool  `yaml:"columns,omitempty"` // cluster columns (default true)
}

// CanvasConfig sets the output surface and band sizes.
type CanvasConfig struct {
	Width          int     `yaml:"width,omitempty"`
	Height         int     `yaml:"height,omitempty"`
	DendrogramBand float64 `yaml:"dendrogram_band,omitempty"` // fraction of the axis
	LegendBand     float64 `yaml:"legend_band,omitempty"`     // fraction of the x axis
}

// Config is the top-level engine configuration.
type Config struct {
	Colorscale string        `yaml:"colorscale,omitempty"`
	Normalize  string        `yaml:"normalize,omitempty"` // none, row, column
	Cluster    ClusterConfig `yaml:"cluster,omitempty"`
	Canvas     CanvasConfig  `yaml:"canvas,omitempty"`
}

// DefaultConfig returns the built-in defaults: average linkage over
// euclidean distances, both axes clustered, RdBu_r colors on a 900x600
// surface.
func DefaultConfig() Config {
	return Config{
		Colorscale: "RdBu_r",
		Normalize:  "none",
		Cluster: ClusterConfig{
			Method: string(linkage.MethodAverage),
			Metric: string(linkage.MetricEuclidean),
		},
		Canvas: CanvasConfig{
			Width:          900,
			Height:         600,
			DendrogramBand: 0.12,
			LegendBand:     0.14,
		},
	}
}

// EnvConfigPath names the config file Load reads. Unset means defaults.
const EnvConfigPath = "CLUSTERMAP_CONFIG"

// Load reads the config file named by CLUSTERMAP_CONFIG. When the
// variable is unset, defaults (plus env overrides) are returned.
func Load() (Config, error) {
	path := strings.TrimSpace(os.Getenv(EnvConfigPath))
	if path == "" {
		return ApplyEnvOverrides(DefaultConfig()), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. A missing file yields the
// defaults; env overrides apply either way.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ApplyEnvOverrides(cfg), nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return ApplyEnvOverrides(cfg), nil
}

// SaveTo writes the config to a specific path, creating parent
// directories as needed.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

const (
	// EnvMethod overrides cluster.method when it names a known method.
	EnvMethod = "CLUSTERMAP_METHOD"
	// EnvMetric overrides cluster.metric when it names a known metric.
	EnvMetric = "CLUSTERMAP_METRIC"
	// EnvColorscale overrides colorscale when the scale is registered.
	EnvColorscale = "CLUSTERMAP_COLORSCALE"
	// EnvOptimalOrdering enables optimal leaf ordering.
	EnvOptimalOrdering = "CLUSTERMAP_OPTIMAL_ORDERING"
	// EnvWidth overrides canvas.width when set to a positive integer.
	EnvWidth = "CLUSTERMAP_WIDTH"
	// EnvHeight overrides canvas.height when set to a positive integer.
	EnvHeight = "CLUSTERMAP_HEIGHT"
)

// ApplyEnvOverrides applies CLUSTERMAP_* tunables on top of cfg. Values
// that do not parse, or name unknown methods, metrics, or scales, are
// ignored.
func ApplyEnvOverrides(cfg Config) Config {
	if v := envString(EnvMethod); v != "" {
		if _, err := linkage.ParseMethod(v); err == nil {
			cfg.Cluster.Method = v
		}
	}
	if v := envString(EnvMetric); v != "" {
		if _, err := linkage.ParseMetric(v); err == nil {
			cfg.Cluster.Metric = v
		}
	}
	if v := envString(EnvColorscale); v != "" {
		if _, err := colorscale.Lookup(v); err == nil {
			cfg.Colorscale = v
		}
	}
	if envBool(EnvOptimalOrdering) {
		cfg.Cluster.OptimalOrdering = true
	}
	if n, ok := envPositiveInt(EnvWidth); ok {
		cfg.Canvas.Width = n
	}
	if n, ok := envPositiveInt(EnvHeight); ok {
		cfg.Canvas.Height = n
	}
	return cfg
}

func envString(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func envPositiveInt(name string) (int, bool) {
	v := envString(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func envBool(name string) bool {
	switch strings.ToLower(envString(name)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
