package config

import "time"

const (
	FormatText     = "text"
	FormatTSV      = "tsv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
	FormatOpenAPI  = "openapi"
)

// Formats lists every report format accepted by output.format.
var Formats = []string{FormatText, FormatTSV, FormatJSON, FormatMarkdown, FormatYAML, FormatOpenAPI}

type Config struct {
	Version       int           `toml:"version"`
	Paths         []string      `toml:"paths"`
	Scan          Scan          `toml:"scan"`
	Output        Output        `toml:"output"`
	History       History       `toml:"history"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`
}

type Scan struct {
	Extensions   []string `toml:"extensions"`
	ExcludeDirs  []string `toml:"exclude_dirs"`
	ExcludeFiles []string `toml:"exclude_files"`
	Workers      int      `toml:"workers"`
	CacheSize    int      `toml:"cache_size"` // Files kept in the parse cache; negative disables
}

type Output struct {
	Format string `toml:"format"`
	Path   string `toml:"path"` // Empty writes to stdout
}

type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	Project string `toml:"project"`
}

type Watch struct {
	Debounce            time.Duration `toml:"debounce"`
	MaxRescansPerSecond float64       `toml:"max_rescans_per_second"`
	Burst               int           `toml:"burst"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
	ServiceName  string `toml:"service_name"`
}

// DefaultConfig returns a config with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
