package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signalnine/cohstats/internal/schema"
)

type Config struct {
	Results  Results           `yaml:"results"`
	Output   Output            `yaml:"output"`
	Modes    map[string]string `yaml:"modes"`
	Metrics  Metrics           `yaml:"metrics"`
	Parallel int               `yaml:"parallel"`
	Upload   Upload            `yaml:"upload"`
}

type Results struct {
	Dir         string   `yaml:"dir"`
	ReportFiles []string `yaml:"report_files"`
}

type Output struct {
	Path      string `yaml:"path"`
	Delimiter string `yaml:"delimiter"`
}

// Metrics selects what is pulled out of each report.
type Metrics struct {
	Fixed         []FixedMetric `yaml:"fixed"`
	DynamicPrefix string        `yaml:"dynamic_prefix"`
}

// FixedMetric maps a report label to the table column that holds its value.
type FixedMetric struct {
	Column string `yaml:"column"`
	Label  string `yaml:"label"`
}

type Upload struct {
	URL string `yaml:"url"`
}

var DefaultModes = map[string]string{
	"hot":    "Max Sharing",
	"false":  "False Sharing",
	"padded": "No Sharing",
}

var DefaultFixedMetrics = []FixedMetric{
	{Column: "simTicks", Label: "simTicks"},
	{Column: "L1 Cache Hits", Label: "l1_cntrl0.cacheMemory.m_demand_hits"},
	{Column: "L1 Cache Misses", Label: "l1_cntrl0.cacheMemory.m_demand_misses"},
}

const DefaultDynamicPrefix = "system.ruby.network.msg_byte"

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	// validate only fills defaults on an empty config.
	if err := validate(cfg); err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate re-applies defaults and checks values, e.g. after command-line
// overrides.
func (c *Config) Validate() error {
	return validate(c)
}

// Delim returns the output delimiter as a rune.
func (c *Config) Delim() rune {
	return []rune(c.Output.Delimiter)[0]
}

// FixedColumns returns the fixed metric column names in configured order.
func (c *Config) FixedColumns() []string {
	cols := make([]string, len(c.Metrics.Fixed))
	for i, m := range c.Metrics.Fixed {
		cols[i] = m.Column
	}
	return cols
}

func validate(cfg *Config) error {
	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "results"
	}
	if len(cfg.Results.ReportFiles) == 0 {
		cfg.Results.ReportFiles = []string{"stats.txt", "stats.txt.gz", "stats.txt.zst"}
	}
	for i, name := range cfg.Results.ReportFiles {
		if name == "" || strings.ContainsRune(name, os.PathSeparator) {
			return fmt.Errorf("results.report_files[%d]: must be a bare file name, got %q", i, name)
		}
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = "stats.csv"
	}
	switch {
	case cfg.Output.Delimiter == "":
		cfg.Output.Delimiter = ","
	case cfg.Output.Delimiter == `\t`:
		cfg.Output.Delimiter = "\t"
	}
	if r := []rune(cfg.Output.Delimiter); len(r) != 1 || r[0] == '"' || r[0] == '\n' || r[0] == '\r' {
		return fmt.Errorf("output.delimiter: must be a single character other than quote or newline, got %q", cfg.Output.Delimiter)
	}
	if len(cfg.Modes) == 0 {
		cfg.Modes = make(map[string]string, len(DefaultModes))
		for k, v := range DefaultModes {
			cfg.Modes[k] = v
		}
	}
	if len(cfg.Metrics.Fixed) == 0 {
		cfg.Metrics.Fixed = append([]FixedMetric(nil), DefaultFixedMetrics...)
	}
	seen := make(map[string]bool, len(cfg.Metrics.Fixed)+len(schema.IdentifierColumns))
	for _, c := range schema.IdentifierColumns {
		seen[c] = true
	}
	for i, m := range cfg.Metrics.Fixed {
		if m.Column == "" {
			return fmt.Errorf("metrics.fixed[%d]: column is required", i)
		}
		if m.Label == "" {
			return fmt.Errorf("metric %q: label is required", m.Column)
		}
		if seen[m.Column] {
			return fmt.Errorf("metric %q: duplicate or reserved column", m.Column)
		}
		seen[m.Column] = true
	}
	if cfg.Metrics.DynamicPrefix == "" {
		cfg.Metrics.DynamicPrefix = DefaultDynamicPrefix
	}
	if cfg.Parallel < 0 {
		return fmt.Errorf("parallel must not be negative")
	}
	if cfg.Parallel == 0 {
		cfg.Parallel = 1
	}
	if cfg.Upload.URL != "" && !strings.HasPrefix(cfg.Upload.URL, "gs://") {
		return fmt.Errorf("upload.url: only gs:// destinations are supported, got %q", cfg.Upload.URL)
	}
	return nil
}
