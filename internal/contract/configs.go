package contract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/repolens/repolens/schema"
)

// Default values for configuration.
const (
	DefaultLookback    = 180 * 24 * time.Hour // 6 months
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ErrInvalidRoot is the only fatal scan failure: the root path is missing or
// not a directory. Every other condition degrades to a partial report.
var ErrInvalidRoot = errors.New("invalid root path")

// DefaultIncludeExtensions maps file extensions to language tags. It is the
// broad built-in default covering common languages; --include entries are
// merged on top of it.
var DefaultIncludeExtensions = map[string]string{
	".py":    "Python",
	".java":  "Java",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".cpp":   "C++",
	".cc":    "C++",
	".hpp":   "C++",
	".c":     "C",
	".h":     "C/C++",
	".cs":    "C#",
	".go":    "Go",
	".rs":    "Rust",
	".rb":    "Ruby",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
	".scala": "Scala",
	".m":     "Objective-C",
	".mm":    "Objective-C",
	".dart":  "Dart",
	".ex":    "Elixir",
	".exs":   "Elixir",
	".clj":   "Clojure",
	".hs":    "Haskell",
	".ml":    "OCaml",
	".elm":   "Elm",
	".erl":   "Erlang",
	".jl":    "Julia",
	".r":     "R",
	".lua":   "Lua",
	".pl":    "Perl",
	".sh":    "Shell",
	".bash":  "Shell",
	".zsh":   "Shell",
	".sql":   "SQL",
}

// DefaultExcludes are gitignore-style patterns pruned during discovery.
// They cover the dependency and build directories that dominate large trees.
var DefaultExcludes = []string{
	"node_modules/",
	"vendor/",
	".git/",
	"build/",
	"dist/",
	"out/",
	"target/",
	"bin/",
	"__pycache__/",
	"*.pyc",
	".venv/",
	"venv/",
}

// Config holds the validated, immutable runtime configuration for one scan.
// It is passed explicitly into each component; there is no mutable global
// state, so every scan is reproducible and independently testable.
type Config struct {
	RootPath             string            // Absolute path to the scan root
	IncludeExtensions    map[string]string // Extension -> language tag
	IncludeExtensionless bool              // Opt into files without an extension
	Excludes             []string          // Gitignore-style patterns, defaults plus user additions
	MaxDepth             int               // Maximum directory depth, 0 = unlimited

	Lookback   time.Duration // History window duration
	Since      time.Time     // Computed window start (zero = unbounded)
	MaxCommits int           // History window commit bound, 0 = unbounded
	NoHistory  bool          // Skip history aggregation entirely

	Workers     int               // Concurrent metrics workers
	ResultLimit int               // Rows shown in table output
	Output      schema.OutputMode // Output format
	OutputFile  string            // Optional path instead of stdout
	Width       int               // Terminal width override (0 = auto-detect)
	UseColors   bool              // Colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct; ProcessAndValidate turns it into
// the final Config.
type ConfigRawInput struct {
	// Set manually from positional args, so no tag
	RootPathStr string

	Include              string `mapstructure:"include"`
	Exclude              string `mapstructure:"exclude"`
	MaxDepth             int    `mapstructure:"max-depth"`
	IncludeExtensionless bool   `mapstructure:"include-extensionless"`
	Lookback             string `mapstructure:"lookback"`
	MaxCommits           int    `mapstructure:"max-commits"`
	NoHistory            bool   `mapstructure:"no-history"`
	Workers              int    `mapstructure:"workers"`
	Limit                int    `mapstructure:"limit"`
	Output               string `mapstructure:"output"`
	OutputFile           string `mapstructure:"output-file"`
	Color                string `mapstructure:"color"`
	Width                int    `mapstructure:"width"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	if c.IncludeExtensions != nil {
		clone.IncludeExtensions = make(map[string]string, len(c.IncludeExtensions))
		for k, v := range c.IncludeExtensions {
			clone.IncludeExtensions[k] = v
		}
	}
	return &clone
}

// ValidateRoot resolves the root path and confirms it is an existing
// directory. It returns ErrInvalidRoot otherwise.
func ValidateRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidRoot, path)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s does not exist", ErrInvalidRoot, path)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, path)
	}
	return abs, nil
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processIncludes(cfg, input); err != nil {
		return err
	}
	processExcludes(cfg, input)
	if err := processHistoryWindow(cfg, input); err != nil {
		return err
	}

	root, err := ValidateRoot(input.RootPathStr)
	if err != nil {
		return err
	}
	cfg.RootPath = root
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.NoHistory = input.NoHistory
	cfg.IncludeExtensionless = input.IncludeExtensionless

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.MaxDepth < 0 {
		return fmt.Errorf("max-depth cannot be negative (received %d)", input.MaxDepth)
	}
	cfg.MaxDepth = input.MaxDepth

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, parquet", input.Output)
	}
	return nil
}

// processIncludes merges user-provided extension mappings over the defaults.
// Entries look like ".tf=Terraform" or "tf=Terraform"; a bare extension like
// ".tf" maps to "unknown".
func processIncludes(cfg *Config, input *ConfigRawInput) error {
	cfg.IncludeExtensions = make(map[string]string, len(DefaultIncludeExtensions))
	for ext, lang := range DefaultIncludeExtensions {
		cfg.IncludeExtensions[ext] = lang
	}

	return MergeIncludePairs(cfg.IncludeExtensions, input.Include)
}

// MergeIncludePairs parses a comma-separated list of extension mappings and
// merges them into dst, overriding existing entries.
func MergeIncludePairs(dst map[string]string, raw string) error {
	if raw == "" {
		return nil
	}
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ext, lang, _ := strings.Cut(part, "=")
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			return fmt.Errorf("invalid include entry %q: empty extension", part)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		lang = strings.TrimSpace(lang)
		if lang == "" {
			lang = "unknown"
		}
		dst[ext] = lang
	}
	return nil
}

// processExcludes appends user-provided exclude patterns to the defaults.
func processExcludes(cfg *Config, input *ConfigRawInput) {
	cfg.Excludes = make([]string, len(DefaultExcludes))
	copy(cfg.Excludes, DefaultExcludes)

	if input.Exclude == "" {
		return
	}
	for part := range strings.SplitSeq(input.Exclude, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			cfg.Excludes = append(cfg.Excludes, part)
		}
	}
}

// processHistoryWindow parses the lookback duration and computes the window
// start time. MaxCommits passes through as a pure count bound.
func processHistoryWindow(cfg *Config, input *ConfigRawInput) error {
	cfg.Lookback = DefaultLookback
	if input.Lookback != "" {
		d, err := ParseLookbackDuration(input.Lookback)
		if err != nil {
			return fmt.Errorf("invalid lookback %q: %w", input.Lookback, err)
		}
		cfg.Lookback = d
	}
	cfg.Since = time.Now().Add(-cfg.Lookback)

	if input.MaxCommits < 0 {
		return fmt.Errorf("max-commits cannot be negative (received %d)", input.MaxCommits)
	}
	cfg.MaxCommits = input.MaxCommits
	return nil
}
