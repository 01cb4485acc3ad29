package specreport

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/joshsz/specreport/diagnostics"
	"github.com/joshsz/specreport/flags"
	"github.com/joshsz/specreport/logging"
)

// Report formats accepted by Config.Format.
const (
	FormatHTML = "html"
	FormatText = "text"
)

// DefaultExcludePatterns drops the frames that belong to the test toolchain
// rather than user code. The set varies by toolchain version, which is why it
// is configuration and not a constant inside the extractor.
var DefaultExcludePatterns = []string{
	`go/src/testing/`,
	`^testing\.`,
	`(^|/)runtime/`,
	`github\.com/joshsz/specreport/`,
}

// Config holds the reporter configuration
type Config struct {
	Input           string   // Event stream path, "-" for stdin
	Output          string   // Rendered report path
	Format          string   // FormatHTML or FormatText
	Summary         bool     // Print a console summary table after the run
	ExcludePatterns []string // Call-stack frames to drop from diagnostics
	SnippetContext  int      // Source lines on each side of the offending line

	Log     logrus.FieldLogger
	LogSink logging.Sink // Per-example log capture; defaults to an in-memory buffer
}

// fileConfig is the YAML shape of an optional config file. Flags set on the
// command line take precedence over file values.
type fileConfig struct {
	Output          string   `yaml:"output"`
	Format          string   `yaml:"format"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
	SnippetContext  int      `yaml:"snippet_context"`
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log logrus.FieldLogger) (*Config, error) {
	cfg := &Config{
		Input:           ctx.String(flags.Input.Name),
		Output:          ctx.String(flags.Output.Name),
		Format:          ctx.String(flags.Format.Name),
		Summary:         ctx.Bool(flags.Summary.Name),
		ExcludePatterns: DefaultExcludePatterns,
		SnippetContext:  diagnostics.DefaultContextLines,
		Log:             log,
	}

	if path := ctx.String(flags.ConfigFile.Name); path != "" {
		fc, err := loadFileConfig(path)
		if err != nil {
			return nil, err
		}
		if fc.Output != "" && !ctx.IsSet(flags.Output.Name) {
			cfg.Output = fc.Output
		}
		if fc.Format != "" && !ctx.IsSet(flags.Format.Name) {
			cfg.Format = fc.Format
		}
		if len(fc.ExcludePatterns) > 0 {
			cfg.ExcludePatterns = fc.ExcludePatterns
		}
		if fc.SnippetContext > 0 {
			cfg.SnippetContext = fc.SnippetContext
		}
	}

	if patterns := ctx.StringSlice(flags.ExcludePattern.Name); len(patterns) > 0 {
		cfg.ExcludePatterns = patterns
	}
	if ctx.IsSet(flags.SnippetContext.Name) {
		cfg.SnippetContext = ctx.Int(flags.SnippetContext.Name)
	}

	if cfg.Format != FormatHTML && cfg.Format != FormatText {
		return nil, fmt.Errorf("invalid format %q: must be %q or %q", cfg.Format, FormatHTML, FormatText)
	}
	if cfg.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}

	return cfg, nil
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &fc, nil
}
