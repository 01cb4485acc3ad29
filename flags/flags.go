package flags

import (
	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "SPECREPORT"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	Input = &cli.StringFlag{
		Name:    "input",
		Value:   "-",
		EnvVars: prefixEnvVars("INPUT"),
		Usage:   "Path to the lifecycle event stream ('-' for stdin)",
	}
	Output = &cli.StringFlag{
		Name:    "output",
		Value:   "report.html",
		EnvVars: prefixEnvVars("OUTPUT"),
		Usage:   "Path to write the rendered report to",
	}
	Format = &cli.StringFlag{
		Name:    "format",
		Value:   "html",
		EnvVars: prefixEnvVars("FORMAT"),
		Usage:   "Report format ('html' or 'text')",
	}
	ConfigFile = &cli.StringFlag{
		Name:    "config",
		Value:   "",
		EnvVars: prefixEnvVars("CONFIG"),
		Usage:   "Path to an optional YAML config file (eg. 'specreport.yaml')",
	}
	ExcludePattern = &cli.StringSliceFlag{
		Name:    "exclude",
		EnvVars: prefixEnvVars("EXCLUDE"),
		Usage:   "Regexp matching framework-internal call-stack frames to drop from diagnostics; repeatable",
	}
	SnippetContext = &cli.IntFlag{
		Name:    "snippet-context",
		Value:   2,
		EnvVars: prefixEnvVars("SNIPPET_CONTEXT"),
		Usage:   "Number of source lines to show on each side of a failure's offending line",
	}
	Summary = &cli.BoolFlag{
		Name:    "summary",
		Value:   true,
		EnvVars: prefixEnvVars("SUMMARY"),
		Usage:   "Print a summary table to stdout after the report is written",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Log level (trace, debug, info, warn, error)",
	}
)

var Flags = []cli.Flag{
	Input,
	Output,
	Format,
	ConfigFile,
	ExcludePattern,
	SnippetContext,
	Summary,
	LogLevel,
}
