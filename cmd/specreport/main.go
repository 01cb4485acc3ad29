package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	specreport "github.com/joshsz/specreport"
	"github.com/joshsz/specreport/exitcodes"
	"github.com/joshsz/specreport/flags"
	"github.com/joshsz/specreport/reporting"
	"github.com/joshsz/specreport/stream"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "specreport"
	app.Usage = "Streaming test-result report renderer"
	app.Description = "specreport consumes lifecycle events from a test-execution engine and renders a hierarchical report document."
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		if err == nil {
			return
		}
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
			return
		}
		if specreport.IsTestFailureError(err) {
			// Failing examples, exit code 1
			cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			return
		}
		// Protocol violations and runtime errors, exit code 2
		cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(exitcodes.RuntimeErr)
	}
}

func run(ctx *cli.Context) error {
	log := logrus.New()
	level, err := logrus.ParseLevel(ctx.String(flags.LogLevel.Name))
	if err != nil {
		return specreport.NewRuntimeError(fmt.Errorf("invalid log level: %w", err))
	}
	log.SetLevel(level)

	cfg, err := specreport.NewConfig(ctx, log)
	if err != nil {
		return specreport.NewRuntimeError(err)
	}

	input, err := openInput(cfg.Input)
	if err != nil {
		return specreport.NewRuntimeError(err)
	}
	defer input.Close()

	output, err := os.Create(cfg.Output)
	if err != nil {
		return specreport.NewRuntimeError(fmt.Errorf("failed to create output file %s: %w", cfg.Output, err))
	}
	defer output.Close()

	buffered := bufio.NewWriter(output)
	var renderer reporting.Renderer
	switch cfg.Format {
	case specreport.FormatText:
		renderer = reporting.NewTextRenderer(buffered)
	default:
		renderer, err = reporting.NewHTMLRenderer(buffered)
		if err != nil {
			return specreport.NewRuntimeError(err)
		}
	}

	session, err := specreport.NewSession(cfg, renderer)
	if err != nil {
		return specreport.NewRuntimeError(err)
	}
	log.WithFields(logrus.Fields{
		"run_id": session.RunID(),
		"input":  cfg.Input,
		"output": cfg.Output,
		"format": cfg.Format,
	}).Info("rendering report")

	runErr := stream.NewDecoder(input, log).Run(session)
	if err := buffered.Flush(); err != nil && runErr == nil {
		runErr = specreport.NewRuntimeError(fmt.Errorf("failed to flush report: %w", err))
	}
	if runErr != nil {
		// The partial document on disk is still consistent; surface the error.
		return runErr
	}

	summary, finished := session.Summary()
	if !finished {
		return specreport.NewRuntimeError(errors.New("event stream ended without a session-finish event"))
	}

	if cfg.Summary {
		console := reporting.ConsoleSummary{
			RunID:          session.RunID(),
			Summary:        summary,
			FailedExamples: session.FailedExamples(),
		}
		if err := console.Write(os.Stdout); err != nil {
			log.WithError(err).Warn("failed to print console summary")
		}
	}

	if summary.HasFailures() {
		return specreport.NewTestFailureError(
			fmt.Sprintf("%d of %d examples failed", summary.FailureCount, summary.ExampleCount))
	}
	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event stream %s: %w", path, err)
	}
	return f, nil
}
