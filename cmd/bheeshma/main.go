// Command bheeshma is the CLI entry point: it installs interception,
// loads and runs a target Go plugin under monitoring, and writes the
// resulting report to a file or standard output.
//
// A monitored "script" in this Go port is a plugin built with
// `go build -buildmode=plugin`, exporting a `Run func() error` symbol —
// the closest idiomatic analogue to loading an arbitrary script file at
// runtime, since Go has no in-process script interpreter of its own.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"plugin"
	"syscall"

	"github.com/bb1nfosec/bheeshma"
	"github.com/bb1nfosec/bheeshma/config"
	"github.com/bb1nfosec/bheeshma/internal/logger"
	"github.com/bb1nfosec/bheeshma/internal/report"
)

const usage = `usage: bheeshma [--format cli|json] [--output file|-o file] <plugin.so>

Flags:
  --format cli|json   report rendering (default cli)
  --output, -o file   write the report to file instead of stdout
  --help, -h          show this message
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("bheeshma", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	format := fs.String("format", "cli", "report format: cli|json")
	output := fs.String("output", "", "write report to file instead of stdout")
	fs.StringVar(output, "o", "", "alias for --output")
	help := fs.Bool("help", false, "show usage")
	fs.BoolVar(help, "h", false, "alias for --help")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *help {
		fmt.Fprint(os.Stderr, usage)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	var reportFormat report.Format
	switch *format {
	case "cli":
		reportFormat = report.FormatCLI
	case "json":
		reportFormat = report.FormatJSON
	default:
		fmt.Fprintf(os.Stderr, "bheeshma: unknown --format %q\n", *format)
		return 1
	}

	if err := logger.Init(true, "info", "", true); err != nil {
		fmt.Fprintf(os.Stderr, "bheeshma: logger init: %v\n", err)
		return 1
	}

	cfg, cfgErrs := config.Load(".")
	for _, e := range cfgErrs {
		logger.Warnf("config: %v", e)
	}

	runFn, err := loadPluginRun(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "bheeshma: failed to load %s: %v\n", fs.Arg(0), err)
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	exitCh := make(chan int, 1)

	go func() {
		logger.Infof("installing interception")
		result, monitorErr := bheeshma.Monitor(runFn, bheeshma.MonitorOptions{
			Config:       &cfg,
			ReportFormat: reportFormat,
		})
		if monitorErr != nil {
			fmt.Fprintf(os.Stderr, "bheeshma: report generation failed: %v\n", monitorErr)
			exitCh <- 1
			return
		}
		if result.Err != nil {
			logger.Warnf("monitored run returned an error: %v", result.Err)
		}
		logger.Infof("pattern analysis: %d finding(s), highest severity %s",
			result.Threats.TotalFindings, result.Threats.HighestSeverity)
		if err := writeReport(result.Report, *output); err != nil {
			fmt.Fprintf(os.Stderr, "bheeshma: %v\n", err)
			exitCh <- 1
			return
		}
		exitCh <- 0
	}()

	select {
	case code := <-exitCh:
		return code
	case sig := <-sigCh:
		logger.Warnf("received %s, shutting down", sig)
		if sig == syscall.SIGINT {
			return 130
		}
		return 143
	}
}

// loadPluginRun opens a Go plugin and resolves its exported Run symbol.
func loadPluginRun(path string) (func() error, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	sym, err := p.Lookup("Run")
	if err != nil {
		return nil, err
	}
	runFn, ok := sym.(func() error)
	if !ok {
		return nil, fmt.Errorf("plugin %s: Run symbol has the wrong signature, want func() error", path)
	}
	return runFn, nil
}

func writeReport(rendered, outputPath string) error {
	if outputPath == "" {
		fmt.Println(rendered)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(rendered+"\n"), 0o644); err != nil {
		return fmt.Errorf("write report to %s: %w", outputPath, err)
	}
	return nil
}
