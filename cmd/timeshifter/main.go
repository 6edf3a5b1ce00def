// Package main provides the CLI entry point for timeshifter.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/timeshifter/pkg/adapters/logger"
	"github.com/user/timeshifter/pkg/adapters/osfilesystem"
	"github.com/user/timeshifter/pkg/config"
	"github.com/user/timeshifter/pkg/orchestrator"
	"github.com/user/timeshifter/pkg/ports"
	"github.com/user/timeshifter/pkg/summarizer"
	"github.com/user/timeshifter/pkg/timeshifter"
)

// CLI defines the command-line interface.
type CLI struct {
	// Required arguments; counts are parsed leniently by parseCount
	SourceDir  string `arg:"" name:"source_dir" help:"${help_source_dir}"`
	OutputDir  string `arg:"" name:"output_dir" help:"${help_output_dir}"`
	FrameCount string `arg:"" name:"frame_count" help:"${help_frame_count}"`
	SliceCount string `arg:"" name:"slice_count" help:"${help_slice_count}"`

	Config string `short:"c" type:"existingfile" help:"${help_config}"`

	// Logging options
	LogLevel string `short:"l" placeholder:"LEVEL" help:"${help_log_level}"`
	Quiet    bool   `short:"Q" help:"${help_quiet}"`

	// Debug options
	Debug    bool    `short:"d" help:"${help_debug}"`
	DebugDir *string `help:"${help_debug_dir}"`

	Summary string `help:"${help_summary}"`

	Version kong.VersionFlag `help:"${help_version}"`
}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("timeshifter"),
		kong.Description(l10n.T("Time-shift the horizontal slices of a PNG frame sequence.")),
		kong.UsageOnError(),
		kong.Vars{
			"version":          l10n.F("timeshifter version %s", version),
			"help_source_dir":  l10n.T("Directory of the source frames."),
			"help_output_dir":  l10n.T("Directory of the placeholder frames, overwritten in place."),
			"help_frame_count": l10n.T("Number of frames in both directories."),
			"help_slice_count": l10n.T("Number of horizontal slices per frame."),
			"help_config":      l10n.T("YAML configuration file."),
			"help_log_level":   l10n.T("Log level (debug, info, warn, error)."),
			"help_quiet":       l10n.T("Suppress all log output."),
			"help_debug":       l10n.T("Enable debug output."),
			"help_debug_dir":   l10n.T("Directory for debug output."),
			"help_summary":     l10n.T("Output execution summary to file (Markdown format)."),
			"help_version":     l10n.T("Show version information."),
		},
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the time-shift.
func (cmd *CLI) Run() error {
	cfg, err := cmd.loadConfig()
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cfg.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	runCfg := cfg.ToBuilder(cmd.SourceDir, cmd.OutputDir,
		parseCount(cmd.FrameCount), parseCount(cmd.SliceCount)).Build()

	result, err := timeshifter.Run(ctx, runCfg, log)
	if err != nil {
		return err
	}

	if cfg.Summary != "" {
		if err := writeSummary(cfg.Summary, runCfg, result); err != nil {
			log.Warn("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", cfg.Summary)
		}
	}

	if !cfg.Quiet {
		fmt.Println(l10n.F("Done: %d frames written to %s", len(result.Written), cmd.OutputDir))
	}
	return nil
}

// loadConfig reads the configuration file, if any, and applies CLI overrides.
func (cmd *CLI) loadConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		var err error
		if cfg, err = config.LoadFromFile(cmd.Config); err != nil {
			return cfg, err
		}
	}

	if cmd.LogLevel != "" {
		cfg.LogLevel = cmd.LogLevel
	}
	if cmd.Quiet {
		cfg.Quiet = true
	}
	if cmd.Debug {
		cfg.Debug = true
	}
	if cmd.DebugDir != nil {
		cfg.DebugDir = *cmd.DebugDir
	}
	if cmd.Summary != "" {
		cfg.Summary = cmd.Summary
	}
	return cfg, nil
}

func writeSummary(path string, cfg timeshifter.Config, result orchestrator.RunResult) error {
	summary := summarizer.NewBuilder().
		WithInput(result.SourceDir, result.OutputDir, cfg.FramePattern).
		WithFrames(summarizer.FrameInfo{
			Width:         result.Width,
			Height:        result.Height,
			Layout:        result.Layout,
			BitDepth:      result.BitDepth,
			BytesPerPixel: result.BytesPerPixel,
		}).
		WithSlicing(summarizer.SlicingInfo{
			FrameCount:  result.FrameCount,
			SliceCount:  result.SliceCount,
			SliceHeight: result.SliceHeight,
			DroppedRows: result.DroppedRows,
		}).
		WithResult(summarizer.ResultInfo{
			FramesProcessed: result.FramesProcessed,
			SliceCopies:     result.SliceCopies,
			Written:         result.Written,
			DurationMs:      result.DurationMs,
		}).
		WithSchedule(result.Grid).
		Build()

	writer := summarizer.NewWriter(
		summarizer.NewMarkdownFormatter(summarizer.WithVersion(version)),
		osfilesystem.New(),
	)
	return writer.Write(path, summary)
}

// parseCount reads a base-10 count the way strtol does: leading blanks,
// an optional sign, then as many digits as follow. Input without digits
// yields 0 and out-of-range values saturate.
func parseCount(s string) int {
	s = strings.TrimLeft(s, " \t\n\v\f\r")

	negative := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int(s[i] - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
			break
		}
		n = n*10 + d
	}

	if negative {
		return -n
	}
	return n
}
