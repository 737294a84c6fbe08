package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/linuxmatters/jivescope/internal/audio"
	"github.com/linuxmatters/jivescope/internal/cli"
	"github.com/linuxmatters/jivescope/internal/logging"
	"github.com/linuxmatters/jivescope/internal/pipeline"
	"go.uber.org/zap"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

const appName = "jivescope"

var CLI struct {
	Input   string `arg:"" name:"file" help:"Audio capture to analyse (WAV; FLAC, MP3, Ogg Vorbis and AIFF by extension)" optional:""`
	Verbose bool   `short:"v" help:"Log decoder and analysis details to stderr"`
	Version bool   `help:"Show version information"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name(appName),
		kong.Description("Report the dominant frequency and harmonics of a .wav capture and plot its spectrum."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	// The input is optional to kong so a bare invocation gets the short usage line
	if CLI.Input == "" {
		cli.PrintUsage(appName)
		os.Exit(1)
	}

	logger := logging.New(CLI.Verbose)
	code := run(CLI.Input, logger)
	_ = logger.Sync()
	os.Exit(code)
}

// run analyses one file and returns the process exit code
func run(input string, logger *zap.Logger) int {
	_, err := pipeline.Run(pipeline.Options{Input: input, Logger: logger})
	switch {
	case err == nil:
		return 0
	case errors.Is(err, audio.ErrFileNotFound):
		cli.PrintFileNotFound(input)
	default:
		logger.Debug("run failed", zap.Error(err))
		cli.PrintError(err.Error())
	}
	return 1
}
