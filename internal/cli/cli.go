// Package cli turns command-line arguments and an optional conversion
// profile into a validated app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/araliago/internal/app"
	"github.com/vk/araliago/internal/profile"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("araliago", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
araliago - Aralia fault-tree notation to Open-PSA MEF XML converter.

Usage:
  araliago [options] [INPUT_PATH]

Arguments:
  INPUT_PATH
    Path to a file with the Aralia description of a fault tree.

Options:
`)
		flagSet.PrintDefaults()
	}

	inputFlag := flagSet.String("input", "", "Path to the Aralia input file.")
	iFlag := flagSet.String("i", "", "Path to the Aralia input file (shorthand).")
	outFlag := flagSet.String("out", "", "Output file for the converted tree. Defaults to the input name with the .xml extension.")
	oFlag := flagSet.String("o", "", "Output file (shorthand).")
	multiTopFlag := flagSet.Bool("multi-top", false, "Allow multiple top gates.")
	nestFlag := flagSet.Int("nest", 0, "Nesting depth for inlining child-gate formulas in the output.")
	profileFlag := flagSet.String("profile", "", "Path to an HCL conversion profile.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *inputFlag != "" {
		path = *inputFlag
	} else if *iFlag != "" {
		path = *iFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Input path determined.", "path", path)

	if path == "" {
		slog.Debug("No input path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = *oFlag
	}
	cfg := app.Config{
		InputPath: path,
		OutPath:   outPath,
		MultiTop:  *multiTopFlag,
		Nest:      *nestFlag,
		LogFormat: strings.ToLower(*logFormatFlag),
		LogLevel:  strings.ToLower(*logLevelFlag),
	}

	if *profileFlag != "" {
		p, err := profile.Load(*profileFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		applyProfile(&cfg, p, explicitFlags(flagSet))
		slog.Debug("Conversion profile applied.", "path", *profileFlag)
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// explicitFlags reports which flags were set on the command line; explicit
// flags always win over profile values.
func explicitFlags(flagSet *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyProfile fills every config field the profile specifies and the
// command line left at its default.
func applyProfile(cfg *app.Config, p *profile.Profile, set map[string]bool) {
	if p.MultiTop != nil && !set["multi-top"] {
		cfg.MultiTop = *p.MultiTop
	}
	if p.Nest != nil && !set["nest"] {
		cfg.Nest = *p.Nest
	}
	if p.Out != nil && cfg.OutPath == "" {
		cfg.OutPath = *p.Out
	}
	if p.LogLevel != nil && !set["log-level"] {
		cfg.LogLevel = strings.ToLower(*p.LogLevel)
	}
	if p.LogFormat != nil && !set["log-format"] {
		cfg.LogFormat = strings.ToLower(*p.LogFormat)
	}
}
