package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/vk/idfgo/internal/app"
	"github.com/vk/idfgo/internal/config"
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
	flagSet := pflag.NewFlagSet("idfgo", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SortFlags = false

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
idfgo - Validate, query and reshape EnergyPlus instance files.

Usage:
  idfgo [options] [IDF_PATH]

Arguments:
  IDF_PATH
    Instance file to load. Without it an empty model is created.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.StringSliceP("config", "c", nil, "Configuration file or directory (.hcl, .yaml). Repeatable.")
	schemaDirFlag := flagSet.String("schema-dir", "", "Directory with <version>.idd schema files. Defaults to the embedded schemas.")
	versionFlag := flagSet.StringP("version", "v", "", "Schema version for new or filtered models.")
	typesFlag := flagSet.StringSliceP("types", "t", nil, "Only import records of these types.")
	forceRequiredFlag := flagSet.Bool("force-required", false, "Also import schema-required types when filtering.")
	geometryFlag := flagSet.BoolP("geometry", "g", false, "Only import the geometry of the instance file.")
	flattenFlag := flagSet.Bool("flatten", false, "Make every floor, roof and ceiling adiabatic.")
	constructionFlag := flagSet.String("construction", "", "Construction assigned to surfaces rewritten by --flatten.")
	describeFlag := flagSet.String("describe", "", "Print the memo of a schema type.")
	helpTypeFlag := flagSet.String("help-type", "", "Print the fields of a schema type.")
	findFlag := flagSet.String("find", "", "List schema types whose name contains the query.")
	publishFlag := flagSet.String("publish", "", "socket.io URL the model is published to.")
	interactiveFlag := flagSet.BoolP("interactive", "i", false, "Open an interactive shell on the model.")
	logFormatFlag := flagSet.String("log-format", config.DefaultLogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", config.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one instance file, got %d", flagSet.NArg())}
	}

	// Unchanged logging flags leave the choice to configuration files.
	logFormat := ""
	if flagSet.Changed("log-format") {
		logFormat = strings.ToLower(*logFormatFlag)
		if err := config.CheckLogFormat(logFormat); err != nil {
			return nil, false, &ExitError{Code: 2, Message: "invalid log-format: " + err.Error()}
		}
	}
	logLevel := ""
	if flagSet.Changed("log-level") {
		logLevel = strings.ToLower(*logLevelFlag)
		if _, err := config.ParseLogLevel(logLevel); err != nil {
			return nil, false, &ExitError{Code: 2, Message: "invalid log-level: " + err.Error()}
		}
	}

	cfg := &app.Config{
		IDFPath:       flagSet.Arg(0),
		ConfigPaths:   *configFlag,
		SchemaDir:     *schemaDirFlag,
		Version:       *versionFlag,
		Types:         *typesFlag,
		ForceRequired: *forceRequiredFlag,
		Geometry:      *geometryFlag,
		Flatten:       *flattenFlag,
		Construction:  *constructionFlag,
		Describe:      *describeFlag,
		HelpType:      *helpTypeFlag,
		Find:          *findFlag,
		PublishURL:    *publishFlag,
		Interactive:   *interactiveFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	}

	if cfg.IDFPath == "" && len(cfg.ConfigPaths) == 0 && !cfg.Interactive &&
		cfg.Describe == "" && cfg.HelpType == "" && cfg.Find == "" {
		slog.Debug("Nothing to do, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
