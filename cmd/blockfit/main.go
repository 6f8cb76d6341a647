// BlockFit places a set of named blocks into a square grid without overlap.
//
// Usage:
//   blockfit <input file>
//
// The input is read as CSV (.csv), Excel (.xlsx, .xlsm), DXF (.dxf) or the
// plain text format, one block per line:
//   A:0,0;1,0;1,1;2,1
//
// Settings and optional exports are read from ~/.blockfit/config.json or
// the file named by BLOCKFIT_CONFIG.
//
// Build:
//   go build -o blockfit ./cmd/blockfit

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/piwi3910/BlockFit/internal/engine"
	"github.com/piwi3910/BlockFit/internal/export"
	"github.com/piwi3910/BlockFit/internal/importer"
	"github.com/piwi3910/BlockFit/internal/model"
	"github.com/piwi3910/BlockFit/internal/project"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one fitting and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Missing input file.")
		return 1
	}
	inputPath := args[0]

	cfg, err := project.LoadAppConfig(project.ConfigPathFromEnv())
	if err != nil {
		fmt.Fprintf(stderr, "Got an exception while processing: %v\n", err)
		return 1
	}

	closeLog, err := initLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Got an exception while processing: %v\n", err)
		return 1
	}
	defer closeLog()

	settings := model.DefaultFitSettings()
	cfg.ApplyToSettings(&settings)
	log.Info().Str("input", inputPath).Int("gridSize", settings.GridSize).Msg("BlockFit")

	imported := importer.Import(inputPath)
	for _, w := range imported.Warnings {
		log.Info().Str("input", inputPath).Msg(w)
	}
	if imported.HasErrors() {
		fmt.Fprintf(stderr, "Failed to read input file: %s\n", imported.ErrorMessage())
		return 1
	}

	fitter := engine.New(settings)
	result, err := fitter.FitBlocks(imported.Blocks)
	if err != nil {
		if isInputRejection(err) {
			log.Debug().Err(err).Msg("Input rejected before search")
		} else {
			log.Error().Err(err).Msg("Fitting failed")
		}
		fmt.Fprintf(stderr, "Got an exception while processing: %v\n", err)
		return 1
	}

	stats := fitter.LastStats()
	log.Info().
		Int("starterRuns", stats.StarterRuns).
		Int("attempts", stats.Attempts).
		Dur("duration", stats.Duration).
		Bool("fits", result != nil).
		Msg("Search finished")

	if result == nil {
		fmt.Fprintln(stderr, "The blocks does not fit the grid.")
		return 1
	}

	if err := result.RenderGrid(stdout); err != nil {
		fmt.Fprintf(stderr, "Got an exception while processing: %v\n", err)
		return 1
	}
	if err := result.RenderCoordinates(stdout); err != nil {
		fmt.Fprintf(stderr, "Got an exception while processing: %v\n", err)
		return 1
	}

	if err := writeExports(cfg.Exports, result, stats); err != nil {
		log.Error().Err(err).Msg("Export failed")
		fmt.Fprintf(stderr, "Got an exception while processing: %v\n", err)
		return 1
	}
	return 0
}

// isInputRejection reports whether err is one of the checks the fitter
// applies before searching.
func isInputRejection(err error) bool {
	return errors.Is(err, model.ErrEmptyInput) ||
		errors.Is(err, model.ErrTooManyPoints) ||
		errors.Is(err, model.ErrDuplicateName) ||
		errors.Is(err, model.ErrInvalidGridSize)
}

// initLogger configures the global logger from the application config.
// Logs go to stderr through a console writer, or to cfg.LogFile when set.
// The returned function closes the log file, if any.
func initLogger(cfg model.AppConfig, stderr io.Writer) (func(), error) {
	level := zerolog.WarnLevel
	if cfg.LogLevel != "" {
		parsed, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFile == "" {
		out := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { f.Close() }, nil
}

// writeExports writes every export that has a path configured.
func writeExports(cfg model.ExportConfig, result *model.FittingResult, stats engine.Stats) error {
	exports := []struct {
		name string
		path string
		fn   func(string, *model.FittingResult) error
	}{
		{"pdf", cfg.PDFPath, export.ExportPDF},
		{"labels", cfg.LabelsPath, export.ExportLabels},
		{"workbook", cfg.WorkbookPath, export.ExportWorkbook},
		{"dxf", cfg.DXFPath, export.ExportDXF},
		{"png", cfg.PNGPath, export.ExportPNG},
	}

	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.fn(e.path, result); err != nil {
			return fmt.Errorf("%s export: %w", e.name, err)
		}
		log.Info().Str("format", e.name).Str("path", e.path).Msg("Exported")
	}

	if cfg.ReportPath != "" {
		if err := project.SaveReport(cfg.ReportPath, project.NewReport(result, stats)); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		log.Info().Str("path", cfg.ReportPath).Msg("Saved report")
	}
	return nil
}
