// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/config"
	"github.com/retroenv/snescfa/internal/dominator"
	"github.com/retroenv/snescfa/internal/options"
	"github.com/retroenv/snescfa/internal/pipeline"
	"github.com/retroenv/snescfa/internal/report"
)

// ProcessFile generates the handler report of a ROM file and writes it to
// the output of the options.
func ProcessFile(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline, opts options.Program, cfg config.Config) error {
	rep, err := GenerateReport(ctx, logger, p, opts, cfg)
	if err != nil {
		return err
	}

	return WriteOutput(opts, func(w io.Writer) error {
		if opts.Format == options.FormatJSON {
			return rep.WriteJSON(w)
		}
		return rep.WriteText(w)
	})
}

// GenerateReport analyzes all handlers of the operation table of the ROM.
func GenerateReport(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline, opts options.Program, cfg config.Config) (*report.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r, err := p.Open(opts)
	if err != nil {
		return nil, err
	}

	handlers, err := cfg.Table().Routines(r)
	if err != nil {
		return nil, fmt.Errorf("reading operation table: %w", err)
	}
	logger.Debug("Read operation table", log.Int("handlers", len(handlers)))

	analyzer := report.NewAnalyzer(logger, p.Reader(r), uint32(cfg.TrackRoutine),
		dominator.WithMaxPasses(opts.MaxDomPasses))
	rep, err := report.Generate(ctx, logger, analyzer, handlers, cfg.Ignored())
	if err != nil {
		return nil, fmt.Errorf("generating report: %w", err)
	}
	return rep, nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile, extension string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + extension
}

// OutputExtension returns the file extension for the output format.
func OutputExtension(format string) string {
	switch format {
	case options.FormatJSON:
		return ".json"
	case options.FormatDOT:
		return ".dot"
	default:
		return ".txt"
	}
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// CreateWriter returns the output file of the options or stdout and a
// function that closes it. The close function returns the error of closing
// the output file.
func CreateWriter(opts options.Program) (io.Writer, func() error, error) {
	writer, err := createWriter(opts)
	if err != nil {
		return nil, nil, err
	}
	return writer, func() error {
		file, ok := writer.(*os.File)
		if !ok || file == os.Stdout {
			return nil
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("closing output file %s: %w", opts.Output, err)
		}
		return nil
	}, nil
}

// WriteOutput calls write with the output of the options and closes an
// output file afterwards.
func WriteOutput(opts options.Program, write func(w io.Writer) error) error {
	writer, closeWriter, err := CreateWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	if err := write(writer); err != nil {
		_ = closeWriter()
		return err
	}
	return closeWriter()
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("snescfa", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
