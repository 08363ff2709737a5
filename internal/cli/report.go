package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/config"
	"github.com/retroenv/snescfa/internal/fileprocessor"
	"github.com/retroenv/snescfa/internal/options"
	"github.com/spf13/cobra"
)

var errNoFiles = errors.New("no files match the batch pattern")

// reportFlags override the report settings of the configuration.
type reportFlags struct {
	track  string
	ignore []string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.track, "track", "t", "", "tracked routine address")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "handler addresses to ignore")
}

func (f *reportFlags) apply(cfg *config.Config) error {
	if f.track != "" {
		addr, err := config.ParseAddress(f.track)
		if err != nil {
			return err
		}
		cfg.TrackRoutine = config.Address(addr)
	}
	for _, s := range f.ignore {
		addr, err := config.ParseAddress(s)
		if err != nil {
			return err
		}
		cfg.IgnoreList = append(cfg.IgnoreList, config.Address(addr))
	}
	return nil
}

func newReportCmd(s *state) *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "report <rom>",
		Short: "Report the operation handlers that call the tracked routine",
		Long: `Analyze all handlers of the operation table and report whether every
path through a handler calls the tracked routine exactly once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(s.opts.Format, options.FormatText, options.FormatJSON); err != nil {
				return err
			}
			if err := flags.apply(&s.cfg); err != nil {
				return err
			}
			s.opts.Input = args[0]

			rep, err := fileprocessor.GenerateReport(cmd.Context(), s.logger, s.pipeline, s.opts, s.cfg)
			if err != nil {
				return err
			}

			return s.writeOutput(cmd, func(w io.Writer) error {
				if s.opts.Format == options.FormatJSON {
					return rep.WriteJSON(w)
				}
				return rep.WriteText(w)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newBatchCmd(s *state) *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "batch <pattern>",
		Short: "Generate handler reports for all ROM files matching the pattern",
		Long: `Generate a handler report for every ROM file matching the glob pattern.
Every report is written next to its ROM file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(s.opts.Format, options.FormatText, options.FormatJSON); err != nil {
				return err
			}
			if err := flags.apply(&s.cfg); err != nil {
				return err
			}
			s.opts.Batch = args[0]
			return s.runBatch(cmd.Context())
		},
	}
	flags.register(cmd)
	return cmd
}

func (s *state) runBatch(ctx context.Context) error {
	files, err := fileprocessor.GetFilesToProcess(&s.opts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: %s", errNoFiles, s.opts.Batch)
	}

	var failed int
	for _, file := range files {
		opts := s.opts
		opts.Input = file
		opts.Output = fileprocessor.GenerateOutputFilename(file, fileprocessor.OutputExtension(opts.Format))

		if err := fileprocessor.ProcessFile(ctx, s.logger, s.pipeline, opts, s.cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			s.logger.Error("Generating report failed", log.String("file", file), log.Err(err))
			failed++
			continue
		}
		s.logger.Info("Report written", log.String("file", opts.Output))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
