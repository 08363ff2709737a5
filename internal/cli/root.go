// Package cli handles command line interface logic
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/arch/w65816"
	"github.com/retroenv/snescfa/internal/config"
	"github.com/retroenv/snescfa/internal/fileprocessor"
	"github.com/retroenv/snescfa/internal/options"
	"github.com/retroenv/snescfa/internal/pipeline"
	"github.com/retroenv/snescfa/internal/writer"
	"github.com/spf13/cobra"
)

// BuildInfo contains the version information set at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var errInvalidFormat = errors.New("unsupported output format")

// state is shared by all commands and initialized before a command runs.
type state struct {
	build    BuildInfo
	opts     options.Program
	verbose  bool
	hex      bool
	logger   *log.Logger
	cfg      config.Config
	pipeline *pipeline.Pipeline
}

// Execute runs the command line with the given arguments.
func Execute(ctx context.Context, build BuildInfo, args []string) error {
	cmd := NewRootCommand(build)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// NewRootCommand returns the root command with all subcommands registered.
func NewRootCommand(build BuildInfo) *cobra.Command {
	s := &state{build: build}

	rootCmd := &cobra.Command{
		Use:   "snescfa",
		Short: "Control flow analysis of 65816 routines in SNES ROMs",
		Long: `snescfa reads 65816 routines from SNES ROM images and recovers their
control flow graph, dominator tree and natural loops. The report command checks
all script operation handlers for calls of a tracked routine.`,
		Version:           buildinfo.Version(build.Version, build.Commit, build.Date),
		SilenceUsage:      true,
		PersistentPreRunE: s.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&s.opts.Debug, "debug", "d", false, "enable debug logging")
	flags.BoolVarP(&s.verbose, "verbose", "v", false, "increase output verbosity, same as --debug")
	flags.BoolVarP(&s.opts.Quiet, "quiet", "q", false, "quiet mode")
	flags.StringVarP(&s.opts.Config, "config", "c", "", "JSON report configuration file")
	flags.StringVarP(&s.opts.Mapping, "mapping", "m", "", "ROM mapping: hirom, lorom (default: auto-detect)")
	flags.StringVarP(&s.opts.Output, "output", "o", "", "output file (default: stdout)")
	flags.StringVarP(&s.opts.Format, "format", "f", options.FormatText, "output format: text, dot, json")
	flags.BoolVar(&s.opts.NoAddresses, "noaddresses", false, "omit instruction addresses in listings")
	flags.BoolVar(&s.hex, "hex", false, "append instruction bytes as comment to listings")
	flags.IntVar(&s.opts.MaxDomPasses, "max-dom-passes", 0, "maximum dominator fixpoint passes, 0 for unlimited")

	rootCmd.AddCommand(
		newAnalyzeCmd(s, "disasm", "Disassemble a routine", pipeline.StageRoutine),
		newAnalyzeCmd(s, "cfg", "Print the control flow graph of a routine", pipeline.StageCFG),
		newAnalyzeCmd(s, "dom", "Print the dominator tree of a routine", pipeline.StageDominators),
		newAnalyzeCmd(s, "loops", "Print the natural loops of a routine", pipeline.StageLoops),
		newCallsCmd(s),
		newOpSubCmd(s),
		newReportCmd(s),
		newBatchCmd(s),
		newSchemaCmd(),
	)
	return rootCmd
}

// setup creates the logger and loads the configuration.
func (s *state) setup(cmd *cobra.Command, _ []string) error {
	if s.verbose {
		s.opts.Debug = true
	}
	s.logger = config.CreateLogger(s.opts.Debug, s.opts.Quiet)
	fileprocessor.PrintBanner(s.logger, s.opts, s.build.Version, s.build.Commit, s.build.Date)

	cfg, err := config.Load(s.opts.Config)
	if err != nil {
		return err
	}
	s.cfg = cfg
	if s.opts.Mapping == "" {
		s.opts.Mapping = cfg.Mapping
	}
	if !cmd.Flags().Changed("max-dom-passes") && cfg.MaxDomPasses > 0 {
		s.opts.MaxDomPasses = cfg.MaxDomPasses
	}

	table, err := w65816.DefaultTable()
	if err != nil {
		return fmt.Errorf("creating opcode table: %w", err)
	}
	s.pipeline = pipeline.New(s.logger, table)
	return nil
}

// writeOutput calls write with the output file or the command output.
func (s *state) writeOutput(cmd *cobra.Command, write func(w io.Writer) error) error {
	if s.opts.Output == "" {
		return write(cmd.OutOrStdout())
	}
	return fileprocessor.WriteOutput(s.opts, write)
}

func (s *state) writerOptions() writer.Options {
	return writer.Options{
		Addresses:   !s.opts.NoAddresses,
		HexComments: s.hex,
	}
}

func checkFormat(format string, supported ...string) error {
	for _, f := range supported {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("%w '%s', supported: %v", errInvalidFormat, format, supported)
}

func parseIndex(s string) (int, error) {
	index, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index '%s': %w", s, err)
	}
	return int(index), nil
}
