package cli

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/config"
	"github.com/retroenv/snescfa/internal/options"
	"github.com/retroenv/snescfa/internal/pipeline"
	"github.com/retroenv/snescfa/internal/render"
	"github.com/retroenv/snescfa/internal/report"
	"github.com/retroenv/snescfa/internal/writer"
	"github.com/spf13/cobra"
)

// entryFlags are the processor flags at the entry of the analyzed routine.
type entryFlags struct {
	m8 bool
	x8 bool
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.m8, "m8", false, "accumulator is 8 bit at routine entry")
	cmd.Flags().BoolVar(&f.x8, "x8", false, "index registers are 8 bit at routine entry")
}

func (f *entryFlags) routine(address string) (options.Routine, error) {
	addr, err := config.ParseAddress(address)
	if err != nil {
		return options.Routine{}, err
	}
	routine := options.Routine{Address: addr}
	routine.Flags.M = f.m8
	routine.Flags.X = f.x8
	return routine, nil
}

func newAnalyzeCmd(s *state, use, short string, stage pipeline.Stage) *cobra.Command {
	var flags entryFlags
	cmd := &cobra.Command{
		Use:   use + " <rom> <address>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runAnalyze(cmd, args, &flags, stage)
		},
	}
	flags.register(cmd)
	return cmd
}

func (s *state) runAnalyze(cmd *cobra.Command, args []string, flags *entryFlags, stage pipeline.Stage) error {
	supported := []string{options.FormatText}
	if stage == pipeline.StageCFG || stage == pipeline.StageDominators {
		supported = append(supported, options.FormatDOT)
	}
	if err := checkFormat(s.opts.Format, supported...); err != nil {
		return err
	}

	routine, err := flags.routine(args[1])
	if err != nil {
		return err
	}
	s.opts.Input = args[0]

	r, err := s.pipeline.Open(s.opts)
	if err != nil {
		return err
	}
	result, err := s.pipeline.Execute(cmd.Context(), r, routine, stage, s.opts)
	if err != nil {
		return fmt.Errorf("analyzing routine %06X: %w", routine.Address, err)
	}
	s.logger.Debug("Analyzed routine",
		log.String("address", fmt.Sprintf("%06X", routine.Address)),
		log.Int("instructions", len(result.Routine.Instructions)))

	return s.writeOutput(cmd, func(w io.Writer) error {
		return s.writeResult(w, routine.Address, stage, result)
	})
}

func (s *state) writeResult(w io.Writer, address uint32, stage pipeline.Stage, result *pipeline.Result) error {
	name := fmt.Sprintf("sub_%06X", address)
	wr := writer.New(w, s.writerOptions())

	switch stage {
	case pipeline.StageRoutine:
		return wr.WriteRoutine(result.Routine)

	case pipeline.StageCFG:
		if s.opts.Format != options.FormatDOT {
			return wr.WriteCFG(result.CFG)
		}
		dot, err := render.CFGDOT(name, result.CFG)
		if err != nil {
			return fmt.Errorf("rendering graph: %w", err)
		}
		_, err = io.WriteString(w, dot)
		return err

	case pipeline.StageDominators:
		if s.opts.Format != options.FormatDOT {
			return wr.WriteTree(result.Tree)
		}
		_, err := io.WriteString(w, render.TreeDOT(name, result.Tree))
		return err

	default:
		return wr.WriteLoops(result.CFG, result.Loops)
	}
}

func newCallsCmd(s *state) *cobra.Command {
	var track string
	cmd := &cobra.Command{
		Use:   "calls <rom> <address>",
		Short: "Print the call graph of a routine",
		Long: `Print the call graph of the routine at the given address. Calls of the
tracked routine are not followed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runCalls(cmd, args, track)
		},
	}
	cmd.Flags().StringVarP(&track, "track", "t", "", "tracked routine address (default: from config)")
	return cmd
}

func (s *state) runCalls(cmd *cobra.Command, args []string, track string) error {
	if err := checkFormat(s.opts.Format, options.FormatText, options.FormatDOT); err != nil {
		return err
	}
	address, err := config.ParseAddress(args[1])
	if err != nil {
		return err
	}
	tracked := uint32(s.cfg.TrackRoutine)
	if track != "" {
		if tracked, err = config.ParseAddress(track); err != nil {
			return err
		}
	}
	s.opts.Input = args[0]

	r, err := s.pipeline.Open(s.opts)
	if err != nil {
		return err
	}
	analyzer := report.NewAnalyzer(s.logger, s.pipeline.Reader(r), tracked, s.pipeline.DominatorOptions(s.opts)...)
	analysis, err := analyzer.Analyze(address)
	if err != nil {
		return err
	}

	return s.writeOutput(cmd, func(w io.Writer) error {
		if s.opts.Format == options.FormatDOT {
			_, err := io.WriteString(w, render.CallGraphDOT(fmt.Sprintf("calls_%06X", address), analysis.CallGraph))
			return err
		}
		return writeCalls(w, analysis, tracked)
	})
}

func writeCalls(w io.Writer, analysis *report.Analysis, tracked uint32) error {
	for _, node := range analysis.CallGraph.SortedNodes() {
		info := node.Data
		if _, err := fmt.Fprintf(w, "%06X: %d instructions, %d calls of %06X, %d indexed calls, %d jumps\n",
			info.Routine.Address, len(info.Routine.Instructions), info.CallCount(tracked),
			tracked, len(info.IndexedCalls), len(info.Jumps)); err != nil {
			return err
		}
		for _, succ := range analysis.CallGraph.SuccessorNodes(node) {
			if _, err := fmt.Fprintf(w, "  -> %06X\n", succ.Data.Routine.Address); err != nil {
				return err
			}
		}
	}
	return nil
}
