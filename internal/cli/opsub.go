package cli

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
)

func newOpSubCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "opsub <rom> <index>",
		Short: "Print the handler address of a script operation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			s.opts.Input = args[0]

			r, err := s.pipeline.Open(s.opts)
			if err != nil {
				return err
			}
			address, err := s.cfg.Table().Routine(r, index)
			if err != nil {
				return err
			}
			s.logger.Info("Routine location", log.String("address", fmt.Sprintf("%06X", address)))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%06X\n", address)
			return err
		},
	}
}
