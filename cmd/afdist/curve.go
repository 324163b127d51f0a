package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aria-lang/afdist/pkg/afdist"
)

func curveCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "curve <fasta|dir>...",
		Short: "Print the decay curve F(k) of the first two sequences",
		Long: `Print the decay curve F(k) = ln(M(k) - B(k)) of the first two input
sequences, over --report-k or the estimation range. Undefined points,
where the background is at least the match count, print as NaN.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			logger := opts.logger(cmd, cfg)

			seqs, err := afdist.LoadSequences(args...)
			if err != nil {
				return err
			}
			if len(seqs) < 2 {
				return fmt.Errorf("curve needs two sequences, found %d", len(seqs))
			}

			c, err := afdist.BuildCurve(seqs[0], seqs[1], cfg, &afdist.Options{Logger: logger})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s vs %s\n", seqs[0].Name(), seqs[1].Name())
			fmt.Fprint(out, c.Format())
			return nil
		},
	}
}
