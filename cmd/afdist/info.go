package main

import (
	"fmt"
	"io"
	"math/rand"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/aria-lang/afdist/internal/seqio"
	"github.com/aria-lang/afdist/internal/simulate"
	"github.com/aria-lang/afdist/internal/stats"
	"github.com/aria-lang/afdist/pkg/afdist"
)

func infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <fasta|dir>...",
		Short: "Show per-sequence and per-set statistics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				seqs, err := afdist.LoadSequences(path)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s\n", path)
				for _, s := range seqs {
					fmt.Fprintf(out, "  %s\n", stats.FromSequence(s))
				}
				set, err := stats.FromSequences(seqs)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(out, "  %s\n", set)
			}
			return nil
		},
	}
}

func simulateCommand() *cobra.Command {
	var (
		output string
		prefix string
		length int
		count  int
		rate   float64
		seed   int64
		width  int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Write a family of mutated copies of one random ancestor as FASTA",
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewSource(seed))
			fam, err := simulate.Family(rng, prefix, length, count, rate)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				return seqio.WriteFASTA(w, fam, width)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&prefix, "prefix", "sim", "Sequence name prefix")
	cmd.Flags().IntVarP(&length, "length", "l", 5000, "Sequence length")
	cmd.Flags().IntVarP(&count, "count", "n", 4, "Number of sequences")
	cmd.Flags().Float64VarP(&rate, "rate", "r", 0.05, "Per-position substitution rate from the ancestor")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&width, "width", 80, "FASTA line width")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, afdist.Info())
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
