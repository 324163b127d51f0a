package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/aria-lang/afdist/internal/matrix"
	"github.com/aria-lang/afdist/pkg/afdist"
)

type outputFormat int

const (
	formatPHYLIP outputFormat = iota
	formatPairs
)

func matrixCommand(opts *globalOptions, use string, format outputFormat) *cobra.Command {
	var (
		output   string
		progress bool
	)
	short := "Write the all-pairs distance matrix in PHYLIP format"
	if format == formatPairs {
		short = "Write all ordered pairwise distances as tab-separated lines"
	}

	cmd := &cobra.Command{
		Use:   use + " <fasta|dir>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
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
			logger.WithField("sequences", len(seqs)).Info("sequences loaded")

			var bar *pb.ProgressBar
			runOpts := &afdist.Options{Logger: logger}
			if progress && len(seqs) > 1 {
				bar = pb.Full.New(len(seqs) * (len(seqs) - 1))
				bar.SetWriter(cmd.ErrOrStderr())
				bar.Start()
				runOpts.OnPair = func() { bar.Increment() }
			}

			m, err := afdist.BuildMatrix(cmd.Context(), seqs, cfg, runOpts)
			if bar != nil {
				bar.Finish()
			}
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				if format == formatPairs {
					return matrix.WritePairs(w, m)
				}
				return matrix.WritePHYLIP(w, m)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVarP(&progress, "progress", "p", false, "Show a progress bar on stderr")
	return cmd
}

// writeOutput calls write on path, or on stdout when path is empty.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
