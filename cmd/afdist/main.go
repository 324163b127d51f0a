// Command afdist estimates alignment-free evolutionary distances between
// nucleotide sequences.
//
// Usage:
//
//	afdist [command] [options]
//
// Commands:
//
//	matrix      Write the all-pairs distance matrix (PHYLIP)
//	pairs       Write all pairwise distances (tab separated)
//	curve       Print the decay curve of two sequences
//	bench       Estimate distances of simulated pairs
//	simulate    Write a simulated sequence family as FASTA
//	info        Show sequence statistics
//	version     Show version information
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aria-lang/afdist/internal/config"
)

// globalOptions are the persistent flags shared by every command. Flags
// that were set explicitly override the configuration file.
type globalOptions struct {
	configPath   string
	strategy     string
	background   string
	motifSet     string
	maskSeed     int64
	singleStrand bool
	kMin         int
	kMax         int
	reportKs     []int
	fit          string
	workers      int
	logLevel     string
}

func (o *globalOptions) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	f.StringVarP(&o.strategy, "strategy", "s", "", "Word matching strategy: plain, gapped or motif")
	f.StringVarP(&o.background, "background", "b", "", "Background policy: none, reversed_control or expected_random")
	f.StringVar(&o.motifSet, "motif-set", "", "Built-in motif set for the motif strategy")
	f.Int64Var(&o.maskSeed, "mask-seed", 0, "Seed for generated gapped-word masks")
	f.BoolVar(&o.singleStrand, "single-strand", false, "Count the forward strand only")
	f.IntVar(&o.kMin, "k-min", 0, "Smallest word length (disables empirical bounds)")
	f.IntVar(&o.kMax, "k-max", 0, "Largest word length (disables empirical bounds)")
	f.IntSliceVar(&o.reportKs, "report-k", nil, "Word lengths of the displayed curve")
	f.StringVar(&o.fit, "fit", "", "Estimator fit: boundary or all")
	f.IntVarP(&o.workers, "workers", "w", 0, "Worker goroutines (default: number of CPUs)")
	f.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// resolve loads the configuration file and applies explicitly set flags.
func (o *globalOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("strategy") {
		cfg.WordMatchingStrategy = o.strategy
	}
	if changed("background") {
		cfg.BackgroundPolicy = o.background
	}
	if changed("motif-set") {
		cfg.MotifSet = o.motifSet
	}
	if changed("mask-seed") {
		seed := o.maskSeed
		cfg.MaskSeed = &seed
	}
	if changed("single-strand") {
		cfg.DoubleStrand = !o.singleStrand
	}
	if changed("k-min") || changed("k-max") {
		cfg.UseEmpiricalKBounds = false
		if changed("k-min") {
			cfg.KMin = o.kMin
		}
		if changed("k-max") {
			cfg.KMax = o.kMax
		}
	}
	if changed("report-k") {
		cfg.KValuesToReport = o.reportKs
	}
	if changed("fit") {
		cfg.Fit = o.fit
	}
	if changed("workers") {
		cfg.Workers = o.workers
	}
	if changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	return cfg, cfg.Validate()
}

func (o *globalOptions) logger(cmd *cobra.Command, cfg config.Config) *logrus.Logger {
	return cfg.NewLogger(cmd.ErrOrStderr())
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "afdist",
		Short: "Alignment-free Jukes-Cantor distances",
		Long: `afdist estimates evolutionary distances between nucleotide sequences
without aligning them.

For each pair it counts shared words over a range of word lengths k, fits
the geometric decay of the count to obtain the per-position match
probability, and converts that probability to a Jukes-Cantor distance.`,
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	opts.register(rootCmd)

	rootCmd.AddCommand(matrixCommand(opts, "matrix", formatPHYLIP))
	rootCmd.AddCommand(matrixCommand(opts, "pairs", formatPairs))
	rootCmd.AddCommand(curveCommand(opts))
	rootCmd.AddCommand(benchCommand(opts))
	rootCmd.AddCommand(simulateCommand())
	rootCmd.AddCommand(infoCommand())
	rootCmd.AddCommand(versionCommand())
	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
