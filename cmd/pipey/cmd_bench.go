package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kbukum/pipey/internal/bench"
	"github.com/kbukum/pipey/pipeline"
)

type benchFlags struct {
	n, repeat, warmup int
	cases             []string
	asJSON            bool
}

func newBenchCmd(c *cli) *cobra.Command {
	f := &benchFlags{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the reference pipelines over [0, n)",
		Long: `Time the reference pipelines and verify their outputs.

Cases:
  basic_pipeline     map *2, filter >5, map -1, reduce sum
  windowed_pipeline  map *2, windowify(2), filter left+center >4, dewindowify, reduce sum
  windowed_only_sum  windowify(2) iterated directly, summing centers

Defaults for --n, --repeat and --warmup come from the bench section of
the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := f.options(cmd, c.app.Cfg.Bench)
			return c.runTask(cmd, func(ctx context.Context, obs pipeline.Observer) error {
				opts.Observer = obs
				opts.Logger = c.app.Logger.WithComponent("bench")
				results, err := bench.Run(ctx, opts)
				if err != nil {
					return err
				}
				if f.asJSON {
					return writeJSON(cmd.OutOrStdout(), results)
				}
				printBench(newPrinter(cmd.OutOrStdout()), opts, results)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&f.n, "n", "n", 0, "input size (must be at least 4)")
	cmd.Flags().IntVar(&f.repeat, "repeat", 0, "measured runs per case")
	cmd.Flags().IntVar(&f.warmup, "warmup", 0, "unmeasured runs per case")
	cmd.Flags().StringSliceVar(&f.cases, "case", nil, "run only the named cases")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "write results as JSON")
	return cmd
}

// options merges flags over the configured defaults. Only flags set on the
// command line override the config.
func (f *benchFlags) options(cmd *cobra.Command, cfg BenchConfig) bench.Options {
	opts := bench.Options{N: cfg.N, Repeat: cfg.Repeat, Warmup: cfg.Warmup, Cases: f.cases}
	if cmd.Flags().Changed("n") {
		opts.N = f.n
	}
	if cmd.Flags().Changed("repeat") {
		opts.Repeat = f.repeat
	}
	if cmd.Flags().Changed("warmup") {
		opts.Warmup = f.warmup
	}
	return opts
}

func printBench(p *printer, opts bench.Options, results []bench.Result) {
	p.Title(fmt.Sprintf("pipeline benchmark (n=%d, repeat=%d, warmup=%d)", opts.N, opts.Repeat, opts.Warmup))
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Name,
			ms(r.Avg.Seconds()),
			ms(r.Min.Seconds()),
			ms(r.Max.Seconds()),
			ms(r.Stdev.Seconds()),
			strconv.FormatFloat(r.Throughput, 'f', 0, 64),
		})
	}
	p.Table([]string{"case", "avg ms", "min ms", "max ms", "stdev ms", "items/s"}, rows)
}

func ms(seconds float64) string {
	return strconv.FormatFloat(seconds*1000, 'f', 3, 64)
}
