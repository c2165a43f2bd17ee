package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	rangetree "github.com/malans/range-tree"
	"github.com/malans/range-tree/bench"
)

type runFlags struct {
	plan        bench.Plan
	planFile    string
	savePlan    string
	metricsAddr string
	dotFile     string
}

func RunCommand() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "generate a random workload and apply it to a range tree",
		Args:  cobra.NoArgs,
	}
	flags := cmd.Flags()
	flags.Uint64Var(&f.plan.Workload.Seed, "seed", 0, "workload random seed")
	flags.IntVar(&f.plan.Workload.InitialSize, "initial", 100_000, "distinct keys inserted before the mixed phase")
	flags.IntVar(&f.plan.Workload.Ops, "ops", 1_000_000, "operations in the mixed phase")
	flags.Float64Var(&f.plan.Workload.DeleteFraction, "delete-fraction", 0.3, "fraction of mixed ops that delete")
	flags.Float64Var(&f.plan.Workload.QueryFraction, "query-fraction", 0.2, "fraction of mixed ops that run rank or list queries")
	flags.Int64Var(&f.plan.Workload.KeySpace, "key-space", 0, "keys are drawn from [0, key-space); 0 picks a default")
	flags.Int64Var(&f.plan.Workload.RangeWidth, "range-width", 0, "maximum span of list queries; 0 picks a default")
	flags.IntVar(&f.plan.CheckEvery, "check-every", 0, "run a full invariant check every N ops")
	flags.StringVar(&f.planFile, "plan", "", "JSON plan file; explicitly set flags override its values")
	flags.StringVar(&f.savePlan, "save-plan", "", "write the effective plan to this file")
	flags.StringVar(&f.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :2112")
	flags.StringVar(&f.dotFile, "dot", "", "write the final tree as a Graphviz graph to this file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		plan, err := f.effectivePlan(cmd)
		if err != nil {
			return err
		}
		if f.savePlan != "" {
			if err := bench.WritePlan(f.savePlan, plan); err != nil {
				return err
			}
		}

		reg := prometheus.NewRegistry()
		metrics := rangetree.NewMetrics(reg, "rangetree")
		if f.metricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			go func() {
				if err := http.ListenAndServe(f.metricsAddr, mux); err != nil {
					log.Error().Err(err).Str("addr", f.metricsAddr).Msg("metrics server stopped")
				}
			}()
		}

		ops, err := bench.Generate(plan.Workload)
		if err != nil {
			return err
		}
		log.Info().
			Uint64("seed", plan.Workload.Seed).
			Str("ops", humanize.Comma(int64(len(ops)))).
			Msg("generated workload")

		treeLog := log.With().Str("tree", "range").Logger()
		opts := plan.Tree
		opts.Logger = &treeLog
		opts.Metrics = metrics
		tree := rangetree.NewRangeTree[int64](opts)

		stats, err := bench.Run(tree, ops, bench.RunParams{
			CheckEvery: plan.CheckEvery,
			Logger:     log,
		})
		if err != nil {
			return err
		}
		printStats(cmd, stats)

		if f.dotFile != "" {
			return writeDot(tree, f.dotFile)
		}
		return nil
	}
	return cmd
}

// effectivePlan loads the plan file, if any, and applies the flags the user set
// explicitly on top of it.
func (f *runFlags) effectivePlan(cmd *cobra.Command) (bench.Plan, error) {
	if f.planFile == "" {
		return f.plan, nil
	}
	plan, err := bench.LoadPlan(f.planFile)
	if err != nil {
		return bench.Plan{}, err
	}
	flags := cmd.Flags()
	override := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	override("seed", func() { plan.Workload.Seed = f.plan.Workload.Seed })
	override("initial", func() { plan.Workload.InitialSize = f.plan.Workload.InitialSize })
	override("ops", func() { plan.Workload.Ops = f.plan.Workload.Ops })
	override("delete-fraction", func() { plan.Workload.DeleteFraction = f.plan.Workload.DeleteFraction })
	override("query-fraction", func() { plan.Workload.QueryFraction = f.plan.Workload.QueryFraction })
	override("key-space", func() { plan.Workload.KeySpace = f.plan.Workload.KeySpace })
	override("range-width", func() { plan.Workload.RangeWidth = f.plan.Workload.RangeWidth })
	override("check-every", func() { plan.CheckEvery = f.plan.CheckEvery })
	return plan, nil
}

func printStats(cmd *cobra.Command, stats bench.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ops:        %s (%s inserts, %s deletes, %s ranks, %s lists)\n",
		humanize.Comma(int64(stats.Ops)),
		humanize.Comma(int64(stats.Inserts)),
		humanize.Comma(int64(stats.Deletes)),
		humanize.Comma(int64(stats.Ranks)),
		humanize.Comma(int64(stats.Lists)))
	fmt.Fprintf(out, "listed:     %s keys\n", humanize.Comma(int64(stats.Listed)))
	fmt.Fprintf(out, "final size: %s\n", humanize.Comma(int64(stats.FinalSize)))
	fmt.Fprintf(out, "height:     %d\n", stats.Height)
	fmt.Fprintf(out, "duration:   %s (%s ops/s)\n", stats.Duration, humanize.Comma(int64(stats.OpsPerSec)))
	fmt.Fprintf(out, "checks:     %d\n", stats.InvChecked)
	fmt.Fprintf(out, "mem allocs: %s\n", humanize.Bytes(stats.MemAllocs))
}

func writeDot(tree *rangetree.RangeTree[int64], filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "error creating dot file")
	}
	if err := tree.RenderDotGraph(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
