package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// benchOptions configures a benchmark run.
type benchOptions struct {
	Size      int
	Rounds    int
	Workers   int
	Seed      int64
	Scenario  string
	ScanRatio float64
}

// benchResult is what one worker measured.
type benchResult struct {
	Worker     int
	Passes     int
	Placements int
	Creates    int
	Removes    int
	Elapsed    time.Duration
}

// scenarios reorder a key list in place for the next round.
var scenarios = map[string]func(keys []int, rng *rand.Rand){
	"shuffle": func(keys []int, rng *rand.Rand) {
		rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	},
	"reverse": func(keys []int, _ *rand.Rand) {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	},
	"rotate": func(keys []int, _ *rand.Rand) {
		if len(keys) > 1 {
			first := keys[0]
			copy(keys, keys[1:])
			keys[len(keys)-1] = first
		}
	},
	"swap": func(keys []int, rng *rand.Rand) {
		if len(keys) > 1 {
			i, j := rng.Intn(len(keys)), rng.Intn(len(keys))
			keys[i], keys[j] = keys[j], keys[i]
		}
	},
}

func benchCmd(a *app) *cobra.Command {
	opts := benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark keyed reordering",
		Long: `Render a keyed list, then reorder it for a number of rounds and
report placements and timing. Each worker owns its own document, so
workers run in parallel.

Scenarios: shuffle, reverse, rotate, swap.

Examples:
  vtree bench
  vtree bench --size 1000 --rounds 200 --workers 8 --scenario reverse`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("scan-ratio") {
				opts.ScanRatio = a.cfg.ScanRatio
			}
			results, err := runBench(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printBench(cmd.OutOrStdout(), opts, results)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Size, "size", "n", 100, "Number of list items")
	cmd.Flags().IntVarP(&opts.Rounds, "rounds", "r", 50, "Reorders per worker")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 4, "Parallel workers")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "Random seed")
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "shuffle", "Reorder scenario")
	cmd.Flags().Float64Var(&opts.ScanRatio, "scan-ratio", reconcile.DefaultScanRatio, "Placement lookahead ratio")

	return cmd
}

func runBench(ctx context.Context, opts benchOptions) ([]benchResult, error) {
	reorder, ok := scenarios[opts.Scenario]
	if !ok {
		return nil, errors.New("E300").WithDetailf("unknown scenario %q", opts.Scenario)
	}
	if opts.Size <= 0 || opts.Rounds <= 0 || opts.Workers <= 0 {
		return nil, errors.New("E300").WithDetail("size, rounds and workers must be positive")
	}

	results := make([]benchResult, opts.Workers)
	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < opts.Workers; w++ {
		w := w
		g.Go(func() error {
			res, err := benchWorker(gctx, w, opts, reorder)
			results[w] = res
			return err
		})
	}

	err := g.Wait()
	return results, err
}

func benchWorker(ctx context.Context, worker int, opts benchOptions, reorder func([]int, *rand.Rand)) (benchResult, error) {
	rng := rand.New(rand.NewSource(opts.Seed + int64(worker)))
	doc := host.NewDocument()
	root := doc.CreateElement("div", "")
	r := reconcile.New(doc, reconcile.WithScanRatio(opts.ScanRatio))

	keys := make([]int, opts.Size)
	for i := range keys {
		keys[i] = i
	}
	if err := r.Render(ctx, benchList(keys), root); err != nil {
		return benchResult{Worker: worker}, err
	}

	res := benchResult{Worker: worker}
	before := doc.Stats()
	start := time.Now()
	for round := 0; round < opts.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		reorder(keys, rng)
		if err := r.Render(ctx, benchList(keys), root); err != nil {
			return res, err
		}
		res.Passes++
	}
	res.Elapsed = time.Since(start)

	delta := doc.Stats().Sub(before)
	res.Placements = delta.Placements()
	res.Creates = delta.Creates
	res.Removes = delta.Removes
	return res, nil
}

func benchList(keys []int) *vdom.VNode {
	items := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		s := strconv.Itoa(k)
		items[i] = vdom.Li(vdom.Key(s), s)
	}
	return vdom.Ul(items)
}

func printBench(w io.Writer, opts benchOptions, results []benchResult) {
	fmt.Fprintf(w, "scenario=%s size=%d rounds=%d workers=%d scan-ratio=%.2f\n\n",
		opts.Scenario, opts.Size, opts.Rounds, opts.Workers, opts.ScanRatio)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "worker\tpasses\tplacements\tper pass\tcreates\tns/pass\t")
	var total benchResult
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.1f\t%d\t%d\t\n",
			r.Worker, r.Passes, r.Placements, perPass(r.Placements, r.Passes), r.Creates, nsPerPass(r))
		total.Passes += r.Passes
		total.Placements += r.Placements
		total.Creates += r.Creates
		total.Elapsed += r.Elapsed
	}
	fmt.Fprintf(tw, "all\t%d\t%d\t%.1f\t%d\t%d\t\n",
		total.Passes, total.Placements, perPass(total.Placements, total.Passes), total.Creates, nsPerPass(total))
	tw.Flush()
}

func perPass(n, passes int) float64 {
	if passes == 0 {
		return 0
	}
	return float64(n) / float64(passes)
}

func nsPerPass(r benchResult) int64 {
	if r.Passes == 0 {
		return 0
	}
	return r.Elapsed.Nanoseconds() / int64(r.Passes)
}
