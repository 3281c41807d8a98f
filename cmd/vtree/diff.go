package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/server"
)

func diffCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "diff [old.json] new.json",
		Short: "Print the mutations that turn one tree into another",
		Long: `Render old.json into an empty container, then new.json, and print
the host mutations of the second pass with the resulting HTML.

With a single file the first pass is skipped and the output is the
initial render. Use "-" to read a tree from stdin.

Examples:
  vtree diff before.json after.json
  vtree diff tree.json
  vtree diff --json before.json after.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &server.DiffRequest{}
			var err error
			if len(args) == 2 {
				if req.Old, err = readInput(args[0]); err != nil {
					return err
				}
			}
			if req.New, err = readInput(args[len(args)-1]); err != nil {
				return err
			}

			resp, err := server.Diff(cmd.Context(), req, nil, a.rendererOptions()...)
			return printDiff(cmd.OutOrStdout(), resp, err, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func (a *app) rendererOptions() []reconcile.Option {
	return []reconcile.Option{
		reconcile.WithLogger(a.logger),
		reconcile.WithScanRatio(a.cfg.ScanRatio),
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// printDiff prints resp, then returns passErr. A failed pass still prints
// the mutations it made.
func printDiff(w io.Writer, resp *server.DiffResponse, passErr error, asJSON bool) error {
	if resp == nil {
		return passErr
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return passErr
	}

	for _, m := range resp.Raw {
		fmt.Fprintln(w, m.String())
	}
	s := resp.Stats
	fmt.Fprintf(w, "\n%d mutations (%d placements), %d created, %d by key, %d by index, %d unmounted\n",
		s.Mutations, s.Placements, s.Created, s.ByKey, s.ByIndex, s.Unmounted)
	if s.Excess > 0 {
		fmt.Fprintf(w, "%d unclaimed nodes removed\n", s.Excess)
	}
	fmt.Fprintf(w, "\n%s\n", resp.HTML)
	return passErr
}
