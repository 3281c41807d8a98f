package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/server"
)

func hydrateCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "hydrate page.html tree.json",
		Short: "Hydrate server markup with a tree",
		Long: `Parse page.html into a container and hydrate it with tree.json,
adopting matching nodes. Prints the mutations needed to bring the markup
in line with the tree; matching markup needs none.

Whitespace-only text and comments in the markup are ignored.

Examples:
  vtree hydrate page.html tree.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := readInput(args[0])
			if err != nil {
				return err
			}
			tree, err := readInput(args[1])
			if err != nil {
				return err
			}

			req := &server.DiffRequest{Markup: string(markup), New: tree}
			resp, err := server.Diff(cmd.Context(), req, nil, a.rendererOptions()...)
			if err == nil && resp.Stats.Mutations == 0 {
				defer success("markup adopted without changes")
			}
			return printDiff(cmd.OutOrStdout(), resp, err, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}
