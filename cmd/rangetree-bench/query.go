package main

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	rangetree "github.com/malans/range-tree"
)

func QueryCommand() *cobra.Command {
	var (
		low, high int64
		dot       bool
	)
	cmd := &cobra.Command{
		Use:   "query KEY...",
		Short: "build a range tree from the given keys and run range queries against it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := rangetree.NewRangeTree[int64](rangetree.Options{CheckInvariants: true})
			for _, arg := range args {
				key, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return errors.Wrapf(err, "key %q", arg)
				}
				tree.Insert(key)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "size: %d height: %d\n", tree.Len(), tree.Height())
			fmt.Fprintf(out, "rank(%d): %d\n", high, tree.Rank(high))

			count, err := tree.Count(low, high)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "count(%d, %d): %d\n", low, high, count)

			lca, err := tree.LCA(low, high)
			switch {
			case errors.Is(err, rangetree.ErrEmpty):
				fmt.Fprintf(out, "lca(%d, %d): none\n", low, high)
			case err != nil:
				return err
			default:
				fmt.Fprintf(out, "lca(%d, %d): %s\n", low, high, lca)
			}

			nodes, err := tree.List(low, high)
			if err != nil {
				return err
			}
			keys := make([]int64, 0, len(nodes))
			for _, n := range nodes {
				keys = append(keys, n.Key())
			}
			fmt.Fprintf(out, "list(%d, %d): %v\n", low, high, keys)

			if dot {
				return tree.RenderDotGraph(out)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&low, "low", 0, "low end of the query range")
	cmd.Flags().Int64Var(&high, "high", 0, "high end of the query range")
	cmd.Flags().BoolVar(&dot, "dot", false, "also print the tree as a Graphviz graph")
	return cmd
}
