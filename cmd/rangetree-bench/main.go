package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/malans/range-tree/internal/logz"
)

var log = logz.Logger.With().Str("cmd", "rangetree-bench").Logger()

func RootCommand() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:          "rangetree-bench",
		Short:        "benchmark and explore the subtree-size augmented AVL tree",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logz.SetLevel(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	root.AddCommand(RunCommand(), QueryCommand())
	return root
}

func main() {
	if err := RootCommand().Execute(); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		os.Exit(1)
	}
}
