package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-preview"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "arbor",
		Short: "Arbor - fine-grained reactive components for Go",
		Long: `Arbor is a Go-native reactivity engine and virtual-DOM renderer:
Dep/Effect signal graph, a fiber scheduler, server-side and
server-driven rendering, and a WASM client, wired together behind a
small demo CLI.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newWatchCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
