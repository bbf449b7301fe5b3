package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reify",
		Short: "Runtime metaobject layer tooling",
		Long: `Reify describes native Go types as named, introspectable metaclasses.
This tool demonstrates and inspects a declared metamodel.`,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(demoCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
