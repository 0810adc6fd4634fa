// Package main implements the pipegen CLI for offline workflow generation:
// it compiles a descriptor JSON file to workflow YAML suitable for
// committing to a repository.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pipegen",
	Short: "CI/CD workflow generator",
	Long:  "pipegen compiles a declarative project descriptor into a deterministic CI workflow definition.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
