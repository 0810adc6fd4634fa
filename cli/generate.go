package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meikuraledutech/pipegen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile a descriptor JSON file to workflow YAML",
	Long:  "Reads a pipeline descriptor from a JSON file, validates it, and writes the generated workflow YAML to stdout or a file. The output is byte-stable for identical input.",
	RunE:  runGenerate,
}

var (
	generateFile string
	generateOut  string
)

func init() {
	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "Path to the descriptor JSON file (required)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output path for the workflow YAML (default: stdout)")

	if err := generateCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(generateFile)
	if err != nil {
		return fmt.Errorf("read descriptor: %w", err)
	}

	var d pipegen.Descriptor
	if err := json.Unmarshal(raw, &d); err != nil {
		return fmt.Errorf("parse descriptor: %w", err)
	}

	out, warnings, err := pipegen.Generate(&d)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Code, w.Message)
	}

	if generateOut == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(generateOut, out, 0o644); err != nil {
		return fmt.Errorf("write workflow: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", generateOut)
	return nil
}
