package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/navreach/playbook/loader"
	"github.com/navreach/playbook/transplant"
)

// NewExportCmd creates the "export" subcommand.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a playbook to the JSON interchange format",
		Long:  "Reads a playbook file (JSON or YAML) and writes the normalized JSON export shape.",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	outPath, _ := cmd.Flags().GetString("output")

	doc, err := loader.LoadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exitError(exitFileNotFound, "file not found: %s", filePath)
		}
		return exitError(exitInputParse, "loading playbook: %v", err)
	}

	data, err := transplant.Export(doc)
	if err != nil {
		return exitError(exitRuntime, "encoding playbook: %v", err)
	}

	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return exitError(exitRuntime, "writing %s: %v", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outPath)
	return nil
}
