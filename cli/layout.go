package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/navreach/playbook/layout"
	"github.com/navreach/playbook/loader"
	"github.com/navreach/playbook/transplant"
)

// NewLayoutCmd creates the "layout" subcommand.
func NewLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <file>",
		Short: "Recompute node positions for a playbook file",
		Args:  cobra.ExactArgs(1),
		RunE:  runLayout,
	}

	cmd.Flags().String("direction", "TB", "Layout direction: TB | LR")
	cmd.Flags().StringP("output", "o", "", "Output file (default: overwrite input)")

	return cmd
}

func runLayout(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	dirFlag, _ := cmd.Flags().GetString("direction")
	outPath, _ := cmd.Flags().GetString("output")

	var dir layout.Direction
	switch dirFlag {
	case "TB":
		dir = layout.TopToBottom
	case "LR":
		dir = layout.LeftToRight
	default:
		return exitError(exitInputParse, "unknown direction %q (want TB or LR)", dirFlag)
	}

	doc, err := loader.LoadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exitError(exitFileNotFound, "file not found: %s", filePath)
		}
		return exitError(exitInputParse, "loading playbook: %v", err)
	}

	nodes, edges := layout.Apply(doc.Graph, dir, layout.DefaultConfig())
	doc.Graph.Nodes = nodes
	doc.Graph.Edges = edges

	data, err := transplant.Export(doc)
	if err != nil {
		return exitError(exitRuntime, "encoding playbook: %v", err)
	}

	if outPath == "" {
		outPath = filePath
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return exitError(exitRuntime, "writing %s: %v", outPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Arranged %d nodes (%s)\n", len(nodes), dirFlag)
	return nil
}

// encodeJSON marshals v with two-space indentation.
func encodeJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
