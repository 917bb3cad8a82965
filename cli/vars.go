package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/navreach/playbook/loader"
	"github.com/navreach/playbook/scope"
)

// NewVarsCmd creates the "vars" subcommand.
func NewVarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vars <file>",
		Short: "List the template variables visible to a node",
		Args:  cobra.ExactArgs(1),
		RunE:  runVars,
	}

	cmd.Flags().String("node", "", "Node id to resolve variables for (required)")
	cmd.Flags().String("format", "text", "Output format: text | json")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}

func runVars(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	nodeID, _ := cmd.Flags().GetString("node")
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	doc, err := loader.LoadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exitError(exitFileNotFound, "file not found: %s", filePath)
		}
		return exitError(exitInputParse, "loading playbook: %v", err)
	}

	found := false
	for _, n := range doc.Graph.Nodes {
		if n.ID == nodeID {
			found = true
			break
		}
	}
	if !found {
		return exitError(exitValidation, "node %q not found in playbook", nodeID)
	}

	resolver := scope.NewResolver(nil, nil)
	groups := resolver.Resolve(doc.Graph, nodeID, scope.Globals{})

	if format == "json" {
		data, err := encodeJSON(groups)
		if err != nil {
			return exitError(exitRuntime, "encoding variables: %v", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(groups) == 0 {
		fmt.Fprintln(out, "No variables in scope.")
		return nil
	}
	for _, g := range groups {
		fmt.Fprintf(out, "%s:\n", g.Label)
		for _, v := range g.Variables {
			if v.Example != "" {
				fmt.Fprintf(out, "  %-24s %s  (e.g. %s)\n", v.Label, v.Token, v.Example)
			} else {
				fmt.Fprintf(out, "  %-24s %s\n", v.Label, v.Token)
			}
		}
	}
	return nil
}
