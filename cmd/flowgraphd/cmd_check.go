package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fluxwire/flowgraph"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate every connection of a flow document",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var f flowgraph.Flow
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	errs := flowgraph.CheckFlow(&f)
	if len(errs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d nodes, %d edges, all connections valid\n",
			path, len(f.Nodes), len(f.Edges))
		return nil
	}
	for _, e := range errs {
		fmt.Fprintln(cmd.OutOrStdout(), e.Error())
	}
	return fmt.Errorf("%d invalid connection(s)", len(errs))
}
