package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fluxwire/flowgraph"
	"github.com/fluxwire/flowgraph/catalog"
	"github.com/fluxwire/flowgraph/migrate"
)

var migrateWrite bool

var migrateCmd = &cobra.Command{
	Use:   "migrate FILE",
	Short: "Canonicalize a flow document against the current node catalog",
	Long: "Rewrites every node of the document to its current canonical pin\n" +
		"layout, folds retired config fields into pin defaults and prunes\n" +
		"dangling edges. Prints the migrated document to stdout unless -w.",
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVarP(&migrateWrite, "write", "w", false, "rewrite the file in place")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var f flowgraph.Flow
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	rep := migrate.Apply(&f, catalog.Builtin())
	fmt.Fprintf(cmd.ErrOrStderr(), "migrated %s: %s\n", path, rep)

	out, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if migrateWrite {
		return os.WriteFile(path, out, 0o644)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
