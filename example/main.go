package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fluxwire/flowgraph"
	"github.com/fluxwire/flowgraph/catalog"
	"github.com/fluxwire/flowgraph/editor"
	"github.com/fluxwire/flowgraph/postgres"
)

func main() {
	ctx := context.Background()

	// ── Build a small pipeline in the editor store ────────────────────
	store := editor.NewStore(catalog.Builtin())
	store.SetMetadata("support-triage", "Classify and answer support tickets")

	input, err := store.CreateNode(flowgraph.NodeInput, flowgraph.Position{X: 0, Y: 0})
	must(err)
	agent, err := store.CreateNode(flowgraph.NodeAgent, flowgraph.Position{X: 300, Y: 0})
	must(err)
	output, err := store.CreateNode(flowgraph.NodeOutput, flowgraph.Position{X: 600, Y: 0})
	must(err)

	// Wire the execution chain and the data path.
	_, err = store.AddEdge(flowgraph.Connection{
		Source: input.ID, SourceHandle: flowgraph.PinExecOut,
		Target: agent.ID, TargetHandle: flowgraph.PinExecIn,
	})
	must(err)
	_, err = store.AddEdge(flowgraph.Connection{
		Source: agent.ID, SourceHandle: flowgraph.PinExecOut,
		Target: output.ID, TargetHandle: flowgraph.PinExecIn,
	})
	must(err)
	_, err = store.AddEdge(flowgraph.Connection{
		Source: agent.ID, SourceHandle: "response",
		Target: output.ID, TargetHandle: "value",
	})
	must(err)

	// A second edge into an occupied input is rejected, not committed.
	_, err = store.AddEdge(flowgraph.Connection{
		Source: input.ID, SourceHandle: "value",
		Target: output.ID, TargetHandle: "value",
	})
	fmt.Printf("rejected as expected: %v\n", err)

	// ── Copy / paste ──────────────────────────────────────────────────
	store.SetMultiSelection(agent.ID, output.ID)
	fmt.Printf("copied %d nodes\n", store.CopySelection())
	pasted := store.Paste()
	fmt.Printf("pasted %d nodes at a (40,40) offset\n", len(pasted))

	// ── Serialize ─────────────────────────────────────────────────────
	doc := store.Serialize()
	fmt.Printf("\nentry node: %s\n", doc.EntryNode)
	printJSON(doc)

	// ── Persist, if a database is around ──────────────────────────────
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		fmt.Println("\nDATABASE_URL not set, skipping persistence")
		return
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	var docs flowgraph.DocumentStore = postgres.New(pool)
	if err := docs.CreateSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	saved, err := docs.SaveFlow(ctx, doc)
	if err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("\nsaved flow %s\n", saved.ID)

	flows, err := docs.ListFlows(ctx)
	if err != nil {
		log.Fatalf("list: %v", err)
	}
	fmt.Printf("flows (%d):\n", len(flows))
	printJSON(flows)
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
