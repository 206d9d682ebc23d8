// Package server exposes the flow document store, the node template catalog
// and the connection validator over HTTP. It is a thin surface: all graph
// rules live in the flowgraph package, all persistence behind
// flowgraph.DocumentStore.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/fluxwire/flowgraph"
	"github.com/fluxwire/flowgraph/catalog"
	"github.com/fluxwire/flowgraph/internal/logging"
	"github.com/fluxwire/flowgraph/migrate"
)

// New builds the fiber app serving the editor API.
func New(store flowgraph.DocumentStore, cat *catalog.Catalog, providers ProviderSource) *fiber.App {
	log := logging.New("server")
	app := fiber.New()

	// ── Flows ─────────────────────────────────────────────────────────
	app.Get("/flows", func(c fiber.Ctx) error {
		flows, err := store.ListFlows(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(flows)
	})

	app.Get("/flows/:id", func(c fiber.Ctx) error {
		f, err := store.GetFlow(c.Context(), c.Params("id"))
		if errors.Is(err, flowgraph.ErrFlowNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "flow not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		// Stale documents are canonicalized on the way out; anything
		// unreconcilable is dropped rather than served dangling.
		if rep := migrate.Apply(f, cat); !rep.Empty() {
			log.Info("migrated flow on load", "flow", f.ID, "report", rep.String())
		}
		return c.JSON(f)
	})

	app.Post("/flows", func(c fiber.Ctx) error {
		var f flowgraph.Flow
		if err := c.Bind().JSON(&f); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if errs := flowgraph.CheckFlow(&f); len(errs) > 0 {
			msgs := make([]string, len(errs))
			for i, err := range errs {
				msgs[i] = err.Error()
			}
			return c.Status(422).JSON(fiber.Map{"error": "invalid connections", "details": msgs})
		}
		saved, err := store.SaveFlow(c.Context(), &f)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(saved)
	})

	app.Delete("/flows/:id", func(c fiber.Ctx) error {
		if err := store.DeleteFlow(c.Context(), c.Params("id")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	// ── Templates ─────────────────────────────────────────────────────
	app.Get("/templates", func(c fiber.Ctx) error {
		types := cat.Types()
		out := make([]fiber.Map, 0, len(types))
		for _, t := range types {
			tmpl, _ := cat.Get(t)
			out = append(out, fiber.Map{
				"type":  tmpl.Type,
				"label": tmpl.Label,
				"icon":  tmpl.Icon,
			})
		}
		return c.JSON(out)
	})

	app.Get("/templates/:type", func(c fiber.Ctx) error {
		tmpl, ok := cat.Get(c.Params("type"))
		if !ok {
			return c.Status(404).JSON(fiber.Map{"error": "unknown node type"})
		}
		data := tmpl.Instantiate()
		return c.JSON(fiber.Map{
			"type":  tmpl.Type,
			"label": tmpl.Label,
			"icon":  tmpl.Icon,
			"data":  data,
		})
	})

	// ── Validation ────────────────────────────────────────────────────
	app.Post("/validate", func(c fiber.Ctx) error {
		var req struct {
			Nodes      []flowgraph.Node     `json:"nodes"`
			Edges      []flowgraph.Edge     `json:"edges"`
			Connection flowgraph.Connection `json:"connection"`
		}
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := flowgraph.ValidateConnection(req.Nodes, req.Edges, req.Connection); err != nil {
			return c.JSON(fiber.Map{"valid": false, "reason": err.Error()})
		}
		return c.JSON(fiber.Map{"valid": true})
	})

	// ── Providers, models, tools ──────────────────────────────────────
	app.Get("/providers", func(c fiber.Ctx) error {
		out, err := providers.Providers(c.Context())
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(out)
	})

	app.Get("/providers/:name/models", func(c fiber.Ctx) error {
		out, err := providers.Models(c.Context(), c.Params("name"))
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(out)
	})

	app.Get("/tools", func(c fiber.Ctx) error {
		out, err := providers.Tools(c.Context())
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(out)
	})

	return app
}
