// Package catalog is the read-only node template catalog: the authoritative
// answer to "what should this node type's pins look like today". The editor
// instantiates templates when nodes are dropped on the canvas; the migration
// layer consults them to rewrite stale documents to the current canonical
// layout.
package catalog

import (
	"github.com/fluxwire/flowgraph"
)

// Template is the canonical shape of a node type: its pin layout, default
// label and configuration, plus the bookkeeping migration needs (retired
// pins, historical labels, legacy config fields).
type Template struct {
	Type    string
	Label   string
	Icon    string
	Inputs  []flowgraph.Pin
	Outputs []flowgraph.Pin

	// Defaults seeds the per-pin default-value map of a fresh node.
	Defaults map[string]any

	// Config is the default typed configuration for a fresh node.
	Config flowgraph.Config

	// RetiredPins lists pin ids permanently removed from this node type.
	// Migration drops them, together with any stored default under the
	// same id, instead of carrying them as extras.
	RetiredPins []string

	// LegacyLabels are historical default labels for this node type. A
	// loaded node whose label is empty or still exactly one of these is
	// relabeled to Label; customized labels are left alone.
	LegacyLabels []string

	// LegacyBoolFields maps retired boolean config fields to the input
	// pin id whose default value now carries the toggle.
	LegacyBoolFields map[string]string
}

// Instantiate builds fresh node data from the template. Everything is
// deep-copied; two instances never share pins, defaults or config.
func (t *Template) Instantiate() flowgraph.NodeData {
	data := flowgraph.NodeData{
		Label:   t.Label,
		Inputs:  append([]flowgraph.Pin(nil), t.Inputs...),
		Outputs: append([]flowgraph.Pin(nil), t.Outputs...),
	}
	if len(t.Defaults) > 0 {
		data.Defaults = flowgraph.CloneDefaults(t.Defaults)
	}
	if t.Config != nil {
		n := flowgraph.Node{Type: t.Type, Data: data}
		if err := n.SetConfig(t.Config.Clone()); err == nil {
			data = n.Data
		}
	}
	return data
}

// IsRetired reports whether the pin id is on this template's deny-list.
func (t *Template) IsRetired(pinID string) bool {
	for _, id := range t.RetiredPins {
		if id == pinID {
			return true
		}
	}
	return false
}

// Catalog maps node type identifiers to their templates.
type Catalog struct {
	templates map[string]*Template
	order     []string
}

// New builds a catalog from the given templates, preserving their order
// for palette listings.
func New(templates ...*Template) *Catalog {
	c := &Catalog{templates: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if _, ok := c.templates[t.Type]; ok {
			continue
		}
		c.templates[t.Type] = t
		c.order = append(c.order, t.Type)
	}
	return c
}

// Get returns the template for a node type.
func (c *Catalog) Get(nodeType string) (*Template, bool) {
	t, ok := c.templates[nodeType]
	return t, ok
}

// Types returns the registered node types in registration order.
func (c *Catalog) Types() []string {
	return append([]string(nil), c.order...)
}
