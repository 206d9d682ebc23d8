// Package migrate canonicalizes persisted flow documents on load. Node pin
// layouts evolve with the product; this layer rewrites older layouts to the
// catalog's current shape, folds retired config fields into pin defaults,
// and prunes edges the rewrite left dangling. It never fails: anything that
// cannot be reconciled is dropped, because a dangling reference corrupts the
// graph more severely than a missing one.
package migrate

import (
	"encoding/json"
	"fmt"

	"github.com/fluxwire/flowgraph"
	"github.com/fluxwire/flowgraph/catalog"
)

// Report counts what a migration changed or discarded, so a host can
// surface a non-fatal notice ("3 connections were removed") without the
// migration ever erroring.
type Report struct {
	PinsDropped     int
	EdgesDropped    int
	DefaultsDropped int
	FieldsMigrated  int
	NodesRelabeled  int
}

// Empty reports whether the migration was a no-op.
func (r Report) Empty() bool {
	return r == Report{}
}

func (r Report) String() string {
	return fmt.Sprintf("pins=%d edges=%d defaults=%d fields=%d labels=%d",
		r.PinsDropped, r.EdgesDropped, r.DefaultsDropped, r.FieldsMigrated, r.NodesRelabeled)
}

// Apply rewrites the document in place to the catalog's canonical layouts
// and returns what it changed. Idempotent: applying it to an already
// canonical document changes nothing. Nodes whose type the catalog does not
// know are kept verbatim.
func Apply(f *flowgraph.Flow, cat *catalog.Catalog) Report {
	var rep Report

	for i := range f.Nodes {
		migrateNode(&f.Nodes[i], cat, &rep)
	}

	pruneEdges(f, &rep)

	if f.EntryNode != "" && f.NodeByID(f.EntryNode) == nil {
		f.EntryNode = ""
	}

	return rep
}

func migrateNode(n *flowgraph.Node, cat *catalog.Catalog, rep *Report) {
	tmpl, ok := cat.Get(n.Type)
	if !ok {
		return
	}

	n.Data.Inputs = reconcilePins(n, tmpl, n.Data.Inputs, tmpl.Inputs, rep)
	n.Data.Outputs = reconcilePins(n, tmpl, n.Data.Outputs, tmpl.Outputs, rep)

	migrateLegacyFields(n, tmpl, rep)

	if n.Data.Label == "" || isLegacyLabel(tmpl, n.Data.Label) {
		if n.Data.Label != tmpl.Label {
			n.Data.Label = tmpl.Label
			rep.NodesRelabeled++
		}
	}
}

// reconcilePins rebuilds one pin list against its canonical counterpart:
// canonical pins first in canonical order (stored pins survive verbatim
// when label and type still match, otherwise label/type snap back to
// canonical under the same id so edges stay valid), then stored extras in
// stored order, minus permanently retired pins.
func reconcilePins(n *flowgraph.Node, tmpl *catalog.Template, stored, canonical []flowgraph.Pin, rep *Report) []flowgraph.Pin {
	byID := make(map[string]flowgraph.Pin, len(stored))
	for _, p := range stored {
		byID[p.ID] = p
	}

	out := make([]flowgraph.Pin, 0, len(canonical))
	inCanonical := make(map[string]bool, len(canonical))
	for _, cp := range canonical {
		inCanonical[cp.ID] = true
		sp, ok := byID[cp.ID]
		switch {
		case !ok:
			// Newly canonical pin: insert it and seed its template
			// default if the node has none stored.
			out = append(out, cp)
			if dv, has := tmpl.Defaults[cp.ID]; has {
				if _, set := n.Data.Defaults[cp.ID]; !set {
					if n.Data.Defaults == nil {
						n.Data.Defaults = make(map[string]any)
					}
					n.Data.Defaults[cp.ID] = dv
				}
			}
		case sp.Label == cp.Label && sp.Type == cp.Type:
			out = append(out, sp)
		default:
			out = append(out, cp)
		}
	}

	for _, sp := range stored {
		if inCanonical[sp.ID] {
			continue
		}
		if tmpl.IsRetired(sp.ID) {
			rep.PinsDropped++
			if _, set := n.Data.Defaults[sp.ID]; set {
				delete(n.Data.Defaults, sp.ID)
				rep.DefaultsDropped++
			}
			continue
		}
		out = append(out, sp)
	}
	return out
}

// migrateLegacyFields moves retired boolean config fields into the per-pin
// default map, making the former config-only toggle addressable as a
// connectable input pin. The config bytes are rewritten only when a legacy
// field was actually present.
func migrateLegacyFields(n *flowgraph.Node, tmpl *catalog.Template, rep *Report) {
	if len(tmpl.LegacyBoolFields) == 0 || len(n.Data.Config) == 0 {
		return
	}

	var cfg map[string]any
	if err := json.Unmarshal(n.Data.Config, &cfg); err != nil {
		// Malformed config is local to this node; leave it alone.
		return
	}

	changed := false
	for field, pinID := range tmpl.LegacyBoolFields {
		v, ok := cfg[field]
		if !ok {
			continue
		}
		if b, isBool := v.(bool); isBool {
			if n.Data.Defaults == nil {
				n.Data.Defaults = make(map[string]any)
			}
			n.Data.Defaults[pinID] = b
			rep.FieldsMigrated++
		}
		delete(cfg, field)
		changed = true
	}
	if !changed {
		return
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	n.Data.Config = raw
}

func isLegacyLabel(tmpl *catalog.Template, label string) bool {
	for _, l := range tmpl.LegacyLabels {
		if l == label {
			return true
		}
	}
	return false
}

// pruneEdges drops every edge whose endpoints no longer resolve to an
// existing pin on an existing node.
func pruneEdges(f *flowgraph.Flow, rep *Report) {
	kept := f.Edges[:0]
	for _, e := range f.Edges {
		source := f.NodeByID(e.Source)
		target := f.NodeByID(e.Target)
		if source == nil || target == nil ||
			source.OutputPin(e.SourceHandle) == nil ||
			target.InputPin(e.TargetHandle) == nil {
			rep.EdgesDropped++
			continue
		}
		kept = append(kept, e)
	}
	f.Edges = kept
}
