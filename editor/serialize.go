package editor

import (
	"github.com/fluxwire/flowgraph"
	"github.com/fluxwire/flowgraph/migrate"
)

// Serialize projects the live store into the persisted document shape. The
// entry node is re-derived on every serialization: the explicit override
// wins when it still resolves, otherwise the first node in list order with
// no incoming edge on the canonical control-in pin.
func (s *Store) Serialize() *flowgraph.Flow {
	f := &flowgraph.Flow{
		ID:          s.flowID,
		Name:        s.name,
		Description: s.description,
		Interfaces:  append([]string(nil), s.interfaces...),
		Nodes:       append([]flowgraph.Node(nil), s.nodes...),
		Edges:       append([]flowgraph.Edge(nil), s.edges...),
	}
	f.EntryNode = s.deriveEntry()
	return f
}

func (s *Store) deriveEntry() string {
	if s.entryNode != "" && s.nodeAt(s.entryNode) != nil {
		return s.entryNode
	}
	for _, n := range s.nodes {
		driven := false
		for _, e := range s.edges {
			if e.Target == n.ID && e.TargetHandle == flowgraph.PinExecIn {
				driven = true
				break
			}
		}
		if !driven {
			return n.ID
		}
	}
	return ""
}

// Load replaces the store's state with the given document, canonicalizing
// it through the migration layer first. The node id allocator is reseeded
// past the largest numeric suffix among loaded ids so new nodes never
// collide with loaded ones. Selection and run highlights reset; the
// clipboard survives, it is session-scoped rather than document-scoped.
func (s *Store) Load(f *flowgraph.Flow) migrate.Report {
	report := migrate.Apply(f, s.cat)

	s.flowID = f.ID
	s.name = f.Name
	s.description = f.Description
	s.interfaces = append([]string(nil), f.Interfaces...)
	s.entryNode = f.EntryNode
	s.nodes = append([]flowgraph.Node(nil), f.Nodes...)
	s.edges = append([]flowgraph.Edge(nil), f.Edges...)
	s.nextID = maxIDSuffix(s.nodes) + 1

	s.selectedNode = ""
	s.selectedEdge = ""
	s.lastSelected = ""
	s.multi = make(map[string]bool)
	s.runStatus = make(map[string]string)

	return report
}

// Clear resets the store to an empty, unnamed graph and restarts the id
// counter. The clipboard is kept.
func (s *Store) Clear() {
	s.flowID = ""
	s.name = ""
	s.description = ""
	s.interfaces = nil
	s.entryNode = ""
	s.nodes = nil
	s.edges = nil
	s.nextID = 1
	s.selectedNode = ""
	s.selectedEdge = ""
	s.lastSelected = ""
	s.multi = make(map[string]bool)
	s.runStatus = make(map[string]string)
}

// SetMetadata updates the document's name and description.
func (s *Store) SetMetadata(name, description string) {
	s.name = name
	s.description = description
}

// SetEntryOverride pins the entry node explicitly; pass "" to return to
// derived entry selection.
func (s *Store) SetEntryOverride(nodeID string) {
	s.entryNode = nodeID
}
