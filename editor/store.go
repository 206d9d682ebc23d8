// Package editor holds the live, in-memory graph behind one open flow
// document. All graph mutation goes through the Store so cascading
// invariants (an edge never references a pin that no longer exists) are
// enforced in one place. The store is single-threaded by design: every
// operation runs to completion on the caller's goroutine and publishes one
// complete state transition.
package editor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fluxwire/flowgraph"
	"github.com/fluxwire/flowgraph/catalog"
)

// Store owns the nodes, edges, selection, run-state highlights and
// clipboard of one open document.
type Store struct {
	cat *catalog.Catalog

	flowID      string
	name        string
	description string
	interfaces  []string
	entryNode   string // explicit override; empty means derive on serialize

	nodes []flowgraph.Node
	edges []flowgraph.Edge

	// nextID feeds the node id allocator. Monotonic within a session,
	// reseeded past the loaded maximum by Load.
	nextID int

	selectedNode string
	selectedEdge string
	lastSelected string
	multi        map[string]bool

	runStatus map[string]string

	clip       *clipboard
	pasteCount int
}

// NewStore creates an empty store backed by the given template catalog.
func NewStore(cat *catalog.Catalog) *Store {
	return &Store{
		cat:       cat,
		nextID:    1,
		multi:     make(map[string]bool),
		runStatus: make(map[string]string),
	}
}

// Nodes returns the current node list. The slice is a copy; node data still
// aliases the store, so treat the result as read-only.
func (s *Store) Nodes() []flowgraph.Node {
	return append([]flowgraph.Node(nil), s.nodes...)
}

// Edges returns a copy of the current edge list.
func (s *Store) Edges() []flowgraph.Edge {
	return append([]flowgraph.Edge(nil), s.edges...)
}

// Node returns the node with the given id.
func (s *Store) Node(id string) (flowgraph.Node, bool) {
	for _, n := range s.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return flowgraph.Node{}, false
}

func (s *Store) nodeAt(id string) *flowgraph.Node {
	for i := range s.nodes {
		if s.nodes[i].ID == id {
			return &s.nodes[i]
		}
	}
	return nil
}

// CreateNode instantiates a template at the given position and appends the
// new node to the graph. The node starts isolated, so no validation runs.
func (s *Store) CreateNode(nodeType string, pos flowgraph.Position) (flowgraph.Node, error) {
	tmpl, ok := s.cat.Get(nodeType)
	if !ok {
		return flowgraph.Node{}, fmt.Errorf("editor: unknown node type %q", nodeType)
	}
	n := flowgraph.Node{
		ID:       fmt.Sprintf("node-%d", s.nextID),
		Type:     nodeType,
		Position: pos,
		Data:     tmpl.Instantiate(),
	}
	s.nextID++
	s.nodes = append(s.nodes, n)
	return n, nil
}

// DataPatch is a partial update to a node's data. Nil fields are left
// untouched; Defaults entries are merged key by key into the existing map.
type DataPatch struct {
	Label    *string
	Inputs   []flowgraph.Pin
	Outputs  []flowgraph.Pin
	Defaults map[string]any
	Config   json.RawMessage
}

// UpdateNodeData merges the patch into the node's data. If the patch shrinks
// the input or output pin-id set, every edge referencing a removed pin is
// deleted in the same operation.
func (s *Store) UpdateNodeData(nodeID string, patch DataPatch) error {
	n := s.nodeAt(nodeID)
	if n == nil {
		return fmt.Errorf("editor: %w: %q", flowgraph.ErrNodeNotFound, nodeID)
	}

	oldInputs := n.Data.Inputs
	oldOutputs := n.Data.Outputs

	if patch.Label != nil {
		n.Data.Label = *patch.Label
	}
	if patch.Inputs != nil {
		n.Data.Inputs = patch.Inputs
	}
	if patch.Outputs != nil {
		n.Data.Outputs = patch.Outputs
	}
	if patch.Defaults != nil {
		if n.Data.Defaults == nil {
			n.Data.Defaults = make(map[string]any, len(patch.Defaults))
		}
		for k, v := range flowgraph.CloneDefaults(patch.Defaults) {
			n.Data.Defaults[k] = v
		}
	}
	if patch.Config != nil {
		n.Data.Config = append(json.RawMessage(nil), patch.Config...)
	}

	if patch.Inputs != nil {
		removed := flowgraph.PinsRemoved(oldInputs, n.Data.Inputs)
		if len(removed) > 0 {
			s.removeEdges(func(e flowgraph.Edge) bool {
				_, gone := removed[e.TargetHandle]
				return e.Target == nodeID && gone
			})
		}
	}
	if patch.Outputs != nil {
		removed := flowgraph.PinsRemoved(oldOutputs, n.Data.Outputs)
		if len(removed) > 0 {
			s.removeEdges(func(e flowgraph.Edge) bool {
				_, gone := removed[e.SourceHandle]
				return e.Source == nodeID && gone
			})
		}
	}
	return nil
}

// DeleteNode removes the node and every edge where it is source or target.
func (s *Store) DeleteNode(nodeID string) {
	kept := s.nodes[:0]
	for _, n := range s.nodes {
		if n.ID != nodeID {
			kept = append(kept, n)
		}
	}
	s.nodes = kept

	s.removeEdges(func(e flowgraph.Edge) bool {
		return e.Source == nodeID || e.Target == nodeID
	})

	if s.selectedNode == nodeID {
		s.selectedNode = ""
	}
	if s.lastSelected == nodeID {
		s.lastSelected = ""
	}
	delete(s.multi, nodeID)
	delete(s.runStatus, nodeID)
}

// AddEdge validates the candidate and, on success, commits it with a fresh
// id. Edges off an execution pin are marked animated.
func (s *Store) AddEdge(c flowgraph.Connection) (flowgraph.Edge, error) {
	if err := flowgraph.ValidateConnection(s.nodes, s.edges, c); err != nil {
		return flowgraph.Edge{}, err
	}
	source := s.nodeAt(c.Source)
	pin := source.OutputPin(c.SourceHandle)
	e := flowgraph.Edge{
		ID:           uuid.NewString(),
		Source:       c.Source,
		SourceHandle: c.SourceHandle,
		Target:       c.Target,
		TargetHandle: c.TargetHandle,
		Animated:     pin.Type == flowgraph.TypeExec,
	}
	s.edges = append(s.edges, e)
	return e, nil
}

// DeleteEdge removes the edge with the given id.
func (s *Store) DeleteEdge(edgeID string) {
	s.removeEdges(func(e flowgraph.Edge) bool { return e.ID == edgeID })
}

// DisconnectPin removes every edge touching the given (node, pin) on the
// given side. Used when the user clears a single connector without deleting
// the node.
func (s *Store) DisconnectPin(nodeID, pinID string, isInput bool) {
	s.removeEdges(func(e flowgraph.Edge) bool {
		if isInput {
			return e.Target == nodeID && e.TargetHandle == pinID
		}
		return e.Source == nodeID && e.SourceHandle == pinID
	})
}

// removeEdges drops every edge matching the predicate and clears the edge
// selection if it pointed at one of them.
func (s *Store) removeEdges(match func(flowgraph.Edge) bool) {
	kept := s.edges[:0]
	for _, e := range s.edges {
		if match(e) {
			if s.selectedEdge == e.ID {
				s.selectedEdge = ""
			}
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept
}

// SelectNode makes the node the active selection for the property panel,
// clearing any active edge selection.
func (s *Store) SelectNode(nodeID string) {
	s.selectedNode = nodeID
	s.lastSelected = nodeID
	s.selectedEdge = ""
}

// SelectEdge makes the edge the active selection, clearing any active node
// selection.
func (s *Store) SelectEdge(edgeID string) {
	s.selectedEdge = edgeID
	s.selectedNode = ""
}

// ClearSelection clears the active node/edge selection and the
// multi-selection flags.
func (s *Store) ClearSelection() {
	s.selectedNode = ""
	s.selectedEdge = ""
	s.multi = make(map[string]bool)
}

// SetMultiSelection replaces the multi-selection flags with the given nodes.
func (s *Store) SetMultiSelection(nodeIDs ...string) {
	s.multi = make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		if s.nodeAt(id) != nil {
			s.multi[id] = true
		}
	}
}

// SelectedNode returns the id of the active node selection, if any.
func (s *Store) SelectedNode() (string, bool) {
	return s.selectedNode, s.selectedNode != ""
}

// SelectedEdge returns the id of the active edge selection, if any.
func (s *Store) SelectedEdge() (string, bool) {
	return s.selectedEdge, s.selectedEdge != ""
}

// SetRunStatus records an execution-visualization highlight for a node.
func (s *Store) SetRunStatus(nodeID, status string) {
	if s.nodeAt(nodeID) == nil {
		return
	}
	s.runStatus[nodeID] = status
}

// RunStatus returns a node's execution-visualization highlight.
func (s *Store) RunStatus(nodeID string) (string, bool) {
	st, ok := s.runStatus[nodeID]
	return st, ok
}

// ResetRunStatuses clears all execution-visualization highlights.
func (s *Store) ResetRunStatuses() {
	s.runStatus = make(map[string]string)
}

// selectionIDs resolves the node set that copy and duplicate act on: the
// multi-selection when present, else the last explicitly selected node.
// Returned in node-list order.
func (s *Store) selectionIDs() []string {
	var ids []string
	for _, n := range s.nodes {
		if s.multi[n.ID] {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) == 0 && s.lastSelected != "" && s.nodeAt(s.lastSelected) != nil {
		ids = []string{s.lastSelected}
	}
	return ids
}

// maxIDSuffix returns the largest numeric suffix among node ids, so the
// allocator can be reseeded past loaded documents.
func maxIDSuffix(nodes []flowgraph.Node) int {
	max := 0
	for _, n := range nodes {
		id := n.ID
		if i := strings.LastIndexByte(id, '-'); i >= 0 {
			id = id[i+1:]
		}
		if v, err := strconv.Atoi(id); err == nil && v > max {
			max = v
		}
	}
	return max
}
