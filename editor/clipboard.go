package editor

import (
	"fmt"

	"github.com/fluxwire/flowgraph"
)

// pasteOffset is the diagonal step applied to pasted and duplicated nodes
// so they land next to their originals instead of on top of them.
const pasteOffset = 40.0

// clipboard is a session-scoped snapshot of copied nodes. Positions are
// stored relative to the selection's bounding-box minimum; edges are
// deliberately never captured.
type clipboard struct {
	origin flowgraph.Position
	items  []clipItem
}

type clipItem struct {
	nodeType string
	data     flowgraph.NodeData
	offset   flowgraph.Position
}

// cloneData deep-copies a node's data for the clipboard. When the node type
// is known, the config is routed through its typed variant so each variant's
// own Clone semantics apply; unknown types fall back to a raw byte copy.
func cloneData(n flowgraph.Node) flowgraph.NodeData {
	data := n.Data.Clone()
	cfg, err := n.DecodeConfig()
	if cfg == nil || err != nil {
		return data
	}
	out := flowgraph.Node{Type: n.Type, Data: data}
	if err := out.SetConfig(cfg.Clone()); err != nil {
		return data
	}
	return out.Data
}

// CopySelection snapshots the current selection (multi-selection first,
// falling back to the last explicitly selected node) into the clipboard and
// returns the number of nodes copied. Copying nothing leaves the clipboard
// untouched.
func (s *Store) CopySelection() int {
	ids := s.selectionIDs()
	if len(ids) == 0 {
		return 0
	}

	origin := flowgraph.Position{}
	for i, id := range ids {
		n := s.nodeAt(id)
		if i == 0 {
			origin = n.Position
			continue
		}
		if n.Position.X < origin.X {
			origin.X = n.Position.X
		}
		if n.Position.Y < origin.Y {
			origin.Y = n.Position.Y
		}
	}

	clip := &clipboard{origin: origin}
	for _, id := range ids {
		n := s.nodeAt(id)
		clip.items = append(clip.items, clipItem{
			nodeType: n.Type,
			data:     cloneData(*n),
			offset: flowgraph.Position{
				X: n.Position.X - origin.X,
				Y: n.Position.Y - origin.Y,
			},
		})
	}
	s.clip = clip
	s.pasteCount = 0
	return len(clip.items)
}

// Paste materializes the clipboard into fresh nodes. The k-th paste since
// the last copy lands at clipboardOrigin + k*(40,40), each node keeping its
// recorded offset, so repeated pastes fan out diagonally. The pasted nodes
// become the new selection. Edges are never pasted.
func (s *Store) Paste() []flowgraph.Node {
	if s.clip == nil || len(s.clip.items) == 0 {
		return nil
	}
	s.pasteCount++
	step := float64(s.pasteCount) * pasteOffset
	base := s.clip.origin.Add(flowgraph.Position{X: step, Y: step})

	pasted := make([]flowgraph.Node, 0, len(s.clip.items))
	for _, item := range s.clip.items {
		n := flowgraph.Node{
			ID:       fmt.Sprintf("node-%d", s.nextID),
			Type:     item.nodeType,
			Position: base.Add(item.offset),
			Data:     item.data.Clone(),
		}
		s.nextID++
		s.nodes = append(s.nodes, n)
		pasted = append(pasted, n)
	}
	s.selectPasted(pasted)
	return pasted
}

// DuplicateSelection clones the current selection in place with a fixed
// (40,40) offset and selects the clones. The clipboard is not touched.
func (s *Store) DuplicateSelection() []flowgraph.Node {
	ids := s.selectionIDs()
	if len(ids) == 0 {
		return nil
	}

	clones := make([]flowgraph.Node, 0, len(ids))
	for _, id := range ids {
		src := s.nodeAt(id)
		n := flowgraph.Node{
			ID:       fmt.Sprintf("node-%d", s.nextID),
			Type:     src.Type,
			Position: src.Position.Add(flowgraph.Position{X: pasteOffset, Y: pasteOffset}),
			Data:     cloneData(*src),
		}
		s.nextID++
		s.nodes = append(s.nodes, n)
		clones = append(clones, n)
	}
	s.selectPasted(clones)
	return clones
}

func (s *Store) selectPasted(nodes []flowgraph.Node) {
	s.multi = make(map[string]bool, len(nodes))
	for _, n := range nodes {
		s.multi[n.ID] = true
	}
	s.selectedNode = ""
	s.selectedEdge = ""
	if len(nodes) > 0 {
		s.lastSelected = nodes[len(nodes)-1].ID
	}
}
