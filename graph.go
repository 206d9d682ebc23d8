package flowgraph

import (
	"encoding/json"
	"time"
)

// Canonical control-flow pin ids. Every node type that participates in the
// execution chain exposes its control pins under these ids; the entry-node
// derivation in the editor depends on PinExecIn being stable across types.
const (
	PinExecIn  = "exec-in"
	PinExecOut = "exec-out"
)

// Pin is a named, typed connection point on a node. Pins are value objects:
// a node's pin list is replaced wholesale, individual pins are never mutated
// in place.
type Pin struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Type  PinType `json:"type"`
	Doc   string  `json:"doc,omitempty"`
}

// Position is a node's location on the editor canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p offset by q.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y}
}

// NodeData is the node-type-specific payload of a node. Config holds the raw
// per-type configuration; decode it through Node.DecodeConfig to get the
// typed variant. Defaults carries the value used for a data input pin while
// it is unconnected, keyed by pin id.
type NodeData struct {
	Label    string          `json:"label,omitempty"`
	Inputs   []Pin           `json:"inputs"`
	Outputs  []Pin           `json:"outputs"`
	Defaults map[string]any  `json:"defaults,omitempty"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// Node is a vertex in the flow graph.
type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// Edge is a directed connection from one node's output pin to another
// node's input pin. Animated marks edges whose source pin is the
// control-flow type; it is a rendering hint, not a semantic flag.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle"`
	Animated     bool   `json:"animated,omitempty"`
}

// Connection is a candidate edge: the four endpoint coordinates a user
// gesture (or a paste, or an API call) proposes before validation.
type Connection struct {
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle"`
}

// Flow is the persisted graph document: nodes, edges and metadata.
// EntryNode is optional; when absent the entry point is derived from the
// control-edge topology at serialization time.
type Flow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Interfaces  []string  `json:"interfaces,omitempty"`
	EntryNode   string    `json:"entryNode,omitempty"`
	Nodes       []Node    `json:"nodes"`
	Edges       []Edge    `json:"edges"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// NodeByID returns the node with the given id, or nil.
func (f *Flow) NodeByID(id string) *Node {
	for i := range f.Nodes {
		if f.Nodes[i].ID == id {
			return &f.Nodes[i]
		}
	}
	return nil
}

// InputPin returns the input pin with the given id, or nil.
func (n *Node) InputPin(id string) *Pin {
	return findPin(n.Data.Inputs, id)
}

// OutputPin returns the output pin with the given id, or nil.
func (n *Node) OutputPin(id string) *Pin {
	return findPin(n.Data.Outputs, id)
}

func findPin(pins []Pin, id string) *Pin {
	for i := range pins {
		if pins[i].ID == id {
			return &pins[i]
		}
	}
	return nil
}

// PinsRemoved returns the set of pin ids present in oldPins but absent from
// newPins. The editor uses it to compute which edges a data edit has left
// dangling; it is kept separate from the store so the cascade rule can be
// tested on its own.
func PinsRemoved(oldPins, newPins []Pin) map[string]struct{} {
	kept := make(map[string]struct{}, len(newPins))
	for _, p := range newPins {
		kept[p.ID] = struct{}{}
	}
	removed := make(map[string]struct{})
	for _, p := range oldPins {
		if _, ok := kept[p.ID]; !ok {
			removed[p.ID] = struct{}{}
		}
	}
	return removed
}

// Clone returns a deep copy of the node data. Pin slices and the defaults
// map are copied; the raw config bytes are duplicated so the copy cannot
// alias the original document.
func (d NodeData) Clone() NodeData {
	out := NodeData{Label: d.Label}
	if d.Inputs != nil {
		out.Inputs = append([]Pin(nil), d.Inputs...)
	}
	if d.Outputs != nil {
		out.Outputs = append([]Pin(nil), d.Outputs...)
	}
	if d.Defaults != nil {
		out.Defaults = CloneDefaults(d.Defaults)
	}
	if d.Config != nil {
		out.Config = append(json.RawMessage(nil), d.Config...)
	}
	return out
}

// CloneDefaults deep-copies a pin default-value map.
func CloneDefaults(defaults map[string]any) map[string]any {
	out := make(map[string]any, len(defaults))
	for k, v := range defaults {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies a JSON-shaped value (maps, slices, scalars).
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}
