package flowgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNode(id string, inputs, outputs []Pin) Node {
	return Node{
		ID:   id,
		Type: NodeCode,
		Data: NodeData{Inputs: inputs, Outputs: outputs},
	}
}

func execPins() (in, out Pin) {
	in = Pin{ID: PinExecIn, Label: "Exec", Type: TypeExec}
	out = Pin{ID: PinExecOut, Label: "Exec", Type: TypeExec}
	return
}

func TestValidateConnectionTypeMismatch(t *testing.T) {
	a := testNode("a", nil, []Pin{{ID: "p1", Type: TypeString}})
	b := testNode("b", []Pin{{ID: "p2", Type: TypeNumber}}, nil)

	err := ValidateConnection([]Node{a, b}, nil, Connection{
		Source: "a", SourceHandle: "p1", Target: "b", TargetHandle: "p2",
	})
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "string")
	assert.Contains(t, err.Error(), "number")
}

func TestValidateConnectionSelf(t *testing.T) {
	a := testNode("a", []Pin{{ID: "in", Type: TypeAny}}, []Pin{{ID: "out", Type: TypeAny}})
	err := ValidateConnection([]Node{a}, nil, Connection{
		Source: "a", SourceHandle: "out", Target: "a", TargetHandle: "in",
	})
	assert.ErrorIs(t, err, ErrSelfConnection)
}

func TestValidateConnectionMissingEndpoints(t *testing.T) {
	err := ValidateConnection(nil, nil, Connection{Source: "a", Target: "b"})
	assert.ErrorIs(t, err, ErrMissingEndpoint)
}

func TestValidateConnectionUnknownNode(t *testing.T) {
	a := testNode("a", nil, []Pin{{ID: "out", Type: TypeAny}})
	err := ValidateConnection([]Node{a}, nil, Connection{
		Source: "a", SourceHandle: "out", Target: "ghost", TargetHandle: "in",
	})
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestValidateConnectionUnknownPin(t *testing.T) {
	a := testNode("a", nil, []Pin{{ID: "out", Type: TypeAny}})
	b := testNode("b", []Pin{{ID: "in", Type: TypeAny}}, nil)

	err := ValidateConnection([]Node{a, b}, nil, Connection{
		Source: "a", SourceHandle: "nope", Target: "b", TargetHandle: "in",
	})
	assert.ErrorIs(t, err, ErrPinNotFound)

	err = ValidateConnection([]Node{a, b}, nil, Connection{
		Source: "a", SourceHandle: "out", Target: "b", TargetHandle: "nope",
	})
	assert.ErrorIs(t, err, ErrPinNotFound)

	// Direction matters: an input pin id is not found among outputs.
	err = ValidateConnection([]Node{a, b}, nil, Connection{
		Source: "b", SourceHandle: "in", Target: "a", TargetHandle: "out",
	})
	assert.ErrorIs(t, err, ErrPinNotFound)
}

func TestValidateConnectionFanIn(t *testing.T) {
	a := testNode("a", nil, []Pin{{ID: "out", Type: TypeString}})
	b := testNode("b", []Pin{{ID: "x", Type: TypeString}}, nil)
	c := testNode("c", nil, []Pin{{ID: "out", Type: TypeString}})

	edges := []Edge{{
		ID: "e1", Source: "a", SourceHandle: "out", Target: "b", TargetHandle: "x",
	}}

	// Types match, the slot is simply taken.
	err := ValidateConnection([]Node{a, b, c}, edges, Connection{
		Source: "c", SourceHandle: "out", Target: "b", TargetHandle: "x",
	})
	assert.ErrorIs(t, err, ErrAlreadyConnected)
}

func TestValidateConnectionExecFanOut(t *testing.T) {
	in, out := execPins()
	a := testNode("a", nil, []Pin{out})
	b := testNode("b", []Pin{in}, nil)
	c := testNode("c", []Pin{in}, nil)

	edges := []Edge{{
		ID: "e1", Source: "a", SourceHandle: PinExecOut, Target: "b", TargetHandle: PinExecIn,
	}}

	err := ValidateConnection([]Node{a, b, c}, edges, Connection{
		Source: "a", SourceHandle: PinExecOut, Target: "c", TargetHandle: PinExecIn,
	})
	assert.ErrorIs(t, err, ErrExecFanOut)
}

func TestValidateConnectionDataFanOutUnlimited(t *testing.T) {
	a := testNode("a", nil, []Pin{{ID: "out", Type: TypeString}})
	b := testNode("b", []Pin{{ID: "in", Type: TypeString}}, nil)
	c := testNode("c", []Pin{{ID: "in", Type: TypeString}}, nil)

	edges := []Edge{{
		ID: "e1", Source: "a", SourceHandle: "out", Target: "b", TargetHandle: "in",
	}}

	err := ValidateConnection([]Node{a, b, c}, edges, Connection{
		Source: "a", SourceHandle: "out", Target: "c", TargetHandle: "in",
	})
	assert.NoError(t, err)
}

func TestValidateConnectionAccepts(t *testing.T) {
	a := testNode("a", nil, []Pin{{ID: "n", Type: TypeNumber}})
	b := testNode("b", []Pin{{ID: "s", Type: TypeString}}, nil)

	err := ValidateConnection([]Node{a, b}, nil, Connection{
		Source: "a", SourceHandle: "n", Target: "b", TargetHandle: "s",
	})
	assert.NoError(t, err)
}

func TestCheckFlow(t *testing.T) {
	in, out := execPins()
	a := testNode("a", nil, []Pin{out, {ID: "val", Type: TypeString}})
	b := testNode("b", []Pin{in, {ID: "val", Type: TypeString}}, nil)

	good := &Flow{
		Nodes: []Node{a, b},
		Edges: []Edge{
			{ID: "e1", Source: "a", SourceHandle: PinExecOut, Target: "b", TargetHandle: PinExecIn},
			{ID: "e2", Source: "a", SourceHandle: "val", Target: "b", TargetHandle: "val"},
		},
	}
	assert.Empty(t, CheckFlow(good))

	bad := &Flow{
		Nodes: []Node{a, b},
		Edges: []Edge{
			{ID: "e1", Source: "a", SourceHandle: "val", Target: "b", TargetHandle: "val"},
			{ID: "e2", Source: "a", SourceHandle: "ghost", Target: "b", TargetHandle: "val"},
		},
	}
	errs := CheckFlow(bad)
	// e1 collides with e2 on fan-in and e2 names a missing pin.
	require.Len(t, errs, 2)
}
