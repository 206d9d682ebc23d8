package flowgraph

import (
	"errors"
	"fmt"
)

// Rejection reasons for a candidate connection. ValidateConnection wraps
// these with endpoint detail; callers branch with errors.Is and show
// err.Error() to the user.
var (
	ErrMissingEndpoint  = errors.New("connection endpoints incomplete")
	ErrSelfConnection   = errors.New("cannot connect a node to itself")
	ErrNodeNotFound     = errors.New("node not found")
	ErrPinNotFound      = errors.New("pin not found")
	ErrAlreadyConnected = errors.New("input pin already connected")
	ErrExecFanOut       = errors.New("execution pin already connected")
	ErrTypeMismatch     = errors.New("incompatible pin types")
)

// ValidateConnection decides whether the candidate edge is admissible
// against the current graph. A nil return means admissible; a non-nil
// return wraps one of the sentinel rejections above with a human-readable
// explanation. The checks run in a fixed order and short-circuit on the
// first failure:
//
//  1. all four endpoint coordinates present
//  2. no self-connections
//  3. both nodes exist
//  4. the source pin exists among the source node's outputs, the target
//     pin among the target node's inputs
//  5. fan-in: an input pin carries at most one incoming edge
//  6. fan-out: an execution output pin drives at most one edge (data
//     outputs fan out freely)
//  7. the pin types are compatible per Compatible(source, target)
//
// Pure function over its inputs; no side effects.
func ValidateConnection(nodes []Node, edges []Edge, c Connection) error {
	if c.Source == "" || c.Target == "" || c.SourceHandle == "" || c.TargetHandle == "" {
		return ErrMissingEndpoint
	}
	if c.Source == c.Target {
		return ErrSelfConnection
	}

	var source, target *Node
	for i := range nodes {
		switch nodes[i].ID {
		case c.Source:
			source = &nodes[i]
		case c.Target:
			target = &nodes[i]
		}
	}
	if source == nil {
		return fmt.Errorf("%w: source %q", ErrNodeNotFound, c.Source)
	}
	if target == nil {
		return fmt.Errorf("%w: target %q", ErrNodeNotFound, c.Target)
	}

	sourcePin := source.OutputPin(c.SourceHandle)
	if sourcePin == nil {
		return fmt.Errorf("%w: output %q on node %q", ErrPinNotFound, c.SourceHandle, c.Source)
	}
	targetPin := target.InputPin(c.TargetHandle)
	if targetPin == nil {
		return fmt.Errorf("%w: input %q on node %q", ErrPinNotFound, c.TargetHandle, c.Target)
	}

	for _, e := range edges {
		if e.Target == c.Target && e.TargetHandle == c.TargetHandle {
			return fmt.Errorf("%w: input %q on node %q", ErrAlreadyConnected, c.TargetHandle, c.Target)
		}
	}

	if sourcePin.Type == TypeExec {
		for _, e := range edges {
			if e.Source == c.Source && e.SourceHandle == c.SourceHandle {
				return fmt.Errorf("%w: output %q on node %q", ErrExecFanOut, c.SourceHandle, c.Source)
			}
		}
	}

	if !Compatible(sourcePin.Type, targetPin.Type) {
		return fmt.Errorf("%w: %s -> %s", ErrTypeMismatch, sourcePin.Type, targetPin.Type)
	}
	return nil
}

// CheckFlow validates every edge of a document as if it were being created,
// each against the rest of the edge set. It returns one error per violating
// edge, or nil when the document is well-formed.
func CheckFlow(f *Flow) []error {
	var errs []error
	for i, e := range f.Edges {
		rest := make([]Edge, 0, len(f.Edges)-1)
		rest = append(rest, f.Edges[:i]...)
		rest = append(rest, f.Edges[i+1:]...)
		c := Connection{
			Source:       e.Source,
			SourceHandle: e.SourceHandle,
			Target:       e.Target,
			TargetHandle: e.TargetHandle,
		}
		if err := ValidateConnection(f.Nodes, rest, c); err != nil {
			errs = append(errs, fmt.Errorf("edge %s: %w", e.ID, err))
		}
	}
	return errs
}
