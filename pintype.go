package flowgraph

// PinType is the closed set of types a pin may carry. The set is fixed:
// adding a member means extending the compatibility relation below and the
// reflexivity test alongside it.
type PinType string

const (
	// TypeExec is the control-flow type. It sequences nodes rather than
	// carrying data and only ever connects to itself.
	TypeExec PinType = "exec"

	// TypeAny is the wildcard type, compatible with everything except a
	// mismatched control pin.
	TypeAny PinType = "any"

	TypeString  PinType = "string"
	TypeNumber  PinType = "number"
	TypeBoolean PinType = "boolean"
	TypeObject  PinType = "object"
	TypeArray   PinType = "array"

	// Specialized list-likes: interchangeable with the generic array,
	// not with each other.
	TypeTools      PinType = "tools"
	TypeAssertions PinType = "assertions"

	// Semantically tagged object variants: interchangeable with the
	// generic object and with each other.
	TypeAssertion PinType = "assertion"
	TypeMemory    PinType = "memory"

	// Domain-tagged string-likes: interchangeable with the generic
	// string, not with each other.
	TypeProvider PinType = "provider"
	TypeModel    PinType = "model"
)

// Types lists every member of the closed set, in declaration order.
func Types() []PinType {
	return []PinType{
		TypeExec, TypeAny,
		TypeString, TypeNumber, TypeBoolean, TypeObject, TypeArray,
		TypeTools, TypeAssertions,
		TypeAssertion, TypeMemory,
		TypeProvider, TypeModel,
	}
}

func isListLike(t PinType) bool {
	return t == TypeTools || t == TypeAssertions
}

func isObjectLike(t PinType) bool {
	return t == TypeObject || t == TypeAssertion || t == TypeMemory
}

func isStringLike(t PinType) bool {
	return t == TypeString || t == TypeProvider || t == TypeModel
}

// Compatible reports whether a value of type source may flow from an output
// pin into an input pin of type target. The relation is directional: several
// coercions (stringification, array-to-object) apply one way only, so
// callers must pass (source, target) in edge order. Rules are evaluated top
// to bottom, first match wins.
func Compatible(source, target PinType) bool {
	// Control flow never mixes with data.
	if source == TypeExec || target == TypeExec {
		return source == target
	}

	if source == TypeAny || target == TypeAny {
		return true
	}

	// Specialized lists are arrays underneath, in both directions.
	if isListLike(source) || isListLike(target) {
		if source == TypeArray || target == TypeArray {
			return true
		}
		return source == target
	}

	// Tagged object variants share the generic object representation.
	if isObjectLike(source) && isObjectLike(target) {
		return true
	}

	// An array is representable as an object; the reverse is not.
	if source == TypeArray && target == TypeObject {
		return true
	}

	// Implicit stringification of scalars, one way.
	if (source == TypeNumber || source == TypeBoolean) && target == TypeString {
		return true
	}

	// Domain-tagged strings interchange with the plain string only.
	if isStringLike(source) && isStringLike(target) {
		return source == target || source == TypeString || target == TypeString
	}

	return source == target
}
