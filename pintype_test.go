package flowgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatibleReflexive(t *testing.T) {
	for _, typ := range Types() {
		assert.True(t, Compatible(typ, typ), "Compatible(%s, %s)", typ, typ)
	}
}

func TestCompatibleExecOnlyMatchesExec(t *testing.T) {
	for _, typ := range Types() {
		if typ == TypeExec {
			continue
		}
		assert.False(t, Compatible(TypeExec, typ), "exec -> %s", typ)
		assert.False(t, Compatible(typ, TypeExec), "%s -> exec", typ)
	}
}

func TestCompatibleWildcard(t *testing.T) {
	for _, typ := range Types() {
		if typ == TypeExec {
			continue
		}
		assert.True(t, Compatible(TypeAny, typ), "any -> %s", typ)
		assert.True(t, Compatible(typ, TypeAny), "%s -> any", typ)
	}
}

func TestCompatibleDirectional(t *testing.T) {
	cases := []struct {
		name   string
		source PinType
		target PinType
		want   bool
	}{
		// Specialized lists and the generic array.
		{"tools to array", TypeTools, TypeArray, true},
		{"array to tools", TypeArray, TypeTools, true},
		{"assertions to array", TypeAssertions, TypeArray, true},
		{"array to assertions", TypeArray, TypeAssertions, true},
		{"tools to assertions", TypeTools, TypeAssertions, false},
		{"assertions to tools", TypeAssertions, TypeTools, false},

		// Object-like variants.
		{"assertion to object", TypeAssertion, TypeObject, true},
		{"object to assertion", TypeObject, TypeAssertion, true},
		{"memory to assertion", TypeMemory, TypeAssertion, true},
		{"assertion to memory", TypeAssertion, TypeMemory, true},

		// Array into object is one-way.
		{"array to object", TypeArray, TypeObject, true},
		{"object to array", TypeObject, TypeArray, false},
		{"array to memory", TypeArray, TypeMemory, false},

		// Stringification is one-way.
		{"number to string", TypeNumber, TypeString, true},
		{"boolean to string", TypeBoolean, TypeString, true},
		{"string to number", TypeString, TypeNumber, false},
		{"string to boolean", TypeString, TypeBoolean, false},
		{"number to boolean", TypeNumber, TypeBoolean, false},

		// Domain-tagged strings.
		{"provider to string", TypeProvider, TypeString, true},
		{"string to provider", TypeString, TypeProvider, true},
		{"model to string", TypeModel, TypeString, true},
		{"string to model", TypeString, TypeModel, true},
		{"provider to model", TypeProvider, TypeModel, false},
		{"model to provider", TypeModel, TypeProvider, false},
		{"number to provider", TypeNumber, TypeProvider, false},

		// No cross-kind leakage.
		{"tools to object", TypeTools, TypeObject, false},
		{"object to string", TypeObject, TypeString, false},
		{"string to array", TypeString, TypeArray, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compatible(tc.source, tc.target))
		})
	}
}
