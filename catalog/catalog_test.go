package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxwire/flowgraph"
)

func TestBuiltinPinIDsUnique(t *testing.T) {
	cat := Builtin()
	for _, typ := range cat.Types() {
		tmpl, ok := cat.Get(typ)
		require.True(t, ok)

		for _, pins := range [][]flowgraph.Pin{tmpl.Inputs, tmpl.Outputs} {
			seen := map[string]bool{}
			for _, p := range pins {
				assert.False(t, seen[p.ID], "%s: duplicate pin id %q", typ, p.ID)
				seen[p.ID] = true
				assert.NotEmpty(t, p.Label, "%s: pin %q has no label", typ, p.ID)
			}
		}
	}
}

func TestBuiltinLegacyFieldsTargetRealPins(t *testing.T) {
	cat := Builtin()
	for _, typ := range cat.Types() {
		tmpl, _ := cat.Get(typ)
		for field, pinID := range tmpl.LegacyBoolFields {
			found := false
			for _, p := range tmpl.Inputs {
				if p.ID == pinID {
					found = true
					assert.Equal(t, flowgraph.TypeBoolean, p.Type,
						"%s: legacy field %q targets non-boolean pin %q", typ, field, pinID)
				}
			}
			assert.True(t, found, "%s: legacy field %q targets unknown pin %q", typ, field, pinID)
		}
	}
}

func TestBuiltinRetiredPinsAreNotCanonical(t *testing.T) {
	cat := Builtin()
	for _, typ := range cat.Types() {
		tmpl, _ := cat.Get(typ)
		for _, retired := range tmpl.RetiredPins {
			for _, p := range append(append([]flowgraph.Pin{}, tmpl.Inputs...), tmpl.Outputs...) {
				assert.NotEqual(t, retired, p.ID, "%s: retired pin %q still canonical", typ)
			}
		}
	}
}

func TestInstantiateIsDeep(t *testing.T) {
	cat := Builtin()
	tmpl, ok := cat.Get(flowgraph.NodeAgent)
	require.True(t, ok)

	a := tmpl.Instantiate()
	b := tmpl.Instantiate()

	a.Inputs[0].Label = "mutated"
	a.Defaults["stream"] = true

	assert.NotEqual(t, a.Inputs[0].Label, b.Inputs[0].Label)
	assert.Equal(t, false, b.Defaults["stream"])
	assert.Equal(t, false, tmpl.Defaults["stream"])

	require.NotEmpty(t, a.Config)
	a.Config[0] = 'x'
	assert.NotEqual(t, a.Config[0], b.Config[0])
}

func TestCatalogGetAndTypes(t *testing.T) {
	cat := Builtin()
	assert.NotEmpty(t, cat.Types())

	tmpl, ok := cat.Get(flowgraph.NodeBranch)
	require.True(t, ok)
	assert.Equal(t, "Branch", tmpl.Label)

	_, ok = cat.Get("no-such-type")
	assert.False(t, ok)
}
