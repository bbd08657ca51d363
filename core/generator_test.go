package core

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materialsfoundry/crystal-generator/kb"
	"github.com/materialsfoundry/crystal-generator/model"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	return NewGenerator(kb.NewRegistry())
}

func TestGenerate_FCCCopperDefaults(t *testing.T) {
	gen := newTestGenerator(t)

	s, err := gen.Generate(context.Background(), model.Request{
		Element:       "Cu",
		StructureType: "fcc",
	})
	require.NoError(t, err)

	assert.Equal(t, 32, s.NumAtoms(), "fcc basis 4 × 2×2×2")
	assert.Equal(t, 32, s.Metadata.NumAtoms)
	assert.Len(t, s.Numbers, 32)
	for _, n := range s.Numbers {
		assert.Equal(t, 29, n, "all species must be copper")
	}
	assert.Equal(t, "Cu", s.Metadata.Element)
	assert.Equal(t, "fcc", s.Metadata.StructureType)
	assert.Equal(t, 3.61, s.Metadata.LatticeConstant)
	assert.Nil(t, s.Metadata.COverA, "c/a is null for cubic families")
	assert.Equal(t, [3]int{2, 2, 2}, s.Metadata.SupercellSize)
	assert.Equal(t, [3]bool{true, true, true}, s.PBC)
}

func TestGenerate_BCCIronDefaults(t *testing.T) {
	gen := newTestGenerator(t)

	s, err := gen.Generate(context.Background(), model.Request{
		Element:       "Fe",
		StructureType: "bcc",
	})
	require.NoError(t, err)

	assert.Equal(t, 16, s.NumAtoms())
	assert.Equal(t, 2.87, s.Metadata.LatticeConstant)
	for _, n := range s.Numbers {
		assert.Equal(t, 26, n)
	}
}

func TestGenerate_HCPTitaniumSingleCell(t *testing.T) {
	gen := newTestGenerator(t)

	s, err := gen.Generate(context.Background(), model.Request{
		Element:       "Ti",
		StructureType: "hcp",
		Size:          [3]int{1, 1, 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, s.NumAtoms())
	require.NotNil(t, s.Metadata.COverA)
	assert.Equal(t, 1.587, *s.Metadata.COverA)

	// c/a recovered from the published cell rows.
	cNorm := math.Sqrt(s.Cell[2][0]*s.Cell[2][0] + s.Cell[2][1]*s.Cell[2][1] + s.Cell[2][2]*s.Cell[2][2])
	aNorm := math.Sqrt(s.Cell[0][0]*s.Cell[0][0] + s.Cell[0][1]*s.Cell[0][1] + s.Cell[0][2]*s.Cell[0][2])
	assert.InEpsilon(t, 1.587, cNorm/aNorm, 1e-10)
}

func TestGenerate_AnisotropicReplication(t *testing.T) {
	gen := newTestGenerator(t)

	s, err := gen.Generate(context.Background(), model.Request{
		Element:       "Cu",
		StructureType: "fcc",
		Size:          [3]int{3, 2, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 24, s.NumAtoms(), "4 × 3×2×1")
	assert.Equal(t, [3]int{3, 2, 1}, s.Metadata.SupercellSize)
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := newTestGenerator(t)
	req := model.Request{Element: "Zn", StructureType: "hcp", Size: [3]int{2, 3, 2}}

	first, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)

	// Exact equality, not near-equality: identical inputs must produce
	// bit-identical positions, species, and cell.
	assert.Equal(t, first.Positions, second.Positions)
	assert.Equal(t, first.Numbers, second.Numbers)
	assert.Equal(t, first.Cell, second.Cell)
}

func TestGenerate_CaseInsensitiveFamily(t *testing.T) {
	gen := newTestGenerator(t)

	lower, err := gen.Generate(context.Background(), model.Request{Element: "Cu", StructureType: "fcc"})
	require.NoError(t, err)
	upper, err := gen.Generate(context.Background(), model.Request{Element: "Cu", StructureType: "FCC"})
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
}

func TestGenerate_ContainmentInvariant(t *testing.T) {
	gen := newTestGenerator(t)

	s, err := gen.Generate(context.Background(), model.Request{
		Element:       "Mg",
		StructureType: "hcp",
		Size:          [3]int{3, 2, 2},
	})
	require.NoError(t, err)

	cell := Mat3{
		A: Vec3{s.Cell[0][0], s.Cell[0][1], s.Cell[0][2]},
		B: Vec3{s.Cell[1][0], s.Cell[1][1], s.Cell[1][2]},
		C: Vec3{s.Cell[2][0], s.Cell[2][1], s.Cell[2][2]},
	}
	inv, ok := cell.Inverse()
	require.True(t, ok)

	for i, p := range s.Positions {
		frac := inv.MulVec(Vec3{p[0], p[1], p[2]})
		for axis, v := range frac.Array() {
			assert.GreaterOrEqual(t, v, -1e-9, "atom %d axis %d", i, axis)
			assert.LessOrEqual(t, v, 1+1e-9, "atom %d axis %d", i, axis)
		}
	}
}

func TestGenerate_ExplicitConstantsOverrideDefaults(t *testing.T) {
	gen := newTestGenerator(t)
	a := 4.0
	ratio := 1.6

	s, err := gen.Generate(context.Background(), model.Request{
		Element:         "Ti",
		StructureType:   "hcp",
		LatticeConstant: &a,
		COverA:          &ratio,
		Size:            [3]int{1, 1, 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 4.0, s.Metadata.LatticeConstant)
	require.NotNil(t, s.Metadata.COverA)
	assert.Equal(t, 1.6, *s.Metadata.COverA)
	assert.Equal(t, 4.0, s.Cell[0][0])
}

func TestGenerate_Failures(t *testing.T) {
	gen := newTestGenerator(t)
	negative := -1.0

	tests := []struct {
		name string
		req  model.Request
		kind error
	}{
		{"unsupported pairing", model.Request{Element: "Cu", StructureType: "hcp"}, ErrConfiguration},
		{"unknown element", model.Request{Element: "Xx", StructureType: "fcc"}, ErrConfiguration},
		{"unknown family", model.Request{Element: "Cu", StructureType: "diamond"}, ErrValidation},
		{"zero replication component", model.Request{Element: "Cu", StructureType: "fcc", Size: [3]int{0, 1, 1}}, ErrValidation},
		{"negative replication component", model.Request{Element: "Fe", StructureType: "bcc", Size: [3]int{2, -1, 2}}, ErrValidation},
		{"negative lattice constant", model.Request{Element: "Cu", StructureType: "fcc", LatticeConstant: &negative}, ErrValidation},
		{"negative c over a", model.Request{Element: "Ti", StructureType: "hcp", COverA: &negative}, ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gen.Generate(context.Background(), tc.req)
			require.ErrorIs(t, err, tc.kind)
		})
	}
}

// The pairing check runs before default resolution: an unsupported pairing is
// a configuration error even when the caller supplied explicit constants.
func TestGenerate_PairingCheckedBeforeDefaults(t *testing.T) {
	gen := newTestGenerator(t)
	a := 3.0

	_, err := gen.Generate(context.Background(), model.Request{
		Element:         "Fe",
		StructureType:   "fcc",
		LatticeConstant: &a,
	})
	require.ErrorIs(t, err, ErrConfiguration)
}
