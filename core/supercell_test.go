package core

import (
	"errors"
	"testing"

	"github.com/materialsfoundry/crystal-generator/model"
)

func TestTile_AtomCountLaw(t *testing.T) {
	tests := []struct {
		name   string
		family model.LatticeFamily
		geo    Geometry
		rep    [3]int
		want   int
	}{
		{"fcc 2x2x2", model.FamilyFCC, Geometry{LatticeConstant: 3.61}, [3]int{2, 2, 2}, 32},
		{"bcc 2x2x2", model.FamilyBCC, Geometry{LatticeConstant: 2.87}, [3]int{2, 2, 2}, 16},
		{"hcp 1x1x1", model.FamilyHCP, Geometry{LatticeConstant: 2.95, COverA: 1.587}, [3]int{1, 1, 1}, 2},
		{"fcc anisotropic 3x2x1", model.FamilyFCC, Geometry{LatticeConstant: 3.61}, [3]int{3, 2, 1}, 24},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cell, err := BuildUnitCell(tc.family, tc.geo)
			if err != nil {
				t.Fatalf("BuildUnitCell: %v", err)
			}
			positions, basisIndex, _, err := Tile(cell, tc.rep)
			if err != nil {
				t.Fatalf("Tile: %v", err)
			}
			if len(positions) != tc.want {
				t.Fatalf("atom count = %d, want %d", len(positions), tc.want)
			}
			if len(basisIndex) != tc.want {
				t.Fatalf("basis index count = %d, want %d", len(basisIndex), tc.want)
			}
		})
	}
}

func TestTile_EnumerationOrder(t *testing.T) {
	a := 2.87
	cell, err := BuildUnitCell(model.FamilyBCC, Geometry{LatticeConstant: a})
	if err != nil {
		t.Fatalf("BuildUnitCell: %v", err)
	}

	positions, basisIndex, _, err := Tile(cell, [3]int{2, 2, 2})
	if err != nil {
		t.Fatalf("Tile: %v", err)
	}

	// i outer, then j, then k, basis innermost: the first cell image is at
	// offset (0,0,0), the second at (0,0,1).
	want := []Vec3{
		{0, 0, 0},
		{0.5 * a, 0.5 * a, 0.5 * a},
		{0, 0, a},
		{0.5 * a, 0.5 * a, 1.5 * a},
	}
	for i, w := range want {
		if positions[i] != w {
			t.Fatalf("positions[%d] = %+v, want %+v", i, positions[i], w)
		}
	}
	for i, want := range []int{0, 1, 0, 1} {
		if basisIndex[i] != want {
			t.Fatalf("basisIndex[%d] = %d, want %d", i, basisIndex[i], want)
		}
	}
}

func TestTile_CellScalingLaw(t *testing.T) {
	cell, err := BuildUnitCell(model.FamilyHCP, Geometry{LatticeConstant: 2.95, COverA: 1.587})
	if err != nil {
		t.Fatalf("BuildUnitCell: %v", err)
	}

	rep := [3]int{3, 2, 4}
	_, _, replicated, err := Tile(cell, rep)
	if err != nil {
		t.Fatalf("Tile: %v", err)
	}

	// Row i of the replicated cell is the unit-cell row scaled exactly by the
	// i-th replication count.
	for i := 0; i < 3; i++ {
		want := cell.Cell.Row(i).Scale(float64(rep[i]))
		if replicated.Row(i) != want {
			t.Fatalf("replicated row %d = %+v, want %+v", i, replicated.Row(i), want)
		}
	}
}

func TestTile_InvalidReplication(t *testing.T) {
	cell, err := BuildUnitCell(model.FamilyFCC, Geometry{LatticeConstant: 3.61})
	if err != nil {
		t.Fatalf("BuildUnitCell: %v", err)
	}

	for _, rep := range [][3]int{{0, 1, 1}, {1, -2, 1}, {1, 1, 0}} {
		if _, _, _, err := Tile(cell, rep); !errors.Is(err, ErrValidation) {
			t.Fatalf("Tile(%v) error = %v, want validation kind", rep, err)
		}
	}
}

func TestTile_EmptyBasis(t *testing.T) {
	cell := UnitCell{Cell: cubicCell(1)}
	if _, _, _, err := Tile(cell, [3]int{1, 1, 1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want validation kind", err)
	}
}
