package core

import (
	"fmt"
	"math"

	"github.com/materialsfoundry/crystal-generator/model"
)

// Geometry holds the scalar parameters of a unit cell. COverA is required for
// hcp and ignored for the cubic families.
type Geometry struct {
	LatticeConstant float64
	COverA          float64
}

// UnitCell is the minimal repeating unit of a lattice: an ordered basis of
// fractional atom positions plus the 3×3 cell matrix. It exists only during
// generation; the published record carries the replicated cell instead.
type UnitCell struct {
	Basis []Vec3
	Cell  Mat3
}

// BuildUnitCell constructs the conventional unit cell for a lattice family.
//
// FCC and BCC use the conventional cubic cell rather than the primitive one:
// the cell matrix stays orthogonal, which keeps supercell replication and the
// axis-aligned containment check simple, at the cost of a larger basis
// (4 atoms for fcc, 2 for bcc). HCP uses the two-atom hexagonal cell with a
// non-orthogonal in-plane axis pair.
func BuildUnitCell(family model.LatticeFamily, geo Geometry) (UnitCell, error) {
	a := geo.LatticeConstant
	if a <= 0 {
		return UnitCell{}, fmt.Errorf("%w: lattice constant %v must be positive", ErrValidation, a)
	}

	switch family {
	case model.FamilyFCC:
		return UnitCell{
			Basis: []Vec3{
				{0, 0, 0},
				{0.5, 0.5, 0},
				{0.5, 0, 0.5},
				{0, 0.5, 0.5},
			},
			Cell: cubicCell(a),
		}, nil

	case model.FamilyBCC:
		return UnitCell{
			Basis: []Vec3{
				{0, 0, 0},
				{0.5, 0.5, 0.5},
			},
			Cell: cubicCell(a),
		}, nil

	case model.FamilyHCP:
		if geo.COverA <= 0 {
			return UnitCell{}, fmt.Errorf("%w: hcp requires a positive c/a ratio", ErrConfiguration)
		}
		c := a * geo.COverA
		return UnitCell{
			Basis: []Vec3{
				{0, 0, 0},
				{1.0 / 3.0, 2.0 / 3.0, 0.5},
			},
			Cell: Mat3{
				A: Vec3{a, 0, 0},
				B: Vec3{-0.5 * a, a * math.Sqrt(3) / 2, 0},
				C: Vec3{0, 0, c},
			},
		}, nil

	default:
		return UnitCell{}, fmt.Errorf("%w: unsupported lattice family %v", ErrConfiguration, family)
	}
}

func cubicCell(a float64) Mat3 {
	return Mat3{
		A: Vec3{a, 0, 0},
		B: Vec3{0, a, 0},
		C: Vec3{0, 0, a},
	}
}
