package core

import "fmt"

// Tile replicates a unit cell rep[0]×rep[1]×rep[2] times along its axes.
//
// It returns the Cartesian atom positions, a parallel slice of basis-template
// indices (position i came from unit-cell basis atom basisIndex[i]), and the
// replicated cell matrix (each unit-cell row scaled by the matching
// replication count).
//
// The enumeration order is i, then j, then k, with the basis atom innermost,
// and is load-bearing: downstream consumers rely on index-based
// correspondence across repeated generations with identical parameters.
func Tile(cell UnitCell, rep [3]int) (positions []Vec3, basisIndex []int, replicated Mat3, err error) {
	for axis, n := range rep {
		if n < 1 {
			return nil, nil, Mat3{}, fmt.Errorf(
				"%w: replication factor %d on axis %d must be a positive integer", ErrValidation, n, axis)
		}
	}
	if len(cell.Basis) == 0 {
		return nil, nil, Mat3{}, fmt.Errorf("%w: unit cell has no basis atoms", ErrValidation)
	}

	total := len(cell.Basis) * rep[0] * rep[1] * rep[2]
	positions = make([]Vec3, 0, total)
	basisIndex = make([]int, 0, total)

	for i := 0; i < rep[0]; i++ {
		for j := 0; j < rep[1]; j++ {
			for k := 0; k < rep[2]; k++ {
				offset := Vec3{float64(i), float64(j), float64(k)}
				for b, frac := range cell.Basis {
					// Offsets are in unit-cell units, so the shifted fractional
					// coordinate is combined with the unit cell matrix.
					positions = append(positions, cell.Cell.MulVec(frac.Add(offset)))
					basisIndex = append(basisIndex, b)
				}
			}
		}
	}

	replicated = cell.Cell.ScaleRows([3]float64{float64(rep[0]), float64(rep[1]), float64(rep[2])})
	return positions, basisIndex, replicated, nil
}
