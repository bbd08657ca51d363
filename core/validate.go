package core

import (
	"fmt"
	"math"
)

// containmentEps absorbs floating-point drift for atoms sitting exactly on a
// replicated-cell face; such atoms are valid periodic images.
const containmentEps = 1e-9

// ValidateStructure checks the geometric well-formedness of a tiled structure
// against its replicated cell. It is a pure sanity net over the builder and
// tiler: every atom's fractional coordinate must lie in [0,1] on each axis,
// all three cell lengths must be strictly positive, and all three inter-axis
// angles must fall in (0°, 180°]. It does not check interatomic distances,
// volume, or symmetry.
func ValidateStructure(positions []Vec3, cell Mat3) error {
	inv, ok := cell.Inverse()
	if !ok {
		return fmt.Errorf("%w: cell matrix is singular", ErrGeometry)
	}

	for i, p := range positions {
		frac := inv.MulVec(p)
		for axis, v := range frac.Array() {
			if v < -containmentEps || v > 1+containmentEps {
				return fmt.Errorf(
					"%w: atom %d outside unit cell (fractional coordinate %v on axis %d)",
					ErrGeometry, i, v, axis)
			}
		}
	}

	lengths, angles := cell.CellParameters()
	for axis, l := range lengths {
		if l <= 0 {
			return fmt.Errorf(
				"%w: invalid cell parameters: non-positive length %v on axis %d", ErrGeometry, l, axis)
		}
	}
	for i, ang := range angles {
		abs := math.Abs(ang)
		if abs <= 0 || abs > 180 {
			return fmt.Errorf(
				"%w: invalid cell parameters: angle %v out of range (0, 180] at index %d", ErrGeometry, ang, i)
		}
	}
	return nil
}
