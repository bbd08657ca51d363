package core

import "math"

// Vec3 is a 3-component vector. Depending on context it holds Cartesian
// coordinates in Å or fractional coordinates relative to a cell.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Array returns the vector as a plain [3]float64.
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Mat3 is a 3×3 cell matrix with row vectors A, B, C. Fractional coordinates
// combine with it in the row-vector convention: cartesian = frac · M.
// Dimensionality is always exactly 3, so a fixed-size type is used instead of
// a general matrix.
type Mat3 struct {
	A, B, C Vec3
}

// Row returns row i (0-based).
func (m Mat3) Row(i int) Vec3 {
	switch i {
	case 0:
		return m.A
	case 1:
		return m.B
	default:
		return m.C
	}
}

// Array returns the matrix as nested plain numbers, row-major.
func (m Mat3) Array() [3][3]float64 {
	return [3][3]float64{m.A.Array(), m.B.Array(), m.C.Array()}
}

// MulVec applies the row-vector product f · M, mapping fractional coordinates
// to Cartesian ones when M is a cell matrix.
func (m Mat3) MulVec(f Vec3) Vec3 {
	return m.A.Scale(f.X).Add(m.B.Scale(f.Y)).Add(m.C.Scale(f.Z))
}

// ScaleRows returns a copy of m with row i scaled by s[i].
func (m Mat3) ScaleRows(s [3]float64) Mat3 {
	return Mat3{
		A: m.A.Scale(s[0]),
		B: m.B.Scale(s[1]),
		C: m.C.Scale(s[2]),
	}
}

// Det returns the determinant of the matrix.
func (m Mat3) Det() float64 {
	return m.A.X*(m.B.Y*m.C.Z-m.B.Z*m.C.Y) -
		m.A.Y*(m.B.X*m.C.Z-m.B.Z*m.C.X) +
		m.A.Z*(m.B.X*m.C.Y-m.B.Y*m.C.X)
}

// Inverse returns the matrix inverse and true, or the zero matrix and false
// when m is singular. Combined with MulVec it converts Cartesian positions
// back to fractional coordinates: frac = cart · M⁻¹.
func (m Mat3) Inverse() (Mat3, bool) {
	det := m.Det()
	if det == 0 {
		return Mat3{}, false
	}
	inv := 1.0 / det

	// Adjugate entries; rows of the inverse in the same row-vector convention.
	return Mat3{
		A: Vec3{
			X: (m.B.Y*m.C.Z - m.B.Z*m.C.Y) * inv,
			Y: (m.A.Z*m.C.Y - m.A.Y*m.C.Z) * inv,
			Z: (m.A.Y*m.B.Z - m.A.Z*m.B.Y) * inv,
		},
		B: Vec3{
			X: (m.B.Z*m.C.X - m.B.X*m.C.Z) * inv,
			Y: (m.A.X*m.C.Z - m.A.Z*m.C.X) * inv,
			Z: (m.A.Z*m.B.X - m.A.X*m.B.Z) * inv,
		},
		C: Vec3{
			X: (m.B.X*m.C.Y - m.B.Y*m.C.X) * inv,
			Y: (m.A.Y*m.C.X - m.A.X*m.C.Y) * inv,
			Z: (m.A.X*m.B.Y - m.A.Y*m.B.X) * inv,
		},
	}, true
}

// CellParameters derives the six conventional cell parameters from a cell
// matrix: the three row lengths (a, b, c) and the three inter-axis angles in
// degrees (alpha between b and c, beta between a and c, gamma between a and b).
func (m Mat3) CellParameters() (lengths [3]float64, angles [3]float64) {
	lengths = [3]float64{m.A.Norm(), m.B.Norm(), m.C.Norm()}
	angles = [3]float64{
		angleDegrees(m.B, m.C),
		angleDegrees(m.A, m.C),
		angleDegrees(m.A, m.B),
	}
	return lengths, angles
}

func angleDegrees(u, v Vec3) float64 {
	nu, nv := u.Norm(), v.Norm()
	if nu == 0 || nv == 0 {
		return 0
	}
	cos := u.Dot(v) / (nu * nv)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180.0 / math.Pi
}
