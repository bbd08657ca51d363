package model

import (
	"fmt"
	"strings"
)

// LatticeFamily identifies one of the supported crystal packing patterns.
type LatticeFamily int

const (
	FamilyFCC LatticeFamily = iota // face-centered cubic
	FamilyBCC                      // body-centered cubic
	FamilyHCP                      // hexagonal close-packed
)

// String returns the lower-case family name used in exchange records.
func (f LatticeFamily) String() string {
	switch f {
	case FamilyFCC:
		return "fcc"
	case FamilyBCC:
		return "bcc"
	case FamilyHCP:
		return "hcp"
	default:
		return fmt.Sprintf("LatticeFamily(%d)", int(f))
	}
}

// BasisCount returns the number of basis atoms in the conventional unit cell
// for this family (FCC: 4, BCC: 2, HCP: 2).
func (f LatticeFamily) BasisCount() int {
	switch f {
	case FamilyFCC:
		return 4
	case FamilyBCC, FamilyHCP:
		return 2
	default:
		return 0
	}
}

// ParseLatticeFamily parses a case-insensitive family name.
func ParseLatticeFamily(s string) (LatticeFamily, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fcc":
		return FamilyFCC, nil
	case "bcc":
		return FamilyBCC, nil
	case "hcp":
		return FamilyHCP, nil
	default:
		return 0, fmt.Errorf("unknown lattice family %q (want fcc, bcc, or hcp)", s)
	}
}
