package model

// Structure is the exchange record produced once per generation request. It is
// a plain value: positions and cell are raw numbers, not matrix types, so the
// record serializes directly to the JSON layout downstream tools consume.
type Structure struct {
	Positions [][3]float64  `json:"positions"`
	Numbers   []int         `json:"numbers"`
	Cell      [3][3]float64 `json:"cell"`
	PBC       [3]bool       `json:"pbc"`
	Metadata  Metadata      `json:"metadata"`
}

// Metadata describes how a structure was generated.
type Metadata struct {
	Element         string   `json:"element"`
	StructureType   string   `json:"structure_type"`
	LatticeConstant float64  `json:"lattice_constant"`
	COverA          *float64 `json:"c_over_a"` // nil for cubic families
	NumAtoms        int      `json:"num_atoms"`
	SupercellSize   [3]int   `json:"supercell_size"`
}

// NumAtoms returns the atom count of the structure.
func (s Structure) NumAtoms() int {
	return len(s.Positions)
}
