package model

// DefaultSupercellSize is the replication applied when a request leaves the
// size unset.
var DefaultSupercellSize = [3]int{2, 2, 2}

// Request is a structure-generation request as received from callers (CLI
// flags or the HTTP API). Optional numeric fields are pointers so that
// "absent" is distinguishable from zero; absent values are resolved from the
// element registry.
type Request struct {
	Element string `json:"element"`

	// StructureType names the lattice family, case-insensitive.
	StructureType string `json:"structure_type"`

	// LatticeConstant in Å. Nil resolves to the registry default for the
	// element/family pair.
	LatticeConstant *float64 `json:"lattice_constant,omitempty"`

	// COverA is only meaningful for hcp. Nil resolves to the registry default.
	COverA *float64 `json:"c_over_a,omitempty"`

	// Size is the supercell replication (nx, ny, nz). The zero value means
	// DefaultSupercellSize.
	Size [3]int `json:"size,omitempty"`
}

// EffectiveSize returns the replication to use, applying the default when the
// request left it unset.
func (r Request) EffectiveSize() [3]int {
	if r.Size == [3]int{} {
		return DefaultSupercellSize
	}
	return r.Size
}
