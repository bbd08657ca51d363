package model

// ElementProperties describes a chemical species as known to the element
// registry: its atomic number, the lattice families it supports, and default
// geometry parameters per family.
type ElementProperties struct {
	Symbol       string
	AtomicNumber int

	// LatticeConstants holds the default lattice constant (Å) per supported
	// family. A family is supported iff it has an entry here.
	LatticeConstants map[LatticeFamily]float64

	// COverA is the default c/a ratio for HCP species. Zero means the species
	// has no hcp default.
	COverA float64
}

// Supports reports whether the species has a registry entry for the family.
func (p ElementProperties) Supports(family LatticeFamily) bool {
	_, ok := p.LatticeConstants[family]
	return ok
}

// SupportedFamilies returns the families the species supports, in fcc, bcc,
// hcp order.
func (p ElementProperties) SupportedFamilies() []LatticeFamily {
	var out []LatticeFamily
	for _, f := range []LatticeFamily{FamilyFCC, FamilyBCC, FamilyHCP} {
		if p.Supports(f) {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a deep copy so registry callers cannot mutate seeded entries.
func (p ElementProperties) Clone() ElementProperties {
	cp := p
	cp.LatticeConstants = make(map[LatticeFamily]float64, len(p.LatticeConstants))
	for k, v := range p.LatticeConstants {
		cp.LatticeConstants[k] = v
	}
	return cp
}
