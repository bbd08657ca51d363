package kb

import "github.com/materialsfoundry/crystal-generator/model"

// seed is the built-in species table. Lattice constants are experimental
// room-temperature values in Å.
var seed = []model.ElementProperties{
	{
		Symbol:           "Cu",
		AtomicNumber:     29,
		LatticeConstants: map[model.LatticeFamily]float64{model.FamilyFCC: 3.61},
	},
	{
		Symbol:           "Fe",
		AtomicNumber:     26,
		LatticeConstants: map[model.LatticeFamily]float64{model.FamilyBCC: 2.87},
	},
	{
		Symbol:           "Ti",
		AtomicNumber:     22,
		LatticeConstants: map[model.LatticeFamily]float64{model.FamilyHCP: 2.95},
		COverA:           1.587,
	},
	{
		Symbol:           "Al",
		AtomicNumber:     13,
		LatticeConstants: map[model.LatticeFamily]float64{model.FamilyFCC: 4.05},
	},
	{
		Symbol:           "Ni",
		AtomicNumber:     28,
		LatticeConstants: map[model.LatticeFamily]float64{model.FamilyFCC: 3.52},
	},
	{
		Symbol:           "Pt",
		AtomicNumber:     78,
		LatticeConstants: map[model.LatticeFamily]float64{model.FamilyFCC: 3.92},
	},
	{
		Symbol:           "Au",
		AtomicNumber:     79,
		LatticeConstants: map[model.LatticeFamily]float64{model.FamilyFCC: 4.08},
	},
	{
		Symbol:           "Ag",
		AtomicNumber:     47,
		LatticeConstants: map[model.LatticeFamily]float64{model.FamilyFCC: 4.09},
	},
	{
		Symbol:           "Zn",
		AtomicNumber:     30,
		LatticeConstants: map[model.LatticeFamily]float64{model.FamilyHCP: 2.66},
		COverA:           1.856,
	},
	{
		Symbol:           "Mg",
		AtomicNumber:     12,
		LatticeConstants: map[model.LatticeFamily]float64{model.FamilyHCP: 3.21},
		COverA:           1.624,
	},
}
