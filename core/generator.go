package core

import (
	"context"
	"fmt"

	"github.com/materialsfoundry/crystal-generator/internal/logging"
	"github.com/materialsfoundry/crystal-generator/model"
)

// ElementSource resolves species symbols to their crystallographic
// properties. The kb.Registry satisfies it.
type ElementSource interface {
	Element(symbol string) (model.ElementProperties, bool)
}

// Generator is the structure-generation engine: it resolves registry
// defaults, validates the request, builds the unit cell, tiles the supercell,
// runs the geometric sanity check, and assembles the exchange record.
//
// Generation is a pure, synchronous computation with no shared mutable state,
// so a single Generator is safe for concurrent use across requests.
type Generator struct {
	elements ElementSource
	log      logging.Logger
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithLogger attaches a structured logger; the default drops all logs.
func WithLogger(l logging.Logger) GeneratorOption {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// NewGenerator constructs an engine backed by the given element source.
func NewGenerator(elements ElementSource, opts ...GeneratorOption) *Generator {
	g := &Generator{
		elements: elements,
		log:      logging.Noop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces the structure record for a request. Identical requests
// produce identical records, down to exact float equality.
//
// Failure kinds: ErrValidation for malformed caller input, ErrConfiguration
// for unknown species, unsupported element/family pairings, or unresolvable
// defaults, and ErrGeometry when a built structure fails the sanity check.
// The element/family pairing is checked before defaults are resolved, so a
// bad pairing surfaces as a configuration error even when the caller passed
// explicit constants.
func (g *Generator) Generate(ctx context.Context, req model.Request) (model.Structure, error) {
	family, err := model.ParseLatticeFamily(req.StructureType)
	if err != nil {
		return model.Structure{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	props, ok := g.elements.Element(req.Element)
	if !ok {
		return model.Structure{}, fmt.Errorf("%w: unknown element %q", ErrConfiguration, req.Element)
	}
	if !props.Supports(family) {
		return model.Structure{}, fmt.Errorf(
			"%w: lattice family %v is not supported for element %s", ErrConfiguration, family, props.Symbol)
	}

	geo, err := g.resolveGeometry(req, family, props)
	if err != nil {
		return model.Structure{}, err
	}

	size := req.EffectiveSize()
	if err := validateRequest(geo, family, size); err != nil {
		return model.Structure{}, err
	}

	cell, err := BuildUnitCell(family, geo)
	if err != nil {
		return model.Structure{}, err
	}

	positions, _, replicated, err := Tile(cell, size)
	if err != nil {
		return model.Structure{}, err
	}

	if err := ValidateStructure(positions, replicated); err != nil {
		g.log.Error(ctx, "generated structure failed validation",
			logging.String("element", props.Symbol),
			logging.String("family", family.String()),
			logging.Err(err),
		)
		return model.Structure{}, err
	}

	s := assemble(props, family, geo, size, positions, replicated)
	g.log.Debug(ctx, "structure generated",
		logging.String("element", props.Symbol),
		logging.String("family", family.String()),
		logging.Int("num_atoms", s.NumAtoms()),
	)
	return s, nil
}

// resolveGeometry fills in the lattice constant and (for hcp) c/a ratio from
// the registry when the caller left them unset.
func (g *Generator) resolveGeometry(req model.Request, family model.LatticeFamily, props model.ElementProperties) (Geometry, error) {
	geo := Geometry{}

	if req.LatticeConstant != nil {
		geo.LatticeConstant = *req.LatticeConstant
	} else {
		a, ok := props.LatticeConstants[family]
		if !ok {
			return Geometry{}, fmt.Errorf(
				"%w: no default lattice constant for %s %v", ErrConfiguration, props.Symbol, family)
		}
		geo.LatticeConstant = a
	}

	if family == model.FamilyHCP {
		switch {
		case req.COverA != nil:
			geo.COverA = *req.COverA
		case props.COverA > 0:
			geo.COverA = props.COverA
		default:
			return Geometry{}, fmt.Errorf(
				"%w: no default c/a ratio for %s, provide one", ErrConfiguration, props.Symbol)
		}
	}

	return geo, nil
}

func validateRequest(geo Geometry, family model.LatticeFamily, size [3]int) error {
	if geo.LatticeConstant <= 0 {
		return fmt.Errorf("%w: lattice constant %v must be positive", ErrValidation, geo.LatticeConstant)
	}
	if family == model.FamilyHCP && geo.COverA <= 0 {
		return fmt.Errorf("%w: c/a ratio %v must be positive", ErrValidation, geo.COverA)
	}
	for axis, n := range size {
		if n < 1 {
			return fmt.Errorf("%w: supercell size %d on axis %d must be positive", ErrValidation, n, axis)
		}
	}
	return nil
}

// assemble packs the tiled geometry into the exchange record. Pure packaging,
// no validation.
func assemble(
	props model.ElementProperties,
	family model.LatticeFamily,
	geo Geometry,
	size [3]int,
	positions []Vec3,
	replicated Mat3,
) model.Structure {
	pos := make([][3]float64, len(positions))
	numbers := make([]int, len(positions))
	for i, p := range positions {
		pos[i] = p.Array()
		numbers[i] = props.AtomicNumber
	}

	var cOverA *float64
	if family == model.FamilyHCP {
		v := geo.COverA
		cOverA = &v
	}

	return model.Structure{
		Positions: pos,
		Numbers:   numbers,
		Cell:      replicated.Array(),
		PBC:       [3]bool{true, true, true},
		Metadata: model.Metadata{
			Element:         props.Symbol,
			StructureType:   family.String(),
			LatticeConstant: geo.LatticeConstant,
			COverA:          cOverA,
			NumAtoms:        len(positions),
			SupercellSize:   size,
		},
	}
}
