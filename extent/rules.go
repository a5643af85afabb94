package extent

import (
	"fmt"

	"github.com/notargets/femprops/element"
	"github.com/notargets/femprops/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// rules holds all available formula families; property type => rule
var rules = map[model.PropertyType]Rule{}

func register(r Rule, types ...model.PropertyType) {
	for _, t := range types {
		if _, ok := rules[t]; ok {
			panic(fmt.Sprintf("extent rule for %s registered twice", t))
		}
		rules[t] = r
	}
}

// Lookup returns the rule registered for a property type
func Lookup(t model.PropertyType) (Rule, bool) {
	r, ok := rules[t]
	return r, ok
}

func init() {
	register(Rule{
		Category: Planar,
		Area:     planarArea,
		Volume:   planarVolume,
		Mass:     planarMass,
		Centroid: planarCentroid,
	}, model.PSHELL, model.PSHEAR)

	register(Rule{
		Category: Layered,
		Area:     planarArea,
		Volume:   layeredVolume,
		Mass:     layeredMass,
		Centroid: planarCentroid,
	}, model.PCOMP, model.PCOMPG)

	register(Rule{
		Category: Line,
		Area:     lineArea,
		Volume:   lineVolume,
		Mass:     lineMass,
		Centroid: lineCentroid,
	}, model.PBAR, model.PBARL, model.PBEAM, model.PBEAML, model.PROD, model.PTUBE)

	register(Rule{
		Category: Volumetric,
		Volume:   solidVolume,
		Mass:     solidMass,
		Centroid: solidCentroid,
	}, model.PSOLID, model.PLSOLID, model.PCOMPS)

	register(Rule{Category: Zero, Centroid: nodalCentroid},
		model.PLPLANE, model.PPLANE, model.PELAS, model.PELAST,
		model.PDAMP, model.PDAMPT, model.PDAMP5,
		model.PBUSH, model.PBUSH1D, model.PBUSH2D, model.PBUSHT,
		model.PFAST, model.PGAP, model.PRAC2D, model.PRAC3D, model.PCONEAX,
		model.PVISC, model.PBCOMP, model.PBEND)
}

func (c *Calculator) planar(e *model.Element, p *model.Property) (element.Planar, error) {
	if !e.Type.IsShell() {
		return element.Planar{}, unsupported("area", e, p)
	}
	xyz, err := c.Positions.Positions(e.NodeIDs)
	if err != nil {
		return element.Planar{}, fmt.Errorf("element %d: %w", e.ID, err)
	}
	return element.PlanarGeometry(e.Type, xyz)
}

func planarArea(c *Calculator, e *model.Element, p *model.Property) (float64, bool, error) {
	g, err := c.planar(e, p)
	if err != nil {
		return 0, false, err
	}
	return g.Area, true, nil
}

func planarVolume(c *Calculator, e *model.Element, p *model.Property) (float64, bool, error) {
	g, err := c.planar(e, p)
	if err != nil {
		return 0, false, err
	}
	return g.Area * p.Thickness, true, nil
}

func planarMass(c *Calculator, e *model.Element, p *model.Property) (float64, bool, error) {
	g, err := c.planar(e, p)
	if err != nil {
		return 0, false, err
	}
	rho, err := c.Density(p.MaterialID)
	if err != nil {
		return 0, false, err
	}
	return g.Area * (rho*p.Thickness + p.NSM), true, nil
}

func planarCentroid(c *Calculator, e *model.Element, p *model.Property) (r3.Vec, error) {
	g, err := c.planar(e, p)
	if err != nil {
		return r3.Vec{}, err
	}
	return g.Centroid, nil
}

func layeredVolume(c *Calculator, e *model.Element, p *model.Property) (float64, bool, error) {
	g, err := c.planar(e, p)
	if err != nil {
		return 0, false, err
	}
	return g.Area * p.TotalThickness(), true, nil
}

// MassPerArea returns the ply density sum plus the nonstructural mass of a
// layered property
func (c *Calculator) MassPerArea(p *model.Property) (float64, error) {
	mpa := p.NSM
	for i, ply := range p.Plies {
		rho, err := c.Density(ply.MaterialID)
		if err != nil {
			return 0, fmt.Errorf("property %d ply %d: %w", p.ID, i+1, err)
		}
		mpa += rho * ply.Thickness
	}
	return mpa, nil
}

func layeredMass(c *Calculator, e *model.Element, p *model.Property) (float64, bool, error) {
	g, err := c.planar(e, p)
	if err != nil {
		return 0, false, err
	}
	mpa, err := c.MassPerArea(p)
	if err != nil {
		return 0, false, err
	}
	return g.Area * mpa, true, nil
}

func (c *Calculator) line(e *model.Element, p *model.Property) ([]r3.Vec, error) {
	if !e.Type.IsLine() {
		return nil, unsupported("length", e, p)
	}
	xyz, err := c.Positions.Positions(e.NodeIDs)
	if err != nil {
		return nil, fmt.Errorf("element %d: %w", e.ID, err)
	}
	return xyz, nil
}

func lineArea(c *Calculator, e *model.Element, p *model.Property) (float64, bool, error) {
	if !e.Type.IsLine() {
		return 0, false, unsupported("area", e, p)
	}
	return p.SectionArea(), true, nil
}

func lineVolume(c *Calculator, e *model.Element, p *model.Property) (float64, bool, error) {
	xyz, err := c.line(e, p)
	if err != nil {
		return 0, false, err
	}
	length, err := element.Length(xyz)
	if err != nil {
		return 0, false, err
	}
	return p.SectionArea() * length, true, nil
}

// lineMass keeps the historical A*(rho*L + nsm) form of the line family
func lineMass(c *Calculator, e *model.Element, p *model.Property) (float64, bool, error) {
	xyz, err := c.line(e, p)
	if err != nil {
		return 0, false, err
	}
	length, err := element.Length(xyz)
	if err != nil {
		return 0, false, err
	}
	rho, err := c.Density(p.MaterialID)
	if err != nil {
		return 0, false, err
	}
	return p.SectionArea() * (rho*length + p.NSM), true, nil
}

func lineCentroid(c *Calculator, e *model.Element, p *model.Property) (r3.Vec, error) {
	xyz, err := c.line(e, p)
	if err != nil {
		return r3.Vec{}, err
	}
	return element.Midpoint(xyz)
}

// solid returns false for element types whose volume is not computed; the
// combination is reported once through the diagnostics
func (c *Calculator) solid(e *model.Element, p *model.Property) (element.Solid, bool, error) {
	if !e.Type.HasVolume() {
		c.Diag.Skip(e.Type, p.Type)
		return element.Solid{}, false, nil
	}
	xyz, err := c.Positions.Positions(e.NodeIDs)
	if err != nil {
		return element.Solid{}, false, fmt.Errorf("element %d: %w", e.ID, err)
	}
	g, err := element.SolidGeometry(e.Type, xyz)
	if err != nil {
		return element.Solid{}, false, err
	}
	return g, true, nil
}

func solidVolume(c *Calculator, e *model.Element, p *model.Property) (float64, bool, error) {
	g, ok, err := c.solid(e, p)
	return g.Volume, ok, err
}

func solidMass(c *Calculator, e *model.Element, p *model.Property) (float64, bool, error) {
	g, ok, err := c.solid(e, p)
	if err != nil || !ok {
		return 0, ok, err
	}
	rho, err := c.Density(p.Mid())
	if err != nil {
		return 0, false, err
	}
	return rho * g.Volume, true, nil
}

func solidCentroid(c *Calculator, e *model.Element, p *model.Property) (r3.Vec, error) {
	g, _, err := c.solid(e, p)
	return g.Centroid, err
}

func nodalCentroid(c *Calculator, e *model.Element, p *model.Property) (r3.Vec, error) {
	xyz, err := c.Positions.Positions(e.NodeIDs)
	if err != nil {
		return r3.Vec{}, fmt.Errorf("element %d: %w", e.ID, err)
	}
	var sum r3.Vec
	for _, v := range xyz {
		sum = r3.Add(sum, v)
	}
	if len(xyz) == 0 {
		return sum, nil
	}
	return r3.Scale(1/float64(len(xyz)), sum), nil
}
