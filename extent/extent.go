// Package extent computes per-element area, volume, mass and centroid.
// Formulas are selected by the property type of the element through a
// registry of rules; a property type missing from the registry is an error.
package extent

import (
	"github.com/notargets/femprops/model"
	"gonum.org/v1/gonum/spatial/r3"
)

type Category uint8

const (
	Planar  Category = iota // Shells and shear panels
	Layered                 // Composite shells
	Line                    // Bars, beams, rods, tubes
	Volumetric
	Zero // Springs, dampers, bushings, gaps and other idealizations without extent
)

func (c Category) String() string {
	switch c {
	case Planar:
		return "planar"
	case Layered:
		return "layered"
	case Line:
		return "line"
	case Volumetric:
		return "solid"
	case Zero:
		return "zero"
	}
	return "unknown"
}

// Func returns an extent of an element; ok is false when the element was
// skipped and contributes nothing
type Func func(c *Calculator, e *model.Element, p *model.Property) (v float64, ok bool, err error)

type CentroidFunc func(c *Calculator, e *model.Element, p *model.Property) (r3.Vec, error)

// Rule is the formula family of a property type. A nil quantity means the
// idealization has no such extent.
type Rule struct {
	Category Category
	Area     Func
	Volume   Func
	Mass     Func
	Centroid CentroidFunc
}

// Calculator evaluates rules against a model
type Calculator struct {
	Model     model.Accessor
	Positions model.PositionFunc
	Diag      *Diagnostics
}

func NewCalculator(acc model.Accessor, positions model.PositionFunc, diag *Diagnostics) *Calculator {
	if diag == nil {
		diag = NewDiagnostics("extent", nil)
	}
	return &Calculator{Model: acc, Positions: positions, Diag: diag}
}

func unsupported(op string, e *model.Element, p *model.Property) error {
	return &model.UnsupportedIdealizationError{
		Operation:    op,
		ElementID:    e.ID,
		ElementType:  string(e.Type),
		PropertyID:   p.ID,
		PropertyType: string(p.Type),
	}
}

// Rule returns the registered rule of a property
func (c *Calculator) Rule(op string, e *model.Element, p *model.Property) (Rule, error) {
	r, ok := Lookup(p.Type)
	if !ok {
		return Rule{}, unsupported(op, e, p)
	}
	return r, nil
}

func (c *Calculator) eval(op string, pick func(Rule) Func, e *model.Element, p *model.Property) (float64, bool, error) {
	r, err := c.Rule(op, e, p)
	if err != nil {
		return 0, false, err
	}
	f := pick(r)
	if f == nil {
		return 0, false, nil
	}
	return f(c, e, p)
}

func (c *Calculator) Area(e *model.Element, p *model.Property) (float64, bool, error) {
	return c.eval("area", func(r Rule) Func { return r.Area }, e, p)
}

func (c *Calculator) Volume(e *model.Element, p *model.Property) (float64, bool, error) {
	return c.eval("volume", func(r Rule) Func { return r.Volume }, e, p)
}

func (c *Calculator) Mass(e *model.Element, p *model.Property) (float64, bool, error) {
	return c.eval("mass", func(r Rule) Func { return r.Mass }, e, p)
}

// MassCentroid returns the mass of an element and the point it is lumped at
func (c *Calculator) MassCentroid(e *model.Element, p *model.Property) (float64, r3.Vec, bool, error) {
	r, err := c.Rule("mass", e, p)
	if err != nil {
		return 0, r3.Vec{}, false, err
	}
	if r.Mass == nil {
		return 0, r3.Vec{}, false, nil
	}
	m, ok, err := r.Mass(c, e, p)
	if err != nil || !ok {
		return 0, r3.Vec{}, ok, err
	}
	centroid, err := r.Centroid(c, e, p)
	if err != nil {
		return 0, r3.Vec{}, false, err
	}
	return m, centroid, true, nil
}

// Density returns the density of the material of a property, zero when the
// property has no material
func (c *Calculator) Density(mid int) (float64, error) {
	if mid == 0 {
		return 0, nil
	}
	mat, err := c.Model.Material(mid)
	if err != nil {
		return 0, err
	}
	return mat.Rho, nil
}
