package loads

import (
	"fmt"

	"github.com/notargets/femprops/element"
	"github.com/notargets/femprops/model"
	"gonum.org/v1/gonum/spatial/r3"
)

func (s *summer) entry(lcID int, e *model.LoadEntry, scale float64) error {
	switch e.Kind {
	case model.Force, model.Moment:
		if !s.sel.node(e.NodeID) {
			return nil
		}
		return s.nodal(e, scale)
	case model.Pressure:
		if len(e.NodeIDs) > 0 {
			return s.facePressure(e, scale)
		}
		return s.eachElement(e, func(el *model.Element) error { return s.pressure(el, e, scale) })
	case model.Distributed:
		return s.eachElement(e, func(el *model.Element) error { return s.distributed(el, e, scale) })
	case model.Gravity:
		s.res.Gravity++
		if s.gravity {
			s.log.Warn("gravity loads are not included in the sums", "load_case", lcID, "card", e.Card)
		}
		return nil
	}
	return fmt.Errorf("load case %d: unknown load kind %d", lcID, e.Kind)
}

func (s *summer) nodal(e *model.LoadEntry, scale float64) error {
	v, err := s.direction(e)
	if err != nil {
		return fmt.Errorf("%s on node %d: %w", e.Card, e.NodeID, err)
	}
	v = r3.Scale(scale, v)
	if e.Kind == model.Moment {
		s.res.Moment = r3.Add(s.res.Moment, v)
		return nil
	}
	at, err := s.positions(e.NodeID)
	if err != nil {
		return fmt.Errorf("%s: %w", e.Card, err)
	}
	s.add(v, at)
	return nil
}

// direction returns the global load vector of a nodal entry before scaling
func (s *summer) direction(e *model.LoadEntry) (r3.Vec, error) {
	if len(e.NodeIDs) == 0 {
		return s.resolver.GlobalDirection(e.CoordID, e.Vector)
	}
	xyz, err := s.positions.Positions(e.NodeIDs)
	if err != nil {
		return r3.Vec{}, err
	}
	var d r3.Vec
	switch {
	case len(e.NodeIDs) == 2 && len(xyz) == 2:
		d = r3.Sub(xyz[1], xyz[0])
	case len(e.NodeIDs) == 4 && len(xyz) == 4:
		d = r3.Cross(r3.Sub(xyz[1], xyz[0]), r3.Sub(xyz[3], xyz[2]))
	default:
		return r3.Vec{}, fmt.Errorf("direction needs 2 or 4 nodes, got %v", e.NodeIDs)
	}
	if r3.Norm(d) == 0 {
		return r3.Vec{}, fmt.Errorf("nodes %v define no direction", e.NodeIDs)
	}
	return r3.Unit(d), nil
}

func (s *summer) eachElement(e *model.LoadEntry, fn func(el *model.Element) error) error {
	for _, eid := range e.ElementIDs {
		if !s.sel.element(eid) {
			continue
		}
		el, err := s.acc.Element(eid)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Card, err)
		}
		if err := fn(el); err != nil {
			return err
		}
	}
	return nil
}

func (s *summer) unsupported(op string, el *model.Element) error {
	err := &model.UnsupportedIdealizationError{
		Operation:   op,
		ElementID:   el.ID,
		ElementType: string(el.Type),
		PropertyID:  el.PropertyID,
	}
	if p, perr := s.acc.Property(el.PropertyID); perr == nil {
		err.PropertyType = string(p.Type)
	}
	return err
}

// pressure acts along the element normal at the area centroid
func (s *summer) pressure(el *model.Element, e *model.LoadEntry, scale float64) error {
	if !el.Type.IsShell() {
		return s.unsupported(e.Card, el)
	}
	xyz, err := s.positions.Positions(el.NodeIDs)
	if err != nil {
		return fmt.Errorf("%s on element %d: %w", e.Card, el.ID, err)
	}
	g, err := element.PlanarGeometry(el.Type, xyz)
	if err != nil {
		return fmt.Errorf("%s on element %d: %w", e.Card, el.ID, err)
	}
	s.add(r3.Scale(scale*e.Pressure*g.Area, g.Normal), g.Centroid)
	return nil
}

// facePressure loads the triangle or quadrilateral through the entry nodes.
// A node subset selects the face only when it holds every face node.
func (s *summer) facePressure(e *model.LoadEntry, scale float64) error {
	for _, nid := range e.NodeIDs {
		if !s.sel.node(nid) {
			return nil
		}
	}
	xyz, err := s.positions.Positions(e.NodeIDs)
	if err != nil {
		return fmt.Errorf("%s: %w", e.Card, err)
	}
	var t element.Type
	switch len(xyz) {
	case 3:
		t = element.CTRIA3
	case 4:
		t = element.CQUAD4
	default:
		return fmt.Errorf("%s: pressure face needs 3 or 4 nodes, got %v", e.Card, e.NodeIDs)
	}
	g, err := element.PlanarGeometry(t, xyz)
	if err != nil {
		return fmt.Errorf("%s: %w", e.Card, err)
	}
	s.add(r3.Scale(scale*e.Pressure*g.Area, g.Normal), g.Centroid)
	return nil
}

// distributed integrates a per-length load varying linearly from P1 to P2
// between the length fractions X1 and X2 of a line element, along a global
// direction
func (s *summer) distributed(el *model.Element, e *model.LoadEntry, scale float64) error {
	if !el.Type.IsLine() {
		return s.unsupported(e.Card, el)
	}
	if e.X1 < 0 || e.X2 > 1 || e.X2 < e.X1 {
		return fmt.Errorf("%s on element %d: invalid span %g..%g", e.Card, el.ID, e.X1, e.X2)
	}
	if r3.Norm(e.Vector) == 0 {
		return fmt.Errorf("%s on element %d: zero load direction", e.Card, el.ID)
	}
	xyz, err := s.positions.Positions(el.NodeIDs)
	if err != nil {
		return fmt.Errorf("%s on element %d: %w", e.Card, el.ID, err)
	}
	length, err := element.Length(xyz)
	if err != nil {
		return err
	}
	a, d := xyz[0], r3.Sub(xyz[1], xyz[0])
	dir := r3.Unit(e.Vector)
	if e.X1 == e.X2 {
		s.add(r3.Scale(scale*e.P1, dir), r3.Add(a, r3.Scale(e.X1, d)))
		return nil
	}

	// q(t) = P1 + t*dP, x(t) = X1 + t*dX over t in [0, 1]
	span := length * (e.X2 - e.X1)
	dP, dX := e.P2-e.P1, e.X2-e.X1
	total := span * (e.P1 + e.P2) / 2
	qx := span * (e.P1*e.X1 + (e.P1*dX+e.X1*dP)/2 + dP*dX/3)

	// Integral of q*(r - p0) against the constant direction
	arm := r3.Add(r3.Scale(total, r3.Sub(a, s.res.Reference)), r3.Scale(qx, d))
	force := r3.Scale(scale*total, dir)
	s.res.Force = r3.Add(s.res.Force, force)
	s.res.Moment = r3.Add(s.res.Moment, r3.Scale(scale, r3.Cross(arm, dir)))
	return nil
}
