package bdf

import (
	"fmt"

	"github.com/notargets/femprops/model"
)

// blank maps a zero id or default to a blank field
func blank(id int) any {
	if id == 0 {
		return nil
	}
	return id
}

func GridCard(n *model.Node) Card {
	return Card{"GRID", n.ID, blank(n.CP), n.Position.X, n.Position.Y, n.Position.Z, blank(n.CD)}
}

func Cord2RCard(c *model.Coord) Card {
	return Card{"CORD2R", c.ID, blank(c.RID),
		c.A.X, c.A.Y, c.A.Z, c.B.X, c.B.Y, c.B.Z,
		c.C.X, c.C.Y, c.C.Z}
}

func ElementCard(e *model.Element) Card {
	if e.Rod != nil {
		c := Card{string(e.Type), e.ID}
		for _, nid := range e.NodeIDs {
			c = append(c, nid)
		}
		return append(c, e.Rod.MaterialID, e.Rod.Area, nil, nil, e.Rod.NSM)
	}
	c := Card{string(e.Type), e.ID, e.PropertyID}
	for _, nid := range e.NodeIDs {
		c = append(c, blank(nid))
	}
	return c
}

func MaterialCard(m *model.Material) (Card, error) {
	if m.Type != "" && m.Type != "MAT1" {
		return nil, fmt.Errorf("material %d: cannot write %s", m.ID, m.Type)
	}
	var g any
	if m.G != 0 {
		g = m.G
	}
	return Card{"MAT1", m.ID, m.E, g, m.Nu, m.Rho}, nil
}

func PropertyCard(p *model.Property) (Card, error) {
	switch p.Type {
	case model.PSHELL:
		c := Card{"PSHELL", p.ID, p.MaterialID, p.Thickness}
		if p.NSM != 0 {
			c = append(c, nil, nil, nil, nil, p.NSM)
		}
		return c, nil
	case model.PSOLID, model.PLSOLID:
		return Card{string(p.Type), p.ID, p.MaterialID}, nil
	case model.PBAR, model.PROD:
		c := Card{string(p.Type), p.ID, p.MaterialID, p.Area}
		if p.NSM != 0 {
			// PBAR: A I1 I2 J NSM, PROD: A J C NSM
			pad := 3
			if p.Type == model.PROD {
				pad = 2
			}
			for i := 0; i < pad; i++ {
				c = append(c, nil)
			}
			c = append(c, p.NSM)
		}
		return c, nil
	case model.PCOMPS:
		// One continuation line per ply: ply id, material, thickness
		c := Card{"PCOMPS", p.ID, nil, nil, nil, nil, nil, nil, nil}
		for i, ply := range p.Plies {
			c = append(c, i+1, ply.MaterialID, ply.Thickness, nil, nil, nil, nil, nil)
		}
		return c, nil
	}
	return nil, fmt.Errorf("property %d: cannot write %s", p.ID, p.Type)
}
