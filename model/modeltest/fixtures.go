// Package modeltest builds small models shared by the package tests
package modeltest

import (
	"github.com/notargets/femprops/element"
	"github.com/notargets/femprops/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// Builder accumulates records and panics on inconsistent fixtures
type Builder struct {
	M *model.Model
}

func NewBuilder() *Builder {
	return &Builder{M: model.New()}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func (b *Builder) Node(id int, x, y, z float64) *Builder {
	must(b.M.AddNode(&model.Node{ID: id, Position: r3.Vec{X: x, Y: y, Z: z}}))
	return b
}

func (b *Builder) NodeIn(id, cp int, x, y, z float64) *Builder {
	must(b.M.AddNode(&model.Node{ID: id, CP: cp, Position: r3.Vec{X: x, Y: y, Z: z}}))
	return b
}

func (b *Builder) Element(id int, t element.Type, pid int, nids ...int) *Builder {
	must(b.M.AddElement(&model.Element{ID: id, Type: t, PropertyID: pid, NodeIDs: nids}))
	return b
}

func (b *Builder) Property(p *model.Property) *Builder {
	must(b.M.AddProperty(p))
	return b
}

func (b *Builder) Material(id int, rho float64) *Builder {
	must(b.M.AddMaterial(&model.Material{ID: id, Type: "MAT1", E: 3.0e7, Nu: 0.3, Rho: rho}))
	return b
}

func (b *Builder) Mass(id, nid int, mass float64) *Builder {
	must(b.M.AddMass(&model.MassElement{ID: id, Type: "CONM2", NodeID: nid, Mass: mass}))
	return b
}

func (b *Builder) Coord(c *model.Coord) *Builder {
	must(b.M.AddCoord(c))
	return b
}

func (b *Builder) LoadCase(lc *model.LoadCase) *Builder {
	must(b.M.AddLoadCase(lc))
	return b
}

// HexBlock adds a row of nx unit cubes along x, all with property pid.
// Node ids start at 1 and element ids at firstEid.
func (b *Builder) HexBlock(nx, pid, firstEid int) *Builder {
	nid := func(i, j, k int) int { return 1 + i + (nx+1)*(j+2*k) }
	for k := 0; k <= 1; k++ {
		for j := 0; j <= 1; j++ {
			for i := 0; i <= nx; i++ {
				b.Node(nid(i, j, k), float64(i), float64(j), float64(k))
			}
		}
	}
	for i := 0; i < nx; i++ {
		b.Element(firstEid+i, element.CHEXA, pid,
			nid(i, 0, 0), nid(i+1, 0, 0), nid(i+1, 1, 0), nid(i, 1, 0),
			nid(i, 0, 1), nid(i+1, 0, 1), nid(i+1, 1, 1), nid(i, 1, 1))
	}
	return b
}

// SolidBlock returns nx unit cubes of PSOLID 1 / material 1 with density rho
func SolidBlock(nx int, rho float64) *model.Model {
	return NewBuilder().
		Material(1, rho).
		Property(&model.Property{ID: 1, Type: model.PSOLID, MaterialID: 1}).
		HexBlock(nx, 1, 1).M
}

// Plate returns a 2x1 plate of two CQUAD4 on PSHELL 1 (t=0.1, nsm=0.5)
// and a CBAR of length 2 on PBAR 2 (A=0.25, nsm=0.1), material 1 density 2.
func Plate() *model.Model {
	return NewBuilder().
		Material(1, 2).
		Property(&model.Property{ID: 1, Type: model.PSHELL, MaterialID: 1, Thickness: 0.1, NSM: 0.5}).
		Property(&model.Property{ID: 2, Type: model.PBAR, MaterialID: 1, Area: 0.25, NSM: 0.1}).
		Node(1, 0, 0, 0).Node(2, 1, 0, 0).Node(3, 2, 0, 0).
		Node(4, 0, 1, 0).Node(5, 1, 1, 0).Node(6, 2, 1, 0).
		Element(1, element.CQUAD4, 1, 1, 2, 5, 4).
		Element(2, element.CQUAD4, 1, 2, 3, 6, 5).
		Element(3, element.CBAR, 2, 1, 3).M
}
