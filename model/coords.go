package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// frame is a resolved rectangular system: global = Origin + Beta^T * local,
// the rows of Beta being the unit axes in the global frame
type frame struct {
	Origin r3.Vec
	Beta   *mat.Dense
}

func (f frame) toGlobal(local r3.Vec) r3.Vec {
	return r3.Add(f.Origin, f.rotate(local))
}

func (f frame) rotate(local r3.Vec) r3.Vec {
	var out mat.VecDense
	out.MulVec(f.Beta.T(), mat.NewVecDense(3, []float64{local.X, local.Y, local.Z}))
	return r3.Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

func (m *Model) frame(cid int, visiting map[int]bool) (frame, error) {
	if cid == 0 {
		return frame{Beta: mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})}, nil
	}
	if visiting[cid] {
		return frame{}, fmt.Errorf("coordinate system %d references itself", cid)
	}
	visiting[cid] = true
	defer delete(visiting, cid)

	c, err := m.Coord(cid)
	if err != nil {
		return frame{}, err
	}
	if c.Type != "" && c.Type != "CORD2R" {
		return frame{}, fmt.Errorf("coordinate system %d: %s is not resolved here", cid, c.Type)
	}
	ref, err := m.frame(c.RID, visiting)
	if err != nil {
		return frame{}, fmt.Errorf("coordinate system %d: %w", cid, err)
	}
	a, b, cc := ref.toGlobal(c.A), ref.toGlobal(c.B), ref.toGlobal(c.C)

	z := r3.Sub(b, a)
	y := r3.Cross(z, r3.Sub(cc, a))
	if r3.Norm(z) == 0 || r3.Norm(y) == 0 {
		return frame{}, fmt.Errorf("coordinate system %d has collinear definition points", cid)
	}
	k := r3.Unit(z)
	j := r3.Unit(y)
	i := r3.Cross(j, k)
	return frame{
		Origin: a,
		Beta: mat.NewDense(3, 3, []float64{
			i.X, i.Y, i.Z,
			j.X, j.Y, j.Z,
			k.X, k.Y, k.Z,
		}),
	}, nil
}

// GlobalPosition returns the position of a node in the global frame
func (m *Model) GlobalPosition(nodeID int) (r3.Vec, error) {
	n, err := m.Node(nodeID)
	if err != nil {
		return r3.Vec{}, err
	}
	if n.CP == 0 {
		return n.Position, nil
	}
	f, err := m.frame(n.CP, make(map[int]bool))
	if err != nil {
		return r3.Vec{}, fmt.Errorf("node %d: %w", nodeID, err)
	}
	return f.toGlobal(n.Position), nil
}

// GlobalDirection rotates a direction expressed in system coordID to the global frame
func (m *Model) GlobalDirection(coordID int, v r3.Vec) (r3.Vec, error) {
	if coordID == 0 {
		return v, nil
	}
	f, err := m.frame(coordID, make(map[int]bool))
	if err != nil {
		return r3.Vec{}, err
	}
	return f.rotate(v), nil
}
