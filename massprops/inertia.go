package massprops

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Inertia holds the six independent tensor components. The products are
// stored with their tensor sign, Ixy = -sum(m*dx*dy).
type Inertia struct {
	Ixx, Iyy, Izz float64
	Ixy, Ixz, Iyz float64
}

// Components returns Ixx, Iyy, Izz, Ixy, Ixz, Iyz
func (in Inertia) Components() [6]float64 {
	return [6]float64{in.Ixx, in.Iyy, in.Izz, in.Ixy, in.Ixz, in.Iyz}
}

func fromComponents(c [6]float64) Inertia {
	return Inertia{Ixx: c[0], Iyy: c[1], Izz: c[2], Ixy: c[3], Ixz: c[4], Iyz: c[5]}
}

func (in Inertia) Scale(f float64) Inertia {
	c := in.Components()
	for i := range c {
		c[i] *= f
	}
	return fromComponents(c)
}

// AddPoint adds a point mass m at offset d from the reference point
func (in Inertia) AddPoint(m float64, d r3.Vec) Inertia {
	in.Ixx += m * (d.Y*d.Y + d.Z*d.Z)
	in.Iyy += m * (d.X*d.X + d.Z*d.Z)
	in.Izz += m * (d.X*d.X + d.Y*d.Y)
	in.Ixy -= m * d.X * d.Y
	in.Ixz -= m * d.X * d.Z
	in.Iyz -= m * d.Y * d.Z
	return in
}

// Transfer moves the inertia of a body of total mass m and center of gravity
// cg from reference point from to reference point to (parallel axis theorem)
func (in Inertia) Transfer(m float64, cg, from, to r3.Vec) Inertia {
	return in.AddPoint(-m, r3.Sub(cg, from)).AddPoint(m, r3.Sub(cg, to))
}

// Tensor returns the symmetric 3x3 inertia tensor
func (in Inertia) Tensor() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		in.Ixx, in.Ixy, in.Ixz,
		in.Ixy, in.Iyy, in.Iyz,
		in.Ixz, in.Iyz, in.Izz,
	})
}

// Principal returns the principal moments in ascending order and the
// principal axes as the columns of a 3x3 matrix
func (in Inertia) Principal() ([]float64, *mat.Dense, error) {
	var eig mat.EigenSym
	if ok := eig.Factorize(in.Tensor(), true); !ok {
		return nil, nil, fmt.Errorf("inertia tensor eigen decomposition failed")
	}
	values := eig.Values(nil)
	axes := mat.NewDense(3, 3, nil)
	eig.VectorsTo(axes)
	return values, axes, nil
}
