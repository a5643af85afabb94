package element

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Planar holds the geometric quantities of a shell element
type Planar struct {
	Area     float64
	Centroid r3.Vec // Area weighted
	Normal   r3.Vec // Unit normal, zero for a degenerate element
}

// Solid holds the geometric quantities of a volumetric element
type Solid struct {
	Volume   float64
	Centroid r3.Vec
}

func triangleArea(a, b, c r3.Vec) float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
}

func mean(xyz []r3.Vec) r3.Vec {
	var sum r3.Vec
	for _, p := range xyz {
		sum = r3.Add(sum, p)
	}
	return r3.Scale(1/float64(len(xyz)), sum)
}

func unit(v r3.Vec) r3.Vec {
	if r3.Norm(v) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(v)
}

// PlanarGeometry computes area, centroid and normal of a shell element from the
// positions of its nodes in element order; midside nodes are ignored.
func PlanarGeometry(t Type, xyz []r3.Vec) (Planar, error) {
	info, ok := Lookup(t)
	if !ok || info.Geometry.Dimensions() != D2 {
		return Planar{}, fmt.Errorf("element type %s is not planar", t)
	}
	if len(xyz) < info.Corners {
		return Planar{}, fmt.Errorf("%s needs %d corner positions, got %d", t, info.Corners, len(xyz))
	}

	if info.Corners == 3 {
		a, b, c := xyz[0], xyz[1], xyz[2]
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		return Planar{
			Area:     0.5 * r3.Norm(n),
			Centroid: mean(xyz[:3]),
			Normal:   unit(n),
		}, nil
	}

	a, b, c, d := xyz[0], xyz[1], xyz[2], xyz[3]
	n := r3.Cross(r3.Sub(c, a), r3.Sub(d, b))
	area := 0.5 * r3.Norm(n)

	// Split along the 1-3 diagonal for the centroid
	a1 := triangleArea(a, b, c)
	a2 := triangleArea(a, c, d)
	centroid := mean(xyz[:4])
	if a1+a2 > 0 {
		c1 := mean([]r3.Vec{a, b, c})
		c2 := mean([]r3.Vec{a, c, d})
		centroid = r3.Scale(1/(a1+a2), r3.Add(r3.Scale(a1, c1), r3.Scale(a2, c2)))
	}
	return Planar{Area: area, Centroid: centroid, Normal: unit(n)}, nil
}

// Length returns the distance between the two end nodes of a line element
func Length(xyz []r3.Vec) (float64, error) {
	if len(xyz) < 2 {
		return 0, fmt.Errorf("line element needs 2 positions, got %d", len(xyz))
	}
	return r3.Norm(r3.Sub(xyz[1], xyz[0])), nil
}

// Midpoint returns the centroid of a line element
func Midpoint(xyz []r3.Vec) (r3.Vec, error) {
	if len(xyz) < 2 {
		return r3.Vec{}, fmt.Errorf("line element needs 2 positions, got %d", len(xyz))
	}
	return r3.Scale(0.5, r3.Add(xyz[0], xyz[1])), nil
}

// Decomposition of each solid into tetrahedra over local corner indices
var tetSplits = map[ElementGeometry][][4]int{
	Tet:   {{0, 1, 2, 3}},
	Prism: {{0, 1, 2, 3}, {1, 2, 3, 4}, {2, 3, 4, 5}},
	Hex: {
		{0, 1, 2, 6}, {0, 2, 3, 6}, {0, 3, 7, 6},
		{0, 7, 4, 6}, {0, 4, 5, 6}, {0, 5, 1, 6},
	},
	Pyramid: {{0, 1, 2, 4}, {0, 2, 3, 4}},
}

func signedTetVolume(a, b, c, d r3.Vec) float64 {
	return r3.Dot(r3.Sub(b, a), r3.Cross(r3.Sub(c, a), r3.Sub(d, a))) / 6
}

// SolidGeometry computes the volume and volumetric centroid of a solid element
// from its corner positions. Faces are treated as planar.
func SolidGeometry(t Type, xyz []r3.Vec) (Solid, error) {
	info, ok := Lookup(t)
	if !ok || info.Geometry.Dimensions() != D3 {
		return Solid{}, fmt.Errorf("element type %s is not volumetric", t)
	}
	if len(xyz) < info.Corners {
		return Solid{}, fmt.Errorf("%s needs %d corner positions, got %d", t, info.Corners, len(xyz))
	}

	var volume float64
	var moment r3.Vec
	for _, tet := range tetSplits[info.Geometry] {
		a, b, c, d := xyz[tet[0]], xyz[tet[1]], xyz[tet[2]], xyz[tet[3]]
		v := signedTetVolume(a, b, c, d)
		volume += v
		moment = r3.Add(moment, r3.Scale(v, mean([]r3.Vec{a, b, c, d})))
	}

	centroid := mean(xyz[:info.Corners])
	if volume != 0 {
		centroid = r3.Scale(1/volume, moment)
	}
	return Solid{Volume: math.Abs(volume), Centroid: centroid}, nil
}
