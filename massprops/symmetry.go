package massprops

import (
	"strings"

	"github.com/notargets/femprops/model"
)

// reflection applies the mirror image through the plane normal to one axis;
// the reference point is assumed to lie on that plane
type reflection struct {
	axis int
	// Ixx, Iyy, Izz, Ixy, Ixz, Iyz multipliers
	inertia [6]float64
}

var reflections = map[rune]reflection{
	'x': {axis: 0, inertia: [6]float64{2, 2, 2, 0, 0, 2}},
	'y': {axis: 1, inertia: [6]float64{2, 2, 2, 0, 2, 0}},
	'z': {axis: 2, inertia: [6]float64{2, 2, 2, 2, 0, 0}},
}

// parseSymmetry accepts "", "no", or any combination of distinct x, y, z
func parseSymmetry(sym string) ([]reflection, error) {
	sym = strings.ToLower(strings.TrimSpace(sym))
	if sym == "" || sym == "no" {
		return nil, nil
	}
	var out []reflection
	seen := make(map[rune]bool)
	for _, c := range sym {
		r, ok := reflections[c]
		if !ok || seen[c] {
			return nil, model.NewConfigurationError("invalid symmetry axis %q", sym)
		}
		seen[c] = true
		out = append(out, r)
	}
	return out, nil
}

func (r reflection) apply(res *Result) {
	res.Mass *= 2
	switch r.axis {
	case 0:
		res.CG.X = 0
	case 1:
		res.CG.Y = 0
	case 2:
		res.CG.Z = 0
	}
	c := res.Inertia.Components()
	for i := range c {
		c[i] *= r.inertia[i]
	}
	res.Inertia = fromComponents(c)
}
