package massprops

import (
	"errors"
	"testing"

	"github.com/notargets/femprops/model"
	"github.com/notargets/femprops/model/modeltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertInertia(t *testing.T, expected [6]float64, actual Inertia, msgAndArgs ...interface{}) {
	t.Helper()
	c := actual.Components()
	for i := range expected {
		assert.InDelta(t, expected[i], c[i], 1e-9, msgAndArgs...)
	}
}

func assertVec(t *testing.T, expected, actual r3.Vec, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, 0, r3.Norm(r3.Sub(expected, actual)), 1e-9, msgAndArgs...)
}

// pointMasses places mass i at xyz[i] through a node and a CONM2
func pointMasses(masses []float64, xyz []r3.Vec) *model.Model {
	b := modeltest.NewBuilder()
	for i := range masses {
		b.Node(i+1, xyz[i].X, xyz[i].Y, xyz[i].Z).Mass(100+i, i+1, masses[i])
	}
	return b.M
}

func TestTwoPointMasses(t *testing.T) {
	m := pointMasses([]float64{1, 1}, []r3.Vec{{X: -1}, {X: 1}})
	res, err := MassProperties(m, m, Options{})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, res.Mass, 1e-12)
	assertVec(t, r3.Vec{}, res.CG)
	assertInertia(t, [6]float64{0, 2, 2, 0, 0, 0}, res.Inertia)

	values, _, err := res.Inertia.Principal()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 2, 2}, values, 1e-12)
}

func TestCenterOfGravityReference(t *testing.T) {
	m := pointMasses([]float64{1, 3}, []r3.Vec{{X: 1, Y: 2}, {X: 3, Z: 1}})
	about0, err := MassProperties(m, m, Options{})
	require.NoError(t, err)
	aboutCG, err := MassProperties(m, m, Options{Reference: model.CenterOfGravity()})
	require.NoError(t, err)

	assertVec(t, r3.Vec{X: 2.5, Y: 0.5, Z: 0.75}, aboutCG.CG)
	assertVec(t, aboutCG.CG, aboutCG.Reference)
	// Parallel axis: I_ref = I_cg + point mass m at the cg
	assertInertia(t, about0.Inertia.Components(), aboutCG.Inertia.AddPoint(aboutCG.Mass, aboutCG.CG))
	assertInertia(t, aboutCG.Inertia.Components(), about0.InertiaAbout(aboutCG.CG))

	atNode, err := MassProperties(m, m, Options{Reference: model.AtNode(2)})
	require.NoError(t, err)
	assertInertia(t, atNode.Inertia.Components(), about0.InertiaAbout(r3.Vec{X: 3, Z: 1}))
}

// asymmetric is an asymmetric two mass system, inertia about the origin
// (39, 20, 25, 4, 1, -18), mass 3 and cg (-1/3, 8/3, 7/3)
var asymmetric = struct {
	masses []float64
	xyz    []r3.Vec
}{
	masses: []float64{1, 2},
	xyz:    []r3.Vec{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 3, Z: 2}},
}

func TestSymmetry(t *testing.T) {
	tests := []struct {
		sym     string
		mass    float64
		cg      r3.Vec
		inertia [6]float64
	}{
		{"no", 3, r3.Vec{X: -1. / 3, Y: 8. / 3, Z: 7. / 3}, [6]float64{39, 20, 25, 4, 1, -18}},
		{"x", 6, r3.Vec{Y: 8. / 3, Z: 7. / 3}, [6]float64{78, 40, 50, 0, 0, -36}},
		{"y", 6, r3.Vec{X: -1. / 3, Z: 7. / 3}, [6]float64{78, 40, 50, 0, 2, 0}},
		{"z", 6, r3.Vec{X: -1. / 3, Y: 8. / 3}, [6]float64{78, 40, 50, 8, 0, 0}},
		{"xy", 12, r3.Vec{Z: 7. / 3}, [6]float64{156, 80, 100, 0, 0, 0}},
		{"xz", 12, r3.Vec{Y: 8. / 3}, [6]float64{156, 80, 100, 0, 0, 0}},
		{"yz", 12, r3.Vec{X: -1. / 3}, [6]float64{156, 80, 100, 0, 0, 0}},
		{"xyz", 24, r3.Vec{}, [6]float64{312, 160, 200, 0, 0, 0}},
	}
	m := pointMasses(asymmetric.masses, asymmetric.xyz)
	for _, tt := range tests {
		t.Run(tt.sym, func(t *testing.T) {
			res, err := MassProperties(m, m, Options{Symmetry: tt.sym})
			require.NoError(t, err)
			assert.InDelta(t, tt.mass, res.Mass, 1e-12)
			assertVec(t, tt.cg, res.CG)
			assertInertia(t, tt.inertia, res.Inertia)

			// Same as modelling the mirror images explicitly
			full := mirrored(tt.sym)
			want, err := MassProperties(full, full, Options{})
			require.NoError(t, err)
			assert.InDelta(t, want.Mass, res.Mass, 1e-12)
			assertVec(t, want.CG, res.CG)
			assertInertia(t, want.Inertia.Components(), res.Inertia)
		})
	}
}

// mirrored reflects the asymmetric system through every plane named in sym
func mirrored(sym string) *model.Model {
	masses := append([]float64(nil), asymmetric.masses...)
	xyz := append([]r3.Vec(nil), asymmetric.xyz...)
	for _, c := range sym {
		if sym == "no" {
			break
		}
		n := len(xyz)
		for i := 0; i < n; i++ {
			p := xyz[i]
			switch c {
			case 'x':
				p.X = -p.X
			case 'y':
				p.Y = -p.Y
			case 'z':
				p.Z = -p.Z
			}
			xyz = append(xyz, p)
			masses = append(masses, masses[i])
		}
	}
	return pointMasses(masses, xyz)
}

func TestInvalidSymmetry(t *testing.T) {
	m := pointMasses([]float64{1}, []r3.Vec{{}})
	for _, sym := range []string{"xx", "w", "x y"} {
		_, err := MassProperties(m, m, Options{Symmetry: sym})
		assert.True(t, errors.Is(err, model.ErrConfiguration), sym)
	}
}

func TestScale(t *testing.T) {
	m := pointMasses([]float64{1, 1}, []r3.Vec{{X: -1}, {X: 1}})
	m.Params["WTMASS"] = 0.5

	res, err := MassProperties(m, m, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Mass, 1e-12)
	assertInertia(t, [6]float64{0, 1, 1, 0, 0, 0}, res.Inertia)
	// The cg does not depend on the unit scale
	assertVec(t, r3.Vec{}, res.CG)

	scale := 4.
	res, err = MassProperties(m, m, Options{Scale: &scale})
	require.NoError(t, err)
	assert.InDelta(t, 8.0, res.Mass, 1e-12)

	scale = 0
	_, err = MassProperties(m, m, Options{Scale: &scale})
	assert.True(t, errors.Is(err, model.ErrConfiguration))
}

func TestZeroMass(t *testing.T) {
	m := modeltest.NewBuilder().Node(1, 1, 1, 1).Mass(10, 1, 0).M

	_, err := MassProperties(m, m, Options{Reference: model.CenterOfGravity()})
	var zm *model.ZeroMassError
	require.ErrorAs(t, err, &zm)
	assert.Equal(t, 1, zm.Masses)

	res, err := MassProperties(m, m, Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Mass)
	assert.Equal(t, r3.Vec{}, res.CG)
}

func TestElementsAndMassSubsets(t *testing.T) {
	m := modeltest.Plate()
	b := &modeltest.Builder{M: m}
	b.Mass(10, 6, 3)

	// Quad 1 (0.7 at (0.5, 0.5)), quad 2 (0.7 at (1.5, 0.5)), bar (1.025 at (1, 0))
	res, err := MassProperties(m, m, Options{MassIDs: []int{}})
	require.NoError(t, err)
	assert.InDelta(t, 2.425, res.Mass, 1e-12)
	assert.InDelta(t, 1.0, res.CG.X, 1e-12)
	assert.InDelta(t, 0.7/2.425, res.CG.Y, 1e-12)

	res, err = MassProperties(m, m, Options{ElementIDs: []int{2}})
	require.NoError(t, err)
	assert.InDelta(t, 3.7, res.Mass, 1e-12)
	assertVec(t, r3.Vec{X: (0.7*1.5 + 3*2) / 3.7, Y: (0.7*0.5 + 3) / 3.7}, res.CG)
}

func TestLumpedInertiaOfASingleElement(t *testing.T) {
	// A lone unit cube about its own cg has the exact inertia 1/6 per axis;
	// the lumped sum only sees a point mass at the cg
	m := modeltest.SolidBlock(1, 1)
	res, err := MassProperties(m, m, Options{Reference: model.CenterOfGravity()})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Mass, 1e-12)
	assertInertia(t, [6]float64{}, res.Inertia)
}

func TestNoXrefMatchesResolvedInTheGlobalFrame(t *testing.T) {
	m := modeltest.Plate()
	(&modeltest.Builder{M: m}).Mass(10, 5, 1.5)
	opts := Options{Reference: model.AtNode(6)}

	resolved, err := MassProperties(m, m, opts)
	require.NoError(t, err)
	stored, err := MassPropertiesNoXref(m, opts)
	require.NoError(t, err)
	assert.InDelta(t, resolved.Mass, stored.Mass, 1e-12)
	assertVec(t, resolved.CG, stored.CG)
	assertInertia(t, resolved.Inertia.Components(), stored.Inertia)
}

func TestResolvedPositionsUseCoordinateSystems(t *testing.T) {
	b := modeltest.NewBuilder().
		Coord(&model.Coord{ID: 1, Type: "CORD2R", A: r3.Vec{X: 10}, B: r3.Vec{X: 10, Z: 1}, C: r3.Vec{X: 11}}).
		NodeIn(1, 1, 1, 0, 0)
	b.Mass(10, 1, 2)

	resolved, err := MassProperties(b.M, b.M, Options{})
	require.NoError(t, err)
	assertVec(t, r3.Vec{X: 11}, resolved.CG)

	stored, err := MassPropertiesNoXref(b.M, Options{})
	require.NoError(t, err)
	assertVec(t, r3.Vec{X: 1}, stored.CG)
}

func TestConrodCarriesItsSection(t *testing.T) {
	m := modeltest.Plate()
	require.NoError(t, m.AddElement(&model.Element{ID: 4, Type: "CONROD", NodeIDs: []int{4, 6},
		Rod: &model.RodSection{MaterialID: 1, Area: 0.25, NSM: 0.1}}))

	// 0.25 * (2*2 + 0.1) at the middle of the rod
	res, err := MassProperties(m, m, Options{ElementIDs: []int{4}})
	require.NoError(t, err)
	assert.InDelta(t, 1.025, res.Mass, 1e-12)
	assertVec(t, r3.Vec{X: 1, Y: 1}, res.CG)
	assert.Empty(t, res.Skipped)
}

func TestElementWithoutPropertyIsAnError(t *testing.T) {
	m := modeltest.Plate()
	require.NoError(t, m.AddElement(&model.Element{ID: 5, Type: "CQUAD4", NodeIDs: []int{1, 2, 5, 4}}))

	_, err := MassProperties(m, m, Options{})
	assert.True(t, errors.Is(err, model.ErrNotFound), "got %v", err)
	_, err = MassPropertiesNoXref(m, Options{})
	assert.True(t, errors.Is(err, model.ErrNotFound))
}
