package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// Every face normal of a positively oriented unit cube must point outward
func TestHexFacesPointOutward(t *testing.T) {
	ids := []int{0, 1, 2, 3, 4, 5, 6, 7}
	faces, err := Faces(CHEXA, ids)
	require.NoError(t, err)
	require.Len(t, faces, 6)

	center := r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
	for _, f := range faces {
		xyz := make([]r3.Vec, len(f.Nodes))
		for i, n := range f.Nodes {
			xyz[i] = unitCube[n]
		}
		g, err := PlanarGeometry(CQUAD4, xyz)
		require.NoError(t, err)
		out := r3.Dot(g.Normal, r3.Sub(g.Centroid, center))
		assert.Greater(t, out, 0.0, "face %v points inward", f.Nodes)
		assert.InDelta(t, 1.0, g.Area, 1e-12)
	}
}

func TestTetFacesPointOutward(t *testing.T) {
	xyz := []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}
	faces, err := Faces(CTETRA, []int{0, 1, 2, 3})
	require.NoError(t, err)
	require.Len(t, faces, 4)

	center := r3.Vec{X: 0.25, Y: 0.25, Z: 0.25}
	for _, f := range faces {
		g, err := PlanarGeometry(CTRIA3, []r3.Vec{xyz[f.Nodes[0]], xyz[f.Nodes[1]], xyz[f.Nodes[2]]})
		require.NoError(t, err)
		assert.Greater(t, r3.Dot(g.Normal, r3.Sub(g.Centroid, center)), 0.0, "face %v", f.Nodes)
	}
}

func TestQuadraticFaces(t *testing.T) {
	ids := []int{1, 2, 3, 4, 12, 23, 31, 14, 24, 34}
	faces, err := Faces(CTETRA, ids)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 31, 23, 12}, faces[0].Nodes)
	assert.Equal(t, 3, faces[0].Corners)

	hex := make([]int, 20)
	for i := range hex {
		hex[i] = i + 1
	}
	faces, err = Faces(CHEXA, hex)
	require.NoError(t, err)
	for _, f := range faces {
		assert.Len(t, f.Nodes, 8)
	}
	// Top face 5-6-7-8 with edges 17..20
	assert.Equal(t, []int{5, 6, 7, 8, 17, 18, 19, 20}, faces[1].Nodes)
}

func TestBlankMidsideNodesAreOmitted(t *testing.T) {
	ids := []int{1, 2, 3, 4, 12, 0, 31, 14, 24, 34}
	faces, err := Faces(CTETRA, ids)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 31, 12}, faces[0].Nodes)
}

func TestFacesRejectsNonSolids(t *testing.T) {
	_, err := Faces(CQUAD4, []int{1, 2, 3, 4})
	assert.Error(t, err)
	_, err = Faces(CHEXA, []int{1, 2, 3})
	assert.Error(t, err)
	assert.Equal(t, 5, NumFaces(CPENTA))
	assert.Equal(t, 0, NumFaces(CBAR))
}
