package bdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notargets/femprops/element"
	"github.com/notargets/femprops/model"
	"github.com/notargets/femprops/model/modeltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func small(fields ...string) string {
	s := fmt.Sprintf("%-8s", fields[0])
	for _, f := range fields[1:] {
		s += fmt.Sprintf("%8s", f)
	}
	return s
}

func TestReadFieldFormats(t *testing.T) {
	deck := strings.Join([]string{
		"$ mixed field formats",
		small("GRID", "1", "", "0.", "0.", "0."),
		"GRID*   " + fmt.Sprintf("%16s%16s%16s%16s", "2", "", "1.", "0."),
		"*       " + fmt.Sprintf("%16s", "0."),
		"GRID,3,,1.,1.,0.",
		"GRID,4,,0.,1.,0.",
		small("CQUAD4", "1", "1", "1", "2", "3", "4"),
		small("PSHELL", "1", "1", ".1", "", "", "", "", ".5"),
		small("MAT1", "1", "3.+7", "", ".3", "2."),
		small("CONM2", "10", "3", "", "5."),
		small("PARAM", "WTMASS", ".5"),
		small("FORCE", "1", "2", "", "10.", "0.", "0.", "1."),
		small("LOAD", "2", "2.", "1.5", "1"),
		small("SPC1", "1", "123", "1"),
		"ENDDATA",
		small("GRID", "99", "", "0.", "0.", "0."),
	}, "\n")

	m, err := Read(strings.NewReader(deck), nil)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, m.NodeIDs())
	assert.Equal(t, r3.Vec{X: 1}, m.Nodes[2].Position)
	assert.Equal(t, r3.Vec{X: 1, Y: 1}, m.Nodes[3].Position)

	e, err := m.Element(1)
	require.NoError(t, err)
	assert.Equal(t, element.CQUAD4, e.Type)
	assert.Equal(t, []int{1, 2, 3, 4}, e.NodeIDs)

	p, err := m.Property(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, p.Thickness, 1e-15)
	assert.InDelta(t, 0.5, p.NSM, 1e-15)

	assert.Equal(t, 3.0e7, m.Materials[1].E)
	assert.Equal(t, 2.0, m.Materials[1].Rho)
	assert.Equal(t, 5.0, m.Masses[10].Mass)
	assert.Equal(t, 0.5, m.Params["WTMASS"])

	lc, err := m.LoadCase(1)
	require.NoError(t, err)
	require.Len(t, lc.Entries, 1)
	assert.Equal(t, model.Force, lc.Entries[0].Kind)
	assert.Equal(t, 10.0, lc.Entries[0].Scale)
	assert.Equal(t, []model.Combination{{Scale: 1.5, LoadCaseID: 1}}, m.LoadCases[2].Combinations)
	assert.Equal(t, 2.0, m.LoadCases[2].Scale)
}

func TestReadRejectsBadFields(t *testing.T) {
	_, err := Read(strings.NewReader(small("GRID", "x", "", "0.", "0.", "0.")), nil)
	assert.Error(t, err)
	_, err = Read(strings.NewReader("        continuation"), nil)
	assert.Error(t, err)
	_, err = Read(strings.NewReader(small("GRID", "1")+"\n"+small("GRID", "1")), nil)
	assert.Error(t, err)
}

func TestReadSolidsAndBlankMidsideNodes(t *testing.T) {
	deck := strings.Join([]string{
		small("CTETRA", "1", "1", "1", "2", "3", "4"),
		small("CTETRA", "2", "1", "1", "2", "3", "4", "5", ""),
		small("", "7"),
		small("PSOLID", "1", "1"),
	}, "\n")
	m, err := Read(strings.NewReader(deck), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, m.Elements[1].NodeIDs)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 0, 7}, m.Elements[2].NodeIDs)
	assert.Equal(t, model.PSOLID, m.Properties[1].Type)
}

func writeModel(t *testing.T, m *model.Model, format Format) string {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(&buf, format)
	require.NoError(t, err)
	for _, id := range m.CoordIDs() {
		w.Card(Cord2RCard(m.Coords[id]))
	}
	for _, id := range m.NodeIDs() {
		w.Card(GridCard(m.Nodes[id]))
	}
	for _, id := range m.ElementIDs() {
		w.Card(ElementCard(m.Elements[id]))
	}
	for _, id := range m.PropertyIDs() {
		c, err := PropertyCard(m.Properties[id])
		require.NoError(t, err)
		w.Card(c)
	}
	for _, id := range m.MaterialIDs() {
		c, err := MaterialCard(m.Materials[id])
		require.NoError(t, err)
		w.Card(c)
	}
	require.NoError(t, w.End())
	return buf.String()
}

func TestRoundTrip(t *testing.T) {
	src := modeltest.Plate()
	(&modeltest.Builder{M: src}).
		Coord(&model.Coord{ID: 5, Type: "CORD2R", A: r3.Vec{X: 1}, B: r3.Vec{X: 1, Z: 1}, C: r3.Vec{X: 2}}).
		NodeIn(7, 5, 0.125, 1./3, 1234567.5)

	for _, format := range []Format{{Size: Small}, {Size: Large}, {Size: Large, Double: true}} {
		t.Run(fmt.Sprintf("%d/%v", format.Size, format.Double), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "model.bdf")
			require.NoError(t, os.WriteFile(path, []byte(writeModel(t, src, format)), 0o644))

			got, err := ReadFile(path, nil)
			require.NoError(t, err)
			assert.Equal(t, src.NodeIDs(), got.NodeIDs())
			assert.Equal(t, src.ElementIDs(), got.ElementIDs())
			for _, id := range src.NodeIDs() {
				a, b := src.Nodes[id], got.Nodes[id]
				assert.Equal(t, a.CP, b.CP)
				assert.InDelta(t, 0, r3.Norm(r3.Sub(a.Position, b.Position)), 1e-6*r3.Norm(a.Position)+1e-12, "node %d", id)
			}
			for _, id := range src.ElementIDs() {
				assert.Equal(t, src.Elements[id], got.Elements[id])
			}
			for _, id := range src.PropertyIDs() {
				assert.Equal(t, src.Properties[id], got.Properties[id])
			}
			assert.Equal(t, src.Materials[1], got.Materials[1])
			assert.Equal(t, src.Coords[5], got.Coords[5])
		})
	}
}

func TestReadLoadCards(t *testing.T) {
	deck := strings.Join([]string{
		small("FORCE1", "1", "3", "5.", "1", "4"),
		small("MOMENT2", "1", "1", "2.", "1", "2", "1", "4"),
		small("PLOAD", "2", "-1.5", "1", "2", "3"),
		small("PLOAD2", "3", "4.", "7", "THRU", "9"),
		small("PLOAD2", "4", "4.", "7", "8", "12"),
		small("PLOAD1", "5", "3", "FY", "FR", ".25", "2."),
	}, "\n")
	m, err := Read(strings.NewReader(deck), nil)
	require.NoError(t, err)

	f1, m2 := m.LoadCases[1].Entries[0], m.LoadCases[1].Entries[1]
	assert.Equal(t, model.Force, f1.Kind)
	assert.Equal(t, 3, f1.NodeID)
	assert.Equal(t, 5.0, f1.Scale)
	assert.Equal(t, []int{1, 4}, f1.NodeIDs)
	assert.Equal(t, model.Moment, m2.Kind)
	assert.Equal(t, []int{1, 2, 1, 4}, m2.NodeIDs)

	face := m.LoadCases[2].Entries[0]
	assert.Equal(t, model.Pressure, face.Kind)
	assert.Equal(t, []int{1, 2, 3}, face.NodeIDs)
	assert.Equal(t, -1.5, face.Pressure)

	assert.Equal(t, []int{7, 8, 9}, m.LoadCases[3].Entries[0].ElementIDs)
	assert.Equal(t, []int{7, 8, 12}, m.LoadCases[4].Entries[0].ElementIDs)

	line := m.LoadCases[5].Entries[0]
	assert.Equal(t, r3.Vec{Y: 1}, line.Vector)
	assert.Equal(t, []float64{0.25, 0.25, 2, 2}, []float64{line.X1, line.X2, line.P1, line.P2})
}

func TestConrodRoundTrip(t *testing.T) {
	rod := &model.Element{ID: 4, Type: element.CONROD, NodeIDs: []int{1, 3},
		Rod: &model.RodSection{MaterialID: 2, Area: 0.25, NSM: 0.1}}
	line, ok := PrintCard8(ElementCard(rod))
	require.True(t, ok)

	m, err := Read(strings.NewReader(line), nil)
	require.NoError(t, err)
	assert.Equal(t, rod, m.Elements[4])
}
