package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAddRejectsDuplicates(t *testing.T) {
	m := New()
	require.NoError(t, m.AddNode(&Node{ID: 1}))
	assert.Error(t, m.AddNode(&Node{ID: 1}))

	require.NoError(t, m.AddElement(&Element{ID: 5, Type: "CQUAD4"}))
	assert.Error(t, m.AddElement(&Element{ID: 5, Type: "CQUAD4"}))
	// Elements and mass elements share one id range
	assert.Error(t, m.AddMass(&MassElement{ID: 5, NodeID: 1}))
	require.NoError(t, m.AddMass(&MassElement{ID: 6, NodeID: 1}))
	assert.Error(t, m.AddElement(&Element{ID: 6, Type: "CBAR"}))

	require.NoError(t, m.AddProperty(&Property{ID: 1, Type: PSHELL}))
	assert.Error(t, m.AddProperty(&Property{ID: 1, Type: PSHELL}))
	require.NoError(t, m.AddMaterial(&Material{ID: 1}))
	assert.Error(t, m.AddMaterial(&Material{ID: 1}))
	require.NoError(t, m.AddLoadCase(&LoadCase{ID: 1, Scale: 1}))
	assert.Error(t, m.AddLoadCase(&LoadCase{ID: 1, Scale: 1}))

	assert.Error(t, m.AddCoord(&Coord{ID: 0}), "system 0 is implicit")
}

func TestLookupMisses(t *testing.T) {
	m := New()
	lookups := map[string]func() error{
		"node":     func() error { _, err := m.Node(1); return err },
		"element":  func() error { _, err := m.Element(1); return err },
		"property": func() error { _, err := m.Property(1); return err },
		"material": func() error { _, err := m.Material(1); return err },
		"coord":    func() error { _, err := m.Coord(1); return err },
		"mass":     func() error { _, err := m.MassElement(1); return err },
		"load":     func() error { _, err := m.LoadCase(1); return err },
	}
	for name, lookup := range lookups {
		err := lookup()
		assert.True(t, errors.Is(err, ErrNotFound), name)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf, name)
		assert.Equal(t, 1, nf.ID)
	}
}

func TestSortedIDs(t *testing.T) {
	m := New()
	for _, id := range []int{30, 2, 11} {
		require.NoError(t, m.AddNode(&Node{ID: id}))
	}
	assert.Equal(t, []int{2, 11, 30}, m.NodeIDs())
	assert.Equal(t, 30, MaxID(m.NodeIDs()))
	assert.Zero(t, MaxID(m.ElementIDs()))
}

func TestElementIDsByProperty(t *testing.T) {
	m := New()
	require.NoError(t, m.AddProperty(&Property{ID: 1, Type: PSHELL}))
	require.NoError(t, m.AddProperty(&Property{ID: 2, Type: PBAR}))
	require.NoError(t, m.AddProperty(&Property{ID: 3, Type: PSHELL}))
	require.NoError(t, m.AddElement(&Element{ID: 4, Type: "CQUAD4", PropertyID: 1}))
	require.NoError(t, m.AddElement(&Element{ID: 2, Type: "CQUAD4", PropertyID: 1}))
	require.NoError(t, m.AddElement(&Element{ID: 3, Type: "CBAR", PropertyID: 2}))
	require.NoError(t, m.AddElement(&Element{ID: 9, Type: "CONROD"}))

	byPid, err := ElementIDsByProperty(m, nil)
	require.NoError(t, err)
	assert.Equal(t, map[int][]int{1: {2, 4}, 2: {3}, 3: nil}, byPid)

	byPid, err = ElementIDsByProperty(m, []int{2})
	require.NoError(t, err)
	assert.Equal(t, map[int][]int{2: {3}}, byPid)

	_, err = ElementIDsByProperty(m, []int{8})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStoredPositionsSkipBlankIDs(t *testing.T) {
	m := New()
	require.NoError(t, m.AddNode(&Node{ID: 1, CP: 3, Position: r3.Vec{X: 1}}))
	xyz, err := Stored(m).Positions([]int{1, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []r3.Vec{{X: 1}, {X: 1}}, xyz)

	// Resolution needs coordinate system 3
	_, err = Resolved(m).Positions([]int{1})
	assert.True(t, errors.Is(err, ErrNotFound))
}
