package utils

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FaceKey is the orientation independent identity of a face: its node ids
// sorted ascending
type FaceKey string

// NewFaceKey builds the canonical key of a face without modifying nodes
func NewFaceKey(nodes []int) FaceKey {
	sorted := append([]int(nil), nodes...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = strconv.Itoa(n)
	}
	return FaceKey(strings.Join(parts, "-"))
}

// FaceConnector matches the faces of a set of elements. Two parallel
// mappings are kept per canonical key: the owning elements, and the node
// ordering of the first occurrence, which preserves its orientation.
type FaceConnector struct {
	Owners map[FaceKey][]int
	Faces  map[FaceKey][]int
	order  []FaceKey
	added  int
}

func NewFaceConnector() *FaceConnector {
	return &FaceConnector{
		Owners: make(map[FaceKey][]int),
		Faces:  make(map[FaceKey][]int),
	}
}

// Add registers a face of element owner and returns its key
func (fc *FaceConnector) Add(owner int, nodes []int) FaceKey {
	key := NewFaceKey(nodes)
	if _, found := fc.Faces[key]; !found {
		fc.Faces[key] = append([]int(nil), nodes...)
		fc.order = append(fc.order, key)
	}
	fc.Owners[key] = append(fc.Owners[key], owner)
	fc.added++
	return key
}

// Count returns the number of occurrences of a face
func (fc *FaceConnector) Count(key FaceKey) int {
	return len(fc.Owners[key])
}

// Keys returns every distinct face in order of first occurrence
func (fc *FaceConnector) Keys() []FaceKey {
	return append([]FaceKey(nil), fc.order...)
}

// Interior returns the faces shared by exactly two elements
func (fc *FaceConnector) Interior() []FaceKey {
	return fc.filter(func(n int) bool { return n == 2 })
}

// Boundary returns every face that is not interior
func (fc *FaceConnector) Boundary() []FaceKey {
	return fc.filter(func(n int) bool { return n != 2 })
}

func (fc *FaceConnector) filter(keep func(count int) bool) []FaceKey {
	var out []FaceKey
	for _, key := range fc.order {
		if keep(fc.Count(key)) {
			out = append(out, key)
		}
	}
	return out
}

// Verify checks that the two mappings agree and that every added face is
// accounted for
func (fc *FaceConnector) Verify() error {
	if len(fc.Owners) != len(fc.Faces) || len(fc.order) != len(fc.Faces) {
		return fmt.Errorf("face maps disagree: %d owner keys, %d faces, %d ordered",
			len(fc.Owners), len(fc.Faces), len(fc.order))
	}
	total := 0
	for _, key := range fc.order {
		face, ok := fc.Faces[key]
		if !ok {
			return fmt.Errorf("face %s has no ordering", key)
		}
		if NewFaceKey(face) != key {
			return fmt.Errorf("face %v does not match its key %s", face, key)
		}
		total += fc.Count(key)
	}
	if total != fc.added {
		return fmt.Errorf("conservation error: %d owners != %d faces added", total, fc.added)
	}
	return nil
}
