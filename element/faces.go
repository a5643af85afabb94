package element

import "fmt"

// Local corner indices of each face, ordered so that the right-hand normal
// points out of a positively oriented element.
var cornerFaces = map[ElementGeometry][][]int{
	Tet: {
		{0, 2, 1},
		{0, 1, 3},
		{1, 2, 3},
		{2, 0, 3},
	},
	Prism: {
		{0, 2, 1},
		{3, 4, 5},
		{0, 1, 4, 3},
		{1, 2, 5, 4},
		{2, 0, 3, 5},
	},
	Hex: {
		{0, 3, 2, 1},
		{4, 5, 6, 7},
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
	},
	Pyramid: {
		{0, 3, 2, 1},
		{0, 1, 4},
		{1, 2, 4},
		{2, 3, 4},
		{3, 0, 4},
	},
}

type edge [2]int

func newEdge(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// Local index of the midside node of each corner edge for the higher-order variants
var midsideNodes = map[ElementGeometry]map[edge]int{
	Tet: {
		{0, 1}: 4, {1, 2}: 5, {0, 2}: 6,
		{0, 3}: 7, {1, 3}: 8, {2, 3}: 9,
	},
	Prism: {
		{0, 1}: 6, {1, 2}: 7, {0, 2}: 8,
		{0, 3}: 9, {1, 4}: 10, {2, 5}: 11,
		{3, 4}: 12, {4, 5}: 13, {3, 5}: 14,
	},
	Hex: {
		{0, 1}: 8, {1, 2}: 9, {2, 3}: 10, {0, 3}: 11,
		{0, 4}: 12, {1, 5}: 13, {2, 6}: 14, {3, 7}: 15,
		{4, 5}: 16, {5, 6}: 17, {6, 7}: 18, {4, 7}: 19,
	},
	Pyramid: {
		{0, 1}: 5, {1, 2}: 6, {2, 3}: 7, {0, 3}: 8,
		{0, 4}: 9, {1, 4}: 10, {2, 4}: 11, {3, 4}: 12,
	},
}

// Face is an ordered view of one element face
type Face struct {
	Nodes   []int
	Corners int // 3 for triangular faces, 4 for quadrilateral faces
}

// NumFaces returns the number of faces of a volumetric element type, zero otherwise
func NumFaces(t Type) int {
	g, ok := t.Geometry()
	if !ok {
		return 0
	}
	return len(cornerFaces[g])
}

// Faces returns the node ids bounding each face of a volumetric element.
// Corner nodes come first in face order, followed by the midside nodes of the
// face edges when the element carries them. A blank (zero) midside id is
// omitted, so partially populated higher-order elements yield faces whose
// node count is neither the linear nor the quadratic one.
func Faces(t Type, nodeIDs []int) ([]Face, error) {
	info, ok := Lookup(t)
	if !ok || info.Geometry.Dimensions() != D3 {
		return nil, fmt.Errorf("element type %s has no face table", t)
	}
	if len(nodeIDs) < info.Corners {
		return nil, fmt.Errorf("%s needs at least %d nodes, got %d", t, info.Corners, len(nodeIDs))
	}
	if len(nodeIDs) > info.MaxNodes {
		return nil, fmt.Errorf("%s has at most %d nodes, got %d", t, info.MaxNodes, len(nodeIDs))
	}

	highOrder := len(nodeIDs) > info.Corners
	mids := midsideNodes[info.Geometry]
	faces := make([]Face, 0, len(cornerFaces[info.Geometry]))
	for _, local := range cornerFaces[info.Geometry] {
		face := make([]int, 0, 2*len(local))
		for _, c := range local {
			face = append(face, nodeIDs[c])
		}
		if highOrder {
			for i, c := range local {
				next := local[(i+1)%len(local)]
				m := mids[newEdge(c, next)]
				if m < len(nodeIDs) && nodeIDs[m] != 0 {
					face = append(face, nodeIDs[m])
				}
			}
		}
		faces = append(faces, Face{Nodes: face, Corners: len(local)})
	}
	return faces, nil
}
