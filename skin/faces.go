// Package skin extracts the exposed faces of a solid mesh and emits them as
// a bulk-data model of the original solids, of synthesized shells, or both
package skin

import (
	"fmt"

	"github.com/notargets/femprops/element"
	"github.com/notargets/femprops/model"
	"github.com/notargets/femprops/utils"
)

// Face is a skin face; Nodes keeps the ordering of its first owner, which
// points out of the mesh
type Face struct {
	Key    utils.FaceKey
	Nodes  []int
	Owners []int
}

// Owner is the element the face is taken from
func (f Face) Owner() int { return f.Owners[0] }

type Faces struct {
	Boundary []Face
	// Interior counts the discarded faces shared by two elements
	Interior int
}

// IsSkinnable reports the element types whose faces are extracted
func IsSkinnable(t element.Type) bool {
	return t == element.CTETRA || t == element.CPENTA || t == element.CHEXA || t == element.CPYRAM
}

// SolidSkinFaces matches the faces of eids, by default every solid of the
// model. Elements of other types are left out.
func SolidSkinFaces(acc model.Accessor, eids []int) (Faces, error) {
	if eids == nil {
		eids = acc.ElementIDs()
	}
	fc := utils.NewFaceConnector()
	for _, eid := range eids {
		e, err := acc.Element(eid)
		if err != nil {
			return Faces{}, err
		}
		if !IsSkinnable(e.Type) {
			continue
		}
		faces, err := element.Faces(e.Type, e.NodeIDs)
		if err != nil {
			return Faces{}, fmt.Errorf("element %d: %w", eid, err)
		}
		for _, f := range faces {
			if !validShape(f) {
				return Faces{}, &model.UnsupportedFaceShapeError{ElementID: eid, Face: f.Nodes}
			}
			fc.Add(eid, f.Nodes)
		}
	}
	if err := fc.Verify(); err != nil {
		return Faces{}, err
	}

	out := Faces{Interior: len(fc.Interior())}
	for _, key := range fc.Boundary() {
		out.Boundary = append(out.Boundary, Face{
			Key:    key,
			Nodes:  fc.Faces[key],
			Owners: fc.Owners[key],
		})
	}
	return out, nil
}

// validShape accepts linear and fully quadratic faces
func validShape(f element.Face) bool {
	switch f.Corners {
	case 3:
		return len(f.Nodes) == 3 || len(f.Nodes) == 6
	case 4:
		return len(f.Nodes) == 4 || len(f.Nodes) == 8
	}
	return false
}

// shellType returns the shell element synthesized on a face
func shellType(nodes int) (element.Type, bool) {
	switch nodes {
	case 3:
		return element.CTRIA3, true
	case 4:
		return element.CQUAD4, true
	case 6:
		return element.CTRIA6, true
	case 8:
		return element.CQUAD8, true
	}
	return "", false
}
