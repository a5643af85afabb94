package model

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

type referenceKind uint8

const (
	refPoint referenceKind = iota
	refNode
	refCG
)

// ReferencePoint is an explicit point, the position of a node, or the center
// of gravity of the selection. The zero value is the global origin.
type ReferencePoint struct {
	kind   referenceKind
	point  r3.Vec
	nodeID int
}

func Point(v r3.Vec) ReferencePoint { return ReferencePoint{kind: refPoint, point: v} }

func AtNode(nodeID int) ReferencePoint { return ReferencePoint{kind: refNode, nodeID: nodeID} }

func CenterOfGravity() ReferencePoint { return ReferencePoint{kind: refCG} }

func (r ReferencePoint) IsCG() bool { return r.kind == refCG }

func (r ReferencePoint) String() string {
	switch r.kind {
	case refNode:
		return fmt.Sprintf("node %d", r.nodeID)
	case refCG:
		return "cg"
	}
	return fmt.Sprintf("(%g, %g, %g)", r.point.X, r.point.Y, r.point.Z)
}

// Resolve returns the reference as a position. A center of gravity reference
// cannot be resolved without the aggregate and is an error here.
func (r ReferencePoint) Resolve(positions PositionFunc) (r3.Vec, error) {
	switch r.kind {
	case refNode:
		p, err := positions(r.nodeID)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("reference point: %w", err)
		}
		return p, nil
	case refCG:
		return r3.Vec{}, NewConfigurationError("the center of gravity is not a valid reference point here")
	}
	return r.point, nil
}
