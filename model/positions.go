package model

import "gonum.org/v1/gonum/spatial/r3"

// PositionFunc returns the coordinates of a node
type PositionFunc func(nodeID int) (r3.Vec, error)

// Resolved looks positions up through coordinate resolution
func Resolved(r Resolver) PositionFunc {
	return r.GlobalPosition
}

// Stored returns the positions as stored on the nodes, without resolving their
// coordinate systems
func Stored(acc Accessor) PositionFunc {
	return func(nodeID int) (r3.Vec, error) {
		n, err := acc.Node(nodeID)
		if err != nil {
			return r3.Vec{}, err
		}
		return n.Position, nil
	}
}

// Positions looks up the corner positions of a node list, skipping blank ids
func (f PositionFunc) Positions(nodeIDs []int) ([]r3.Vec, error) {
	xyz := make([]r3.Vec, 0, len(nodeIDs))
	for _, nid := range nodeIDs {
		if nid == 0 {
			continue
		}
		p, err := f(nid)
		if err != nil {
			return nil, err
		}
		xyz = append(xyz, p)
	}
	return xyz, nil
}
