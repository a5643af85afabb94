// Package loads sums the applied forces and moments of a load case about a
// reference point
package loads

import (
	"github.com/notargets/femprops/model"
	"github.com/notargets/femprops/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

type Options struct {
	// IncludeGravity is advisory: gravity entries are reported but not summed
	IncludeGravity bool
	// Positions defaults to the resolver
	Positions model.PositionFunc
	Log       *utils.Logger
}

type Result struct {
	Force     r3.Vec
	Moment    r3.Vec
	Reference r3.Vec
	// Gravity counts the gravity entries left out of the sums
	Gravity int
}

// selection restricts nodal loads to nodes and element loads to elements;
// a nil selection takes every entry
type selection struct {
	nodes    map[int]bool
	elements map[int]bool
}

func newSelection(eids, nids []int) *selection {
	s := &selection{nodes: make(map[int]bool), elements: make(map[int]bool)}
	for _, id := range nids {
		s.nodes[id] = true
	}
	for _, id := range eids {
		s.elements[id] = true
	}
	return s
}

func (s *selection) node(id int) bool    { return s == nil || s.nodes[id] }
func (s *selection) element(id int) bool { return s == nil || s.elements[id] }

// SumForcesMoments sums every entry of load case lcID, including the load
// cases it combines
func SumForcesMoments(acc model.Accessor, r model.Resolver, ref model.ReferencePoint,
	lcID int, opts Options) (Result, error) {
	return sum(acc, r, ref, lcID, nil, opts)
}

// SumForcesMomentsElements sums the nodal loads of load case lcID acting on
// nids and the element loads acting on eids. Summing the pieces of a model
// split along shared nodes counts the loads on those nodes more than once.
func SumForcesMomentsElements(acc model.Accessor, r model.Resolver, ref model.ReferencePoint,
	lcID int, eids, nids []int, opts Options) (Result, error) {
	return sum(acc, r, ref, lcID, newSelection(eids, nids), opts)
}

func sum(acc model.Accessor, r model.Resolver, ref model.ReferencePoint,
	lcID int, sel *selection, opts Options) (Result, error) {

	if ref.IsCG() {
		return Result{}, model.NewConfigurationError("loads cannot be summed about the center of gravity")
	}
	positions := opts.Positions
	if positions == nil {
		positions = model.Resolved(r)
	}
	p0, err := ref.Resolve(positions)
	if err != nil {
		return Result{}, err
	}
	s := &summer{
		acc:       acc,
		resolver:  r,
		positions: positions,
		sel:       sel,
		log:       utils.OrNop(opts.Log),
		gravity:   opts.IncludeGravity,
		res:       Result{Reference: p0},
	}
	if err := s.loadCase(lcID, 1, nil); err != nil {
		return Result{}, err
	}
	s.log.Debug("summed loads", "load_case", lcID, "reference", ref.String(),
		"force", s.res.Force, "moment", s.res.Moment)
	return s.res, nil
}

type summer struct {
	acc       model.Accessor
	resolver  model.Resolver
	positions model.PositionFunc
	sel       *selection
	log       *utils.Logger
	gravity   bool
	res       Result
}

// loadCase superposes load case id with the accumulated scale; path holds the
// load cases being expanded above it
func (s *summer) loadCase(id int, scale float64, path []int) error {
	for i, seen := range path {
		if seen == id {
			cycle := append(append([]int(nil), path[i:]...), id)
			return &model.LoadCaseCycleError{Path: cycle}
		}
	}
	lc, err := s.acc.LoadCase(id)
	if err != nil {
		return err
	}
	path = append(path, id)
	scale *= lc.Scale
	for i := range lc.Entries {
		if err := s.entry(lc.ID, &lc.Entries[i], scale*lc.Entries[i].Scale); err != nil {
			return err
		}
	}
	for _, c := range lc.Combinations {
		if err := s.loadCase(c.LoadCaseID, scale*c.Scale, path); err != nil {
			return err
		}
	}
	return nil
}

func (s *summer) add(force, at r3.Vec) {
	s.res.Force = r3.Add(s.res.Force, force)
	s.res.Moment = r3.Add(s.res.Moment, r3.Cross(r3.Sub(at, s.res.Reference), force))
}
