// Package massprops computes total mass, center of gravity and the inertia
// tensor of a selection of elements and point masses.
//
// The inertia is a lumped approximation: every contributor is a point mass
// at its centroid and its own rotational inertia about that centroid is
// dropped. The result is wrong for a single element and converges for real
// models built of many small elements.
package massprops

import (
	"fmt"

	"github.com/notargets/femprops/extent"
	"github.com/notargets/femprops/model"
	"github.com/notargets/femprops/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

type Options struct {
	// ElementIDs and MassIDs default to every element and mass element
	ElementIDs []int
	MassIDs    []int
	Reference  model.ReferencePoint
	// Symmetry is "no" or a combination of the axes normal to the mirror
	// planes, "x", "yz", "xyz", ...
	Symmetry string
	// Scale overrides the WTMASS parameter of the model
	Scale *float64
	Log   *utils.Logger
}

type Result struct {
	Mass    float64
	CG      r3.Vec
	Inertia Inertia
	// Reference is the resolved point the inertia is taken about
	Reference r3.Vec
	Skipped   []extent.SkipKey
}

// InertiaAbout transfers the inertia to another reference point
func (r Result) InertiaAbout(p r3.Vec) Inertia {
	return r.Inertia.Transfer(r.Mass, r.CG, r.Reference, p)
}

type point struct {
	mass float64
	at   r3.Vec
}

// MassProperties uses node positions resolved to the global frame
func MassProperties(acc model.Accessor, r model.Resolver, opts Options) (Result, error) {
	return compute(acc, model.Resolved(r), opts)
}

// MassPropertiesNoXref uses node positions as stored, without resolving their
// coordinate systems. It matches MassProperties when every node is defined in
// the global frame.
func MassPropertiesNoXref(acc model.Accessor, opts Options) (Result, error) {
	return compute(acc, model.Stored(acc), opts)
}

func compute(acc model.Accessor, positions model.PositionFunc, opts Options) (Result, error) {
	log := utils.OrNop(opts.Log)
	planes, err := parseSymmetry(opts.Symmetry)
	if err != nil {
		return Result{}, err
	}
	scale, err := massScale(acc, opts.Scale)
	if err != nil {
		return Result{}, err
	}

	diag := extent.NewDiagnostics("mass", opts.Log)
	calc := extent.NewCalculator(acc, positions, diag)

	eids := opts.ElementIDs
	if eids == nil {
		eids = acc.ElementIDs()
	}
	mids := opts.MassIDs
	if mids == nil {
		mids = acc.MassIDs()
	}

	points := make([]point, 0, len(eids)+len(mids))
	for _, eid := range eids {
		e, err := acc.Element(eid)
		if err != nil {
			return Result{}, err
		}
		p, err := model.PropertyOf(acc, e)
		if err != nil {
			return Result{}, err
		}
		m, c, ok, err := calc.MassCentroid(e, p)
		if err != nil {
			return Result{}, err
		}
		if ok {
			points = append(points, point{mass: m, at: c})
		}
	}
	for _, id := range mids {
		me, err := acc.MassElement(id)
		if err != nil {
			return Result{}, err
		}
		at, err := positions(me.NodeID)
		if err != nil {
			return Result{}, fmt.Errorf("mass element %d: %w", id, err)
		}
		points = append(points, point{mass: me.Mass, at: r3.Add(at, me.Offset)})
	}

	var (
		res    Result
		moment r3.Vec
	)
	for _, p := range points {
		res.Mass += p.mass
		moment = r3.Add(moment, r3.Scale(p.mass, p.at))
	}
	if res.Mass != 0 {
		res.CG = r3.Scale(1/res.Mass, moment)
	}

	if opts.Reference.IsCG() {
		if res.Mass == 0 {
			return Result{}, &model.ZeroMassError{Elements: len(eids), Masses: len(mids)}
		}
		res.Reference = res.CG
	} else {
		if res.Reference, err = opts.Reference.Resolve(positions); err != nil {
			return Result{}, err
		}
	}
	for _, p := range points {
		res.Inertia = res.Inertia.AddPoint(p.mass, r3.Sub(p.at, res.Reference))
	}

	for _, r := range planes {
		r.apply(&res)
	}
	res.Mass *= scale
	res.Inertia = res.Inertia.Scale(scale)
	res.Skipped = diag.Skipped()

	log.Debug("mass properties", "mass", res.Mass, "contributors", len(points),
		"reference", opts.Reference.String(), "symmetry", opts.Symmetry, "scale", scale)
	return res, nil
}

func massScale(acc model.Accessor, explicit *float64) (float64, error) {
	if explicit != nil {
		if *explicit <= 0 {
			return 0, model.NewConfigurationError("mass scale must be positive, got %g", *explicit)
		}
		return *explicit, nil
	}
	if wtmass, ok := acc.Param("WTMASS"); ok {
		return wtmass, nil
	}
	return 1, nil
}
