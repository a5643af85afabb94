// Package breakdown sums area, volume and mass per property region
package breakdown

import (
	"fmt"
	"sort"

	"github.com/notargets/femprops/extent"
	"github.com/notargets/femprops/model"
	"github.com/notargets/femprops/utils"
	"gonum.org/v1/gonum/floats"
)

// Options restricts a breakdown; a nil PropertyIDs selects every property
type Options struct {
	PropertyIDs []int
	// SumBarArea sums the section area over the elements of a line property.
	// When false the property reports its section area once.
	SumBarArea bool
	// Positions defaults to coordinate resolution when the accessor is also a
	// Resolver, else to the stored node positions
	Positions model.PositionFunc
	Log       *utils.Logger
}

// Result maps property id to the accumulated quantity. Properties whose
// elements were all skipped are absent.
type Result struct {
	ByProperty map[int]float64
	Skipped    []extent.SkipKey
}

// MassResult adds the point-mass totals keyed by mass element type
type MassResult struct {
	Result
	ByMassType map[string]float64
}

// PropertyIDs returns the ids present in the result, ascending
func (r Result) PropertyIDs() []int {
	pids := make([]int, 0, len(r.ByProperty))
	for pid := range r.ByProperty {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

// Total sums the result over all properties in ascending property order
func (r Result) Total() float64 {
	pids := r.PropertyIDs()
	values := make([]float64, len(pids))
	for i, pid := range pids {
		values[i] = r.ByProperty[pid]
	}
	return floats.Sum(values)
}

func positions(acc model.Accessor, opts Options) model.PositionFunc {
	if opts.Positions != nil {
		return opts.Positions
	}
	if r, ok := acc.(model.Resolver); ok {
		return model.Resolved(r)
	}
	return model.Stored(acc)
}

type quantity func(c *extent.Calculator, e *model.Element, p *model.Property) (float64, bool, error)

// accumulate groups the elements by property and sums q over each group.
// When once reports true for a property the last computed value is kept
// instead of the sum.
func accumulate(acc model.Accessor, op string, opts Options, q quantity,
	once func(p *model.Property) bool) (Result, error) {

	diag := extent.NewDiagnostics(op, opts.Log)
	calc := extent.NewCalculator(acc, positions(acc, opts), diag)

	byPid, err := model.ElementIDsByProperty(acc, opts.PropertyIDs)
	if err != nil {
		return Result{}, err
	}
	pids := make([]int, 0, len(byPid))
	for pid := range byPid {
		pids = append(pids, pid)
	}
	sort.Ints(pids)

	out := make(map[int]float64)
	for _, pid := range pids {
		p, err := acc.Property(pid)
		if err != nil {
			return Result{}, err
		}
		if _, ok := extent.Lookup(p.Type); !ok {
			return Result{}, fmt.Errorf("%s breakdown: %w", op, &model.UnsupportedIdealizationError{
				Operation: op, PropertyID: pid, PropertyType: string(p.Type),
			})
		}
		single := once != nil && once(p)
		var (
			sum float64
			n   int
		)
		for _, eid := range byPid[pid] {
			e, err := acc.Element(eid)
			if err != nil {
				return Result{}, err
			}
			v, ok, err := q(calc, e, p)
			if err != nil {
				return Result{}, fmt.Errorf("%s breakdown: %w", op, err)
			}
			if !ok {
				continue
			}
			if single {
				sum = v
			} else {
				sum += v
			}
			n++
		}
		if n > 0 {
			out[pid] = sum
		}
	}
	return Result{ByProperty: out, Skipped: diag.Skipped()}, nil
}

// AreaBreakdown sums element areas per property
func AreaBreakdown(acc model.Accessor, opts Options) (Result, error) {
	once := func(p *model.Property) bool {
		if opts.SumBarArea {
			return false
		}
		r, ok := extent.Lookup(p.Type)
		return ok && r.Category == extent.Line
	}
	return accumulate(acc, "area", opts, (*extent.Calculator).Area, once)
}

// VolumeBreakdown sums element volumes per property
func VolumeBreakdown(acc model.Accessor, opts Options) (Result, error) {
	return accumulate(acc, "volume", opts, (*extent.Calculator).Volume, nil)
}

// MassBreakdown sums element masses per property. Point masses carry no
// property and are summed per mass element type over the whole model.
func MassBreakdown(acc model.Accessor, opts Options) (MassResult, error) {
	res, err := accumulate(acc, "mass", opts, (*extent.Calculator).Mass, nil)
	if err != nil {
		return MassResult{}, err
	}
	byType := make(map[string]float64)
	for _, id := range acc.MassIDs() {
		me, err := acc.MassElement(id)
		if err != nil {
			return MassResult{}, err
		}
		byType[me.Type] += me.Mass
	}
	return MassResult{Result: res, ByMassType: byType}, nil
}
