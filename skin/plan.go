package skin

import (
	"sort"

	"github.com/notargets/femprops/model"
	"github.com/notargets/femprops/utils"
)

// Synthesized shell section and material
const (
	ShellThickness = 0.1
	ShellModulus   = 3.0e7
	ShellPoisson   = 0.3
)

// IDs are the first free element, property and material ids
type IDs struct {
	Element, Property, Material int
}

// NextIDs returns the ids above the largest ones used by the model; element
// and mass element ids share one range
func NextIDs(acc model.Accessor) IDs {
	eid := model.MaxID(acc.ElementIDs())
	if mid := model.MaxID(acc.MassIDs()); mid > eid {
		eid = mid
	}
	return IDs{
		Element:  eid + 1,
		Property: model.MaxID(acc.PropertyIDs()) + 1,
		Material: model.MaxID(acc.MaterialIDs()) + 1,
	}
}

// Range is a consumed id range, empty when Last < First
type Range struct {
	First, Last int
}

func (r Range) Len() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

func span(first, n int) Range { return Range{First: first, Last: first + n - 1} }

// Allocation reports the ids consumed by synthesized shells
type Allocation struct {
	Elements, Properties, Materials Range
}

type Options struct {
	// ElementIDs defaults to every solid of the model
	ElementIDs  []int
	WriteSolids bool
	WriteShells bool
	// Start is the first id handed to synthesized records; the zero value
	// takes NextIDs of the model
	Start IDs
	Log   *utils.Logger
}

func (o Options) validate() error {
	if !o.WriteSolids && !o.WriteShells {
		return model.NewConfigurationError("skin output needs solids, shells or both")
	}
	return nil
}

// Plan holds everything a skin dump emits
type Plan struct {
	Faces Faces

	// Original records owning skin faces, ascending
	Solids          []int
	SolidProperties []int
	SolidMaterials  []int

	Shells          []*model.Element
	ShellProperties []*model.Property
	ShellMaterials  []*model.Material
	Allocated       Allocation

	NodeIDs  []int
	CoordIDs []int
}

// NewPlan extracts the skin and assigns the synthesized ids. The model is
// not modified.
func NewPlan(acc model.Accessor, opts Options) (*Plan, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := utils.OrNop(opts.Log)
	faces, err := SolidSkinFaces(acc, opts.ElementIDs)
	if err != nil {
		return nil, err
	}
	start := opts.Start
	if start == (IDs{}) {
		start = NextIDs(acc)
	}

	p := &Plan{Faces: faces, CoordIDs: acc.CoordIDs()}
	p.Allocated = Allocation{
		Elements:   span(start.Element, 0),
		Properties: span(start.Property, 0),
		Materials:  span(start.Material, 0),
	}

	owners := make(map[int]bool)
	faceMids := make([]int, len(faces.Boundary))
	skinMids := make(map[int]bool)
	for i, f := range faces.Boundary {
		e, err := acc.Element(f.Owner())
		if err != nil {
			return nil, err
		}
		if faceMids[i], err = faceMaterial(acc, e); err != nil {
			return nil, err
		}
		owners[e.ID] = true
		skinMids[faceMids[i]] = true
	}

	nodes := make(map[int]bool)
	// skin material id => synthesized property and material ids, handed out
	// in ascending material order
	synthesized := make(map[int][2]int)
	if opts.WriteShells {
		for i, mid := range sortedSet(skinMids) {
			ids := [2]int{start.Property + i, start.Material + i}
			synthesized[mid] = ids
			p.ShellProperties = append(p.ShellProperties, &model.Property{
				ID: ids[0], Type: model.PSHELL, MaterialID: ids[1], Thickness: ShellThickness,
			})
			p.ShellMaterials = append(p.ShellMaterials, &model.Material{
				ID: ids[1], Type: "MAT1", E: ShellModulus, Nu: ShellPoisson,
			})
		}
		for i, f := range faces.Boundary {
			for _, nid := range f.Nodes {
				nodes[nid] = true
			}
			// validShape guarantees a shell type
			t, _ := shellType(len(f.Nodes))
			p.Shells = append(p.Shells, &model.Element{
				ID:         start.Element + len(p.Shells),
				Type:       t,
				PropertyID: synthesized[faceMids[i]][0],
				NodeIDs:    append([]int(nil), f.Nodes...),
			})
		}
		p.Allocated = Allocation{
			Elements:   span(start.Element, len(p.Shells)),
			Properties: span(start.Property, len(synthesized)),
			Materials:  span(start.Material, len(synthesized)),
		}
	}

	p.Solids = sortedSet(owners)
	if opts.WriteSolids {
		if err := p.addSolids(acc, nodes); err != nil {
			return nil, err
		}
	}
	p.NodeIDs = sortedSet(nodes)

	log.Debug("skin planned", "boundary_faces", len(faces.Boundary), "interior_faces", faces.Interior,
		"solids", len(p.Solids), "shells", len(p.Shells))
	return p, nil
}

func (p *Plan) addSolids(acc model.Accessor, nodes map[int]bool) error {
	pids := make(map[int]bool)
	mids := make(map[int]bool)
	for _, eid := range p.Solids {
		e, err := acc.Element(eid)
		if err != nil {
			return err
		}
		for _, nid := range e.NodeIDs {
			if nid != 0 {
				nodes[nid] = true
			}
		}
		if pids[e.PropertyID] {
			continue
		}
		pids[e.PropertyID] = true
		prop, err := acc.Property(e.PropertyID)
		if err != nil {
			return err
		}
		if prop.MaterialID != 0 {
			mids[prop.MaterialID] = true
		}
		for _, ply := range prop.Plies {
			mids[ply.MaterialID] = true
		}
	}
	p.SolidProperties = sortedSet(pids)
	p.SolidMaterials = sortedSet(mids)
	return nil
}

// faceMaterial returns the material a skin face inherits from its owner
func faceMaterial(acc model.Accessor, e *model.Element) (int, error) {
	prop, err := acc.Property(e.PropertyID)
	if err != nil {
		return 0, err
	}
	switch prop.Type {
	case model.PSOLID, model.PLSOLID, model.PCOMPS:
		return prop.Mid(), nil
	}
	return 0, &model.UnsupportedIdealizationError{
		Operation:    "skin",
		ElementID:    e.ID,
		ElementType:  string(e.Type),
		PropertyID:   prop.ID,
		PropertyType: string(prop.Type),
	}
}

func sortedSet(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
