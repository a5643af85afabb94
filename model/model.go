package model

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Accessor is the read-only view over a parsed model
type Accessor interface {
	Node(id int) (*Node, error)
	Element(id int) (*Element, error)
	Property(id int) (*Property, error)
	Material(id int) (*Material, error)
	Coord(id int) (*Coord, error)
	MassElement(id int) (*MassElement, error)
	LoadCase(id int) (*LoadCase, error)

	// Sorted ids
	NodeIDs() []int
	ElementIDs() []int
	PropertyIDs() []int
	MaterialIDs() []int
	CoordIDs() []int
	MassIDs() []int

	// Param returns a model parameter such as WTMASS
	Param(name string) (float64, bool)
}

// Resolver converts node positions and directions to the global frame
type Resolver interface {
	GlobalPosition(nodeID int) (r3.Vec, error)
	GlobalDirection(coordID int, v r3.Vec) (r3.Vec, error)
}

// Model is an in-memory Accessor and Resolver
type Model struct {
	Nodes      map[int]*Node
	Elements   map[int]*Element
	Properties map[int]*Property
	Materials  map[int]*Material
	Coords     map[int]*Coord
	Masses     map[int]*MassElement
	LoadCases  map[int]*LoadCase
	Params     map[string]float64
}

func New() *Model {
	return &Model{
		Nodes:      make(map[int]*Node),
		Elements:   make(map[int]*Element),
		Properties: make(map[int]*Property),
		Materials:  make(map[int]*Material),
		Coords:     make(map[int]*Coord),
		Masses:     make(map[int]*MassElement),
		LoadCases:  make(map[int]*LoadCase),
		Params:     make(map[string]float64),
	}
}

func (m *Model) AddNode(n *Node) error {
	if _, ok := m.Nodes[n.ID]; ok {
		return fmt.Errorf("duplicate node %d", n.ID)
	}
	m.Nodes[n.ID] = n
	return nil
}

func (m *Model) AddElement(e *Element) error {
	if _, ok := m.Elements[e.ID]; ok {
		return fmt.Errorf("duplicate element %d", e.ID)
	}
	if _, ok := m.Masses[e.ID]; ok {
		return fmt.Errorf("element %d collides with a mass element", e.ID)
	}
	m.Elements[e.ID] = e
	return nil
}

func (m *Model) AddProperty(p *Property) error {
	if _, ok := m.Properties[p.ID]; ok {
		return fmt.Errorf("duplicate property %d", p.ID)
	}
	m.Properties[p.ID] = p
	return nil
}

func (m *Model) AddMaterial(mat *Material) error {
	if _, ok := m.Materials[mat.ID]; ok {
		return fmt.Errorf("duplicate material %d", mat.ID)
	}
	m.Materials[mat.ID] = mat
	return nil
}

func (m *Model) AddCoord(c *Coord) error {
	if c.ID == 0 {
		return fmt.Errorf("coordinate system 0 is the implicit global system")
	}
	if _, ok := m.Coords[c.ID]; ok {
		return fmt.Errorf("duplicate coordinate system %d", c.ID)
	}
	m.Coords[c.ID] = c
	return nil
}

func (m *Model) AddMass(me *MassElement) error {
	if _, ok := m.Masses[me.ID]; ok {
		return fmt.Errorf("duplicate mass element %d", me.ID)
	}
	if _, ok := m.Elements[me.ID]; ok {
		return fmt.Errorf("mass element %d collides with an element", me.ID)
	}
	m.Masses[me.ID] = me
	return nil
}

func (m *Model) AddLoadCase(lc *LoadCase) error {
	if _, ok := m.LoadCases[lc.ID]; ok {
		return fmt.Errorf("duplicate load case %d", lc.ID)
	}
	m.LoadCases[lc.ID] = lc
	return nil
}

func (m *Model) Node(id int) (*Node, error) {
	if n, ok := m.Nodes[id]; ok {
		return n, nil
	}
	return nil, &NotFoundError{Kind: "node", ID: id}
}

func (m *Model) Element(id int) (*Element, error) {
	if e, ok := m.Elements[id]; ok {
		return e, nil
	}
	return nil, &NotFoundError{Kind: "element", ID: id}
}

func (m *Model) Property(id int) (*Property, error) {
	if p, ok := m.Properties[id]; ok {
		return p, nil
	}
	return nil, &NotFoundError{Kind: "property", ID: id}
}

func (m *Model) Material(id int) (*Material, error) {
	if mat, ok := m.Materials[id]; ok {
		return mat, nil
	}
	return nil, &NotFoundError{Kind: "material", ID: id}
}

func (m *Model) Coord(id int) (*Coord, error) {
	if c, ok := m.Coords[id]; ok {
		return c, nil
	}
	return nil, &NotFoundError{Kind: "coordinate system", ID: id}
}

func (m *Model) MassElement(id int) (*MassElement, error) {
	if me, ok := m.Masses[id]; ok {
		return me, nil
	}
	return nil, &NotFoundError{Kind: "mass element", ID: id}
}

func (m *Model) LoadCase(id int) (*LoadCase, error) {
	if lc, ok := m.LoadCases[id]; ok {
		return lc, nil
	}
	return nil, &NotFoundError{Kind: "load case", ID: id}
}

func sortedKeys[V any](in map[int]V) []int {
	ids := make([]int, 0, len(in))
	for id := range in {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (m *Model) NodeIDs() []int     { return sortedKeys(m.Nodes) }
func (m *Model) ElementIDs() []int  { return sortedKeys(m.Elements) }
func (m *Model) PropertyIDs() []int { return sortedKeys(m.Properties) }
func (m *Model) MaterialIDs() []int { return sortedKeys(m.Materials) }
func (m *Model) CoordIDs() []int    { return sortedKeys(m.Coords) }
func (m *Model) MassIDs() []int     { return sortedKeys(m.Masses) }

func (m *Model) Param(name string) (float64, bool) {
	v, ok := m.Params[name]
	return v, ok
}

// MaxID returns the largest id of a sorted id list, zero when empty
func MaxID(ids []int) int {
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1]
}

// ElementIDsByProperty groups element ids by property id. A nil pids selects
// every property of the model; elements without a property are left out.
func ElementIDsByProperty(acc Accessor, pids []int) (map[int][]int, error) {
	byPid := make(map[int][]int)
	wanted := make(map[int]bool)
	if pids == nil {
		pids = acc.PropertyIDs()
	}
	for _, pid := range pids {
		if _, err := acc.Property(pid); err != nil {
			return nil, err
		}
		wanted[pid] = true
		byPid[pid] = nil
	}
	for _, eid := range acc.ElementIDs() {
		e, err := acc.Element(eid)
		if err != nil {
			return nil, err
		}
		if e.PropertyID == 0 || !wanted[e.PropertyID] {
			continue
		}
		byPid[e.PropertyID] = append(byPid[e.PropertyID], eid)
	}
	return byPid, nil
}

// PropertyOf returns the property of an element, the inline section of a
// CONROD included. An element without either is an error.
func PropertyOf(acc Accessor, e *Element) (*Property, error) {
	if e.Rod != nil {
		return e.Rod.Property(), nil
	}
	if e.PropertyID == 0 {
		return nil, fmt.Errorf("%s %d: %w", e.Type, e.ID, &NotFoundError{Kind: "property", ID: 0})
	}
	p, err := acc.Property(e.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", e.Type, e.ID, err)
	}
	return p, nil
}
