package model

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/femprops/element"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

type yamlModel struct {
	Params     map[string]float64 `yaml:"params"`
	Nodes      []yamlNode         `yaml:"nodes"`
	Coords     []yamlCoord        `yaml:"coords"`
	Elements   []yamlElement      `yaml:"elements"`
	Properties []yamlProperty     `yaml:"properties"`
	Materials  []yamlMaterial     `yaml:"materials"`
	Masses     []yamlMass         `yaml:"masses"`
	Loads      []yamlLoadCase     `yaml:"loads"`
}

type yamlNode struct {
	ID  int        `yaml:"id"`
	CP  int        `yaml:"cp"`
	XYZ [3]float64 `yaml:"xyz"`
	CD  int        `yaml:"cd"`
}

type yamlCoord struct {
	ID   int        `yaml:"id"`
	Type string     `yaml:"type"`
	RID  int        `yaml:"rid"`
	A    [3]float64 `yaml:"a"`
	B    [3]float64 `yaml:"b"`
	C    [3]float64 `yaml:"c"`
}

type yamlElement struct {
	ID    int      `yaml:"id"`
	Type  string   `yaml:"type"`
	PID   int      `yaml:"pid"`
	Nodes []int    `yaml:"nodes"`
	Rod   *yamlRod `yaml:"rod"`
}

type yamlRod struct {
	MID  int     `yaml:"mid"`
	Area float64 `yaml:"area"`
	NSM  float64 `yaml:"nsm"`
}

type yamlPly struct {
	MID int     `yaml:"mid"`
	T   float64 `yaml:"t"`
}

type yamlProperty struct {
	ID    int       `yaml:"id"`
	Type  string    `yaml:"type"`
	MID   int       `yaml:"mid"`
	T     float64   `yaml:"t"`
	NSM   float64   `yaml:"nsm"`
	Area  float64   `yaml:"area"`
	OD    float64   `yaml:"od"`
	Wall  float64   `yaml:"wall"`
	Plies []yamlPly `yaml:"plies"`
}

type yamlMaterial struct {
	ID   int     `yaml:"id"`
	Type string  `yaml:"type"`
	E    float64 `yaml:"e"`
	G    float64 `yaml:"g"`
	Nu   float64 `yaml:"nu"`
	Rho  float64 `yaml:"rho"`
}

type yamlMass struct {
	ID     int        `yaml:"id"`
	Type   string     `yaml:"type"`
	NID    int        `yaml:"nid"`
	Offset [3]float64 `yaml:"offset"`
	Mass   float64    `yaml:"mass"`
}

type yamlLoadEntry struct {
	Kind     string     `yaml:"kind"`
	Card     string     `yaml:"card"`
	NID      int        `yaml:"nid"`
	EIDs     []int      `yaml:"eids"`
	NIDs     []int      `yaml:"nids"`
	CID      int        `yaml:"cid"`
	Scale    *float64   `yaml:"scale"`
	Vector   [3]float64 `yaml:"vector"`
	Pressure float64    `yaml:"pressure"`
	X1       float64    `yaml:"x1"`
	X2       *float64   `yaml:"x2"`
	P1       float64    `yaml:"p1"`
	P2       *float64   `yaml:"p2"`
}

type yamlCombination struct {
	Scale float64 `yaml:"scale"`
	LC    int     `yaml:"lc"`
}

type yamlLoadCase struct {
	ID           int               `yaml:"id"`
	Scale        *float64          `yaml:"scale"`
	Entries      []yamlLoadEntry   `yaml:"entries"`
	Combinations []yamlCombination `yaml:"combinations"`
}

var loadKinds = map[string]LoadKind{
	"force":       Force,
	"moment":      Moment,
	"pressure":    Pressure,
	"distributed": Distributed,
	"gravity":     Gravity,
}

var defaultCards = map[LoadKind]string{
	Force:       "FORCE",
	Moment:      "MOMENT",
	Pressure:    "PLOAD4",
	Distributed: "PLOAD1",
	Gravity:     "GRAV",
}

func vec(v [3]float64) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// LoadYAMLFile reads a model fixture from a YAML file
func LoadYAMLFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// LoadYAML decodes a model fixture
func LoadYAML(r io.Reader) (*Model, error) {
	var doc yamlModel
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}

	m := New()
	for k, v := range doc.Params {
		m.Params[strings.ToUpper(k)] = v
	}
	for _, n := range doc.Nodes {
		if err := m.AddNode(&Node{ID: n.ID, CP: n.CP, Position: vec(n.XYZ), CD: n.CD}); err != nil {
			return nil, err
		}
	}
	for _, c := range doc.Coords {
		typ := c.Type
		if typ == "" {
			typ = "CORD2R"
		}
		if err := m.AddCoord(&Coord{ID: c.ID, Type: typ, RID: c.RID, A: vec(c.A), B: vec(c.B), C: vec(c.C)}); err != nil {
			return nil, err
		}
	}
	for _, p := range doc.Properties {
		prop := &Property{
			ID:            p.ID,
			Type:          PropertyType(strings.ToUpper(p.Type)),
			MaterialID:    p.MID,
			Thickness:     p.T,
			NSM:           p.NSM,
			Area:          p.Area,
			OuterDiameter: p.OD,
			WallThickness: p.Wall,
		}
		for _, ply := range p.Plies {
			prop.Plies = append(prop.Plies, Ply{MaterialID: ply.MID, Thickness: ply.T})
		}
		if err := m.AddProperty(prop); err != nil {
			return nil, err
		}
	}
	for _, mat := range doc.Materials {
		typ := mat.Type
		if typ == "" {
			typ = "MAT1"
		}
		if err := m.AddMaterial(&Material{ID: mat.ID, Type: typ, E: mat.E, G: mat.G, Nu: mat.Nu, Rho: mat.Rho}); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Elements {
		typ := element.Type(strings.ToUpper(e.Type))
		if _, ok := element.Lookup(typ); !ok {
			return nil, fmt.Errorf("element %d: unknown element type %q", e.ID, e.Type)
		}
		el := &Element{ID: e.ID, Type: typ, PropertyID: e.PID, NodeIDs: e.Nodes}
		if e.Rod != nil {
			el.Rod = &RodSection{MaterialID: e.Rod.MID, Area: e.Rod.Area, NSM: e.Rod.NSM}
		}
		if err := m.AddElement(el); err != nil {
			return nil, err
		}
	}
	for _, me := range doc.Masses {
		typ := me.Type
		if typ == "" {
			typ = "CONM2"
		}
		if err := m.AddMass(&MassElement{ID: me.ID, Type: typ, NodeID: me.NID, Offset: vec(me.Offset), Mass: me.Mass}); err != nil {
			return nil, err
		}
	}
	for _, lc := range doc.Loads {
		out := &LoadCase{ID: lc.ID, Scale: orDefault(lc.Scale, 1)}
		for i, e := range lc.Entries {
			kind, ok := loadKinds[strings.ToLower(e.Kind)]
			if !ok {
				return nil, fmt.Errorf("load case %d entry %d: unknown kind %q", lc.ID, i, e.Kind)
			}
			card := e.Card
			if card == "" {
				card = defaultCards[kind]
			}
			p1 := e.P1
			out.Entries = append(out.Entries, LoadEntry{
				Kind:       kind,
				Card:       strings.ToUpper(card),
				NodeID:     e.NID,
				ElementIDs: e.EIDs,
				NodeIDs:    e.NIDs,
				CoordID:    e.CID,
				Scale:      orDefault(e.Scale, 1),
				Vector:     vec(e.Vector),
				Pressure:   e.Pressure,
				X1:         e.X1,
				X2:         orDefault(e.X2, 1),
				P1:         p1,
				P2:         orDefault(e.P2, p1),
			})
		}
		for _, c := range lc.Combinations {
			out.Combinations = append(out.Combinations, Combination{Scale: c.Scale, LoadCaseID: c.LC})
		}
		if err := m.AddLoadCase(out); err != nil {
			return nil, err
		}
	}
	return m, nil
}
