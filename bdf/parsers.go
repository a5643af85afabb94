package bdf

import (
	"fmt"
	"strings"

	"github.com/notargets/femprops/element"
	"github.com/notargets/femprops/model"
)

type parser func(m *model.Model, c rawCard) error

var parsers map[string]parser

func init() {
	parsers = map[string]parser{
		"GRID":    parseGrid,
		"CORD2R":  parseCord2R,
		"PSHELL":  parsePShell,
		"PSOLID":  parseSolidProperty,
		"PLSOLID": parseSolidProperty,
		"PBAR":    parseLineProperty,
		"PROD":    parseLineProperty,
		"PCOMPS":  parsePComps,
		"CONROD":  parseConrod,
		"MAT1":    parseMat1,
		"CONM2":   parseConm2,
		"PARAM":   parseParam,
		"FORCE":   parseNodal,
		"MOMENT":  parseNodal,
		"FORCE1":  parseNodalByNodes,
		"FORCE2":  parseNodalByNodes,
		"MOMENT1": parseNodalByNodes,
		"MOMENT2": parseNodalByNodes,
		"PLOAD":   parsePload,
		"PLOAD2":  parsePload2,
		"PLOAD4":  parsePload4,
		"PLOAD1":  parsePload1,
		"GRAV":    parseGrav,
		"LOAD":    parseLoad,
	}
}

// readsElement reports the element cards laid out as EID PID G1 G2 ...
func readsElement(t element.Type) bool {
	return t != element.CONROD && (t.IsShell() || t.IsLine() || t.IsSolid())
}

func lineErr(c rawCard, err error) error {
	return fmt.Errorf("line %d: %s: %w", c.line, c.name(), err)
}

func parseGrid(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	n := &model.Node{ID: f.int(1), CP: f.int(2), Position: f.vec(3), CD: f.int(6)}
	if f.err != nil {
		return f.err
	}
	if err := m.AddNode(n); err != nil {
		return lineErr(c, err)
	}
	return nil
}

func parseCord2R(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	cs := &model.Coord{ID: f.int(1), Type: "CORD2R", RID: f.int(2), A: f.vec(3), B: f.vec(6), C: f.vec(9)}
	if f.err != nil {
		return f.err
	}
	if err := m.AddCoord(cs); err != nil {
		return lineErr(c, err)
	}
	return nil
}

func parseElement(m *model.Model, c rawCard) error {
	t := element.Type(c.name())
	info, _ := element.Lookup(t)
	f := &fields{c: c}
	e := &model.Element{ID: f.int(1), Type: t, PropertyID: f.int(2)}
	for i := 0; i < info.MaxNodes; i++ {
		e.NodeIDs = append(e.NodeIDs, f.int(3+i))
	}
	if f.err != nil {
		return f.err
	}
	// Drop the blank trailing higher-order nodes
	n := len(e.NodeIDs)
	for n > info.Corners && e.NodeIDs[n-1] == 0 {
		n--
	}
	e.NodeIDs = e.NodeIDs[:n]
	if err := m.AddElement(e); err != nil {
		return lineErr(c, err)
	}
	return nil
}

// parseConrod reads EID G1 G2 MID A J C NSM
func parseConrod(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	e := &model.Element{ID: f.int(1), Type: element.CONROD, NodeIDs: []int{f.int(2), f.int(3)},
		Rod: &model.RodSection{MaterialID: f.int(4), Area: f.float(5), NSM: f.float(8)}}
	if f.err != nil {
		return f.err
	}
	if err := m.AddElement(e); err != nil {
		return lineErr(c, err)
	}
	return nil
}

func addProperty(m *model.Model, c rawCard, f *fields, p *model.Property) error {
	if f.err != nil {
		return f.err
	}
	if err := m.AddProperty(p); err != nil {
		return lineErr(c, err)
	}
	return nil
}

func parsePShell(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	p := &model.Property{ID: f.int(1), Type: model.PSHELL, MaterialID: f.int(2),
		Thickness: f.float(3), NSM: f.float(8)}
	return addProperty(m, c, f, p)
}

func parseSolidProperty(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	p := &model.Property{ID: f.int(1), Type: model.PropertyType(c.name()), MaterialID: f.int(2)}
	return addProperty(m, c, f, p)
}

func parseLineProperty(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	nsm := 7
	if c.name() == "PROD" {
		nsm = 6
	}
	p := &model.Property{ID: f.int(1), Type: model.PropertyType(c.name()), MaterialID: f.int(2),
		Area: f.float(3), NSM: f.float(nsm)}
	return addProperty(m, c, f, p)
}

func parsePComps(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	p := &model.Property{ID: f.int(1), Type: model.PCOMPS}
	for i := 9; i+2 < len(c.fields); i += 8 {
		if c.str(i+1) == "" {
			continue
		}
		p.Plies = append(p.Plies, model.Ply{MaterialID: f.int(i + 1), Thickness: f.float(i + 2)})
	}
	return addProperty(m, c, f, p)
}

func parseMat1(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	mat := &model.Material{ID: f.int(1), Type: "MAT1", E: f.float(2), G: f.float(3),
		Nu: f.float(4), Rho: f.float(5)}
	if f.err != nil {
		return f.err
	}
	if err := m.AddMaterial(mat); err != nil {
		return lineErr(c, err)
	}
	return nil
}

func parseConm2(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	me := &model.MassElement{ID: f.int(1), Type: "CONM2", NodeID: f.int(2), Mass: f.float(4), Offset: f.vec(5)}
	if cid := f.int(3); cid != 0 {
		return lineErr(c, fmt.Errorf("offsets in coordinate system %d are not supported", cid))
	}
	if f.err != nil {
		return f.err
	}
	if err := m.AddMass(me); err != nil {
		return lineErr(c, err)
	}
	return nil
}

func parseParam(m *model.Model, c rawCard) error {
	v, err := ParseFloat(c.str(2))
	if err != nil {
		// Only numeric parameters are kept
		return nil
	}
	m.Params[strings.ToUpper(c.str(1))] = v
	return nil
}

// loadSet returns load set sid, created with a unit scale on first use
func loadSet(m *model.Model, sid int) *model.LoadCase {
	lc, ok := m.LoadCases[sid]
	if !ok {
		lc = &model.LoadCase{ID: sid, Scale: 1}
		m.LoadCases[sid] = lc
	}
	return lc
}

func addEntry(m *model.Model, f *fields, sid int, e model.LoadEntry) error {
	if f.err != nil {
		return f.err
	}
	lc := loadSet(m, sid)
	if len(lc.Combinations) > 0 {
		return fmt.Errorf("line %d: %s: set %d is already a LOAD combination", f.c.line, f.c.name(), sid)
	}
	lc.Entries = append(lc.Entries, e)
	return nil
}

func parseNodal(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	kind := model.Force
	if c.name() == "MOMENT" {
		kind = model.Moment
	}
	e := model.LoadEntry{Kind: kind, Card: c.name(), NodeID: f.int(2), CoordID: f.int(3),
		Scale: f.float(4), Vector: f.vec(5)}
	return addEntry(m, f, f.int(1), e)
}

// parseNodalByNodes reads FORCE1/2 and MOMENT1/2, whose direction is set by
// two or four nodes
func parseNodalByNodes(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	name := c.name()
	kind := model.Force
	if strings.HasPrefix(name, "MOMENT") {
		kind = model.Moment
	}
	n := 2
	if strings.HasSuffix(name, "2") {
		n = 4
	}
	e := model.LoadEntry{Kind: kind, Card: name, NodeID: f.int(2), Scale: f.float(3)}
	for i := 0; i < n; i++ {
		e.NodeIDs = append(e.NodeIDs, f.int(4+i))
	}
	return addEntry(m, f, f.int(1), e)
}

func parsePload(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	e := model.LoadEntry{Kind: model.Pressure, Card: "PLOAD", Scale: 1, Pressure: f.float(2)}
	for i := 3; i <= 6; i++ {
		if nid := f.int(i); nid != 0 {
			e.NodeIDs = append(e.NodeIDs, nid)
		}
	}
	return addEntry(m, f, f.int(1), e)
}

func parsePload2(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	e := model.LoadEntry{Kind: model.Pressure, Card: "PLOAD2", Scale: 1, Pressure: f.float(2)}
	if strings.ToUpper(c.str(4)) == "THRU" {
		for id, last := f.int(3), f.int(5); id <= last; id++ {
			e.ElementIDs = append(e.ElementIDs, id)
		}
		return addEntry(m, f, f.int(1), e)
	}
	for i := 3; i <= 8; i++ {
		if eid := f.int(i); eid != 0 {
			e.ElementIDs = append(e.ElementIDs, eid)
		}
	}
	return addEntry(m, f, f.int(1), e)
}

func parsePload4(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	e := model.LoadEntry{Kind: model.Pressure, Card: "PLOAD4", Scale: 1, Pressure: f.float(3)}
	eid := f.int(2)
	e.ElementIDs = []int{eid}
	if strings.ToUpper(c.str(7)) == "THRU" {
		last := f.int(8)
		for id := eid + 1; id <= last; id++ {
			e.ElementIDs = append(e.ElementIDs, id)
		}
	}
	return addEntry(m, f, f.int(1), e)
}

var pload1Directions = map[string]int{"FX": 0, "FY": 1, "FZ": 2}

func parsePload1(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	axis, ok := pload1Directions[strings.ToUpper(c.str(3))]
	if !ok {
		return lineErr(c, fmt.Errorf("load type %q is not supported", c.str(3)))
	}
	if s := strings.ToUpper(c.str(4)); s != "FR" {
		return lineErr(c, fmt.Errorf("scale %q is not supported", c.str(4)))
	}
	e := model.LoadEntry{Kind: model.Distributed, Card: "PLOAD1", ElementIDs: []int{f.int(2)}, Scale: 1,
		X1: f.float(5), P1: f.float(6)}
	e.X2 = f.floatOr(7, e.X1)
	e.P2 = f.floatOr(8, e.P1)
	switch axis {
	case 0:
		e.Vector.X = 1
	case 1:
		e.Vector.Y = 1
	case 2:
		e.Vector.Z = 1
	}
	return addEntry(m, f, f.int(1), e)
}

func parseGrav(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	e := model.LoadEntry{Kind: model.Gravity, Card: "GRAV", CoordID: f.int(2), Scale: f.float(3), Vector: f.vec(4)}
	return addEntry(m, f, f.int(1), e)
}

func parseLoad(m *model.Model, c rawCard) error {
	f := &fields{c: c}
	sid := f.int(1)
	if _, ok := m.LoadCases[sid]; ok {
		return lineErr(c, fmt.Errorf("load set %d is defined twice", sid))
	}
	lc := &model.LoadCase{ID: sid, Scale: f.float(2)}
	for i := 3; i+1 < len(c.fields); i += 2 {
		if c.str(i) == "" && c.str(i+1) == "" {
			continue
		}
		lc.Combinations = append(lc.Combinations, model.Combination{Scale: f.float(i), LoadCaseID: f.int(i + 1)})
	}
	if f.err != nil {
		return f.err
	}
	m.LoadCases[sid] = lc
	return nil
}
