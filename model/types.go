package model

import (
	"math"

	"github.com/notargets/femprops/element"
	"gonum.org/v1/gonum/spatial/r3"
)

// Node is a grid point; Position is expressed in coordinate system CP
type Node struct {
	ID       int
	CP       int
	Position r3.Vec
	CD       int
}

// Element is a structural element. PropertyID is zero for a CONROD, whose
// section is carried inline by Rod.
type Element struct {
	ID         int
	Type       element.Type
	PropertyID int
	NodeIDs    []int
	Rod        *RodSection
}

// RodSection is the section of a CONROD
type RodSection struct {
	MaterialID int
	Area       float64
	NSM        float64
}

// Property returns the PROD equivalent of the section
func (r *RodSection) Property() *Property {
	return &Property{Type: PROD, MaterialID: r.MaterialID, Area: r.Area, NSM: r.NSM}
}

type PropertyType string

const (
	PSHELL PropertyType = "PSHELL"
	PSHEAR PropertyType = "PSHEAR"
	PCOMP  PropertyType = "PCOMP"
	PCOMPG PropertyType = "PCOMPG"

	PBAR   PropertyType = "PBAR"
	PBARL  PropertyType = "PBARL"
	PBEAM  PropertyType = "PBEAM"
	PBEAML PropertyType = "PBEAML"
	PROD   PropertyType = "PROD"
	PTUBE  PropertyType = "PTUBE"

	PSOLID  PropertyType = "PSOLID"
	PLSOLID PropertyType = "PLSOLID"
	PCOMPS  PropertyType = "PCOMPS"

	PLPLANE PropertyType = "PLPLANE"
	PPLANE  PropertyType = "PPLANE"
	PELAS   PropertyType = "PELAS"
	PELAST  PropertyType = "PELAST"
	PDAMP   PropertyType = "PDAMP"
	PDAMPT  PropertyType = "PDAMPT"
	PDAMP5  PropertyType = "PDAMP5"
	PBUSH   PropertyType = "PBUSH"
	PBUSH1D PropertyType = "PBUSH1D"
	PBUSH2D PropertyType = "PBUSH2D"
	PBUSHT  PropertyType = "PBUSHT"
	PFAST   PropertyType = "PFAST"
	PGAP    PropertyType = "PGAP"
	PRAC2D  PropertyType = "PRAC2D"
	PRAC3D  PropertyType = "PRAC3D"
	PCONEAX PropertyType = "PCONEAX"
	PVISC   PropertyType = "PVISC"
	PBCOMP  PropertyType = "PBCOMP"
	PBEND   PropertyType = "PBEND"
)

// Ply is one layer of a composite property
type Ply struct {
	MaterialID int
	Thickness  float64
}

// Property holds the attributes used by the extent formulas; which fields are
// meaningful depends on Type
type Property struct {
	ID         int
	Type       PropertyType
	MaterialID int
	Thickness  float64 // Shell thickness
	NSM        float64 // Nonstructural mass per area (shells) or per length (lines)
	Area       float64 // Line cross-sectional area

	OuterDiameter float64 // PTUBE
	WallThickness float64 // PTUBE, zero for a solid rod

	Plies []Ply // PCOMP, PCOMPG, PCOMPS
}

// SectionArea returns the cross-sectional area of a line property
func (p *Property) SectionArea() float64 {
	if p.Type == PTUBE && p.Area == 0 && p.OuterDiameter > 0 {
		inner := 0.
		if p.WallThickness > 0 {
			inner = p.OuterDiameter - 2*p.WallThickness
		}
		return math.Pi * (p.OuterDiameter*p.OuterDiameter - inner*inner) / 4
	}
	return p.Area
}

// TotalThickness returns the smeared thickness of a layered property
func (p *Property) TotalThickness() float64 {
	t := 0.
	for _, ply := range p.Plies {
		t += ply.Thickness
	}
	return t
}

// Mid returns the material that characterises a solid or layered property
func (p *Property) Mid() int {
	if p.MaterialID == 0 && len(p.Plies) > 0 {
		return p.Plies[0].MaterialID
	}
	return p.MaterialID
}

type Material struct {
	ID   int
	Type string // MAT1 unless stated
	E    float64
	G    float64
	Nu   float64
	Rho  float64
}

// Coord is a rectangular system defined by three points in system RID:
// the origin A, a point B on the z axis and a point C in the xz plane.
type Coord struct {
	ID   int
	Type string // CORD2R
	RID  int
	A    r3.Vec
	B    r3.Vec
	C    r3.Vec
}

// MassElement is a concentrated mass attached to a node with an optional
// offset in the global frame
type MassElement struct {
	ID     int
	Type   string // CONM1, CONM2, CMASS1..CMASS4
	NodeID int
	Offset r3.Vec
	Mass   float64
}

type LoadKind uint8

const (
	Force LoadKind = iota
	Moment
	Pressure
	Distributed
	Gravity
)

func (k LoadKind) String() string {
	switch k {
	case Force:
		return "force"
	case Moment:
		return "moment"
	case Pressure:
		return "pressure"
	case Distributed:
		return "distributed"
	case Gravity:
		return "gravity"
	}
	return "unknown"
}

// LoadEntry is one elementary load of a load case.
//
//	Force, Moment: Scale * Vector at NodeID, Vector in system CoordID. With
//	               two NodeIDs the direction is the unit vector from the first
//	               to the second, with four it is the unit (G2-G1) x (G4-G3),
//	               and Vector is not used (FORCE1/2, MOMENT1/2)
//	Pressure:      Scale * Pressure on each of ElementIDs along the element
//	               normal, or on the face through three or four NodeIDs (PLOAD)
//	Distributed:   Scale * per-length load varying from P1 at X1 to P2 at X2
//	               (fractions of the element length) on each of ElementIDs,
//	               direction Vector in the global frame. X1 == X2 is a
//	               concentrated force P1 at X1.
//	Gravity:       Scale * Vector acceleration, accepted but not summed
type LoadEntry struct {
	Kind       LoadKind
	Card       string
	NodeID     int
	ElementIDs []int
	NodeIDs    []int
	CoordID    int
	Scale      float64
	Vector     r3.Vec
	Pressure   float64
	X1, X2     float64
	P1, P2     float64
}

// Combination references another load case with a scale factor
type Combination struct {
	Scale      float64
	LoadCaseID int
}

// LoadCase superposes its own entries and the referenced load cases; Scale
// multiplies everything
type LoadCase struct {
	ID           int
	Scale        float64
	Entries      []LoadEntry
	Combinations []Combination
}
