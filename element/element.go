package element

import "fmt"

type Dimensionality uint8

const (
	D0 Dimensionality = iota
	D1
	D2
	D3
)

type ElementGeometry uint8

const (
	Tet ElementGeometry = iota
	Hex
	Prism
	Pyramid
	Tri
	Rectangle
	Line
	Point // scalar springs, dampers, bushings and gaps
)

func (g ElementGeometry) String() string {
	switch g {
	case Tet:
		return "Tet"
	case Hex:
		return "Hex"
	case Prism:
		return "Prism"
	case Pyramid:
		return "Pyramid"
	case Tri:
		return "Tri"
	case Rectangle:
		return "Rectangle"
	case Line:
		return "Line"
	case Point:
		return "Point"
	}
	return fmt.Sprintf("ElementGeometry(%d)", uint8(g))
}

func (g ElementGeometry) Dimensions() Dimensionality {
	switch g {
	case Tet, Hex, Prism, Pyramid:
		return D3
	case Tri, Rectangle:
		return D2
	case Line:
		return D1
	}
	return D0
}

// Type is the bulk-data card name of an element, e.g. "CQUAD4".
type Type string

const (
	CTRIA3 Type = "CTRIA3"
	CTRIA6 Type = "CTRIA6"
	CTRIAR Type = "CTRIAR"
	CQUAD4 Type = "CQUAD4"
	CQUAD8 Type = "CQUAD8"
	CQUADR Type = "CQUADR"
	CQUAD  Type = "CQUAD"
	CSHEAR Type = "CSHEAR"

	CBAR   Type = "CBAR"
	CBEAM  Type = "CBEAM"
	CROD   Type = "CROD"
	CTUBE  Type = "CTUBE"
	CONROD Type = "CONROD"
	CBEND  Type = "CBEND"

	CTETRA Type = "CTETRA"
	CPENTA Type = "CPENTA"
	CHEXA  Type = "CHEXA"
	CPYRAM Type = "CPYRAM"

	CELAS1  Type = "CELAS1"
	CELAS2  Type = "CELAS2"
	CELAS3  Type = "CELAS3"
	CELAS4  Type = "CELAS4"
	CDAMP1  Type = "CDAMP1"
	CDAMP2  Type = "CDAMP2"
	CDAMP3  Type = "CDAMP3"
	CDAMP4  Type = "CDAMP4"
	CDAMP5  Type = "CDAMP5"
	CBUSH   Type = "CBUSH"
	CBUSH1D Type = "CBUSH1D"
	CBUSH2D Type = "CBUSH2D"
	CGAP    Type = "CGAP"
	CVISC   Type = "CVISC"
	CFAST   Type = "CFAST"
)

// Info describes the topology of an element type
type Info struct {
	Geometry ElementGeometry
	Corners  int // Number of corner (vertex) nodes
	MaxNodes int // Number of nodes of the fully populated higher-order variant
}

var library = map[Type]Info{
	CTRIA3: {Tri, 3, 3},
	CTRIA6: {Tri, 3, 6},
	CTRIAR: {Tri, 3, 3},
	CQUAD4: {Rectangle, 4, 4},
	CQUAD8: {Rectangle, 4, 8},
	CQUADR: {Rectangle, 4, 4},
	CQUAD:  {Rectangle, 4, 9},
	CSHEAR: {Rectangle, 4, 4},

	CBAR:   {Line, 2, 2},
	CBEAM:  {Line, 2, 2},
	CROD:   {Line, 2, 2},
	CTUBE:  {Line, 2, 2},
	CONROD: {Line, 2, 2},
	CBEND:  {Line, 2, 2},

	CTETRA: {Tet, 4, 10},
	CPENTA: {Prism, 6, 15},
	CHEXA:  {Hex, 8, 20},
	CPYRAM: {Pyramid, 5, 13},

	CELAS1:  {Point, 2, 2},
	CELAS2:  {Point, 2, 2},
	CELAS3:  {Point, 2, 2},
	CELAS4:  {Point, 2, 2},
	CDAMP1:  {Point, 2, 2},
	CDAMP2:  {Point, 2, 2},
	CDAMP3:  {Point, 2, 2},
	CDAMP4:  {Point, 2, 2},
	CDAMP5:  {Point, 2, 2},
	CBUSH:   {Point, 2, 2},
	CBUSH1D: {Point, 2, 2},
	CBUSH2D: {Point, 2, 2},
	CGAP:    {Point, 2, 2},
	CVISC:   {Point, 2, 2},
	CFAST:   {Point, 2, 2},
}

// Lookup returns the topology of an element type
func Lookup(t Type) (Info, bool) {
	info, ok := library[t]
	return info, ok
}

func (t Type) Geometry() (ElementGeometry, bool) {
	info, ok := library[t]
	return info.Geometry, ok
}

// IsShell reports a planar (triangle or quadrilateral) element
func (t Type) IsShell() bool {
	g, ok := t.Geometry()
	return ok && (g == Tri || g == Rectangle)
}

func (t Type) IsLine() bool {
	g, ok := t.Geometry()
	return ok && g == Line
}

// IsSolid reports any volumetric element, pyramids included
func (t Type) IsSolid() bool {
	g, ok := t.Geometry()
	return ok && g.Dimensions() == D3
}

// HasVolume reports the solids whose volume is computed from their own geometry
func (t Type) HasVolume() bool {
	return t == CTETRA || t == CPENTA || t == CHEXA
}
