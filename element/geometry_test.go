package element

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

var unitCube = []r3.Vec{
	{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestPlanarGeometryTriangle(t *testing.T) {
	g, err := PlanarGeometry(CTRIA3, []r3.Vec{{X: 0}, {X: 2}, {Y: 2}})
	if err != nil {
		t.Fatalf("PlanarGeometry: %v", err)
	}
	if !near(g.Area, 2) {
		t.Errorf("expected area 2, got %v", g.Area)
	}
	if !near(g.Centroid.X, 2./3) || !near(g.Centroid.Y, 2./3) {
		t.Errorf("unexpected centroid %v", g.Centroid)
	}
	if g.Normal != (r3.Vec{Z: 1}) {
		t.Errorf("expected +z normal, got %v", g.Normal)
	}
}

func TestPlanarGeometryQuadCentroid(t *testing.T) {
	// Trapezoid with parallel sides 2 (y=0) and 1 (y=1)
	xyz := []r3.Vec{{X: 0}, {X: 2}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	g, err := PlanarGeometry(CQUAD4, xyz)
	if err != nil {
		t.Fatalf("PlanarGeometry: %v", err)
	}
	if !near(g.Area, 1.5) {
		t.Errorf("expected area 1.5, got %v", g.Area)
	}
	// Area weighted centroid of the trapezoid, y = h(a+2b)/(3(a+b))
	if !near(g.Centroid.Y, 4./9) {
		t.Errorf("expected centroid y 4/9, got %v", g.Centroid.Y)
	}
	if !near(g.Centroid.X, 7./9) {
		t.Errorf("expected centroid x 7/9, got %v", g.Centroid.X)
	}
}

func TestSolidGeometryVolumes(t *testing.T) {
	tests := []struct {
		name   string
		typ    Type
		xyz    []r3.Vec
		volume float64
		center r3.Vec
	}{
		{"tet", CTETRA, []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}, 1. / 6, r3.Vec{X: 0.25, Y: 0.25, Z: 0.25}},
		{"penta", CPENTA, []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}, {X: 1, Z: 1}, {Y: 1, Z: 1}}, 0.5, r3.Vec{X: 1. / 3, Y: 1. / 3, Z: 0.5}},
		{"hexa", CHEXA, unitCube, 1, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}},
		{"pyram", CPYRAM, []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}, {X: 0.5, Y: 0.5, Z: 3}}, 1, r3.Vec{X: 0.5, Y: 0.5, Z: 0.75}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := SolidGeometry(tt.typ, tt.xyz)
			if err != nil {
				t.Fatalf("SolidGeometry: %v", err)
			}
			if !near(g.Volume, tt.volume) {
				t.Errorf("expected volume %v, got %v", tt.volume, g.Volume)
			}
			if r3.Norm(r3.Sub(g.Centroid, tt.center)) > 1e-12 {
				t.Errorf("expected centroid %v, got %v", tt.center, g.Centroid)
			}
		})
	}
}

func TestSolidGeometryInvertedElement(t *testing.T) {
	inverted := []r3.Vec{{}, {Y: 1}, {X: 1}, {Z: 1}}
	g, err := SolidGeometry(CTETRA, inverted)
	if err != nil {
		t.Fatalf("SolidGeometry: %v", err)
	}
	if !near(g.Volume, 1./6) {
		t.Errorf("expected positive volume 1/6, got %v", g.Volume)
	}
}

func TestLength(t *testing.T) {
	l, err := Length([]r3.Vec{{X: 1}, {X: 4, Y: 4}})
	if err != nil {
		t.Fatalf("Length: %v", err)
	}
	if !near(l, 5) {
		t.Errorf("expected 5, got %v", l)
	}
	if _, err := Length([]r3.Vec{{}}); err == nil {
		t.Error("expected an error for a single position")
	}
}
