package skin

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/notargets/femprops/bdf"
	"github.com/notargets/femprops/model"
)

// Write emits the plan as a self-contained bulk-data dump: nodes, coordinate
// systems, then the solids and/or the shells, then ENDDATA. Nothing reaches
// out unless the whole dump could be built.
func (p *Plan) Write(out io.Writer, acc model.Accessor, format bdf.Format) error {
	var buf bytes.Buffer
	w, err := bdf.NewWriter(&buf, format)
	if err != nil {
		return model.NewConfigurationError("%v", err)
	}
	w.Comment(fmt.Sprintf(" skin: %d boundary faces, %d interior faces discarded",
		len(p.Faces.Boundary), p.Faces.Interior))
	if r := p.Allocated.Elements; r.Len() > 0 {
		w.Comment(fmt.Sprintf(" shells %d-%d, properties %d-%d, materials %d-%d",
			r.First, r.Last, p.Allocated.Properties.First, p.Allocated.Properties.Last,
			p.Allocated.Materials.First, p.Allocated.Materials.Last))
	}

	for _, nid := range p.NodeIDs {
		n, err := acc.Node(nid)
		if err != nil {
			return err
		}
		w.Card(bdf.GridCard(n))
	}
	for _, cid := range p.CoordIDs {
		c, err := acc.Coord(cid)
		if err != nil {
			return err
		}
		w.Card(bdf.Cord2RCard(c))
	}

	if len(p.SolidProperties) > 0 {
		w.Comment(" solids")
	}
	for _, pid := range p.SolidProperties {
		prop, err := acc.Property(pid)
		if err != nil {
			return err
		}
		card, err := bdf.PropertyCard(prop)
		if err != nil {
			return err
		}
		w.Card(card)
	}
	for _, mid := range p.SolidMaterials {
		mat, err := acc.Material(mid)
		if err != nil {
			return err
		}
		card, err := bdf.MaterialCard(mat)
		if err != nil {
			return err
		}
		w.Card(card)
	}
	if len(p.SolidProperties) > 0 {
		for _, eid := range p.Solids {
			e, err := acc.Element(eid)
			if err != nil {
				return err
			}
			w.Card(bdf.ElementCard(e))
		}
	}

	if len(p.Shells) > 0 {
		w.Comment(" shells")
	}
	for _, prop := range p.ShellProperties {
		card, err := bdf.PropertyCard(prop)
		if err != nil {
			return err
		}
		w.Card(card)
	}
	for _, mat := range p.ShellMaterials {
		card, err := bdf.MaterialCard(mat)
		if err != nil {
			return err
		}
		w.Card(card)
	}
	for _, e := range p.Shells {
		w.Card(bdf.ElementCard(e))
	}
	if err := w.End(); err != nil {
		return err
	}
	_, err = out.Write(buf.Bytes())
	return err
}

// Extract plans the skin of a model and writes it to out
func Extract(acc model.Accessor, out io.Writer, opts Options, format bdf.Format) (*Plan, error) {
	p, err := NewPlan(acc, opts)
	if err != nil {
		return nil, err
	}
	if err := p.Write(out, acc, format); err != nil {
		return nil, err
	}
	return p, nil
}

// ExtractFile writes the skin to path
func ExtractFile(acc model.Accessor, path string, opts Options, format bdf.Format) (*Plan, error) {
	var buf bytes.Buffer
	p, err := Extract(acc, &buf, opts, format)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	return p, nil
}
