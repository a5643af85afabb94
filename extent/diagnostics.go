package extent

import (
	"github.com/notargets/femprops/element"
	"github.com/notargets/femprops/model"
	"github.com/notargets/femprops/utils"
)

// SkipKey identifies a skipped element/property type combination
type SkipKey struct {
	ElementType  element.Type
	PropertyType model.PropertyType
}

// Diagnostics collects skipped combinations, each reported once per invocation
type Diagnostics struct {
	operation string
	log       *utils.Logger
	seen      map[SkipKey]bool
	order     []SkipKey
}

func NewDiagnostics(operation string, log *utils.Logger) *Diagnostics {
	return &Diagnostics{
		operation: operation,
		log:       utils.OrNop(log),
		seen:      make(map[SkipKey]bool),
	}
}

func (d *Diagnostics) Skip(et element.Type, pt model.PropertyType) {
	key := SkipKey{ElementType: et, PropertyType: pt}
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	d.order = append(d.order, key)
	d.log.Debug("skipping "+d.operation, "element_type", string(et), "property_type", string(pt))
}

// Skipped returns the distinct skipped combinations in order of first occurrence
func (d *Diagnostics) Skipped() []SkipKey {
	out := make([]SkipKey, len(d.order))
	copy(out, d.order)
	return out
}
