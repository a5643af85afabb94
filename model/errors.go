package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedIdealization = errors.New("unsupported idealization")
	ErrZeroMass                = errors.New("zero mass")
	ErrLoadCaseCycle           = errors.New("load case cycle")
	ErrUnsupportedFaceShape    = errors.New("unsupported face shape")
	ErrConfiguration           = errors.New("configuration error")
	ErrNotFound                = errors.New("not found")
)

// UnsupportedIdealizationError reports a property/element type combination
// that has no formula and is not on a skip-list.
type UnsupportedIdealizationError struct {
	Operation    string
	ElementID    int
	ElementType  string
	PropertyID   int
	PropertyType string
}

func (e *UnsupportedIdealizationError) Error() string {
	if e.ElementType == "" {
		return fmt.Sprintf("%s: %s (pid=%d): %v", e.Operation, e.PropertyType, e.PropertyID, ErrUnsupportedIdealization)
	}
	return fmt.Sprintf("%s: %s (eid=%d) with %s (pid=%d): %v",
		e.Operation, e.ElementType, e.ElementID, e.PropertyType, e.PropertyID, ErrUnsupportedIdealization)
}

func (e *UnsupportedIdealizationError) Unwrap() error { return ErrUnsupportedIdealization }

type ZeroMassError struct {
	Elements int
	Masses   int
}

func (e *ZeroMassError) Error() string {
	return fmt.Sprintf("center of gravity of %d elements and %d mass elements is undefined: %v",
		e.Elements, e.Masses, ErrZeroMass)
}

func (e *ZeroMassError) Unwrap() error { return ErrZeroMass }

// LoadCaseCycleError carries the chain of load case ids that closes the cycle
type LoadCaseCycleError struct {
	Path []int
}

func (e *LoadCaseCycleError) Error() string {
	ids := make([]string, len(e.Path))
	for i, id := range e.Path {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("load case %s: %v", strings.Join(ids, " -> "), ErrLoadCaseCycle)
}

func (e *LoadCaseCycleError) Unwrap() error { return ErrLoadCaseCycle }

type UnsupportedFaceShapeError struct {
	ElementID int
	Face      []int
}

func (e *UnsupportedFaceShapeError) Error() string {
	return fmt.Sprintf("face %v of element %d has %d nodes: %v",
		e.Face, e.ElementID, len(e.Face), ErrUnsupportedFaceShape)
}

func (e *UnsupportedFaceShapeError) Unwrap() error { return ErrUnsupportedFaceShape }

type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Msg, ErrConfiguration)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// NewConfigurationError formats a ConfigurationError
func NewConfigurationError(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Kind, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
