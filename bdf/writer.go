package bdf

import (
	"fmt"
	"io"
	"strings"
)

// Card is a card name followed by its field values: int, float64, string or
// nil for a blank field
type Card []any

func (c Card) Name() string {
	if len(c) == 0 {
		return ""
	}
	name, _ := c[0].(string)
	return name
}

// Format selects the field width and precision of written cards
type Format struct {
	Size   int // Small or Large
	Double bool
}

func (f Format) Validate() error {
	if f.Size != Small && f.Size != Large {
		return fmt.Errorf("field size must be %d or %d, got %d", Small, Large, f.Size)
	}
	if f.Double && f.Size != Large {
		return fmt.Errorf("double precision requires %d character fields", Large)
	}
	return nil
}

// Writer emits cards in one pass
type Writer struct {
	w      io.Writer
	format Format
	err    error
}

func NewWriter(w io.Writer, format Format) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	return &Writer{w: w, format: format}, nil
}

// Comment writes a "$" comment line
func (w *Writer) Comment(text string) {
	for _, line := range strings.Split(text, "\n") {
		w.printf("$%s\n", line)
	}
}

// Card writes a card in small field format, falling back to large field when
// a value does not fit in 8 characters
func (w *Writer) Card(c Card) {
	if w.err != nil {
		return
	}
	if w.format.Size == Small {
		if s, ok := PrintCard8(c); ok {
			w.printf("%s", s)
			return
		}
	}
	s, err := PrintCard16(c, w.format.Double)
	if err != nil {
		w.err = err
		return
	}
	w.printf("%s", s)
}

// End writes ENDDATA and returns the first error met while writing
func (w *Writer) End() error {
	w.printf("ENDDATA\n")
	return w.err
}

func (w *Writer) Err() error { return w.err }

func (w *Writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// trimBlank drops trailing blank fields
func trimBlank(fields []any) []any {
	n := len(fields)
	for n > 0 && fields[n-1] == nil {
		n--
	}
	return fields[:n]
}

// PrintCard8 renders a small field card; ok is false when a field is too wide
func PrintCard8(c Card) (string, bool) {
	name := c.Name()
	if len(name) > Small {
		return "", false
	}
	fields := trimBlank(c[1:])
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s", name)
	for i, v := range fields {
		if i > 0 && i%8 == 0 {
			b.WriteString("\n        ")
		}
		s, ok := format(v, Small, false)
		if !ok {
			return "", false
		}
		fmt.Fprintf(&b, "%8s", s)
	}
	b.WriteString("\n")
	return b.String(), true
}

// PrintCard16 renders a large field card, reals with a D exponent when double
func PrintCard16(c Card, double bool) (string, error) {
	name := c.Name()
	fields := trimBlank(c[1:])
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s", name+"*")
	for i, v := range fields {
		if i > 0 && i%4 == 0 {
			b.WriteString("\n*       ")
		}
		s, ok := format(v, Large, double)
		if !ok {
			return "", fmt.Errorf("%s field %d: %v does not fit %d characters", name, i+1, v, Large)
		}
		fmt.Fprintf(&b, "%16s", s)
	}
	b.WriteString("\n")
	return b.String(), nil
}
