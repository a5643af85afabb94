// Package bdf writes and reads the fixed-field bulk-data cards of a model
package bdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field widths
const (
	Small = 8
	Large = 16
)

// compact shortens a Go formatted float to the bulk-data form:
// "0.3" -> ".3", "3e+07" -> "3.+7", "1.5e-05" -> "1.5-5"
func compact(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	mant, exp, hasExp := strings.Cut(s, "e")
	if !strings.Contains(mant, ".") {
		mant += "."
	}
	mant = strings.TrimPrefix(mant, "0")
	if mant == "." {
		mant = "0."
	}
	if hasExp {
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			exp = ""
		} else {
			exp = sign + digits
		}
	}
	if neg {
		mant = "-" + mant
	}
	return mant + exp
}

// formatSingle returns the shortest faithful representation of v that fits
// width characters; ok is false when none does
func formatSingle(v float64, width int) (string, bool) {
	if v == 0 {
		return "0.", true
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		if s := strconv.FormatFloat(v, 'f', -1, 64) + "."; len(s) <= width {
			return s, true
		}
	}
	// Exact first, then lose digits until the field is wide enough
	if s := compact(strconv.FormatFloat(v, 'g', -1, 64)); len(s) <= width {
		return s, true
	}
	for prec := width; prec >= 1; prec-- {
		if s := compact(strconv.FormatFloat(v, 'g', prec, 64)); len(s) <= width {
			return s, true
		}
	}
	return "", false
}

// formatDouble writes v with a D exponent in a large field
func formatDouble(v float64) string {
	if v == 0 {
		return "0.0D+0"
	}
	for prec := Large - 6; prec >= 1; prec-- {
		s := strconv.FormatFloat(v, 'e', prec, 64)
		mant, exp, _ := strings.Cut(s, "e")
		s = mant + "D" + exp
		if len(s) <= Large {
			return s
		}
	}
	return strconv.FormatFloat(v, 'e', 1, 64)
}

// format renders one field value; blank fields are nil
func format(v any, width int, double bool) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case int:
		s := strconv.Itoa(x)
		return s, len(s) <= width
	case float64:
		if double {
			s := formatDouble(x)
			return s, len(s) <= width
		}
		return formatSingle(x, width)
	case string:
		return x, len(x) <= width
	}
	panic(fmt.Sprintf("bdf: unsupported field type %T", v))
}

// ParseFloat reads a bulk-data real: "1.5", ".3", "3.+7", "2.5-3", "1.0D+02"
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	t := strings.NewReplacer("D", "E", "d", "E", "e", "E").Replace(s)
	if !strings.Contains(t, "E") {
		// An exponent sign past the first character has an implicit E
		if i := strings.LastIndexAny(t, "+-"); i > 0 {
			t = t[:i] + "E" + t[i:]
		}
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid real %q", s)
	}
	return v, nil
}
