package bdf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/femprops/element"
	"github.com/notargets/femprops/model"
	"github.com/notargets/femprops/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadFile reads the bulk data of a file, see Read
func ReadFile(path string, log *utils.Logger) (*model.Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := Read(file, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// rawCard is a card split into trimmed string fields; fields[0] is the name
type rawCard struct {
	line   int
	fields []string
}

func (c rawCard) name() string { return c.fields[0] }

func (c rawCard) str(i int) string {
	if i >= len(c.fields) {
		return ""
	}
	return c.fields[i]
}

// fields reads the values of one card and keeps the first conversion error
type fields struct {
	c   rawCard
	err error
}

func (f *fields) fail(i int, err error) {
	if f.err == nil {
		f.err = fmt.Errorf("line %d: %s field %d: %w", f.c.line, f.c.name(), i, err)
	}
}

func (f *fields) int(i int) int {
	s := f.c.str(i)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f.fail(i, fmt.Errorf("invalid integer %q", s))
	}
	return v
}

func (f *fields) float(i int) float64 {
	v, err := ParseFloat(f.c.str(i))
	if err != nil {
		f.fail(i, err)
	}
	return v
}

// floatOr returns def for a blank field
func (f *fields) floatOr(i int, def float64) float64 {
	if f.c.str(i) == "" {
		return def
	}
	return f.float(i)
}

func (f *fields) vec(i int) r3.Vec {
	return r3.Vec{X: f.float(i), Y: f.float(i + 1), Z: f.float(i + 2)}
}

// splitLine returns the fields of one physical line after the name field and
// whether the line continues the previous card
func splitLine(line string) (out []string, continuation bool) {
	if strings.Contains(line, ",") {
		out = strings.Split(line, ",")
		for i := range out {
			out[i] = strings.TrimSpace(out[i])
		}
		first := out[0]
		continuation = first == "" || strings.HasPrefix(first, "+") || strings.HasPrefix(first, "*")
		return out[1:], continuation
	}
	head := line
	if len(head) > 8 {
		head = head[:8]
	}
	head = strings.TrimSpace(head)
	continuation = head == "" || strings.HasPrefix(head, "+") || strings.HasPrefix(head, "*")
	width, count := Small, 8
	if strings.HasSuffix(head, "*") || strings.HasPrefix(head, "*") {
		width, count = Large, 4
	}
	rest := ""
	if len(line) > 8 {
		rest = line[8:]
	}
	for i := 0; i < count; i++ {
		lo, hi := i*width, (i+1)*width
		if lo >= len(rest) {
			out = append(out, "")
			continue
		}
		if hi > len(rest) {
			hi = len(rest)
		}
		out = append(out, strings.TrimSpace(rest[lo:hi]))
	}
	return out, continuation
}

func cardName(line string) string {
	if i := strings.IndexByte(line, ','); i >= 0 {
		line = line[:i]
	} else if len(line) > 8 {
		line = line[:8]
	}
	return strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(line), "*"))
}

// scan splits the bulk data into cards, stopping at ENDDATA
func scan(r io.Reader) ([]rawCard, error) {
	var cards []rawCard
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '$'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out, continuation := splitLine(line)
		if continuation {
			if len(cards) == 0 {
				return nil, fmt.Errorf("line %d: continuation without a card", lineNo)
			}
			last := &cards[len(cards)-1]
			last.fields = append(last.fields, out...)
			continue
		}
		name := cardName(line)
		if name == "ENDDATA" {
			break
		}
		cards = append(cards, rawCard{line: lineNo, fields: append([]string{name}, out...)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

// Read parses the bulk data cards this package understands. Other cards are
// skipped, each name reported once through log.
func Read(r io.Reader, log *utils.Logger) (*model.Model, error) {
	log = utils.OrNop(log)
	cards, err := scan(r)
	if err != nil {
		return nil, err
	}
	m := model.New()
	skipped := make(map[string]bool)
	for _, c := range cards {
		parse, ok := parsers[c.name()]
		if !ok && readsElement(element.Type(c.name())) {
			parse, ok = parseElement, true
		}
		if !ok {
			if !skipped[c.name()] {
				skipped[c.name()] = true
				log.Debug("skipping card", "card", c.name(), "line", c.line)
			}
			continue
		}
		if err := parse(m, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
