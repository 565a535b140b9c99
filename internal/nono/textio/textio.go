// Package textio reads and writes the line-based puzzle text grammar:
// width/height/maxrule directives, a rows/columns section marker, and
// comma- or whitespace-separated rule lines. It is the Go port of the
// reference's puzzle.c scanner, generalized to read from any io.Reader
// and report errors through a pluggable callback instead of a fixed
// stderr writer.
package textio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nonogram/solver/internal/core"
)

// ErrorFunc receives one parse diagnostic per call, tagged with the
// 1-based source line it concerns (0 if the problem spans the whole
// file, such as a missing width/height directive).
type ErrorFunc func(line int, format string, args ...interface{})

// Parse reads a puzzle description from r. ef is optional; when non-nil
// it receives every diagnostic, including ones that are eventually
// fatal. Parse returns an error whenever the grammar's required fields
// (width, height, exactly width column rules and height row rules)
// are not all satisfied, mirroring nonogram_fscanpuzzle's exit check.
func Parse(r io.Reader, ef ErrorFunc) (*core.Puzzle, error) {
	if ef == nil {
		ef = func(int, string, ...interface{}) {}
	}

	var (
		width, height, maxRule int
		haveWidth, haveHeight  bool
		onRows, onColumns      bool
		rows, cols             []core.Rule
		notes                  = core.NewNotes()
		lineNo                 int
		malformed              bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		lineNo++
		scanLine(scanner.Text(), lineNo, ef,
			&width, &height, &maxRule,
			&haveWidth, &haveHeight,
			&onRows, &onColumns,
			&rows, &cols, notes, &malformed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("textio: reading input: %w", err)
	}

	ok := true
	if !haveWidth {
		ef(0, "no width specified")
		ok = false
	}
	if !haveHeight {
		ef(0, "no height specified")
		ok = false
	}
	if haveHeight && len(rows) != height {
		ef(0, "expected %d row rules, got %d", height, len(rows))
		ok = false
	}
	if haveWidth && len(cols) != width {
		ef(0, "expected %d column rules, got %d", width, len(cols))
		ok = false
	}
	if malformed {
		ok = false
	}
	if !ok {
		return nil, fmt.Errorf("textio: puzzle text is incomplete or malformed")
	}

	p, err := core.New(width, height, rows, cols)
	if err != nil {
		return nil, err
	}
	p.Notes = notes
	return p, nil
}

// scanLine processes one input line, mutating the parse state held by
// its pointer arguments. Blank lines and comments are silently ignored.
func scanLine(raw string, lineNo int, ef ErrorFunc,
	width, height, maxRule *int,
	haveWidth, haveHeight *bool,
	onRows, onColumns *bool,
	rows, cols *[]core.Rule,
	notes *core.Notes,
	malformed *bool) {

	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "width":
		v, err := directiveInt(fields, lineNo, ef, "width")
		if err != nil {
			*malformed = true
			return
		}
		*width = v
		*haveWidth = true
		return
	case "height":
		v, err := directiveInt(fields, lineNo, ef, "height")
		if err != nil {
			*malformed = true
			return
		}
		*height = v
		*haveHeight = true
		return
	case "maxrule":
		v, err := directiveInt(fields, lineNo, ef, "maxrule")
		if err != nil {
			*malformed = true
			return
		}
		*maxRule = v
		return
	case "rows":
		*onRows, *onColumns = true, false
		if len(fields) > 1 {
			if v, err := strconv.Atoi(fields[1]); err == nil {
				_ = v // an inline count is accepted but not required downstream
			}
		}
		return
	case "columns":
		*onRows, *onColumns = false, true
		if len(fields) > 1 {
			if v, err := strconv.Atoi(fields[1]); err == nil {
				_ = v
			}
		}
		return
	}

	// Any other line starting with a letter is a note: the word itself
	// is the key, and the rest of the line (double-quoted) is the
	// value, e.g. `title "A Heart"`. This mirrors the reference scanner,
	// which treats every unrecognized alphabetic leading word as a note
	// key rather than reserving a single fixed "name" directive.
	if r := []rune(fields[0]); len(r) > 0 && isLetter(r[0]) {
		rest := strings.TrimSpace(line[len(fields[0]):])
		val, err := parseQuotedValue(rest)
		if err != nil {
			ef(lineNo, "malformed note %q: %s", fields[0], err)
			*malformed = true
			return
		}
		notes.Set(fields[0], val)
		return
	}

	if !*onRows && !*onColumns {
		ef(lineNo, "rule line %q appears before a rows/columns section is opened", line)
		*malformed = true
		return
	}

	rule, err := parseRule(line)
	if err != nil {
		ef(lineNo, "malformed rule line: %s", err)
		*malformed = true
		return
	}
	if *onRows {
		*rows = append(*rows, rule)
	} else {
		*cols = append(*cols, rule)
	}
}

func directiveInt(fields []string, lineNo int, ef ErrorFunc, name string) (int, error) {
	if len(fields) < 2 {
		ef(lineNo, "%s directive missing a value", name)
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil || v <= 0 {
		ef(lineNo, "%s directive has invalid value %q", name, fields[1])
		return 0, fmt.Errorf("invalid value")
	}
	return v, nil
}

// parseRule splits a rule line on commas and/or whitespace into a list
// of block lengths. A lone "0" denotes an empty rule (no blocks).
func parseRule(line string) (core.Rule, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty rule line")
	}
	if len(fields) == 1 {
		v, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", fields[0])
		}
		if v == 0 {
			return core.Rule{}, nil
		}
		if v < 0 {
			return nil, fmt.Errorf("negative block length %d", v)
		}
		return core.Rule{v}, nil
	}
	rule := make(core.Rule, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", f)
		}
		if v <= 0 {
			return nil, fmt.Errorf("non-positive block length %d", v)
		}
		rule = append(rule, v)
	}
	return rule, nil
}

// parseQuotedValue strips the surrounding double quotes from a note's
// value, which is everything after its key on the line.
func parseQuotedValue(rest string) (string, error) {
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", fmt.Errorf("value must be double-quoted")
	}
	return rest[1 : len(rest)-1], nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Write serializes a puzzle back into the grammar Parse accepts,
// columns before rows to match the reference scanner's preferred
// section order.
func Write(w io.Writer, p *core.Puzzle) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "width %d\n", p.Width)
	fmt.Fprintf(bw, "height %d\n", p.Height)
	fmt.Fprintln(bw, "columns")
	for _, r := range p.Col {
		writeRule(bw, r)
	}
	fmt.Fprintln(bw, "rows")
	for _, r := range p.Row {
		writeRule(bw, r)
	}
	return bw.Flush()
}

func writeRule(w *bufio.Writer, r core.Rule) {
	if len(r) == 0 {
		fmt.Fprintln(w, "0")
		return
	}
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = strconv.Itoa(v)
	}
	fmt.Fprintln(w, strings.Join(parts, ","))
}
