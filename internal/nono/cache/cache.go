// Package cache implements a compact text encoding of puzzle rules and
// solved grids, packed into a short alphanumeric string suitable as a
// cache key or URL fragment. The format and bit layout are ported from
// the reference implementation's cache.c.
package cache

import (
	"fmt"
	"strings"

	"github.com/nonogram/solver/internal/core"
)

// alphabet is the reference's safe_chars: 64 characters that survive
// unescaped in a URL, used both as the self-delimited varint digits and
// as the 6-bit grid packing alphabet.
const alphabet = "0123456789" +
	"abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"._"

var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = int8(i)
	}
}

func decodeChar(c byte) int {
	return int(decodeTable[c])
}

// encodeLen appends v as a self-delimited varint: the first character's
// top bits select how many characters follow (1, 2, 3 or 4 total) and
// carries the high payload bits, while every character after the first
// carries 4 payload bits tagged with the continuation marker 0x20 kept
// disjoint from the 4-bit payload.
func encodeLen(out *strings.Builder, v uint) {
	var req int
	var mask, mark uint
	switch {
	case v > 1023:
		req, mask, mark = 4, 0x1, 0x3c
	case v > 127:
		req, mask, mark = 3, 0x3, 0x38
	case v > 31:
		req, mask, mark = 2, 0x7, 0x30
	default:
		req, mask, mark = 1, 0x1f, 0
	}
	for req > 0 {
		shift := uint(4 * (req - 1))
		out.WriteByte(alphabet[mark|((v>>shift)&mask)])
		req--
		mark, mask = 0x20, 0xf
	}
}

// decodeLen reads one self-delimited varint from the front of in,
// returning its value and how many bytes it consumed.
func decodeLen(in []byte) (v uint, consumed int, ok bool) {
	if len(in) == 0 {
		return 0, 0, false
	}
	key := decodeChar(in[0])
	if key < 0 {
		return 0, 0, false
	}
	var req int
	switch {
	case key >= 0x3e:
		return 0, 0, false
	case key >= 0x3c:
		req, v = 4, uint(key&0x1)
	case key >= 0x38:
		req, v = 3, uint(key&0x3)
	case key >= 0x30:
		req, v = 2, uint(key&0x7)
	default:
		req, v = 1, uint(key&0x1f)
	}
	if len(in) < req {
		return 0, 0, false
	}
	for i := 1; i < req; i++ {
		d := decodeChar(in[i])
		if d < 0 || d&0x30 != 0x20 {
			return 0, 0, false
		}
		v = v<<4 | uint(d&0xf)
	}
	return v, req, true
}

// encodeRules writes rules as a zero-terminated sequence of block
// lengths: every nonzero block length, then a trailing zero-length
// varint to mark the end of the rule.
func encodeRules(out *strings.Builder, rules []core.Rule) {
	for _, r := range rules {
		for _, block := range r {
			encodeLen(out, uint(block))
		}
		encodeLen(out, 0)
	}
}

func decodeRules(in []byte, n int) (rules []core.Rule, consumed int, err error) {
	rules = make([]core.Rule, n)
	pos := 0
	for i := 0; i < n; i++ {
		var rule core.Rule
		for {
			v, used, ok := decodeLen(in[pos:])
			if !ok {
				return nil, 0, fmt.Errorf("cache: truncated rule varint at byte %d", pos)
			}
			pos += used
			if v == 0 {
				break
			}
			rule = append(rule, int(v))
		}
		rules[i] = rule
	}
	return rules, pos, nil
}

// EncodePuzzle packs a puzzle's column rules followed by its row rules
// into a compact string. Width and height are not encoded: the caller
// must already know them (the reference's nonocache_encodepuzzle only
// ever writes into a puzzle struct whose dimensions are already set).
func EncodePuzzle(p *core.Puzzle) string {
	var out strings.Builder
	encodeRules(&out, p.Col)
	encodeRules(&out, p.Row)
	return out.String()
}

// DecodePuzzle is the inverse of EncodePuzzle: width and height must be
// supplied by the caller since the string carries only rule content.
func DecodePuzzle(width, height int, s string) (*core.Puzzle, error) {
	in := []byte(s)
	cols, used, err := decodeRules(in, width)
	if err != nil {
		return nil, fmt.Errorf("cache: decoding columns: %w", err)
	}
	in = in[used:]
	rows, _, err := decodeRules(in, height)
	if err != nil {
		return nil, fmt.Errorf("cache: decoding rows: %w", err)
	}
	return core.New(width, height, rows, cols)
}

// EncodeGrid packs a fully-determined grid at 6 bits per character,
// row-major, SOLID as 1 and DOT as 0. It is an error to encode a grid
// containing a BLANK or BOTH cell, mirroring nonocache_encodecells's
// assumption that only a solved grid is ever cached.
func EncodeGrid(g *core.Grid) (string, error) {
	var out strings.Builder
	var acc, got uint
	flush := func() {
		acc <<= 6 - got
		out.WriteByte(alphabet[acc])
		acc, got = 0, 0
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cell := g.At(x, y)
			var bit uint
			switch cell {
			case core.SOLID:
				bit = 1
			case core.DOT:
				bit = 0
			default:
				return "", fmt.Errorf("cache: cell (%d,%d) is not fully determined", x, y)
			}
			acc = acc<<1 | bit
			got++
			if got == 6 {
				flush()
			}
		}
	}
	if got > 0 {
		flush()
	}
	return out.String(), nil
}

// DecodeGrid is the inverse of EncodeGrid.
func DecodeGrid(width, height int, s string) (*core.Grid, error) {
	need := (width*height + 5) / 6
	if len(s) < need {
		return nil, fmt.Errorf("cache: grid string too short: have %d chars, need %d", len(s), need)
	}
	g := core.NewGrid(width, height)
	x, y := 0, 0
	for i := 0; i < need; i++ {
		d := decodeChar(s[i])
		if d < 0 {
			return nil, fmt.Errorf("cache: invalid character %q at byte %d", s[i], i)
		}
		for bit := 5; bit >= 0; bit-- {
			if y >= height {
				break
			}
			v := (d >> uint(bit)) & 1
			cell := core.DOT
			if v == 1 {
				cell = core.SOLID
			}
			g.Set(x, y, cell)
			x++
			if x == width {
				x = 0
				y++
			}
		}
	}
	return g, nil
}
