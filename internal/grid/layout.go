package grid

import (
	"fmt"
	"strings"
)

// Layout glyphs.
const (
	GlyphOpen  = '.'
	GlyphWall  = '#'
	GlyphStart = 'S'
	GlyphEnd   = 'E'
)

// Parse builds a grid from text rows. Surrounding whitespace on each row is
// trimmed; blank rows are skipped.
func Parse(lines []string) (*Grid, error) {
	rows := make([][]rune, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		rows = append(rows, []rune(l))
	}
	if len(rows) == 0 {
		return nil, ErrEmptyLayout
	}
	width := len(rows[0])
	for _, r := range rows {
		if len(r) != width {
			return nil, ErrRaggedLayout
		}
	}

	g, err := New(len(rows), width)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		for c, ch := range row {
			p := Pos(r, c)
			switch ch {
			case GlyphOpen:
			case GlyphWall:
				g.cells[g.index(p)].Wall = true
			case GlyphStart:
				if g.hasStart {
					return nil, ErrDuplicateEndpoint
				}
				g.start, g.hasStart = p, true
			case GlyphEnd:
				if g.hasEnd {
					return nil, ErrDuplicateEndpoint
				}
				g.end, g.hasEnd = p, true
			default:
				return nil, fmt.Errorf("%w %q at %s", ErrUnknownGlyph, ch, p)
			}
		}
	}
	return g, nil
}

// Format renders g as layout rows accepted by Parse. Visited flags are not
// part of a layout.
func (g *Grid) Format() []string {
	out := make([]string, g.rows)
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		b.Reset()
		for c := 0; c < g.cols; c++ {
			p := Pos(r, c)
			switch {
			case g.isStart(p):
				b.WriteRune(GlyphStart)
			case g.isEnd(p):
				b.WriteRune(GlyphEnd)
			case g.IsWall(p):
				b.WriteRune(GlyphWall)
			default:
				b.WriteRune(GlyphOpen)
			}
		}
		out[r] = b.String()
	}
	return out
}

func (g *Grid) String() string { return strings.Join(g.Format(), "\n") }
