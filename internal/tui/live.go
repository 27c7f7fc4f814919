package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gridwalk/internal/grid"
	"github.com/san-kum/gridwalk/internal/playback"
	"github.com/san-kum/gridwalk/internal/search"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Cell glyphs shared by the plain and coloured renderers.
const (
	glyphOpen    = '·'
	glyphWall    = '█'
	glyphStart   = 'S'
	glyphEnd     = 'E'
	glyphVisited = '○'
	glyphPath    = '●'
	glyphCurrent = '◆'
)

var (
	wallStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	startStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	endStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	visitedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	openStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// glyph picks the rune for p. Endpoints always win over overlay marks.
func glyph(g *grid.Grid, o *playback.Overlay, p grid.Position) (rune, lipgloss.Style) {
	if s, ok := g.Start(); ok && s == p {
		return glyphStart, startStyle
	}
	if e, ok := g.End(); ok && e == p {
		return glyphEnd, endStyle
	}
	if g.IsWall(p) {
		return glyphWall, wallStyle
	}
	if o != nil {
		switch o.At(p) {
		case playback.MarkCurrent:
			return glyphCurrent, currentStyle
		case playback.MarkPath:
			return glyphPath, pathStyle
		case playback.MarkVisited:
			return glyphVisited, visitedStyle
		}
	}
	return glyphOpen, openStyle
}

// Board renders g with overlay marks as plain text, one line per row.
// A nil overlay draws the bare board.
func Board(g *grid.Grid, o *playback.Overlay, color bool) string {
	var b strings.Builder
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			ch, style := glyph(g, o, grid.Pos(r, c))
			if color {
				b.WriteString(style.Render(string(ch)))
			} else {
				b.WriteRune(ch)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// LiveRenderer redraws the whole board after every played event. It
// implements playback.Sink.
type LiveRenderer struct {
	out     io.Writer
	title   string
	grid    *grid.Grid
	overlay *playback.Overlay
	color   bool
	step    int
	total   int
}

// NewLiveRenderer draws frames to out. A total of zero or less means the
// event count is unknown and frames show the step number alone.
func NewLiveRenderer(out io.Writer, title string, g *grid.Grid, total int, color bool) *LiveRenderer {
	return &LiveRenderer{
		out:     out,
		title:   title,
		grid:    g,
		overlay: playback.NewOverlay(),
		color:   color,
		total:   total,
	}
}

func (r *LiveRenderer) Apply(ev search.Event) {
	r.overlay.Apply(ev)
	r.step++
	progress := fmt.Sprintf("step %d", r.step)
	if r.total > 0 {
		progress += fmt.Sprintf("/%d", r.total)
	}
	r.render(fmt.Sprintf("%s  %s %s  stack=%d", progress, ev.Kind, ev.Pos, ev.Depth))
}

func (r *LiveRenderer) Overlay() *playback.Overlay { return r.overlay }

// Finish draws the settled board with the outcome underneath.
func (r *LiveRenderer) Finish(out search.Outcome) {
	r.overlay.Settle()
	r.render(out.Message())
}

func (r *LiveRenderer) render(status string) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  %dx%d\n", r.title, r.grid.Rows(), r.grid.Cols()))
	b.WriteString("  " + strings.Repeat("-", r.grid.Cols()) + "\n")

	for _, line := range strings.Split(strings.TrimRight(Board(r.grid, r.overlay, r.color), "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", r.grid.Cols()) + "\n")
	b.WriteString("  " + status + "\n")

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
