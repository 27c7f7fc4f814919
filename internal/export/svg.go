package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gridwalk/internal/grid"
	"github.com/san-kum/gridwalk/internal/playback"
)

var fills = map[playback.Mark]string{
	playback.MarkNone:    "#1a1a22",
	playback.MarkVisited: "#1f5f8b",
	playback.MarkPath:    "#ffcc00",
	playback.MarkCurrent: "#ff88ff",
}

const (
	wallFill  = "#555566"
	startFill = "#00ff88"
	endFill   = "#ff4444"
)

// BoardSVG draws g as one square per cell, coloured by overlay marks.
// scale is the cell edge in pixels. A nil overlay draws the bare board.
func BoardSVG(g *grid.Grid, o *playback.Overlay, scale float64) string {
	if g == nil {
		return ""
	}
	if scale <= 0 {
		scale = 16
	}

	width := float64(g.Cols()) * scale
	height := float64(g.Rows()) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#0a0a0a" stroke-width="1">
`, width, height, width, height))

	start, hasStart := g.Start()
	end, hasEnd := g.End()

	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			p := grid.Pos(r, c)
			fill := fills[playback.MarkNone]
			switch {
			case hasStart && p == start:
				fill = startFill
			case hasEnd && p == end:
				fill = endFill
			case g.IsWall(p):
				fill = wallFill
			case o != nil:
				fill = fills[o.At(p)]
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(c)*scale, float64(r)*scale, scale, scale, fill))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PathSVG draws path as a polyline through cell centres, starting at from.
// It returns "" for an empty path.
func PathSVG(rows, cols int, from grid.Position, path []grid.Position, scale float64, strokeColor string) string {
	if len(path) == 0 {
		return ""
	}
	if scale <= 0 {
		scale = 16
	}
	width, height := float64(cols)*scale, float64(rows)*scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="%.1f" d="M`,
		width, height, width, height, strokeColor, scale/4))

	centre := func(p grid.Position) (float64, float64) {
		return (float64(p.Col) + 0.5) * scale, (float64(p.Row) + 0.5) * scale
	}
	x, y := centre(from)
	sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	for _, p := range path {
		x, y = centre(p)
		sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
