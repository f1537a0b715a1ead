package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Widget draws itself into a width x height box.
type Widget interface {
	Render(width, height int) string
}

// VStack stacks widgets top to bottom. Each child is clipped or padded to
// exactly its share of the height, so a tall child cannot push later ones down.
// Ratios, when given, weight the shares; equal weights otherwise.
type VStack struct {
	Widgets []Widget
	Spacing int
	Ratios  []float64
}

func (v VStack) Render(width, height int) string {
	if len(v.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gaps := max(0, v.Spacing*(len(v.Widgets)-1))
	heights := splitWidths(max(1, height-gaps), len(v.Widgets), v.Ratios)
	blank := strings.Repeat(" ", width)
	parts := make([]string, 0, len(v.Widgets)*2)
	for i, w := range v.Widgets {
		h := max(1, heights[i])
		parts = append(parts, fitCanvas(w.Render(width, h), width, h))
		if i < len(v.Widgets)-1 {
			for s := 0; s < v.Spacing; s++ {
				parts = append(parts, blank)
			}
		}
	}
	return strings.Join(parts, "\n")
}

type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Gap     int
}

func (h HStack) Render(width, height int) string {
	if len(h.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gapTotal := max(0, h.Gap*(len(h.Widgets)-1))
	usable := max(1, width-gapTotal)
	widths := splitWidths(usable, len(h.Widgets), h.Ratios)
	rendered := make([][]string, len(h.Widgets))
	maxLines := 0
	for i, w := range h.Widgets {
		part := strings.Split(w.Render(max(1, widths[i]), height), "\n")
		rendered[i] = part
		if len(part) > maxLines {
			maxLines = len(part)
		}
	}
	out := make([]string, 0, maxLines)
	for line := 0; line < maxLines; line++ {
		cols := make([]string, len(rendered))
		for i := range rendered {
			if line < len(rendered[i]) {
				cols[i] = padRight(rendered[i][line], widths[i])
			} else {
				cols[i] = strings.Repeat(" ", widths[i])
			}
		}
		out = append(out, strings.Join(cols, strings.Repeat(" ", h.Gap)))
	}
	return strings.Join(out, "\n")
}

// Grid lays widgets out row-major in Columns columns, each row CellHeight tall.
type Grid struct {
	Widgets    []Widget
	Columns    int
	CellHeight int
	Gap        int
}

func (g Grid) Render(width, height int) string {
	if len(g.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	cols := max(1, g.Columns)
	cellHeight := max(1, g.CellHeight)
	var rows []Widget
	for start := 0; start < len(g.Widgets); start += cols {
		row := make([]Widget, cols)
		for i := range row {
			if start+i < len(g.Widgets) {
				row[i] = g.Widgets[start+i]
			} else {
				row[i] = Text("")
			}
		}
		rows = append(rows, HStack{Widgets: row, Gap: g.Gap})
	}
	lines := make([]string, 0, len(rows)*cellHeight)
	for _, r := range rows {
		lines = append(lines, strings.Split(r.Render(width, cellHeight), "\n")...)
		if len(lines) >= height {
			break
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func splitWidths(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	if len(ratios) != n {
		width := total / n
		out := make([]int, n)
		for i := range out {
			out[i] = width
		}
		for i := 0; i < total%n; i++ {
			out[i]++
		}
		return out
	}
	weights := make([]float64, n)
	sum := 0.0
	for i, r := range ratios {
		if r <= 0 {
			r = 1
		}
		weights[i] = r
		sum += r
	}
	out := make([]int, n)
	used := 0
	for i := range out {
		w := int(math.Floor((weights[i] / sum) * float64(total)))
		out[i] = w
		used += w
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
