package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PlaceTopRight draws badge over the top-right corner of base, inset by margin
// cells, keeping every base cell the badge does not cover.
func PlaceTopRight(base, badge string, width, height, margin int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := fitCanvas(base, width, height)
	if badge == "" {
		return canvas
	}
	badgeWidth := maxLineWidth(splitToLines(badge, 0))
	x := max(0, width-badgeWidth-margin)
	y := max(0, min(margin, height-1))
	return overlayAt(canvas, badge, x, y, width, height)
}

func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitToLines(base, height)
	overlayLines := splitToLines(overlay, 0)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRightANSI(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		overlayLine := padRightANSI(line, overlayWidth)
		pos := x + ansi.StringWidth(overlayLine)
		right := dropColumns(target, pos)
		baseLines[row] = ansi.Truncate(left+overlayLine+right, width, "")
	}
	return strings.Join(baseLines, "\n")
}

func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRightANSI(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		if lw := ansi.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	truncated := ansi.Truncate(s, cols, "")
	return strings.TrimPrefix(s, truncated)
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Fit clips or pads s to exactly width x height cells.
func Fit(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return fitCanvas(s, width, height)
}
