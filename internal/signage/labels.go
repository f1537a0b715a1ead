package signage

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/jask/signboard/internal/sheet"
)

const maxSuggestDistance = 3

// LabelHint describes a statistics label the display does not recognise.
type LabelHint struct {
	Label      string
	Suggestion string // closest known label, empty when nothing is close
}

// UnknownStatisticLabels lists data-row labels that do not map to a field,
// each with the nearest known label when one is within a small edit distance.
func UnknownStatisticLabels(g sheet.Grid) []LabelHint {
	known := []string{labelActiveStudents, labelCoursesRunning, labelProjectsActive}
	seen := map[string]struct{}{}
	var out []LabelHint
	for _, row := range g.Rows() {
		label := sheet.Cell(row, 0)
		norm := NormalizeLabel(label)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		if contains(known, norm) {
			continue
		}
		hint := LabelHint{Label: label}
		best := maxSuggestDistance + 1
		for _, k := range known {
			if d := levenshtein.ComputeDistance(norm, k); d < best {
				best, hint.Suggestion = d, k
			}
		}
		out = append(out, hint)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
