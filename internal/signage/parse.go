package signage

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/jask/signboard/internal/sheet"
)

// Column positions, matching sheet contract version 1.
const (
	colScheduleVenue = iota
	colScheduleTime
	colScheduleCode
	colScheduleName
	colScheduleInstructor
	colScheduleStudents
)

const (
	colHallName = iota
	colHallStatus
	colHallUtilization
	colHallClasses
)

// ParseMedia reads Title, URL rows.
func ParseMedia(g sheet.Grid) []MediaItem {
	if !g.HasData() {
		return []MediaItem{}
	}
	out := make([]MediaItem, 0, len(g)-1)
	for _, row := range g.Rows() {
		url := sheet.Cell(row, 1)
		if url == "" {
			url = PlaceholderImageURL
		}
		out = append(out, MediaItem{Title: sheet.Cell(row, 0), URL: url})
	}
	return out
}

// ParseSchedule reads Venue, Time, Code, Name, Instructor, Students rows.
func ParseSchedule(g sheet.Grid) []ScheduleEntry {
	if !g.HasData() {
		return []ScheduleEntry{}
	}
	out := make([]ScheduleEntry, 0, len(g)-1)
	for _, row := range g.Rows() {
		students := intOr(sheet.Cell(row, colScheduleStudents), 0)
		if students < 0 {
			students = 0
		}
		out = append(out, ScheduleEntry{
			Venue:      sheet.Cell(row, colScheduleVenue),
			Time:       sheet.Cell(row, colScheduleTime),
			Code:       sheet.Cell(row, colScheduleCode),
			Name:       sheet.Cell(row, colScheduleName),
			Instructor: sheet.Cell(row, colScheduleInstructor),
			Students:   students,
		})
	}
	return out
}

// ParseHalls reads Name, Status, Utilization, Classes rows. An empty status
// reads as available; anything else is kept verbatim.
func ParseHalls(g sheet.Grid) []HallStatus {
	if !g.HasData() {
		return []HallStatus{}
	}
	out := make([]HallStatus, 0, len(g)-1)
	for _, row := range g.Rows() {
		status := sheet.Cell(row, colHallStatus)
		if status == "" {
			status = HallAvailable
		}
		out = append(out, HallStatus{
			Name:         sheet.Cell(row, colHallName),
			Status:       status,
			Utilization:  intOr(sheet.Cell(row, colHallUtilization), 0),
			ClassesToday: intOr(sheet.Cell(row, colHallClasses), 0),
		})
	}
	return out
}

// ParseNotices reads Title, Description, Date rows.
func ParseNotices(g sheet.Grid) []Notice {
	if !g.HasData() {
		return []Notice{}
	}
	out := make([]Notice, 0, len(g)-1)
	for _, row := range g.Rows() {
		out = append(out, Notice{
			Title:       sheet.Cell(row, 0),
			Description: sheet.Cell(row, 1),
			Date:        sheet.Cell(row, 2),
		})
	}
	return out
}

// Normalized statistics labels.
const (
	labelActiveStudents = "activestudents"
	labelCoursesRunning = "coursesrunning"
	labelProjectsActive = "projectsactive"
)

// ParseStatistics reads Metric, Value rows keyed by label. Each field falls back
// to its default independently when its label is missing or its value is not a
// number. A grid without data rows yields DefaultStatistics.
func ParseStatistics(g sheet.Grid) Statistics {
	stats := DefaultStatistics()
	if !g.HasData() {
		return stats
	}
	values := statisticValues(g)
	if v, ok := values[labelActiveStudents]; ok {
		stats.ActiveStudents = v
	}
	if v, ok := values[labelCoursesRunning]; ok {
		stats.CoursesRunning = v
	}
	if v, ok := values[labelProjectsActive]; ok {
		stats.ProjectsActive = v
	}
	return stats
}

func statisticValues(g sheet.Grid) map[string]int {
	values := make(map[string]int, len(g))
	for _, row := range g.Rows() {
		label, raw := sheet.Cell(row, 0), sheet.Cell(row, 1)
		if label == "" || raw == "" {
			continue
		}
		n, ok := parseLeadingInt(raw)
		if !ok {
			continue
		}
		values[NormalizeLabel(label)] = n
	}
	return values
}

// NormalizeLabel lowercases a label and drops all whitespace.
func NormalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "")
}

func intOr(s string, def int) int {
	if n, ok := parseLeadingInt(s); ok {
		return n
	}
	return def
}

// parseLeadingInt accepts optional leading space, an optional sign and a run of
// decimal digits, ignoring whatever follows ("35 students" -> 35, "12.7" -> 12).
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
