package signage

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jask/signboard/internal/sheet"
)

func TestListParsersEmptyBelowTwoRows(t *testing.T) {
	t.Parallel()

	grids := []sheet.Grid{nil, {}, {{"Venue", "Time"}}, {{}}}
	for i, g := range grids {
		g := g
		t.Run(fmt.Sprintf("grid-%d", i), func(t *testing.T) {
			t.Parallel()
			require.NotNil(t, ParseMedia(g))
			require.Empty(t, ParseMedia(g))
			require.Empty(t, ParseSchedule(g))
			require.Empty(t, ParseHalls(g))
			require.Empty(t, ParseNotices(g))
			require.Equal(t, DefaultStatistics(), ParseStatistics(g))
		})
	}
}

func TestParseStatisticsExample(t *testing.T) {
	t.Parallel()

	g := sheet.Grid{{"Metric", "Value"}, {"Active Students", "500"}}
	require.Equal(t, Statistics{ActiveStudents: 500, CoursesRunning: 12, ProjectsActive: 28}, ParseStatistics(g))
}

func TestParseStatisticsLabelsAndDefaults(t *testing.T) {
	t.Parallel()

	g := sheet.Grid{
		{"Metric", "Value"},
		{"  courses   RUNNING ", "9 courses"},
		{"Projects Active", "n/a"},
		{"Active Students", ""},
		{"", "77"},
		{"Visitors", "3"},
	}
	got := ParseStatistics(g)
	require.Equal(t, 9, got.CoursesRunning)
	require.Equal(t, DefaultProjectsActive, got.ProjectsActive, "non-numeric value falls back")
	require.Equal(t, DefaultActiveStudents, got.ActiveStudents, "blank value falls back")
}

func TestParseStatisticsKeepsZero(t *testing.T) {
	t.Parallel()

	g := sheet.Grid{{"Metric", "Value"}, {"Projects Active", "0"}}
	require.Equal(t, 0, ParseStatistics(g).ProjectsActive)
}

func TestParseScheduleRoundTrip(t *testing.T) {
	t.Parallel()

	want := []ScheduleEntry{
		{Venue: "SCTR", Time: "10:00-11:00", Code: "CSC3073", Name: "Computer Graphics", Instructor: "Prof. Saluka K.", Students: 35},
		{Venue: "SCLT1", Time: "09:00-10:00", Code: "STA4023", Name: "Data Mining", Instructor: "Dr. Roshan D.", Students: 40},
		{Venue: "SCTR", Time: "13:00-15:00", Code: "CSC2012", Name: "Databases", Instructor: "Dr. Perera", Students: 0},
	}
	g := sheet.Grid{{"Venue", "Time", "Code", "Name", "Instructor", "Students"}}
	for _, e := range want {
		g = append(g, []string{e.Venue, e.Time, e.Code, e.Name, e.Instructor, fmt.Sprint(e.Students)})
	}
	got := ParseSchedule(g)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schedule mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScheduleDefaults(t *testing.T) {
	t.Parallel()

	g := sheet.Grid{
		{"Venue", "Time", "Code", "Name", "Instructor", "Students"},
		{"SCTR"},
		{"Lab A", "08:00", "X", "Y", "Z", "many"},
		{"Lab B", "08:00", "X", "Y", "Z", "-4"},
		{"Lab C", "08:00", "X", "Y", "Z", " 12.9"},
	}
	got := ParseSchedule(g)
	require.Len(t, got, 4)
	require.Equal(t, ScheduleEntry{Venue: "SCTR"}, got[0])
	require.Equal(t, 0, got[1].Students)
	require.Equal(t, 0, got[2].Students)
	require.Equal(t, 12, got[3].Students)
}

func TestParseHalls(t *testing.T) {
	t.Parallel()

	g := sheet.Grid{
		{"Name", "Status", "Utilization", "Classes"},
		{"SCLT1", "occupied", "40", "4"},
		{"SCTR", "", "", ""},
		{"Lab A", "Maintenance", "75%", "x"},
	}
	got := ParseHalls(g)
	want := []HallStatus{
		{Name: "SCLT1", Status: HallOccupied, Utilization: 40, ClassesToday: 4},
		{Name: "SCTR", Status: HallAvailable},
		{Name: "Lab A", Status: "Maintenance", Utilization: 75},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("halls mismatch (-want +got):\n%s", diff)
	}
	require.False(t, got[0].IsAvailable())
	require.True(t, got[1].IsAvailable())
	require.False(t, got[2].IsAvailable())
}

func TestParseMediaAndNotices(t *testing.T) {
	t.Parallel()

	media := ParseMedia(sheet.Grid{{"Title", "URL"}, {"Lab", "https://example.com/a.jpg"}, {"Space"}})
	require.Equal(t, []MediaItem{
		{Title: "Lab", URL: "https://example.com/a.jpg"},
		{Title: "Space", URL: PlaceholderImageURL},
	}, media)

	notices := ParseNotices(sheet.Grid{{"Title", "Description", "Date"}, {"Championship", "First place"}})
	require.Equal(t, []Notice{{Title: "Championship", Description: "First place"}}, notices)
}

func TestParseLeadingInt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"35", 35, true},
		{"  7 ", 7, true},
		{"+3", 3, true},
		{"-12abc", -12, true},
		{"12.7", 12, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, c := range cases {
		got, ok := parseLeadingInt(c.in)
		require.Equal(t, c.ok, ok, "input %q", c.in)
		require.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestUnknownStatisticLabels(t *testing.T) {
	t.Parallel()

	g := sheet.Grid{
		{"Metric", "Value"},
		{"Active Students", "1"},
		{"Active Studnets", "2"},
		{"Visitors Today", "3"},
		{"Active Studnets", "4"},
	}
	hints := UnknownStatisticLabels(g)
	require.Equal(t, []LabelHint{
		{Label: "Active Studnets", Suggestion: labelActiveStudents},
		{Label: "Visitors Today"},
	}, hints)
}
