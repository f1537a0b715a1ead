package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/signboard/internal/present"
	"github.com/jask/signboard/internal/rotation"
	"github.com/jask/signboard/internal/signage"
)

var fixedNow = time.Date(2026, 3, 2, 9, 5, 7, 0, time.UTC)

func newTestApp(initial signage.Snapshot, ch <-chan signage.Snapshot) *App {
	a := New(initial, ch, Options{Now: func() time.Time { return fixedNow }})
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return a
}

func withData() signage.Snapshot {
	return signage.Snapshot{
		Media:      []signage.MediaItem{{Title: "Computing lab", URL: "https://example.com/lab.jpg"}, {Title: "Library"}},
		Statistics: signage.DefaultStatistics(),
		Schedule: []signage.ScheduleEntry{
			{Venue: "SCTR", Time: "08:00-10:00", Code: "CSC3073", Name: "Compilers", Instructor: "Dr. Perera", Students: 40},
			{Venue: "SCLT1", Time: "10:00-12:00", Code: "STA4023", Name: "Bayesian Statistics", Instructor: "Dr. Silva", Students: 25},
		},
		Halls: []signage.HallStatus{
			{Name: "SCLT1", Status: "occupied", Utilization: 60, ClassesToday: 3},
			{Name: "SCTR", Status: "available", Utilization: 10, ClassesToday: 1},
		},
		FetchedAt: fixedNow,
	}
}

func TestImageTimerFollowsMediaAndScreen(t *testing.T) {
	a := newTestApp(signage.InitialSnapshot(), nil)
	require.False(t, a.rot.State().ImageActive)

	_, cmd := a.Update(snapshotMsg(withData()))
	require.NotNil(t, cmd)
	require.True(t, a.rot.State().ImageActive)
	gen := a.rot.ImageGeneration()

	_, cmd = a.Update(imageTickMsg{gen: gen})
	require.NotNil(t, cmd, "live tick reschedules")
	require.Equal(t, 1, a.rot.State().Image)

	a.Update(screenTickMsg{})
	require.Equal(t, rotation.Schedule, a.rot.State().Screen)
	require.False(t, a.rot.State().ImageActive)

	_, cmd = a.Update(imageTickMsg{gen: gen})
	require.Nil(t, cmd, "stale tick is dropped")
	require.Equal(t, 1, a.rot.State().Image)
}

func TestImageTimerStopsWhenMediaEmpties(t *testing.T) {
	a := newTestApp(withData(), nil)
	require.True(t, a.rot.State().ImageActive)
	gen := a.rot.ImageGeneration()

	empty := withData()
	empty.Media = []signage.MediaItem{}
	a.Update(snapshotMsg(empty))
	require.False(t, a.rot.State().ImageActive)

	_, cmd := a.Update(imageTickMsg{gen: gen})
	require.Nil(t, cmd)
}

func TestSnapshotsAreFollowed(t *testing.T) {
	ch := make(chan signage.Snapshot, 1)
	a := newTestApp(signage.InitialSnapshot(), ch)

	ch <- withData()
	msg := a.waitSnapshot()()
	require.IsType(t, snapshotMsg{}, msg)
	a.Update(msg)
	require.Len(t, a.snap.Halls, 2)

	close(ch)
	require.Nil(t, a.waitSnapshot()())
}

func TestQuitOnCtrlC(t *testing.T) {
	a := newTestApp(signage.InitialSnapshot(), nil)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.Nil(t, cmd)

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestClockTickUpdatesTime(t *testing.T) {
	a := newTestApp(withData(), nil)
	later := fixedNow.Add(3 * time.Second)
	_, cmd := a.Update(clockTickMsg(later))
	require.NotNil(t, cmd)
	require.Contains(t, a.View(), "09:05:10")
}

func TestViewLoadingOnlyBeforeFirstData(t *testing.T) {
	a := newTestApp(signage.InitialSnapshot(), nil)
	require.Contains(t, a.View(), present.LoadingText)

	a.Update(snapshotMsg(withData()))
	refreshing := withData()
	refreshing.Loading = true
	a.Update(snapshotMsg(refreshing))
	require.NotContains(t, a.View(), present.LoadingText)
}

func TestViewScreens(t *testing.T) {
	a := newTestApp(withData(), nil)

	out := a.View()
	require.Contains(t, out, present.DefaultOptions().Title)
	require.Contains(t, out, "Monday, March 2, 2026")
	require.Contains(t, out, "Computing lab")
	require.Contains(t, out, "Active Students")
	require.Contains(t, out, "450")
	require.Contains(t, out, "1 of 4")

	a.Update(screenTickMsg{})
	out = a.View()
	require.Contains(t, out, "Class Schedule")
	require.Contains(t, out, "Venue 1 of 2")
	require.Contains(t, out, "SCTR")
	require.Contains(t, out, "CSC3073")
	require.NotContains(t, out, "STA4023", "only the first venue is shown")
	require.Contains(t, out, present.ClassTag)
	require.Contains(t, out, "30%")
	require.Contains(t, out, "2 of 4")

	a.Update(screenTickMsg{})
	out = a.View()
	require.Contains(t, out, "Available Halls")
	require.Contains(t, out, "occupied")
	require.Contains(t, out, "Classes Today:")

	a.Update(screenTickMsg{})
	out = a.View()
	require.Contains(t, out, "Department Notices")
	require.Contains(t, out, present.NoNoticesText)
	require.Contains(t, out, "4 of 4")
}

func TestViewErrorBadgeAndSize(t *testing.T) {
	failed := withData()
	failed.LastError = "schedule: boom"
	a := newTestApp(failed, nil)

	out := a.View()
	require.Contains(t, out, present.ErrorBadgeText)
	require.Len(t, strings.Split(out, "\n"), 30)
}

func TestViewWithoutMedia(t *testing.T) {
	snap := withData()
	snap.Media = nil
	a := newTestApp(snap, nil)
	require.Contains(t, a.View(), present.LoadingImagesText)
}

func noticesScreen(t *testing.T, count int) string {
	t.Helper()
	snap := withData()
	snap.Notices = make([]signage.Notice, count)
	for i := range snap.Notices {
		snap.Notices[i] = signage.Notice{
			Title:       fmt.Sprintf("Notice %02d", i+1),
			Description: "Lab closed for maintenance",
			Date:        "2 days ago",
		}
	}
	a := newTestApp(snap, nil)
	for a.rot.State().Screen != rotation.Notices {
		a.Update(screenTickMsg{})
	}
	return a.View()
}

func TestViewNoticesAllShown(t *testing.T) {
	out := noticesScreen(t, 8)
	for i := 1; i <= 8; i++ {
		require.Contains(t, out, fmt.Sprintf("Notice %02d", i))
	}
	require.NotContains(t, out, "more notices")

	out = noticesScreen(t, 16)
	for i := 1; i <= 16; i++ {
		require.Contains(t, out, fmt.Sprintf("Notice %02d", i), "cards shrink before anything is dropped")
	}
}

func TestViewNoticesOverflowIsCounted(t *testing.T) {
	out := noticesScreen(t, 40)
	require.Contains(t, out, "Notice 01")
	require.Contains(t, out, "+22 more notices")
}

func TestGridShape(t *testing.T) {
	g := gridSpec{width: 100, height: 26, gap: 2, cellHeight: 5, minHeight: 4, startCols: 1, minCellWidth: 24}

	cols, h, ok := g.shape(3)
	require.True(t, ok)
	require.Equal(t, 1, cols)
	require.Equal(t, 5, h)

	cols, h, ok = g.shape(8)
	require.True(t, ok)
	require.Equal(t, 2, cols)
	require.Equal(t, 5, h)

	cols, h, ok = g.shape(40)
	require.False(t, ok)
	require.Equal(t, 3, cols)
	require.Equal(t, 4, h)
}
