// Package signage holds the display's domain records and the row parsers that
// build them from sheet grids.
package signage

import "time"

// PlaceholderImageURL stands in for a media row with no URL.
const PlaceholderImageURL = "/api/placeholder/800/400"

// Hall status values the display knows about. Other strings pass through.
const (
	HallAvailable = "available"
	HallOccupied  = "occupied"
)

// Statistics fallbacks used when a label is absent from the sheet.
const (
	DefaultActiveStudents = 450
	DefaultCoursesRunning = 12
	DefaultProjectsActive = 28
)

type MediaItem struct {
	Title string
	URL   string
}

type Statistics struct {
	ActiveStudents int
	CoursesRunning int
	ProjectsActive int
}

// DefaultStatistics is what the statistics parser yields for an empty sheet.
func DefaultStatistics() Statistics {
	return Statistics{
		ActiveStudents: DefaultActiveStudents,
		CoursesRunning: DefaultCoursesRunning,
		ProjectsActive: DefaultProjectsActive,
	}
}

type ScheduleEntry struct {
	Venue      string
	Time       string
	Code       string
	Name       string
	Instructor string
	Students   int
}

type HallStatus struct {
	Name         string
	Status       string
	Utilization  int
	ClassesToday int
}

// IsAvailable is true only for the exact status "available".
func (h HallStatus) IsAvailable() bool {
	return h.Status == HallAvailable
}

type Notice struct {
	Title       string
	Description string
	Date        string
}

// Snapshot is the full data set at one refresh point. Slices are shared
// between snapshots and must not be mutated after publication.
type Snapshot struct {
	Media      []MediaItem
	Statistics Statistics
	Schedule   []ScheduleEntry
	Halls      []HallStatus
	Notices    []Notice

	FetchedAt time.Time
	Loading   bool
	LastError string
}

// InitialSnapshot is the state before the first refresh completes.
func InitialSnapshot() Snapshot {
	return Snapshot{
		Media:    []MediaItem{},
		Schedule: []ScheduleEntry{},
		Halls:    []HallStatus{},
		Notices:  []Notice{},
		Loading:  true,
	}
}

// HasData reports whether at least one refresh has succeeded.
func (s Snapshot) HasData() bool {
	return !s.FetchedAt.IsZero()
}
