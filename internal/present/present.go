// Package present maps a snapshot and rotation state to what each screen shows.
// Everything here is pure; rendering lives in the tui package.
package present

import (
	"time"

	"github.com/jask/signboard/internal/rotation"
	"github.com/jask/signboard/internal/signage"
)

const (
	// PlaceholderUtilization is shown on the schedule screen in place of a
	// computed figure.
	PlaceholderUtilization = "30%"
	ErrorBadgeText         = "Data fetch error: Using fallback data"
	LoadingText            = "Loading Digital Signage..."
	LoadingImagesText      = "Loading images..."
	NoClassesText          = "No classes scheduled for today"
	NoNoticesText          = "No notices available"
	NoVenues               = "No venues"
	FallbackSlideTitle     = "Department facility"
	ClassTag               = "LECTURE"
)

// Timeline is the fixed hour strip on the schedule screen.
var Timeline = []string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00"}

// Options carries deployment text shown in headers.
type Options struct {
	Title    string
	Subtitle string
}

func DefaultOptions() Options {
	return Options{
		Title:    "Department of Statistics and Computer Science",
		Subtitle: "University of Peradeniya",
	}
}

type View struct {
	Screen   rotation.Screen
	Position int // 1-based
	Total    int

	// Loading is set only before the first successful refresh.
	Loading    bool
	ErrorBadge string

	Clock string
	Date  string

	Welcome  *WelcomeView
	Schedule *ScheduleView
	Halls    *HallsView
	Notices  *NoticesView
}

type WelcomeView struct {
	Title    string
	Subtitle string
	Slide    *Slide // nil while there is no media
	Stats    []StatTile
}

type Slide struct {
	Title string
	URL   string
	Index int
	Count int
}

type StatTile struct {
	Label string
	Value int
}

type ScheduleView struct {
	Venue       string
	VenueCount  int
	Classes     []signage.ScheduleEntry
	Utilization string
	Timeline    []string
}

type VenueGroup struct {
	Venue   string
	Classes []signage.ScheduleEntry
}

type HallsView struct {
	Halls []HallCard
}

type HallCard struct {
	Name         string
	Status       string
	Available    bool
	Utilization  int
	ClassesToday int
}

type NoticesView struct {
	Notices []signage.Notice
}

// Map builds the view for the current screen.
func Map(snap signage.Snapshot, st rotation.State, now time.Time, opts Options) View {
	v := View{
		Screen:   st.Screen,
		Position: st.Index + 1,
		Total:    len(rotation.Screens),
		Loading:  snap.Loading && !snap.HasData(),
		Clock:    now.Format("15:04:05"),
		Date:     now.Format("Monday, January 2, 2006"),
	}
	if snap.LastError != "" {
		v.ErrorBadge = ErrorBadgeText
	}
	switch st.Screen {
	case rotation.Schedule:
		v.Schedule = mapSchedule(snap.Schedule)
	case rotation.Halls:
		v.Halls = mapHalls(snap.Halls)
	case rotation.Notices:
		v.Notices = &NoticesView{Notices: snap.Notices}
	default:
		v.Welcome = mapWelcome(snap, st.Image, opts)
	}
	return v
}

func mapWelcome(snap signage.Snapshot, image int, opts Options) *WelcomeView {
	w := &WelcomeView{
		Title:    opts.Title,
		Subtitle: opts.Subtitle,
		Stats: []StatTile{
			{Label: "Active Students", Value: snap.Statistics.ActiveStudents},
			{Label: "Courses Running", Value: snap.Statistics.CoursesRunning},
			{Label: "Projects Active", Value: snap.Statistics.ProjectsActive},
		},
	}
	if n := len(snap.Media); n > 0 {
		slide := &Slide{Title: FallbackSlideTitle, URL: signage.PlaceholderImageURL, Index: image, Count: n}
		// the index can outrun a shrunken media list until the next tick wraps it
		if image >= 0 && image < n {
			item := snap.Media[image]
			if item.Title != "" {
				slide.Title = item.Title
			}
			if item.URL != "" {
				slide.URL = item.URL
			}
		}
		w.Slide = slide
	}
	return w
}

// GroupByVenue groups entries by venue in first-seen order.
func GroupByVenue(entries []signage.ScheduleEntry) []VenueGroup {
	var groups []VenueGroup
	pos := map[string]int{}
	for _, e := range entries {
		i, ok := pos[e.Venue]
		if !ok {
			i = len(groups)
			pos[e.Venue] = i
			groups = append(groups, VenueGroup{Venue: e.Venue})
		}
		groups[i].Classes = append(groups[i].Classes, e)
	}
	return groups
}

// mapSchedule shows only the first venue group.
func mapSchedule(entries []signage.ScheduleEntry) *ScheduleView {
	groups := GroupByVenue(entries)
	v := &ScheduleView{
		Venue:       NoVenues,
		VenueCount:  len(groups),
		Utilization: PlaceholderUtilization,
		Timeline:    Timeline,
	}
	if len(groups) > 0 {
		v.Venue = groups[0].Venue
		v.Classes = groups[0].Classes
	}
	return v
}

func mapHalls(halls []signage.HallStatus) *HallsView {
	cards := make([]HallCard, 0, len(halls))
	for _, h := range halls {
		cards = append(cards, HallCard{
			Name:         h.Name,
			Status:       h.Status,
			Available:    h.IsAvailable(),
			Utilization:  h.Utilization,
			ClassesToday: h.ClassesToday,
		})
	}
	return &HallsView{Halls: cards}
}
