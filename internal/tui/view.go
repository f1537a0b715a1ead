package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/signboard/internal/present"
	"github.com/jask/signboard/internal/rotation"
	"github.com/jask/signboard/internal/signage"
	"github.com/jask/signboard/widgets"
)

const (
	statCardHeight   = 5
	hallCardHeight   = 6
	noticeCardHeight = 5
	footerBarWidth   = 16

	minNoticeCardHeight = 4
	minCardWidth        = 24
)

type heading struct {
	title    string
	subtitle string
}

var headings = map[rotation.Screen]heading{
	rotation.Schedule: {"Class Schedule", "Today's class timetable and venue information"},
	rotation.Halls:    {"Available Halls", "Current hall availability and utilization"},
	rotation.Notices:  {"Department Notices", "Latest announcements and updates"},
}

// widgetFunc adapts a render function to widgets.Widget.
type widgetFunc func(width, height int) string

func (f widgetFunc) Render(width, height int) string { return f(width, height) }

func render(v present.View, opts present.Options, width, height int) string {
	var page string
	if v.Loading {
		page = lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, loadingStyle.Render(present.LoadingText))
	} else {
		header := renderHeader(v, opts, width)
		footer := renderFooter(v, width)
		bodyHeight := max(1, height-lipgloss.Height(header)-lipgloss.Height(footer)-1)
		body := widgets.Fit(renderBody(v, width, bodyHeight), width, bodyHeight)
		page = strings.Join([]string{header, "", body, footer}, "\n")
	}
	badge := ""
	if v.ErrorBadge != "" {
		badge = errorBadgeStyle.Render(v.ErrorBadge)
	}
	return widgets.PlaceTopRight(page, badge, width, height, 1)
}

func renderHeader(v present.View, opts present.Options, width int) string {
	h, ok := headings[v.Screen]
	if !ok {
		h = heading{opts.Title, opts.Subtitle}
	}
	right := clockStyle.Render(v.Clock)
	if v.Screen == rotation.Welcome {
		right = dateStyle.Render(v.Date) + "  " + right
	}
	line1 := joinEnds(headerTitleStyle.Render(h.title), right, width)
	line2 := headerSubStyle.Render(h.subtitle)
	return line1 + "\n" + line2
}

func renderFooter(v present.View, width int) string {
	ratio := 0.0
	if v.Total > 0 {
		ratio = float64(v.Position) / float64(v.Total)
	}
	label := footerStyle.Render(fmt.Sprintf("%d of %d", v.Position, v.Total))
	content := label + " " + progressBar(footerBarWidth, colorAccent, ratio)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func renderBody(v present.View, width, height int) string {
	switch {
	case v.Schedule != nil:
		return renderSchedule(*v.Schedule, width, height)
	case v.Halls != nil:
		return renderHalls(*v.Halls, width, height)
	case v.Notices != nil:
		return renderNotices(*v.Notices, width, height)
	case v.Welcome != nil:
		return renderWelcome(*v.Welcome, width, height)
	}
	return ""
}

func renderWelcome(w present.WelcomeView, width, height int) string {
	statsTitle := lipgloss.PlaceHorizontal(width, lipgloss.Center, sectionTitleStyle.Render("Live Department Statistics"))
	tiles := make([]widgets.Widget, 0, len(w.Stats))
	for _, s := range w.Stats {
		tiles = append(tiles, statTile(s))
	}
	stats := widgets.Grid{Widgets: tiles, Columns: len(tiles), CellHeight: statCardHeight, Gap: 2}
	slide := widgetFunc(func(width, height int) string { return renderSlide(w.Slide, width, height) })

	// the slide takes whatever the fixed-height rows leave
	slideHeight := max(3, height-statCardHeight-2)
	return widgets.VStack{
		Widgets: []widgets.Widget{slide, widgets.Text(""), widgets.Text(statsTitle), stats},
		Ratios:  []float64{float64(slideHeight), 1, 1, statCardHeight},
	}.Render(width, max(height, slideHeight+statCardHeight+2))
}

func renderSlide(s *present.Slide, width, height int) string {
	if s == nil {
		return widgets.Card{
			Content:     lipgloss.Place(max(1, width-4), max(1, height-2), lipgloss.Center, lipgloss.Center, mutedStyle.Render(present.LoadingImagesText)),
			BorderColor: colorSurface1,
		}.Render(width, height)
	}
	inner := max(1, width-4)
	dots := make([]string, s.Count)
	for i := range dots {
		if i == s.Index {
			dots[i] = dotActiveStyle.Render("●")
		} else {
			dots[i] = dotInactiveStyle.Render("○")
		}
	}
	lines := []string{
		mutedStyle.Render(ansi.Truncate(s.URL, inner, "…")),
		"",
		lipgloss.PlaceHorizontal(inner, lipgloss.Center, strings.Join(dots, " ")),
	}
	return widgets.Card{
		Title:       accentStyle.Render(ansi.Truncate(s.Title, inner, "…")),
		Content:     strings.Join(lines, "\n"),
		BorderColor: colorSurface1,
	}.Render(width, height)
}

func statTile(s present.StatTile) widgets.Widget {
	return widgetFunc(func(width, height int) string {
		inner := max(1, width-4)
		center := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center)
		content := center.Render(statValueStyle.Render(strconv.Itoa(s.Value))) + "\n" +
			center.Render(statLabelStyle.Render(s.Label))
		return widgets.Card{Content: content, BorderColor: colorSurface1}.Render(width, height)
	})
}

func renderSchedule(s present.ScheduleView, width, height int) string {
	timelineHead := joinEnds(sectionTitleStyle.Render("Daily Timeline"), mutedStyle.Render("8:00 AM - 6:00 PM"), width)
	labels := make([]widgets.Widget, 0, len(s.Timeline))
	for _, t := range s.Timeline {
		labels = append(labels, widgets.Text(t))
	}
	timeline := mutedStyle.Render(widgets.HStack{Widgets: labels}.Render(width, 1))
	showing := lipgloss.PlaceHorizontal(width, lipgloss.Center,
		mutedStyle.Render(fmt.Sprintf("Currently Showing: Venue 1 of %d", s.VenueCount)))

	lines := []string{timelineHead, timeline, "", showing, ""}
	if s.VenueCount == 0 {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, mutedStyle.Render(present.NoClassesText)))
		return strings.Join(lines, "\n")
	}
	venue := accentStyle.Render(s.Venue) + "  " + mutedStyle.Render(fmt.Sprintf("%d classes today", len(s.Classes)))
	util := mutedStyle.Render("Utilization ") + statValueStyle.Render(s.Utilization)
	lines = append(lines, joinEnds(venue, util, width), "")

	used := len(lines)
	lines = append(lines, scheduleTable(s, width, max(3, height-used)))
	return strings.Join(lines, "\n")
}

func scheduleTable(s present.ScheduleView, width, height int) string {
	const cellPad = 2
	fixed := []table.Column{
		{Title: "Time", Width: 13},
		{Title: "Code", Width: 9},
		{Title: "Course", Width: 0},
		{Title: "Instructor", Width: 20},
		{Title: "Students", Width: 8},
		{Title: "Type", Width: 7},
	}
	used := 0
	for _, c := range fixed {
		used += c.Width + cellPad
	}
	fixed[2].Width = max(10, width-used)

	rows := make([]table.Row, 0, len(s.Classes))
	for _, c := range s.Classes {
		rows = append(rows, table.Row{c.Time, c.Code, c.Name, c.Instructor, strconv.Itoa(c.Students), present.ClassTag})
	}
	t := table.New(
		table.WithColumns(fixed),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(min(height, len(rows)+2)),
		table.WithWidth(width),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(colorLavender).BorderForeground(colorSurface1)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	return t.View()
}

func renderHalls(h present.HallsView, width, height int) string {
	if len(h.Halls) == 0 {
		return ""
	}
	cards := make([]widgets.Widget, 0, len(h.Halls))
	for _, hall := range h.Halls {
		cards = append(cards, hallCard(hall))
	}
	return renderAll(cards, "halls", gridSpec{
		width: width, height: height, gap: 2,
		cellHeight: hallCardHeight, minHeight: hallCardHeight,
		startCols: 2, minCellWidth: minCardWidth,
	})
}

func hallCard(h present.HallCard) widgets.Widget {
	return widgetFunc(func(width, height int) string {
		inner := max(1, width-4)
		pill, border := occupiedStyle, colorError
		if h.Available {
			pill, border = availableStyle, colorSuccess
		}
		title := joinEnds(statValueStyle.Render(h.Name), pill.Render(h.Status), inner)
		content := strings.Join([]string{
			joinEnds(mutedStyle.Render("Utilization:"), statValueStyle.Render(fmt.Sprintf("%d%%", h.Utilization)), inner),
			progressBar(inner, border, float64(h.Utilization)/100),
			joinEnds(mutedStyle.Render("Classes Today:"), statValueStyle.Render(strconv.Itoa(h.ClassesToday)), inner),
		}, "\n")
		return widgets.Card{Title: title, Content: content, BorderColor: border}.Render(width, height)
	})
}

func renderNotices(n present.NoticesView, width, height int) string {
	if len(n.Notices) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, mutedStyle.Render(present.NoNoticesText))
	}
	cards := make([]widgets.Widget, 0, len(n.Notices))
	for _, notice := range n.Notices {
		cards = append(cards, noticeCard(notice))
	}
	return renderAll(cards, "notices", gridSpec{
		width: width, height: height, gap: 2,
		cellHeight: noticeCardHeight, minHeight: minNoticeCardHeight,
		startCols: 1, minCellWidth: minCardWidth,
	})
}

func noticeCard(n signage.Notice) widgets.Widget {
	return widgetFunc(func(width, height int) string {
		inner := max(1, width-4)
		desc := mutedStyle.Render(ansi.Truncate(n.Description, inner, "…"))
		date := dateStyle.Render(ansi.Truncate(n.Date, inner, "…"))
		content := desc + "\n" + date
		if height-2 < 3 {
			// one body line left: description and date share it
			content = ansi.Truncate(desc+mutedStyle.Render(" · ")+date, inner, "…")
		}
		return widgets.Card{
			Title:       sectionTitleStyle.Render(ansi.Truncate(n.Title, inner, "…")),
			Content:     content,
			BorderColor: colorSurface1,
		}.Render(width, height)
	})
}

type gridSpec struct {
	width, height int
	gap           int
	cellHeight    int
	minHeight     int
	startCols     int
	minCellWidth  int
}

// shape picks the column count and cell height for n cells: widen first while
// cells stay at least minCellWidth wide, then shorten cells down to minHeight.
// ok is false when n cells cannot all fit even at the smallest shape.
func (g gridSpec) shape(n int) (cols, cellHeight int, ok bool) {
	cellWidth := func(c int) int { return (g.width - g.gap*(c-1)) / c }
	start := max(1, g.startCols)
	maxCols := start
	for cellWidth(maxCols+1) >= g.minCellWidth {
		maxCols++
	}
	for h := g.cellHeight; h >= max(1, g.minHeight); h-- {
		for c := start; c <= maxCols; c++ {
			if ((n+c-1)/c)*h <= g.height {
				return c, h, true
			}
		}
	}
	return maxCols, max(1, g.minHeight), false
}

// renderAll lays every cell out in a grid sized to show all of them. If even
// the smallest shape overflows, the last line says how many were left out.
func renderAll(cells []widgets.Widget, noun string, g gridSpec) string {
	cols, cellHeight, ok := g.shape(len(cells))
	grid := widgets.Grid{Widgets: cells, Columns: cols, CellHeight: cellHeight, Gap: g.gap}
	if ok {
		return grid.Render(g.width, g.height)
	}
	gridHeight := max(1, g.height-1)
	shown := min(len(cells), (gridHeight/cellHeight)*cols)
	more := mutedStyle.Render(fmt.Sprintf("+%d more %s", len(cells)-shown, noun))
	return grid.Render(g.width, gridHeight) + "\n" + lipgloss.PlaceHorizontal(g.width, lipgloss.Center, more)
}

func progressBar(width int, color lipgloss.Color, ratio float64) string {
	ratio = max(0, min(1, ratio))
	p := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithoutPercentage(),
		progress.WithWidth(max(1, width)),
	)
	p.EmptyColor = string(colorSurface0)
	return p.ViewAs(ratio)
}

// joinEnds puts left and right on one line of the given width.
func joinEnds(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
