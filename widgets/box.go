package widgets

import "github.com/charmbracelet/lipgloss"

// Card is a rounded, bordered panel with an optional title line.
type Card struct {
	Title       string
	Content     string
	BorderColor lipgloss.TerminalColor
}

func (c Card) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(max(1, width-2)).
		Height(max(1, height-2))
	if c.BorderColor != nil {
		style = style.BorderForeground(c.BorderColor)
	}
	body := c.Content
	if c.Title != "" {
		body = c.Title + "\n" + body
	}
	return style.Render(body)
}

// Text renders a fixed string, clipped to the given box.
type Text string

func (t Text) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return fitCanvas(string(t), width, height)
}
