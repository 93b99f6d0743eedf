// Package theme holds the lipgloss styles of the terminal client.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/fiets-cli/internal/fiets"
)

// palette is Catppuccin Mocha.
type palette struct {
	rosewater, mauve, red, peach, yellow, green, teal, lavender lipgloss.Color
	text, subtext0, subtext1, overlay0, overlay1, surface0       lipgloss.Color
}

var mocha = palette{
	rosewater: "#f5e0dc",
	mauve:     "#cba6f7",
	red:       "#f38ba8",
	peach:     "#fab387",
	yellow:    "#f9e2af",
	green:     "#a6e3a1",
	teal:      "#94e2d5",
	lavender:  "#b4befe",
	text:      "#cdd6f4",
	subtext0:  "#a6adc8",
	subtext1:  "#bac2de",
	overlay0:  "#6c7086",
	overlay1:  "#7f849c",
	surface0:  "#313244",
}

type Theme struct {
	Title       lipgloss.Style
	ModePill    lipgloss.Style
	Section     lipgloss.Style
	UnreadCount lipgloss.Style
	ActiveLine  lipgloss.Style
	MetaLabel   lipgloss.Style
	MetaValue   lipgloss.Style
	StateIdle   lipgloss.Style
	StateWarn   lipgloss.Style
	StateLoad   lipgloss.Style
	Disabled    lipgloss.Style
	Alert       lipgloss.Style
	FormLabel   lipgloss.Style
	FormActive  lipgloss.Style

	// postTitles is indexed by postTitleKind.
	postTitles [4]lipgloss.Style
}

type postTitleKind int

const (
	titleRead postTitleKind = iota
	titleUnread
	titleBookmarked
	titleUnreadBookmarked
)

func Default() Theme {
	p := mocha
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	t := Theme{
		Title:       fg(p.mauve).Bold(true),
		ModePill:    fg(p.lavender).Background(p.surface0).Padding(0, 1),
		Section:     fg(p.teal).Bold(true),
		UnreadCount: fg(p.yellow).Bold(true),
		ActiveLine:  fg(p.text).Background(p.surface0),
		MetaLabel:   fg(p.overlay1),
		MetaValue:   fg(p.subtext1),
		StateIdle:   fg(p.green),
		StateWarn:   fg(p.red),
		StateLoad:   fg(p.peach),
		Disabled:    fg(p.overlay0).Strikethrough(true),
		Alert:       fg(p.red).Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(p.red).Padding(0, 1),
		FormLabel:   fg(p.overlay1),
		FormActive:  fg(p.mauve).Bold(true),
	}
	t.postTitles[titleRead] = fg(p.subtext0)
	t.postTitles[titleUnread] = fg(p.text).Bold(true)
	t.postTitles[titleBookmarked] = fg(p.lavender).Italic(true)
	t.postTitles[titleUnreadBookmarked] = fg(p.rosewater).Bold(true).Italic(true)
	return t
}

// StylePostTitle colors a title by the post's read and bookmark flags.
func (t Theme) StylePostTitle(post fiets.Post, title string) string {
	if title == "" {
		return title
	}
	kind := titleRead
	if !post.Read {
		kind = titleUnread
	}
	if post.Bookmarked {
		kind += titleBookmarked
	}
	return t.postTitles[kind].Render(title)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
