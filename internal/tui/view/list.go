package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/glabrego/fiets-cli/internal/fiets"
	tuitheme "github.com/glabrego/fiets-cli/internal/tui/theme"
)

// NoMorePosts replaces the list once the window is exhausted.
const NoMorePosts = "No more posts."

type PostLineParams struct {
	Post        fiets.Post
	Compact     bool
	ShowNumbers bool
	VisiblePos  int
	Active      bool
	Width       int
}

func RenderPostLine(p PostLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	bookmarkMarker := " "
	if p.Post.Bookmarked {
		bookmarkMarker = "*"
	}

	prefix := fmt.Sprintf("  %s%s ", cursorMarker, bookmarkMarker)
	if p.ShowNumbers {
		prefix = fmt.Sprintf("  %s%s%2d. ", cursorMarker, bookmarkMarker, p.VisiblePos+1)
	}
	dateLabel := ""
	if date := strings.TrimSpace(p.Post.Date); date != "" {
		dateLabel = "[" + date + "]"
	}
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(dateLabel)
	if available < 1 {
		available = 1
	}

	label := p.Post.DisplayTitle()
	if p.Compact {
		label = CompactPostLabel(p.Post)
	}
	label = truncate(label, available)
	styledTitle := th.StylePostTitle(p.Post, label)
	if dateLabel == "" {
		return th.RenderActiveLine(p.Active, prefix+styledTitle)
	}
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(dateLabel)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+styledTitle+strings.Repeat(" ", gap)+th.MetaLabel.Render(dateLabel))
}

func CompactPostLabel(post fiets.Post) string {
	title := post.DisplayTitle()
	if title == "" {
		title = "(untitled)"
	}
	feed := strings.TrimSpace(post.FeedTitle)
	if feed == "" {
		return title
	}
	return feed + " | " + title
}

// RenderPostList renders posts[start:end], numbering from start.
func RenderPostList(posts []fiets.Post, start, end, cursor, width int, compact bool, th tuitheme.Theme) string {
	if len(posts) == 0 {
		return th.MetaLabel.Render(NoMorePosts) + "\n"
	}
	if start < 0 {
		start = 0
	}
	if end > len(posts) {
		end = len(posts)
	}
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(RenderPostLine(PostLineParams{
			Post:        posts[i],
			Compact:     compact,
			ShowNumbers: true,
			VisiblePos:  i,
			Active:      i == cursor,
			Width:       width,
		}, th))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

func visibleLen(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

func StripANSI(s string) string {
	return ansi.Strip(s)
}
