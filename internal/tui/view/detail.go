package view

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/glabrego/fiets-cli/internal/fiets"
)

func DetailLines(post fiets.Post, width int) []string {
	title := post.DisplayTitle()
	lines := make([]string, 0, 16)
	lines = append(lines, WrapText(title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, runewidth.StringWidth(title)))))
	lines = append(lines, "")

	if post.FeedTitle != "" {
		lines = append(lines, WrapText("Feed: "+post.FeedTitle, width)...)
	}
	if post.Date != "" {
		lines = append(lines, "Date: "+post.Date)
	}
	if post.Bookmarked {
		lines = append(lines, "Bookmarked: yes")
	} else {
		lines = append(lines, "Bookmarked: no")
	}
	if post.URL != "" {
		lines = append(lines, WrapText("URL: "+post.URL, width)...)
	}
	if snippet := strings.TrimSpace(post.Snippet); snippet != "" {
		lines = append(lines, "")
		lines = append(lines, WrapText(snippet, width)...)
	}
	return lines
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if top < 0 {
		top = 0
	}
	if top > len(lines) {
		top = len(lines)
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}

// WrapText breaks text on word boundaries so no line exceeds width cells.
// Words wider than the line are split.
func WrapText(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var current strings.Builder
	currentWidth := 0
	for _, word := range strings.Fields(text) {
		for runewidth.StringWidth(word) > width {
			if currentWidth > 0 {
				lines = append(lines, current.String())
				current.Reset()
				currentWidth = 0
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		w := runewidth.StringWidth(word)
		if w == 0 {
			continue
		}
		if currentWidth > 0 && currentWidth+1+w > width {
			lines = append(lines, current.String())
			current.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			current.WriteByte(' ')
			currentWidth++
		}
		current.WriteString(word)
		currentWidth += w
	}
	if currentWidth > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
