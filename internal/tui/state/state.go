// Package state holds the cursor and scroll arithmetic of the list screens.
package state

import "github.com/glabrego/fiets-cli/internal/fiets"

const (
	// chromeLines is header, mark-read button, footer and help.
	chromeLines  = 6
	messageLines = 2
	minPageStep  = 3
	// defaultPageStep applies before the first window size message.
	defaultPageStep = 10
)

// ClampCursor keeps cursor inside a list of size rows. An empty list pins it
// to 0.
func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	return max(0, min(cursor, size-1))
}

// PageStep is how far page up and page down move the cursor.
func PageStep(height int, hasMessage bool) int {
	if height <= 0 {
		return defaultPageStep
	}
	reserved := chromeLines
	if hasMessage {
		reserved += messageLines
	}
	return max(minPageStep, height-reserved)
}

// CenteredWindow returns the [start, end) rows to draw so the cursor sits in
// the middle of a body of height rows where the list allows it.
func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	start := ClampCursor(cursor, totalRows) - height/2
	start = max(0, min(start, totalRows-height))
	return start, start + height
}

func PostIndexByID(posts []fiets.Post, postID int64) int {
	for i := range posts {
		if posts[i].ID == postID {
			return i
		}
	}
	return -1
}

// RestoreCursor keeps the cursor on the post it pointed at when that post is
// still listed, and otherwise clamps the previous position.
func RestoreCursor(posts []fiets.Post, anchorID int64, previous int) int {
	if anchorID != 0 {
		if idx := PostIndexByID(posts, anchorID); idx >= 0 {
			return idx
		}
	}
	return ClampCursor(previous, len(posts))
}

// MaxScrollTop is the largest top offset that still fills a body of height
// lines.
func MaxScrollTop(totalLines, height int) int {
	if height <= 0 || totalLines <= height {
		return 0
	}
	return totalLines - height
}
