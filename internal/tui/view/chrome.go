package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/fiets-cli/internal/tui/theme"
)

// Header shows the document title and the two server-side counters. A
// counter the page did not carry renders as "-".
func Header(title string, unread, bookmarks *int, th tuitheme.Theme) string {
	parts := []string{
		th.Title.Render(title),
		th.MetaLabel.Render("unread") + " " + th.UnreadCount.Render(countLabel(unread)),
		th.MetaLabel.Render("bookmarks") + " " + th.MetaValue.Render(countLabel(bookmarks)),
	}
	return strings.Join(parts, "  ")
}

func countLabel(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}

func Footer(mode string, shown, cached, pageSize int, th tuitheme.Theme) string {
	parts := []string{
		th.ModePill.Render(mode),
		th.MetaValue.Render(fmt.Sprintf("%d shown", shown)),
		th.MetaValue.Render(fmt.Sprintf("%d cached", cached)),
		th.MetaLabel.Render("page size") + " " + th.MetaValue.Render(fmt.Sprintf("%d", pageSize)),
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, hasWarning bool, status, warning, spinner string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
		if spinner != "" {
			stateLabel = spinner + " " + stateLabel
		}
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}

// MarkReadButton renders the mark-read affordance; a disabled one is drawn
// struck through and cannot be triggered.
func MarkReadButton(label string, enabled bool, th tuitheme.Theme) string {
	if !enabled {
		return th.Disabled.Render("[ " + label + " ]")
	}
	return th.ModePill.Render("m") + " " + th.Section.Render("[ "+label+" ]")
}

// Alert renders a blocking message that needs to be dismissed.
func Alert(message string, width int, th tuitheme.Theme) string {
	body := message + "\n\n" + th.MetaLabel.Render("press enter or esc to dismiss")
	if width > 4 {
		return th.Alert.Width(width - 4).Render(body)
	}
	return th.Alert.Render(body)
}
