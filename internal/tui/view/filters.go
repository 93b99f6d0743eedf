package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/fiets-cli/internal/fiets"
	tuitheme "github.com/glabrego/fiets-cli/internal/tui/theme"
)

func FilterLabel(f fiets.Filter) string {
	parts := make([]string, 0, 2)
	if f.URLMatch != fiets.MatchIgnore && f.URLMatch != "" {
		parts = append(parts, fmt.Sprintf("url %s %q", f.URLMatch, f.URL))
	}
	if f.TitleMatch != fiets.MatchIgnore && f.TitleMatch != "" {
		parts = append(parts, fmt.Sprintf("title %s %q", f.TitleMatch, f.Title))
	}
	if len(parts) == 0 {
		return "matches everything"
	}
	return strings.Join(parts, " and ")
}

func RenderFilterList(filters []fiets.Filter, cursor, width int, th tuitheme.Theme) string {
	if len(filters) == 0 {
		return th.MetaLabel.Render("No filters.") + "\n"
	}
	var b strings.Builder
	for i, f := range filters {
		marker := " "
		if i == cursor {
			marker = ">"
		}
		line := fmt.Sprintf("  %s #%d %s", marker, f.ID, truncate(FilterLabel(f), width-10))
		b.WriteString(th.RenderActiveLine(i == cursor, line))
		b.WriteString("\n")
	}
	return b.String()
}
