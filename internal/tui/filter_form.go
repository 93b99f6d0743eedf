package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/fiets-cli/internal/fiets"
	"github.com/glabrego/fiets-cli/internal/pager"
	tuitheme "github.com/glabrego/fiets-cli/internal/tui/theme"
)

type formField int

const (
	fieldURL formField = iota
	fieldURLMatch
	fieldTitle
	fieldTitleMatch
	fieldCount
)

// filterFormModel edits a pager.FilterForm. The text fields live in
// textinputs; match modes are cycled with left/right.
type filterFormModel struct {
	form       pager.FilterForm
	urlInput   textinput.Model
	titleInput textinput.Model
	focus      formField
	err        error
}

func newFilterFormModel(form pager.FilterForm) filterFormModel {
	urlInput := textinput.New()
	urlInput.Placeholder = "URL"
	urlInput.CharLimit = 500
	urlInput.SetValue(form.URL)

	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.CharLimit = 300
	titleInput.SetValue(form.Title)

	f := filterFormModel{form: form, urlInput: urlInput, titleInput: titleInput}
	f.setFocus(fieldURL)
	return f
}

func (f *filterFormModel) setFocus(field formField) tea.Cmd {
	f.focus = (field + fieldCount) % fieldCount
	f.urlInput.Blur()
	f.titleInput.Blur()
	switch f.focus {
	case fieldURL:
		return f.urlInput.Focus()
	case fieldTitle:
		return f.titleInput.Focus()
	}
	return nil
}

// Value returns the form as currently edited.
func (f filterFormModel) Value() pager.FilterForm {
	form := f.form
	form.URL = f.urlInput.Value()
	form.Title = f.titleInput.Value()
	return form
}

// update handles a key inside the form. submit is true when the user asked
// to save and the form validated.
func (f filterFormModel) update(msg tea.KeyMsg) (filterFormModel, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		return f, f.setFocus(f.focus + 1), false
	case "shift+tab", "up":
		return f, f.setFocus(f.focus - 1), false
	case "enter":
		if err := f.Value().Validate(); err != nil {
			f.err = err
			return f, nil, false
		}
		f.err = nil
		return f, nil, true
	}

	switch f.focus {
	case fieldURLMatch, fieldTitleMatch:
		step := 0
		switch msg.String() {
		case "left", "h":
			step = -1
		case "right", "l", " ":
			step = 1
		}
		if step != 0 {
			if f.focus == fieldURLMatch {
				f.form.URLMatch = pager.NextMatch(f.form.URLMatch, step)
			} else {
				f.form.TitleMatch = pager.NextMatch(f.form.TitleMatch, step)
			}
			f.err = nil
		}
		return f, nil, false
	case fieldURL:
		var cmd tea.Cmd
		f.urlInput, cmd = f.urlInput.Update(msg)
		return f, cmd, false
	default:
		var cmd tea.Cmd
		f.titleInput, cmd = f.titleInput.Update(msg)
		return f, cmd, false
	}
}

func (f filterFormModel) view(th tuitheme.Theme) string {
	var b strings.Builder
	heading := "Add filter"
	if id, ok := f.form.ID(); ok {
		heading = fmt.Sprintf("Edit filter #%d", id)
	}
	b.WriteString(th.Section.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(f.row(fieldURL, "URL", f.urlInput.View(), th))
	b.WriteString(f.row(fieldURLMatch, "URL match", matchChoice(f.form.URLMatch), th))
	b.WriteString(f.row(fieldTitle, "Title", f.titleInput.View(), th))
	b.WriteString(f.row(fieldTitleMatch, "Title match", matchChoice(f.form.TitleMatch), th))
	b.WriteString("\n")
	if f.err != nil {
		b.WriteString(th.StateWarn.Render(f.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(th.MetaLabel.Render("tab: next field | ←/→: change match | enter: save | esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

func (f filterFormModel) row(field formField, label, value string, th tuitheme.Theme) string {
	labelStyle := th.FormLabel
	marker := "  "
	if f.focus == field {
		labelStyle = th.FormActive
		marker = "> "
	}
	return marker + labelStyle.Render(fmt.Sprintf("%-12s", label)) + " " + value + "\n"
}

func matchChoice(m fiets.FilterMatch) string {
	if m == "" {
		return "‹ ? ›"
	}
	return "‹ " + string(m) + " ›"
}
