package pager

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/glabrego/fiets-cli/internal/fiets"
)

var ErrInvalidFilterMatch = errors.New("invalid filter match")

type FilterMode int

const (
	FilterAdding FilterMode = iota
	FilterEditing
)

func (m FilterMode) String() string {
	if m == FilterEditing {
		return "edit"
	}
	return "add"
}

// DefaultFilterMatch preselects the match mode for new filters.
const DefaultFilterMatch = fiets.MatchContains

// FilterForm is the state of the add/edit filter dialog. The mode decides
// which submit action applies and whether the id is meaningful; there is
// no way to hold an id while adding.
type FilterForm struct {
	mode       FilterMode
	id         int64
	URL        string
	URLMatch   fiets.FilterMatch
	Title      string
	TitleMatch fiets.FilterMatch
}

// NewAddFilterForm prefills the dialog from a post.
func NewAddFilterForm(post fiets.Post) FilterForm {
	return FilterForm{
		mode:       FilterAdding,
		URL:        post.URL,
		URLMatch:   DefaultFilterMatch,
		Title:      post.DisplayTitle(),
		TitleMatch: DefaultFilterMatch,
	}
}

// NewEditFilterForm prefills the dialog from an existing filter row.
func NewEditFilterForm(f fiets.Filter) FilterForm {
	return FilterForm{
		mode:       FilterEditing,
		id:         f.ID,
		URL:        f.URL,
		URLMatch:   f.URLMatch,
		Title:      f.Title,
		TitleMatch: f.TitleMatch,
	}
}

func (f FilterForm) Mode() FilterMode {
	return f.mode
}

// ID returns the filter id; ok is false while adding.
func (f FilterForm) ID() (int64, bool) {
	if f.mode != FilterEditing {
		return 0, false
	}
	return f.id, true
}

// Validate checks the match modes and that REGEX patterns compile.
func (f FilterForm) Validate() error {
	if f.mode == FilterEditing && f.id <= 0 {
		return fmt.Errorf("edit filter: invalid id %d", f.id)
	}
	fields := []struct {
		name    string
		match   fiets.FilterMatch
		pattern string
	}{
		{"url", f.URLMatch, f.URL},
		{"title", f.TitleMatch, f.Title},
	}
	for _, field := range fields {
		m, err := fiets.ParseFilterMatch(string(field.match))
		if err != nil {
			return fmt.Errorf("%w for %s: %v", ErrInvalidFilterMatch, field.name, err)
		}
		if m == fiets.MatchRegex {
			if _, err := regexp.Compile(field.pattern); err != nil {
				return fmt.Errorf("%s pattern: %w", field.name, err)
			}
		}
	}
	return nil
}

// Filter converts the form into the request payload.
func (f FilterForm) Filter() fiets.Filter {
	out := fiets.Filter{
		URL:        strings.TrimSpace(f.URL),
		URLMatch:   fiets.FilterMatch(strings.ToUpper(string(f.URLMatch))),
		Title:      strings.TrimSpace(f.Title),
		TitleMatch: fiets.FilterMatch(strings.ToUpper(string(f.TitleMatch))),
	}
	if f.mode == FilterEditing {
		out.ID = f.id
	}
	return out
}

// NextMatch cycles through the server's match modes.
func NextMatch(m fiets.FilterMatch, step int) fiets.FilterMatch {
	idx := 0
	for i, candidate := range fiets.FilterMatches {
		if candidate == m {
			idx = i
			break
		}
	}
	n := len(fiets.FilterMatches)
	return fiets.FilterMatches[((idx+step)%n+n)%n]
}
