package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/fiets-cli/internal/app"
	"github.com/glabrego/fiets-cli/internal/fiets"
	"github.com/glabrego/fiets-cli/internal/pager"
)

type Service interface {
	Load(ctx context.Context) (app.Startup, error)
	MarkRead(ctx context.Context, ids []int64) error
	ToggleBookmark(ctx context.Context, postID int64, href string, action pager.BookmarkAction) error
	ListFilters(ctx context.Context) ([]fiets.Filter, error)
	SaveFilter(ctx context.Context, form pager.FilterForm) error
	DeleteFilter(ctx context.Context, id int64) error
	SaveUIPreferences(ctx context.Context, p app.UIPreferences) error
}

type ReloadSuccessMsg struct {
	Startup  app.Startup
	Duration time.Duration
}

type ReloadErrorMsg struct {
	Err      error
	Duration time.Duration
}

// MarkReadDoneMsg reports how a dispatched mark-read request ended. Local
// state was already advanced when the request was dispatched.
type MarkReadDoneMsg struct {
	IDs []int64
	Err error
}

type BookmarkToggledMsg struct {
	PostID int64
	Action pager.BookmarkAction
}

type BookmarkFailedMsg struct {
	PostID int64
	Action pager.BookmarkAction
	Err    error
}

type FiltersLoadedMsg struct {
	Filters []fiets.Filter
}

type FiltersLoadErrorMsg struct {
	Err error
}

type FilterSavedMsg struct {
	Mode pager.FilterMode
}

type FilterSaveErrorMsg struct {
	Err error
}

type FilterDeletedMsg struct {
	ID int64
}

type FilterDeleteErrorMsg struct {
	ID  int64
	Err error
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

type PreferenceSaveErrorMsg struct {
	Err error
}

func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

func ReloadCmd(service Service, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		start := time.Now()

		startup, err := service.Load(ctx)
		if err != nil {
			return ReloadErrorMsg{Err: err, Duration: time.Since(start)}
		}
		return ReloadSuccessMsg{Startup: startup, Duration: time.Since(start)}
	}
}

func MarkReadCmd(service Service, ids []int64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		err := service.MarkRead(ctx, ids)
		return MarkReadDoneMsg{IDs: ids, Err: err}
	}
}

func ToggleBookmarkCmd(service Service, postID int64, href string, action pager.BookmarkAction, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		if err := service.ToggleBookmark(ctx, postID, href, action); err != nil {
			return BookmarkFailedMsg{PostID: postID, Action: action, Err: err}
		}
		return BookmarkToggledMsg{PostID: postID, Action: action}
	}
}

func LoadFiltersCmd(service Service, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		filters, err := service.ListFilters(ctx)
		if err != nil {
			return FiltersLoadErrorMsg{Err: err}
		}
		return FiltersLoadedMsg{Filters: filters}
	}
}

func SaveFilterCmd(service Service, form pager.FilterForm, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		if err := service.SaveFilter(ctx, form); err != nil {
			return FilterSaveErrorMsg{Err: err}
		}
		return FilterSavedMsg{Mode: form.Mode()}
	}
}

func DeleteFilterCmd(service Service, id int64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		if err := service.DeleteFilter(ctx, id); err != nil {
			return FilterDeleteErrorMsg{ID: id, Err: err}
		}
		return FilterDeletedMsg{ID: id}
	}
}

func SavePreferencesCmd(service Service, prefs app.UIPreferences) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := service.SaveUIPreferences(ctx, prefs); err != nil {
			return PreferenceSaveErrorMsg{Err: err}
		}
		return nil
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened URL in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}
