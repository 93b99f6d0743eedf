package app

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/glabrego/fiets-cli/internal/fiets"
	"github.com/glabrego/fiets-cli/internal/logging"
	"github.com/glabrego/fiets-cli/internal/pager"
	"github.com/glabrego/fiets-cli/internal/storage"
)

const DefaultHistoryLimit = 20

type FietsClient interface {
	FetchPage(ctx context.Context, limit int) (fiets.Page, error)
	Counts(ctx context.Context) (fiets.Counts, error)
	MarkRead(ctx context.Context, ids []int64) error
	ToggleBookmark(ctx context.Context, href string) error
	ListFilters(ctx context.Context) ([]fiets.Filter, error)
	AddFilter(ctx context.Context, f fiets.Filter) error
	EditFilter(ctx context.Context, f fiets.Filter) error
	DeleteFilter(ctx context.Context, id int64) error
}

type Repository interface {
	RecordAction(ctx context.Context, a storage.Action) error
	ListActions(ctx context.Context, limit int) ([]storage.Action, error)
	SaveBoolPreference(ctx context.Context, key string, value bool) error
	LoadBoolPreference(ctx context.Context, key string, fallback bool) (bool, error)
}

// Startup is what the client loads before showing anything.
type Startup struct {
	Page    fiets.Page
	Filters []fiets.Filter
	// FiltersErr is set when the filter list could not be loaded; the page
	// is still usable without it.
	FiltersErr error
}

type UIPreferences struct {
	Compact bool
}

type Service struct {
	client     FietsClient
	repo       Repository
	fetchLimit int
	logger     logging.Logger
}

func NewService(client FietsClient, repo Repository, fetchLimit int, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{client: client, repo: repo, fetchLimit: fetchLimit, logger: logger.With("component", "service")}
}

// Load fetches the unread page and the filter list concurrently.
func (s *Service) Load(ctx context.Context) (Startup, error) {
	var out Startup
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.client.FetchPage(gctx, s.fetchLimit)
		if err != nil {
			return fmt.Errorf("load unread posts: %w", err)
		}
		out.Page = page
		return nil
	})
	g.Go(func() error {
		filters, err := s.client.ListFilters(gctx)
		if err != nil {
			s.logger.Warn("could not load filters", "err", err)
			out.FiltersErr = err
			return nil
		}
		out.Filters = filters
		return nil
	})
	if err := g.Wait(); err != nil {
		return Startup{}, err
	}
	s.logger.Info("page loaded", "posts", len(out.Page.Posts), "page_size", out.Page.PageSize, "total_unread", out.Page.TotalUnread)
	return out, nil
}

func (s *Service) Counts(ctx context.Context) (fiets.Counts, error) {
	counts, err := s.client.Counts(ctx)
	if err != nil {
		return fiets.Counts{}, fmt.Errorf("fetch counts: %w", err)
	}
	return counts, nil
}

// MarkRead sends the request and journals the outcome. The caller has
// already advanced its local state; an error here is only reported.
func (s *Service) MarkRead(ctx context.Context, ids []int64) error {
	err := s.client.MarkRead(ctx, ids)
	s.record(ctx, storage.ActionMarkRead, ids, "", err)
	if err != nil {
		return fmt.Errorf("mark posts read: %w", err)
	}
	return nil
}

func (s *Service) ToggleBookmark(ctx context.Context, postID int64, href string, action pager.BookmarkAction) error {
	kind := storage.ActionAddBookmark
	if action == pager.BookmarkRemove {
		kind = storage.ActionRemoveBookmark
	}
	err := s.client.ToggleBookmark(ctx, href)
	s.record(ctx, kind, []int64{postID}, href, err)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

func (s *Service) ListFilters(ctx context.Context) ([]fiets.Filter, error) {
	filters, err := s.client.ListFilters(ctx)
	if err != nil {
		return nil, fmt.Errorf("load filters: %w", err)
	}
	return filters, nil
}

// SaveFilter submits the form to the add or edit endpoint its mode selects.
func (s *Service) SaveFilter(ctx context.Context, form pager.FilterForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	f := form.Filter()
	kind := storage.ActionAddFilter
	var err error
	if form.Mode() == pager.FilterEditing {
		kind = storage.ActionEditFilter
		err = s.client.EditFilter(ctx, f)
	} else {
		err = s.client.AddFilter(ctx, f)
	}
	s.record(ctx, kind, nil, filterDetail(f), err)
	if err != nil {
		return fmt.Errorf("save filter: %w", err)
	}
	return nil
}

func (s *Service) DeleteFilter(ctx context.Context, id int64) error {
	err := s.client.DeleteFilter(ctx, id)
	s.record(ctx, storage.ActionDeleteFilter, nil, "id="+strconv.FormatInt(id, 10), err)
	if err != nil {
		return fmt.Errorf("delete filter %d: %w", id, err)
	}
	return nil
}

func (s *Service) History(ctx context.Context, limit int) ([]storage.Action, error) {
	actions, err := s.repo.ListActions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return actions, nil
}

const prefCompact = "ui.compact"

func (s *Service) LoadUIPreferences(ctx context.Context) (UIPreferences, error) {
	compact, err := s.repo.LoadBoolPreference(ctx, prefCompact, false)
	if err != nil {
		return UIPreferences{}, fmt.Errorf("load ui preferences: %w", err)
	}
	return UIPreferences{Compact: compact}, nil
}

func (s *Service) SaveUIPreferences(ctx context.Context, p UIPreferences) error {
	if err := s.repo.SaveBoolPreference(ctx, prefCompact, p.Compact); err != nil {
		return fmt.Errorf("save ui preferences: %w", err)
	}
	return nil
}

// record journals an action. A journal failure never masks the outcome of
// the action itself.
func (s *Service) record(ctx context.Context, kind storage.ActionKind, ids []int64, detail string, actionErr error) {
	a := storage.Action{Kind: kind, PostIDs: ids, Detail: detail}
	if actionErr != nil {
		a.Err = actionErr.Error()
		s.logger.Error("action failed", "kind", kind, "posts", ids, "err", actionErr)
	} else {
		s.logger.Info("action done", "kind", kind, "posts", ids)
	}
	if s.repo == nil {
		return
	}
	if err := s.repo.RecordAction(context.WithoutCancel(ctx), a); err != nil {
		s.logger.Warn("could not journal action", "kind", kind, "err", err)
	}
}

func filterDetail(f fiets.Filter) string {
	detail := fmt.Sprintf("url %s %q, title %s %q", f.URLMatch, f.URL, f.TitleMatch, f.Title)
	if f.ID > 0 {
		return fmt.Sprintf("id=%d %s", f.ID, detail)
	}
	return detail
}
