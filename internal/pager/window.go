// Package pager owns the client-side view over the unread posts: the cached
// window, the mirrored counters and the mark-read controller. Nothing here
// performs I/O; callers dispatch requests and feed results back in.
package pager

import (
	"errors"
	"fmt"

	"github.com/glabrego/fiets-cli/internal/fiets"
)

var (
	ErrInvalidPageSize   = errors.New("page size must be positive")
	ErrConsumeBeyondPage = errors.New("consume exceeds visible page")
)

// Window is a cache of not yet read posts in server order. The visible page
// is always derived as the first pageSize posts of the cache.
type Window struct {
	cache    []fiets.Post
	pageSize int
}

func NewWindow(pageSize int) (*Window, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}
	return &Window{pageSize: pageSize}, nil
}

// Ingest replaces the cache with posts.
func (w *Window) Ingest(posts []fiets.Post) {
	w.cache = append([]fiets.Post(nil), posts...)
}

// VisiblePage returns a copy of the first pageSize cached posts.
func (w *Window) VisiblePage() []fiets.Post {
	n := min(w.pageSize, len(w.cache))
	return append([]fiets.Post(nil), w.cache[:n]...)
}

// Consume drops the first n posts. Only posts that are currently visible
// can be consumed.
func (w *Window) Consume(n int) error {
	visible := min(w.pageSize, len(w.cache))
	if n < 0 || n > visible {
		return fmt.Errorf("%w: n=%d visible=%d", ErrConsumeBeyondPage, n, visible)
	}
	w.cache = w.cache[n:]
	return nil
}

func (w *Window) IsExhausted() bool {
	return len(w.cache) == 0
}

func (w *Window) PageSize() int {
	return w.pageSize
}

// Len is the number of cached posts, visible or not.
func (w *Window) Len() int {
	return len(w.cache)
}

// Post looks up a cached post by id.
func (w *Window) Post(id int64) (fiets.Post, bool) {
	for _, p := range w.cache {
		if p.ID == id {
			return p, true
		}
	}
	return fiets.Post{}, false
}

// SetBookmarked updates the bookmark state of a cached post and reports
// whether the post was found.
func (w *Window) SetBookmarked(id int64, bookmarked bool) bool {
	for i := range w.cache {
		if w.cache[i].ID == id {
			w.cache[i].Bookmarked = bookmarked
			return true
		}
	}
	return false
}
