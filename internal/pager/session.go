package pager

import (
	"fmt"

	"github.com/glabrego/fiets-cli/internal/fiets"
)

// BookmarkAction is the toggle request a post currently offers.
type BookmarkAction int

const (
	BookmarkAdd BookmarkAction = iota
	BookmarkRemove
)

func (a BookmarkAction) String() string {
	if a == BookmarkRemove {
		return "remove-bookmark"
	}
	return "add-bookmark"
}

// Session holds the state built from one page load.
type Session struct {
	Window    *Window
	Unread    *UnreadCounter
	Bookmarks *BookmarkCounter
	MarkRead  *MarkReadController
}

// NewSession ingests a freshly loaded page.
func NewSession(page fiets.Page) (*Session, error) {
	pageSize := page.PageSize
	if pageSize < 1 {
		pageSize = fiets.DefaultPageSize
	}
	window, err := NewWindow(pageSize)
	if err != nil {
		return nil, err
	}
	window.Ingest(page.Posts)

	unread := DetachedUnreadCounter(page.Title)
	if page.UnreadCount != nil {
		unread = NewUnreadCounter(*page.UnreadCount, page.Title)
	}
	bookmarks := DetachedBookmarkCounter()
	if page.BookmarkCount != nil {
		bookmarks = NewBookmarkCounter(*page.BookmarkCount)
	}

	return &Session{
		Window:    window,
		Unread:    unread,
		Bookmarks: bookmarks,
		MarkRead:  NewMarkReadController(window, unread, page.TotalUnread),
	}, nil
}

// BookmarkTarget picks the href and action for toggling a cached post.
func (s *Session) BookmarkTarget(postID int64) (string, BookmarkAction, error) {
	post, ok := s.Window.Post(postID)
	if !ok {
		return "", BookmarkAdd, fmt.Errorf("post %d is not loaded", postID)
	}
	if post.Bookmarked {
		if post.RemoveBookmarkHref == "" {
			return "", BookmarkRemove, fmt.Errorf("post %d has no remove-bookmark link", postID)
		}
		return post.RemoveBookmarkHref, BookmarkRemove, nil
	}
	if post.AddBookmarkHref == "" {
		return "", BookmarkAdd, fmt.Errorf("post %d has no add-bookmark link", postID)
	}
	return post.AddBookmarkHref, BookmarkAdd, nil
}

// ApplyBookmarkToggled records a confirmed toggle: the post's state follows
// the action and the count moves by one.
func (s *Session) ApplyBookmarkToggled(postID int64, action BookmarkAction) {
	switch action {
	case BookmarkAdd:
		s.Window.SetBookmarked(postID, true)
		s.Bookmarks.Increment()
	case BookmarkRemove:
		s.Window.SetBookmarked(postID, false)
		s.Bookmarks.Decrement()
	}
}
