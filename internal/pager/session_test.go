package pager

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glabrego/fiets-cli/internal/fiets"
)

func intPtr(v int) *int { return &v }

func TestNewSession_FromPage(t *testing.T) {
	page := fiets.Page{
		Title:         "2 of 3 posts - Fiets",
		PageSize:      2,
		TotalUnread:   3,
		UnreadCount:   intPtr(3),
		BookmarkCount: intPtr(4),
		Posts:         makePosts(1, 2, 3),
	}

	s, err := NewSession(page)
	require.NoError(t, err)
	require.Equal(t, 2, s.Window.PageSize())
	require.Equal(t, "Mark 2 of 3 read", s.MarkRead.Label())

	total, shown := s.Unread.Total()
	require.True(t, shown)
	require.Equal(t, 3, total)
	count, shown := s.Bookmarks.Count()
	require.True(t, shown)
	require.Equal(t, 4, count)
}

func TestNewSession_DefaultsAndDetachedCounters(t *testing.T) {
	s, err := NewSession(fiets.Page{Posts: makePosts(1)})
	require.NoError(t, err)
	require.Equal(t, fiets.DefaultPageSize, s.Window.PageSize())

	_, shown := s.Unread.Total()
	require.False(t, shown)
	_, shown = s.Bookmarks.Count()
	require.False(t, shown)
}

func TestSession_BookmarkToggle(t *testing.T) {
	posts := []fiets.Post{
		{ID: 1, AddBookmarkHref: "/add-bookmark?post=1", RemoveBookmarkHref: "/remove-bookmark?post=1"},
		{ID: 2, Bookmarked: true, AddBookmarkHref: "/add-bookmark?post=2", RemoveBookmarkHref: "/remove-bookmark?post=2"},
	}
	s, err := NewSession(fiets.Page{PageSize: 5, Posts: posts, BookmarkCount: intPtr(4)})
	require.NoError(t, err)

	href, action, err := s.BookmarkTarget(1)
	require.NoError(t, err)
	require.Equal(t, "/add-bookmark?post=1", href)
	require.Equal(t, BookmarkAdd, action)

	// success path
	s.ApplyBookmarkToggled(1, action)
	count, _ := s.Bookmarks.Count()
	require.Equal(t, 5, count)
	p, _ := s.Window.Post(1)
	require.True(t, p.Bookmarked)

	href, action, err = s.BookmarkTarget(2)
	require.NoError(t, err)
	require.Equal(t, "/remove-bookmark?post=2", href)
	require.Equal(t, BookmarkRemove, action)
	s.ApplyBookmarkToggled(2, action)
	count, _ = s.Bookmarks.Count()
	require.Equal(t, 4, count)
	p, _ = s.Window.Post(2)
	require.False(t, p.Bookmarked)

	_, _, err = s.BookmarkTarget(99)
	require.Error(t, err)
}

func TestSession_BookmarkTargetRequiresHref(t *testing.T) {
	s, err := NewSession(fiets.Page{Posts: []fiets.Post{{ID: 1}}})
	require.NoError(t, err)
	_, _, err = s.BookmarkTarget(1)
	require.Error(t, err)
}
