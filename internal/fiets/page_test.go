package fiets

import (
	"strings"
	"testing"
)

const unreadPageHTML = `<!DOCTYPE html>
<html><head><title>3 of 10 posts - Fiets</title></head>
<body>
<nav>Unread (<span class='unread-count'>10</span>) Bookmarks (<span class='bookmark-count'>4</span>)</nav>
<ul class='list-group posts-list' data-page-size='2'>
<li class='list-group-item post' data-post-id='11'><small>2026-10-01</small> | <small>Go Blog</small>
 <span class='post-actions'>
  <button type='button' class='btn btn-link btn-sm add-filter'>+Filter</button>
  <a href='/add-bookmark?post=11' class='add-bookmark btn btn-link btn-sm' role='button'>+Bookmark</a>
  <a href='/remove-bookmark?post=11' class='remove-bookmark btn btn-link btn-sm' role='button'>-Bookmark</a>
 </span>
 <h3 title='Range over func, explained at length'><a href='https://go.dev/blog/range-functions' target='_blank'>Range over func…</a></h3>
 <div>Iterators <em>arrive</em> in Go.</div></li>
<li class='list-group-item post bookmarked'><small>2026-10-02</small> | <small>Lobsters</small>
 <span class='post-actions'>
  <a href='/add-bookmark?post=12' class='add-bookmark'>+Bookmark</a>
  <a href='/remove-bookmark?post=12' class='remove-bookmark'>-Bookmark</a>
 </span>
 <h3 title='Second'><a href='https://example.com/2'>Second</a></h3><div></div></li>
<li class='list-group-item post' data-post-id='11'><h3 title='Duplicate'><a href='https://example.com/dup'>Duplicate</a></h3></li>
<li class='list-group-item post'><small>no id</small></li>
<li class='list-group-item post' data-post-id='13'><h3 title='Third'><a href='https://example.com/3'>Third</a></h3></li>
</ul>
<a class='mark-read-action' data-total-unread='10' href='/markread?posts=11,12'><small>Mark 2 of 10 read</small></a>
</body></html>`

func TestParsePage_ReadsPostsAndCounters(t *testing.T) {
	page, err := ParsePage(strings.NewReader(unreadPageHTML))
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}

	if page.Title != "3 of 10 posts - Fiets" {
		t.Fatalf("unexpected title: %q", page.Title)
	}
	if page.PageSize != 2 {
		t.Fatalf("unexpected page size: %d", page.PageSize)
	}
	if page.TotalUnread != 10 {
		t.Fatalf("unexpected total unread: %d", page.TotalUnread)
	}
	if page.UnreadCount == nil || *page.UnreadCount != 10 {
		t.Fatalf("unexpected unread count: %v", page.UnreadCount)
	}
	if page.BookmarkCount == nil || *page.BookmarkCount != 4 {
		t.Fatalf("unexpected bookmark count: %v", page.BookmarkCount)
	}

	if len(page.Posts) != 3 {
		t.Fatalf("expected 3 posts, got %d: %+v", len(page.Posts), page.Posts)
	}
	first := page.Posts[0]
	if first.ID != 11 || first.Date != "2026-10-01" || first.FeedTitle != "Go Blog" {
		t.Fatalf("unexpected first post: %+v", first)
	}
	if first.FullTitle != "Range over func, explained at length" || first.Title != "Range over func…" {
		t.Fatalf("unexpected titles: %+v", first)
	}
	if first.URL != "https://go.dev/blog/range-functions" {
		t.Fatalf("unexpected URL: %s", first.URL)
	}
	if first.Snippet != "Iterators arrive in Go." {
		t.Fatalf("unexpected snippet: %q", first.Snippet)
	}
	if first.AddBookmarkHref != "/add-bookmark?post=11" || first.RemoveBookmarkHref != "/remove-bookmark?post=11" {
		t.Fatalf("unexpected bookmark hrefs: %+v", first)
	}
	if first.Bookmarked {
		t.Fatal("first post should not be bookmarked")
	}

	second := page.Posts[1]
	if second.ID != 12 {
		t.Fatalf("expected id from bookmark href, got %d", second.ID)
	}
	if !second.Bookmarked {
		t.Fatal("second post should be bookmarked")
	}
	if page.Posts[2].ID != 13 {
		t.Fatalf("expected third post id 13, got %d", page.Posts[2].ID)
	}
}

func TestParsePage_FallsBackWithoutPagerAttributes(t *testing.T) {
	html := `<html><head><title>2 posts - Fiets</title></head><body>
<ul class='list-group'>
<li class='post' data-post-id='1'><h3 title='A'><a href='https://example.com/a'>A</a></h3></li>
<li class='post' data-post-id='2'><h3 title='B'><a href='https://example.com/b'>B</a></h3></li>
</ul></body></html>`

	page, err := ParsePage(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}
	if page.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", page.PageSize)
	}
	if page.TotalUnread != 2 {
		t.Fatalf("expected total unread to fall back to post count, got %d", page.TotalUnread)
	}
	if page.UnreadCount != nil || page.BookmarkCount != nil {
		t.Fatalf("expected counters to be absent: %+v", page)
	}
}

func TestParseFilters_ReadsRows(t *testing.T) {
	html := `<html><body>
<ul class='filter' data-id='7'>
 <li><input class='url' value='https://spam.example.com'></li>
 <li><input class='url-match' value='starts_with'></li>
 <li><input class='title' value='Sponsored'></li>
 <li><input class='title-match' value='CONTAINS'></li>
 <li class='filter-actions'><button class='edit-filter'>Edit</button></li>
</ul>
<ul class='filter' data-id='nope'><li><input class='url' value='x'></li></ul>
</body></html>`

	filters, err := ParseFilters(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseFilters returned error: %v", err)
	}
	if len(filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(filters))
	}
	got := filters[0]
	want := Filter{ID: 7, URL: "https://spam.example.com", URLMatch: MatchStartsWith, Title: "Sponsored", TitleMatch: MatchContains}
	if got != want {
		t.Fatalf("unexpected filter: %+v", got)
	}
}

func TestParseFilterMatch(t *testing.T) {
	m, err := ParseFilterMatch(" ends_with ")
	if err != nil || m != MatchEndsWith {
		t.Fatalf("unexpected parse result: %q, %v", m, err)
	}
	if _, err := ParseFilterMatch("FUZZY"); err == nil {
		t.Fatal("expected error for unknown match")
	}
}
