package pager

import (
	"regexp"
	"strconv"
)

var rePostsCount = regexp.MustCompile(`(\d+)((?: of \d+)? posts)`)

// UnreadCounter mirrors the server's unread total and the document title
// that displays it. A detached counter ignores every update.
type UnreadCounter struct {
	total    int
	title    string
	attached bool
}

func NewUnreadCounter(total int, title string) *UnreadCounter {
	return &UnreadCounter{total: max(total, 0), title: title, attached: true}
}

// DetachedUnreadCounter is used when the page shows no unread counter.
func DetachedUnreadCounter(title string) *UnreadCounter {
	return &UnreadCounter{title: title}
}

// Set overwrites the total with the server's value.
func (c *UnreadCounter) Set(n int) {
	if !c.attached {
		return
	}
	c.apply(max(n, 0))
}

// DecrementBy subtracts k, never going below zero.
func (c *UnreadCounter) DecrementBy(k int) {
	if !c.attached || k <= 0 {
		return
	}
	c.apply(max(c.total-k, 0))
}

func (c *UnreadCounter) apply(n int) {
	c.total = n
	c.title = SubstituteTitle(c.title, n)
}

// Total returns the mirrored value and whether the counter is displayed.
func (c *UnreadCounter) Total() (int, bool) {
	return c.total, c.attached
}

func (c *UnreadCounter) Title() string {
	return c.title
}

// SubstituteTitle replaces the first number of the first "N posts" or
// "N of M posts" occurrence in title with n.
func SubstituteTitle(title string, n int) string {
	loc := rePostsCount.FindStringSubmatchIndex(title)
	if loc == nil {
		return title
	}
	return title[:loc[2]] + strconv.Itoa(n) + title[loc[3]:]
}

// BookmarkCounter mirrors the bookmark count label.
type BookmarkCounter struct {
	count    int
	attached bool
}

func NewBookmarkCounter(count int) *BookmarkCounter {
	return &BookmarkCounter{count: max(count, 0), attached: true}
}

func DetachedBookmarkCounter() *BookmarkCounter {
	return &BookmarkCounter{}
}

func (c *BookmarkCounter) Increment() {
	if c.attached {
		c.count++
	}
}

func (c *BookmarkCounter) Decrement() {
	if c.attached && c.count > 0 {
		c.count--
	}
}

func (c *BookmarkCounter) Count() (int, bool) {
	return c.count, c.attached
}
