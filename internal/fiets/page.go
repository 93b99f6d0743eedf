package fiets

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	nethtml "golang.org/x/net/html"
)

// DefaultPageSize applies when the post list does not declare one.
const DefaultPageSize = 20

// ParsePage reads the server-rendered unread page: the post items in
// document order, the declared page size and unread total, and the optional
// counter elements.
func ParsePage(r io.Reader) (Page, error) {
	doc, err := nethtml.Parse(r)
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}

	page := Page{PageSize: DefaultPageSize}
	if title := findFirst(doc, func(n *nethtml.Node) bool { return isElement(n, "title") }); title != nil {
		page.Title = normalizeSpace(textContent(title))
	}

	root := doc
	if list := findFirst(doc, classMatcher("posts-list")); list != nil {
		root = list
		if size, ok := intAttr(list, "data-page-size"); ok && size > 0 {
			page.PageSize = size
		}
	}

	seen := make(map[int64]struct{})
	for _, n := range findAll(root, classMatcher("post")) {
		post, ok := parsePost(n)
		if !ok {
			continue
		}
		if _, dup := seen[post.ID]; dup {
			continue
		}
		seen[post.ID] = struct{}{}
		page.Posts = append(page.Posts, post)
	}

	page.TotalUnread = len(page.Posts)
	if action := findFirst(doc, classMatcher("mark-read-action")); action != nil {
		if total, ok := intAttr(action, "data-total-unread"); ok && total >= 0 {
			page.TotalUnread = total
		}
	}

	page.UnreadCount = counterValue(doc, "unread-count")
	page.BookmarkCount = counterValue(doc, "bookmark-count")
	return page, nil
}

// ParseFilters reads the filter rows of the filters page. A row is any
// element carrying data-id with url, url-match, title and title-match
// fields inside it.
func ParseFilters(r io.Reader) ([]Filter, error) {
	doc, err := nethtml.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var filters []Filter
	for _, row := range findAll(doc, func(n *nethtml.Node) bool { return hasAttr(n, "data-id") }) {
		id, ok := intAttr(row, "data-id")
		if !ok || id <= 0 {
			continue
		}
		filters = append(filters, Filter{
			ID:         int64(id),
			URL:        fieldValue(row, "url"),
			URLMatch:   FilterMatch(strings.ToUpper(fieldValue(row, "url-match"))),
			Title:      fieldValue(row, "title"),
			TitleMatch: FilterMatch(strings.ToUpper(fieldValue(row, "title-match"))),
		})
	}
	return filters, nil
}

func parsePost(n *nethtml.Node) (Post, bool) {
	post := Post{
		Bookmarked: hasClass(n, "bookmarked"),
		Read:       hasClass(n, "read") || attr(n, "data-read") == "true",
	}

	if a := findFirst(n, classMatcher("add-bookmark")); a != nil {
		post.AddBookmarkHref = attr(a, "href")
	}
	if a := findFirst(n, classMatcher("remove-bookmark")); a != nil {
		post.RemoveBookmarkHref = attr(a, "href")
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(attr(n, "data-post-id")), 10, 64); err == nil {
		post.ID = id
	} else if id, ok := idFromHref(post.AddBookmarkHref); ok {
		post.ID = id
	} else if id, ok := idFromHref(post.RemoveBookmarkHref); ok {
		post.ID = id
	} else {
		return Post{}, false
	}

	smalls := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case isElement(c, "small"):
			switch smalls {
			case 0:
				post.Date = normalizeSpace(textContent(c))
			case 1:
				post.FeedTitle = normalizeSpace(textContent(c))
			}
			smalls++
		case isElement(c, "div") && post.Snippet == "":
			post.Snippet = normalizeSpace(textContent(c))
		}
	}

	if heading := findFirst(n, func(n *nethtml.Node) bool { return isElement(n, "h3") }); heading != nil {
		post.FullTitle = strings.TrimSpace(attr(heading, "title"))
		if link := findFirst(heading, func(n *nethtml.Node) bool { return isElement(n, "a") }); link != nil {
			post.URL = strings.TrimSpace(attr(link, "href"))
			post.Title = normalizeSpace(textContent(link))
		} else {
			post.Title = normalizeSpace(textContent(heading))
		}
	}
	return post, true
}

func idFromHref(href string) (int64, bool) {
	if href == "" {
		return 0, false
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(parsed.Query().Get("post"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func counterValue(doc *nethtml.Node, class string) *int {
	n := findFirst(doc, classMatcher(class))
	if n == nil {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(textContent(n)))
	if err != nil || v < 0 {
		v = 0
	}
	return &v
}

func fieldValue(row *nethtml.Node, class string) string {
	n := findFirst(row, classMatcher(class))
	if n == nil {
		return ""
	}
	if isElement(n, "input") || hasAttr(n, "value") {
		return strings.TrimSpace(attr(n, "value"))
	}
	if isElement(n, "select") {
		if opt := findFirst(n, func(o *nethtml.Node) bool { return isElement(o, "option") && hasAttr(o, "selected") }); opt != nil {
			return strings.TrimSpace(attr(opt, "value"))
		}
	}
	return normalizeSpace(textContent(n))
}

func classMatcher(class string) func(*nethtml.Node) bool {
	return func(n *nethtml.Node) bool { return hasClass(n, class) }
}

func findFirst(n *nethtml.Node, match func(*nethtml.Node) bool) *nethtml.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findAll collects matches in document order without descending into a
// matched node.
func findAll(n *nethtml.Node, match func(*nethtml.Node) bool) []*nethtml.Node {
	var out []*nethtml.Node
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		if match(n) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func isElement(n *nethtml.Node, tag string) bool {
	return n.Type == nethtml.ElementNode && strings.EqualFold(n.Data, tag)
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *nethtml.Node, key string) bool {
	if n.Type != nethtml.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}

func intAttr(n *nethtml.Node, key string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(attr(n, key)))
	if err != nil {
		return 0, false
	}
	return v, true
}

func hasClass(n *nethtml.Node, class string) bool {
	if n.Type != nethtml.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *nethtml.Node) string {
	var b strings.Builder
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.TextNode {
			b.WriteString(n.Data)
			return
		}
		if isElement(n, "script") || isElement(n, "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
			if c.Type == nethtml.ElementNode {
				b.WriteByte(' ')
			}
		}
	}
	walk(n)
	return b.String()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
