package fiets

import (
	"fmt"
	"strings"
)

// Post is one item of the server-rendered unread list.
type Post struct {
	ID         int64
	Title      string
	FullTitle  string
	URL        string
	FeedTitle  string
	Date       string
	Snippet    string
	Read       bool
	Bookmarked bool

	AddBookmarkHref    string
	RemoveBookmarkHref string
}

// DisplayTitle prefers the full title carried by the heading over the
// shortened link text.
func (p Post) DisplayTitle() string {
	if strings.TrimSpace(p.FullTitle) != "" {
		return p.FullTitle
	}
	return p.Title
}

// Page is what the client needs from the unread posts page.
type Page struct {
	Title       string
	PageSize    int
	TotalUnread int
	Posts       []Post

	// UnreadCount is nil when the page has no unread counter element.
	UnreadCount *int
	// BookmarkCount is nil when the page has no bookmark counter element.
	BookmarkCount *int
}

// Counts mirrors the /counts response.
type Counts struct {
	UnreadCount int `json:"unread_count"`
	FullCount   int `json:"full_count"`
}

type FilterMatch string

const (
	MatchIgnore     FilterMatch = "IGNORE"
	MatchRegex      FilterMatch = "REGEX"
	MatchStartsWith FilterMatch = "STARTS_WITH"
	MatchEndsWith   FilterMatch = "ENDS_WITH"
	MatchContains   FilterMatch = "CONTAINS"
)

// FilterMatches lists the match modes in the order the server declares them.
var FilterMatches = []FilterMatch{
	MatchIgnore,
	MatchRegex,
	MatchStartsWith,
	MatchEndsWith,
	MatchContains,
}

func ParseFilterMatch(raw string) (FilterMatch, error) {
	candidate := FilterMatch(strings.ToUpper(strings.TrimSpace(raw)))
	for _, m := range FilterMatches {
		if m == candidate {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown filter match %q", raw)
}

// Filter is one row of the filters page.
type Filter struct {
	ID         int64
	URL        string
	URLMatch   FilterMatch
	Title      string
	TitleMatch FilterMatch
}
