package fiets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient builds a client for the server at baseURL. A nil httpClient gets
// a default one that does not follow redirects: the server answers several
// actions with a redirect to the unread page, and the action already
// succeeded at that point.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported server URL scheme: %q", parsed.Scheme)
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}
	return &Client{baseURL: parsed, http: httpClient}, nil
}

// FetchPage loads the unread posts page and parses it.
func (c *Client) FetchPage(ctx context.Context, limit int) (Page, error) {
	path := "/"
	if limit > 0 {
		q := make(url.Values)
		q.Set("num", strconv.Itoa(limit))
		path += "?" + q.Encode()
	}
	resp, err := c.get(ctx, path, "fetch unread page")
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()

	page, err := ParsePage(resp.Body)
	if err != nil {
		return Page{}, fmt.Errorf("parse unread page: %w", err)
	}
	return page, nil
}

func (c *Client) Counts(ctx context.Context) (Counts, error) {
	resp, err := c.get(ctx, "/counts", "fetch counts")
	if err != nil {
		return Counts{}, err
	}
	defer resp.Body.Close()

	var counts Counts
	if err := json.NewDecoder(resp.Body).Decode(&counts); err != nil {
		return Counts{}, fmt.Errorf("decode counts response: %w", err)
	}
	return counts, nil
}

// MarkRead asks the server to mark the given posts read. Marking an already
// read post again is harmless.
func (c *Client) MarkRead(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return errors.New("mark read: no post ids")
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	resp, err := c.get(ctx, "/markread?posts="+strings.Join(parts, ","), "mark read")
	if err != nil {
		return err
	}
	return drain(resp)
}

// ToggleBookmark requests the bookmark href carried by a post. The href
// decides whether the bookmark is added or removed.
func (c *Client) ToggleBookmark(ctx context.Context, href string) error {
	if strings.TrimSpace(href) == "" {
		return errors.New("toggle bookmark: empty href")
	}
	resp, err := c.get(ctx, href, "toggle bookmark")
	if err != nil {
		return err
	}
	return drain(resp)
}

func (c *Client) ListFilters(ctx context.Context) ([]Filter, error) {
	resp, err := c.get(ctx, "/filters", "list filters")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	filters, err := ParseFilters(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse filters page: %w", err)
	}
	return filters, nil
}

func (c *Client) AddFilter(ctx context.Context, f Filter) error {
	return c.postForm(ctx, "/add-filter", "add filter", filterForm(f, false))
}

func (c *Client) EditFilter(ctx context.Context, f Filter) error {
	if f.ID <= 0 {
		return fmt.Errorf("edit filter: invalid id %d", f.ID)
	}
	return c.postForm(ctx, "/edit-filter", "edit filter", filterForm(f, true))
}

func (c *Client) DeleteFilter(ctx context.Context, id int64) error {
	q := make(url.Values)
	q.Set("id", strconv.FormatInt(id, 10))
	resp, err := c.get(ctx, "/delete-filter?"+q.Encode(), "delete filter")
	if err != nil {
		return err
	}
	return drain(resp)
}

func filterForm(f Filter, withID bool) url.Values {
	form := make(url.Values)
	form.Set("url", f.URL)
	form.Set("urlMatch", string(f.URLMatch))
	form.Set("title", f.Title)
	form.Set("titleMatch", string(f.TitleMatch))
	if withID {
		form.Set("id", strconv.FormatInt(f.ID, 10))
	}
	return form
}

func (c *Client) get(ctx context.Context, ref, op string) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, op)
}

func (c *Client) postForm(ctx context.Context, ref, op string, form url.Values) error {
	req, err := c.newRequest(ctx, http.MethodPost, ref, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.do(req, op)
	if err != nil {
		return err
	}
	return drain(resp)
}

func (c *Client) do(req *http.Request, op string) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", op, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// newRequest resolves ref against the server URL, so both absolute paths and
// hrefs copied out of the page work.
func (c *Client) newRequest(ctx context.Context, method, ref string, body io.Reader) (*http.Request, error) {
	target, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	return req, nil
}

func (c *Client) resolve(ref string) (string, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse request path %q: %w", ref, err)
	}
	if parsed.IsAbs() {
		return parsed.String(), nil
	}
	base := *c.baseURL
	base.Path = strings.TrimRight(base.Path, "/") + "/" + strings.TrimLeft(parsed.Path, "/")
	base.RawQuery = parsed.RawQuery
	return base.String(), nil
}

func drain(resp *http.Response) error {
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return nil
}
