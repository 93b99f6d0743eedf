package fiets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(ts.URL, ts.Client())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestNewClient_RejectsUnsupportedScheme(t *testing.T) {
	if _, err := NewClient("ftp://example.com", nil); err == nil {
		t.Fatal("expected scheme error")
	}
}

func TestFetchPage_SendsLimitAndParses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("num") != "50" {
			t.Fatalf("unexpected num query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, unreadPageHTML)
	}))
	defer ts.Close()

	page, err := newTestClient(t, ts).FetchPage(context.Background(), 50)
	if err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}
	if len(page.Posts) != 3 || page.PageSize != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestCounts_ParsesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/counts" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Cache-Control") != "no-cache" {
			t.Fatalf("expected no-cache header, got %q", r.Header.Get("Cache-Control"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"unread_count":42,"full_count":100}`))
	}))
	defer ts.Close()

	counts, err := newTestClient(t, ts).Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts returned error: %v", err)
	}
	if counts.UnreadCount != 42 || counts.FullCount != 100 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestCounts_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unexpected issue.", http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts).Counts(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status code: %d", statusErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "Unexpected issue.") {
		t.Fatalf("expected body in error, got %v", err)
	}
}

func TestMarkRead_JoinsIDs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markread" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("posts"); got != "3,1,2" {
			t.Fatalf("unexpected posts query: %s", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	if err := newTestClient(t, ts).MarkRead(context.Background(), []int64{3, 1, 2}); err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}
}

func TestMarkRead_RejectsEmptyTargets(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.MarkRead(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty id list")
	}
}

func TestMarkRead_TreatsRedirectAsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markread" {
			t.Fatalf("redirect should not be followed, got %s", r.URL.Path)
		}
		w.Header().Set("Location", "/")
		w.WriteHeader(http.StatusFound)
	}))
	defer ts.Close()

	c, err := NewClient(ts.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.MarkRead(context.Background(), []int64{1}); err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}
}

func TestToggleBookmark_ResolvesRelativeHref(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/base/add-bookmark" || r.URL.Query().Get("post") != "9" {
			t.Fatalf("unexpected request: %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer ts.Close()

	c, err := NewClient(ts.URL+"/base/", ts.Client())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.ToggleBookmark(context.Background(), "/add-bookmark?post=9"); err != nil {
		t.Fatalf("ToggleBookmark returned error: %v", err)
	}
}

func TestAddAndEditFilter_PostForm(t *testing.T) {
	var got []url.Values
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		paths = append(paths, r.URL.Path)
		got = append(got, r.PostForm)
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer ts.Close()

	c := newTestClient(t, ts)
	f := Filter{URL: "https://spam.example.com", URLMatch: MatchStartsWith, Title: "Ad", TitleMatch: MatchContains}
	if err := c.AddFilter(context.Background(), f); err != nil {
		t.Fatalf("AddFilter returned error: %v", err)
	}
	f.ID = 5
	if err := c.EditFilter(context.Background(), f); err != nil {
		t.Fatalf("EditFilter returned error: %v", err)
	}

	if len(paths) != 2 || paths[0] != "/add-filter" || paths[1] != "/edit-filter" {
		t.Fatalf("unexpected paths: %v", paths)
	}
	if got[0].Get("urlMatch") != "STARTS_WITH" || got[0].Get("titleMatch") != "CONTAINS" {
		t.Fatalf("unexpected add form: %v", got[0])
	}
	if _, ok := got[0]["id"]; ok {
		t.Fatalf("add form must not carry an id: %v", got[0])
	}
	if got[1].Get("id") != "5" || got[1].Get("url") != "https://spam.example.com" {
		t.Fatalf("unexpected edit form: %v", got[1])
	}
}

func TestEditFilter_RequiresID(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.EditFilter(context.Background(), Filter{}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestDeleteFilter_SendsID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/delete-filter" || r.URL.Query().Get("id") != "8" {
			t.Fatalf("unexpected request: %s", r.URL.String())
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	if err := newTestClient(t, ts).DeleteFilter(context.Background(), 8); err != nil {
		t.Fatalf("DeleteFilter returned error: %v", err)
	}
}
