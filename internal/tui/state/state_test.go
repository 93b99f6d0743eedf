package state

import (
	"testing"

	"github.com/glabrego/fiets-cli/internal/fiets"
)

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
	if got := ClampCursor(5, 0); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}

func TestPageStep(t *testing.T) {
	if got := PageStep(0, false); got != 10 {
		t.Fatalf("expected default step 10, got %d", got)
	}
	if got := PageStep(12, false); got != 6 {
		t.Fatalf("expected step 6, got %d", got)
	}
	if got := PageStep(12, true); got != 4 {
		t.Fatalf("expected step 4 with status, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	if start, end := CenteredWindow(5, 2, 10); start != 0 || end != 5 {
		t.Fatalf("expected whole list, got %d..%d", start, end)
	}
	if start, end := CenteredWindow(20, 10, 5); start != 8 || end != 13 {
		t.Fatalf("expected centered window 8..13, got %d..%d", start, end)
	}
	if start, end := CenteredWindow(20, 19, 5); start != 15 || end != 20 {
		t.Fatalf("expected window pinned to end, got %d..%d", start, end)
	}
	if start, end := CenteredWindow(0, 0, 5); start != 0 || end != 0 {
		t.Fatalf("expected empty window, got %d..%d", start, end)
	}
}

func TestRestoreCursor(t *testing.T) {
	posts := []fiets.Post{{ID: 10}, {ID: 11}, {ID: 12}}

	if got := RestoreCursor(posts, 12, 0); got != 2 {
		t.Fatalf("expected cursor to follow post 12, got %d", got)
	}
	if got := RestoreCursor(posts, 99, 7); got != 2 {
		t.Fatalf("expected clamped cursor, got %d", got)
	}
	if got := RestoreCursor(nil, 10, 3); got != 0 {
		t.Fatalf("expected 0 for empty page, got %d", got)
	}
}

func TestMaxScrollTop(t *testing.T) {
	if got := MaxScrollTop(5, 10); got != 0 {
		t.Fatalf("expected 0 when content fits, got %d", got)
	}
	if got := MaxScrollTop(25, 10); got != 15 {
		t.Fatalf("expected 15, got %d", got)
	}
}
