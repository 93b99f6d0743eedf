package view

import (
	"strings"
	"testing"

	tuitheme "github.com/glabrego/fiets-cli/internal/tui/theme"
)

func intPtr(n int) *int { return &n }

func TestHeader(t *testing.T) {
	th := tuitheme.Default()
	got := StripANSI(Header("12 posts - Fiets", intPtr(12), nil, th))
	for _, want := range []string{"12 posts - Fiets", "unread 12", "bookmarks -"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in header, got %q", want, got)
		}
	}
}

func TestFooter(t *testing.T) {
	th := tuitheme.Default()
	got := StripANSI(Footer("list", 2, 5, 2, th))
	for _, want := range []string{"list", "2 shown", "5 cached", "page size 2"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in footer, got %q", want, got)
		}
	}
}

func TestMessage(t *testing.T) {
	th := tuitheme.Default()
	if got := StripANSI(Message(false, false, "", "", "", th)); !strings.Contains(got, "state: idle | Ready") {
		t.Fatalf("unexpected idle message: %q", got)
	}
	if got := StripANSI(Message(true, false, "", "", "*", th)); !strings.Contains(got, "* state: loading") {
		t.Fatalf("unexpected loading message: %q", got)
	}
	if got := StripANSI(Message(false, true, "", "boom", "", th)); !strings.Contains(got, "state: warning | boom") {
		t.Fatalf("unexpected warning message: %q", got)
	}
}

func TestMarkReadButton(t *testing.T) {
	th := tuitheme.Default()
	if got := StripANSI(MarkReadButton("Mark 2 of 5 read", true, th)); !strings.Contains(got, "[ Mark 2 of 5 read ]") {
		t.Fatalf("unexpected enabled button: %q", got)
	}
	if got := StripANSI(MarkReadButton("No more posts to mark", false, th)); strings.Contains(got, "m ") {
		t.Fatalf("disabled button must not advertise its key: %q", got)
	}
}

func TestAlert(t *testing.T) {
	got := StripANSI(Alert("Could not mark posts read", 60, tuitheme.Default()))
	if !strings.Contains(got, "Could not mark posts read") || !strings.Contains(got, "dismiss") {
		t.Fatalf("unexpected alert: %q", got)
	}
}
