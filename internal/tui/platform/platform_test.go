package platform

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestValidatePostURL(t *testing.T) {
	valid, err := ValidatePostURL("  https://example.com/path ")
	if err != nil {
		t.Fatalf("unexpected error for valid URL: %v", err)
	}
	if valid != "https://example.com/path" {
		t.Fatalf("unexpected normalized URL: %q", valid)
	}

	_, err = ValidatePostURL("ftp://example.com/path")
	if err == nil || !strings.Contains(err.Error(), "unsupported URL scheme") {
		t.Fatalf("expected unsupported scheme error, got %v", err)
	}

	_, err = ValidatePostURL("https://")
	if err == nil || !strings.Contains(err.Error(), "invalid URL host") {
		t.Fatalf("expected invalid host error, got %v", err)
	}

	_, err = ValidatePostURL("")
	if err == nil || !strings.Contains(err.Error(), "no URL") {
		t.Fatalf("expected missing URL error, got %v", err)
	}
}

func TestBrowserCommand(t *testing.T) {
	cases := []struct {
		goos string
		url  string
		name string
		args []string
	}{
		{goos: "darwin", url: "https://example.com", name: "open", args: []string{"https://example.com"}},
		{goos: "windows", url: "https://example.com", name: "rundll32", args: []string{"url.dll,FileProtocolHandler", "https://example.com"}},
		{goos: "linux", url: "https://example.com", name: "xdg-open", args: []string{"https://example.com"}},
	}
	for _, tc := range cases {
		gotName, gotArgs := browserCommand(tc.goos, tc.url)
		if gotName != tc.name || !reflect.DeepEqual(gotArgs, tc.args) {
			t.Fatalf("browserCommand(%q) = (%q, %v), want (%q, %v)", tc.goos, gotName, gotArgs, tc.name, tc.args)
		}
	}
}

func TestCopyURLToClipboard(t *testing.T) {
	origUnsupported, origWrite := clipboardUnsupported, writeClipboard
	t.Cleanup(func() {
		clipboardUnsupported, writeClipboard = origUnsupported, origWrite
	})

	var written string
	clipboardUnsupported = func() bool { return false }
	writeClipboard = func(s string) error {
		written = s
		return nil
	}
	if err := CopyURLToClipboard("https://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != "https://example.com" {
		t.Fatalf("unexpected clipboard content: %q", written)
	}

	writeClipboard = func(string) error { return errors.New("xclip died") }
	if err := CopyURLToClipboard("https://example.com"); err == nil || !strings.Contains(err.Error(), "xclip died") {
		t.Fatalf("expected wrapped write error, got %v", err)
	}

	clipboardUnsupported = func() bool { return true }
	if err := CopyURLToClipboard("https://example.com"); !errors.Is(err, ErrClipboardUnavailable) {
		t.Fatalf("expected ErrClipboardUnavailable, got %v", err)
	}
}
