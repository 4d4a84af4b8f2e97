package photostore

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := New(t.TempDir(), []string{"png", "jpg", "jpeg", "gif"}, logger)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"evidence.png", "evidence.png"},
		{"my photo.png", "my_photo.png"},
		{"weird!name?.jpg", "weird_name_.jpg"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\evil.jpg", "evil.jpg"},
		{"/etc/shadow", "shadow"},
		{"...", ""},
		{"___", ""},
		{"", ""},
		{".", ""},
	}

	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFinalName(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	if got, want := FinalName(now, "evidence.png"), "20250102_150405_evidence.png"; got != want {
		t.Fatalf("FinalName = %q, want %q", got, want)
	}
}

func TestStore_Allowed(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	cases := []struct {
		name string
		want bool
	}{
		{"evidence.png", true},
		{"evidence.PNG", true},
		{"evidence.JpEg", true},
		{"evidence.gif", true},
		{"evidence.txt", false},
		{"evidence.png.exe", false},
		{"evidence", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := s.Allowed(tc.name); got != tc.want {
			t.Errorf("Allowed(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStore_SaveAndRemove(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	content := []byte{0x89, 'P', 'N', 'G', '\r', '\n'}
	if err := s.Save(bytes.NewReader(content), "20250102_150405_evidence.png"); err != nil {
		t.Fatalf("save: %v", err)
	}

	path := filepath.Join(s.Dir(), "20250102_150405_evidence.png")
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored photo: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("stored content mismatch")
	}

	// staging area must be empty after a successful rename
	entries, err := os.ReadDir(s.stagingDir)
	if err != nil {
		t.Fatalf("read staging dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty staging dir, found %d entries", len(entries))
	}

	s.Remove("20250102_150405_evidence.png")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected photo removed, stat err=%v", err)
	}
}

func TestStore_SaveFailureLeavesNoStagingFile(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	err := s.Save(failingReader{}, "20250102_150405_evidence.png")
	if err == nil {
		t.Fatalf("expected save to fail")
	}

	entries, readErr := os.ReadDir(s.stagingDir)
	if readErr != nil {
		t.Fatalf("read staging dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected staging cleanup, found %d entries", len(entries))
	}
	if _, statErr := os.Stat(filepath.Join(s.Dir(), "20250102_150405_evidence.png")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no final file, stat err=%v", statErr)
	}
}

func TestStore_RemoveMissingIsQuiet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Remove("never_stored.png")
	s.Remove("")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errReadFailed
}

var errReadFailed = os.ErrInvalid
