package photostore

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/pkg/e"
)

// Store persists uploaded photos under a single directory. Incoming files
// are written to a hidden staging area first and renamed into place, so a
// reader never observes a half-written photo.
type Store struct {
	dir         string
	stagingDir  string
	allowedExts map[string]struct{}
	logger      *slog.Logger
}

func New(dir string, allowedExts []string, logger *slog.Logger) (*Store, error) {
	const op = "photostore.New"

	stagingDir := filepath.Join(dir, ".staging")
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return nil, e.Wrap(op, err)
	}

	exts := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		exts[strings.ToLower(ext)] = struct{}{}
	}

	return &Store{
		dir:         dir,
		stagingDir:  stagingDir,
		allowedExts: exts,
		logger:      logger,
	}, nil
}

func (s *Store) Dir() string { return s.dir }

// Allowed reports whether the filename carries a recognized image
// extension. The check is case-insensitive.
func (s *Store) Allowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	_, ok := s.allowedExts[ext]
	return ok
}

// Save drains src into a staged file and renames it to finalName inside
// the store directory. The staging file is removed on any failure.
func (s *Store) Save(src io.Reader, finalName string) error {
	const op = "photostore.Store.Save"

	stagingPath := filepath.Join(s.stagingDir, uuid.New().String())
	f, err := os.Create(stagingPath)
	if err != nil {
		return e.Wrap(op, err)
	}

	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(stagingPath)
		return e.Wrap(op, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(stagingPath)
		return e.Wrap(op, err)
	}

	if err := os.Rename(stagingPath, filepath.Join(s.dir, finalName)); err != nil {
		os.Remove(stagingPath)
		return e.Wrap(op, err)
	}

	return nil
}

// Remove deletes a stored photo. Used for cleanup when the database insert
// fails after the photo was already committed.
func (s *Store) Remove(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("photo cleanup failed",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
	}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Sanitize strips directory components and replaces anything outside
// [A-Za-z0-9._-] with an underscore. Returns "" when nothing usable
// remains.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" {
		return ""
	}
	name = unsafeChars.ReplaceAllString(name, "_")
	if strings.Trim(name, "._-") == "" {
		return ""
	}
	return name
}

// FinalName builds the stored filename: a second-precision UTC timestamp
// prefix keeps concurrent uploads of the same file from colliding.
func FinalName(now time.Time, original string) string {
	return now.UTC().Format("20060102_150405") + "_" + Sanitize(original)
}
