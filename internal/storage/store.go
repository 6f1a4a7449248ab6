package storage

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/w-yuning/bookeeper/internal/models"

	"github.com/sirupsen/logrus"
)

const dataFolderName = "bookeeper_data"

// EnvDataDir overrides the default data directory when set. Tests use it
// to isolate the application from the real per-user location.
const EnvDataDir = "BOOKEEPER_DATA_DIR"

// ErrNotFound reports that a user has no loadable document: the file is
// absent or its content is not a well-formed document.
var ErrNotFound = errors.New("user data not found")

// Store persists one document per user under a single directory.
//
// A single reader/writer lock covers the whole store: loads run
// concurrently, a save excludes everything else, including operations on
// other users' files. Coarse, but all this has to serve is one desktop
// process.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore opens a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// DefaultDir resolves the data directory: the BOOKEEPER_DATA_DIR
// environment variable wins, then the per-user config location, then the
// home directory.
func DefaultDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		if base, err = os.UserHomeDir(); err != nil {
			base = "."
		}
	}
	return filepath.Join(base, dataFolderName)
}

// Dir returns the directory this store persists into.
func (s *Store) Dir() string {
	return s.dir
}

// SaveUser writes the whole document for data's profile id, truncating
// any previous content. A short write is an error.
func (s *Store) SaveUser(data models.UserData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := models.EncodeUserData(data)
	path := s.userFilePath(data.Profile.ID)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	n, err := f.Write(doc)
	if err == nil && n < len(doc) {
		err = io.ErrShortWrite
	}
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// LoadUser reads and decodes one user's document.
func (s *Store) LoadUser(userID string) (models.UserData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.userFilePath(userID))
	if err != nil {
		return models.UserData{}, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	data, err := models.DecodeUserData(raw)
	if err != nil {
		return models.UserData{}, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	return data, nil
}

// ListProfiles extracts the profile section of every readable document in
// the store. Files that cannot be opened or parsed are skipped, and the
// order is whatever the directory enumeration yields.
func (s *Store) ListProfiles() []models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		logrus.WithError(err).Warn("cannot scan data directory")
		return nil
	}

	var profiles []models.UserProfile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			logrus.WithError(err).WithField("file", entry.Name()).Warn("skipping unreadable user file")
			continue
		}
		data, err := models.DecodeUserData(raw)
		if err != nil {
			logrus.WithField("file", entry.Name()).Warn("skipping malformed user file")
			continue
		}
		profiles = append(profiles, data.Profile)
	}
	return profiles
}

// RemoveUser deletes one user's document.
func (s *Store) RemoveUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.userFilePath(userID)); err != nil {
		return fmt.Errorf("remove user %s: %w", userID, err)
	}
	return nil
}

// userFilePath maps a user id to its file. Ids are escaped so an id can
// never name a path outside the data directory.
func (s *Store) userFilePath(userID string) string {
	return filepath.Join(s.dir, url.PathEscape(userID)+".json")
}
