// Package ledger is the business layer on top of the per-user store. It
// enforces referential integrity between categories and bills, derives
// income/expense aggregates and assembles the cross-user social timeline.
//
// The service holds no data across calls: every operation loads the full
// user document, mutates an in-memory copy and writes the whole document
// back. Operations touching two users' documents (friend updates) are two
// independent writes with no rollback.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/w-yuning/bookeeper/internal/auth"
	"github.com/w-yuning/bookeeper/internal/models"
	"github.com/w-yuning/bookeeper/internal/storage"

	"github.com/google/uuid"
)

// Errors surfaced across the service boundary. Callers match them with
// errors.Is and may show the message to the user as-is.
var (
	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("wrong password")
	ErrSelfFriend       = errors.New("cannot add yourself as a friend")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is used by existing bills")
	ErrBillNotFound     = errors.New("bill not found")
	ErrReminderNotFound = errors.New("reminder not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrEmptyContent     = errors.New("content cannot be empty")
)

// Service exposes every operation the presentation layer calls.
type Service struct {
	store *storage.Store
}

// NewService creates a service persisting through the given store.
func NewService(store *storage.Store) *Service {
	return &Service{store: store}
}

// RegisterUser creates an account and seeds its default categories.
// Username and email must be unique across all users, compared
// case-insensitively.
//
// Uniqueness is read-all-then-write-one: two concurrent registrations
// with the same username can both pass the scan before either saves.
func (s *Service) RegisterUser(username, email, password string) (string, error) {
	for _, profile := range s.store.ListProfiles() {
		if strings.EqualFold(profile.Username, username) {
			return "", ErrUsernameTaken
		}
		if strings.EqualFold(profile.Email, email) {
			return "", ErrEmailTaken
		}
	}

	data := models.UserData{
		Profile: models.UserProfile{
			ID:                   uuid.NewString(),
			Username:             username,
			Email:                email,
			PasswordHash:         auth.HashPassword(password),
			NotificationsEnabled: true,
			PrivacyLevel:         models.PrivacyFriends,
		},
		Categories: defaultCategories(),
	}
	if err := s.store.SaveUser(data); err != nil {
		return "", fmt.Errorf("save new user: %w", err)
	}
	return data.Profile.ID, nil
}

func defaultCategories() []models.Category {
	seeds := []struct {
		name string
		kind models.BillKind
	}{
		{"daily expense", models.KindExpense},
		{"dining", models.KindExpense},
		{"transport", models.KindExpense},
		{"salary", models.KindIncome},
		{"other", models.KindExpense},
	}
	categories := make([]models.Category, 0, len(seeds))
	for _, seed := range seeds {
		categories = append(categories, models.Category{
			ID:   uuid.NewString(),
			Name: seed.name,
			Kind: seed.kind,
		})
	}
	return categories
}

// Authenticate resolves a handle (username or email, case-insensitive)
// and verifies the password. The first profile matching the handle wins.
func (s *Service) Authenticate(handle, password string) (models.UserProfile, error) {
	for _, profile := range s.store.ListProfiles() {
		if !matchesHandle(profile, handle) {
			continue
		}
		if !auth.CheckPassword(password, profile.PasswordHash) {
			return models.UserProfile{}, ErrWrongPassword
		}
		return profile, nil
	}
	return models.UserProfile{}, ErrUserNotFound
}

// UpdateSettings changes the notification flag and privacy level.
func (s *Service) UpdateSettings(userID string, notificationsEnabled bool, privacyLevel string) error {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	data.Profile.NotificationsEnabled = notificationsEnabled
	data.Profile.PrivacyLevel = privacyLevel
	return s.store.SaveUser(data)
}

// AddFriend records a mutual friendship between userID and the user
// resolved from handle. The two documents are written one after the
// other; if the second write fails the first is not rolled back, leaving
// a one-sided edge that Timeline refuses to honor.
func (s *Service) AddFriend(userID, handle string) error {
	friend, err := s.findUserByHandle(handle)
	if err != nil {
		return err
	}
	if friend.ID == userID {
		return ErrSelfFriend
	}

	userData, err := s.store.LoadUser(userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	friendData, err := s.store.LoadUser(friend.ID)
	if err != nil {
		return fmt.Errorf("load friend: %w", err)
	}

	userData.Profile.FriendIDs = appendUnique(userData.Profile.FriendIDs, friend.ID)
	friendData.Profile.FriendIDs = appendUnique(friendData.Profile.FriendIDs, userID)

	if err := s.store.SaveUser(userData); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if err := s.store.SaveUser(friendData); err != nil {
		return fmt.Errorf("save friend: %w", err)
	}
	return nil
}

// Profile returns one user's profile.
func (s *Service) Profile(userID string) (models.UserProfile, error) {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("load user: %w", err)
	}
	return data.Profile, nil
}

func (s *Service) findUserByHandle(handle string) (models.UserProfile, error) {
	for _, profile := range s.store.ListProfiles() {
		if matchesHandle(profile, handle) {
			return profile, nil
		}
	}
	return models.UserProfile{}, ErrUserNotFound
}

func matchesHandle(profile models.UserProfile, handle string) bool {
	return strings.EqualFold(profile.Username, handle) || strings.EqualFold(profile.Email, handle)
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
