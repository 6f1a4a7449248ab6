package ledger

import (
	"fmt"

	"github.com/w-yuning/bookeeper/internal/models"

	"github.com/google/uuid"
)

// Categories returns all of a user's categories.
func (s *Service) Categories(userID string) ([]models.Category, error) {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return data.Categories, nil
}

// UpsertCategory adds a category, or replaces it in place when its id
// already exists. A category without an id gets a fresh one. The stored
// value is returned so callers see the assigned id.
func (s *Service) UpsertCategory(userID string, category models.Category) (models.Category, error) {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return models.Category{}, fmt.Errorf("load user: %w", err)
	}

	if category.ID == "" {
		category.ID = uuid.NewString()
	}

	replaced := false
	for i := range data.Categories {
		if data.Categories[i].ID == category.ID {
			data.Categories[i] = category
			replaced = true
			break
		}
	}
	if !replaced {
		data.Categories = append(data.Categories, category)
	}

	if err := s.store.SaveUser(data); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// RemoveCategory deletes a category by id. It fails while any bill still
// references the category; removing an id that does not exist is a no-op.
func (s *Service) RemoveCategory(userID, categoryID string) error {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	for _, bill := range data.Bills {
		if bill.CategoryID == categoryID {
			return ErrCategoryInUse
		}
	}

	kept := data.Categories[:0]
	for _, category := range data.Categories {
		if category.ID != categoryID {
			kept = append(kept, category)
		}
	}
	data.Categories = kept

	return s.store.SaveUser(data)
}
