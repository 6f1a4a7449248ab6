package ledger

import (
	"fmt"
	"time"

	"github.com/w-yuning/bookeeper/internal/models"

	"github.com/google/uuid"
)

// Bills returns all of a user's bills in store order.
func (s *Service) Bills(userID string) ([]models.Bill, error) {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return data.Bills, nil
}

// UpsertBill adds a bill or replaces it by id. A bill without an id gets
// a fresh one, an invalid timestamp is replaced with the current time,
// and the referenced category must exist at call time.
func (s *Service) UpsertBill(userID string, bill models.Bill) (models.Bill, error) {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return models.Bill{}, fmt.Errorf("load user: %w", err)
	}

	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	if bill.Timestamp.IsZero() {
		bill.Timestamp = time.Now()
	}

	categoryExists := false
	for _, category := range data.Categories {
		if category.ID == bill.CategoryID {
			categoryExists = true
			break
		}
	}
	if !categoryExists {
		return models.Bill{}, ErrCategoryNotFound
	}

	replaced := false
	for i := range data.Bills {
		if data.Bills[i].ID == bill.ID {
			data.Bills[i] = bill
			replaced = true
			break
		}
	}
	if !replaced {
		data.Bills = append(data.Bills, bill)
	}

	if err := s.store.SaveUser(data); err != nil {
		return models.Bill{}, err
	}
	return bill, nil
}

// RemoveBill deletes a bill by id, failing when no bill matches.
func (s *Service) RemoveBill(userID, billID string) error {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	kept := data.Bills[:0]
	for _, bill := range data.Bills {
		if bill.ID != billID {
			kept = append(kept, bill)
		}
	}
	if len(kept) == len(data.Bills) {
		return ErrBillNotFound
	}
	data.Bills = kept

	return s.store.SaveUser(data)
}
