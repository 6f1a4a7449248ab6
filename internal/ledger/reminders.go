package ledger

import (
	"fmt"
	"time"

	"github.com/w-yuning/bookeeper/internal/models"

	"github.com/google/uuid"
)

// Reminders returns all of a user's reminders in store order.
func (s *Service) Reminders(userID string) ([]models.Reminder, error) {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return data.Reminders, nil
}

// UpsertReminder adds a reminder or replaces it by id, filling in a
// fresh id and, for an invalid trigger time, the current time.
func (s *Service) UpsertReminder(userID string, reminder models.Reminder) (models.Reminder, error) {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("load user: %w", err)
	}

	if reminder.ID == "" {
		reminder.ID = uuid.NewString()
	}
	if reminder.RemindAt.IsZero() {
		reminder.RemindAt = time.Now()
	}

	replaced := false
	for i := range data.Reminders {
		if data.Reminders[i].ID == reminder.ID {
			data.Reminders[i] = reminder
			replaced = true
			break
		}
	}
	if !replaced {
		data.Reminders = append(data.Reminders, reminder)
	}

	if err := s.store.SaveUser(data); err != nil {
		return models.Reminder{}, err
	}
	return reminder, nil
}

// RemoveReminder deletes a reminder by id, failing when no reminder
// matches.
func (s *Service) RemoveReminder(userID, reminderID string) error {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	kept := data.Reminders[:0]
	for _, reminder := range data.Reminders {
		if reminder.ID != reminderID {
			kept = append(kept, reminder)
		}
	}
	if len(kept) == len(data.Reminders) {
		return ErrReminderNotFound
	}
	data.Reminders = kept

	return s.store.SaveUser(data)
}

// UpcomingReminders returns the enabled reminders whose trigger time
// falls within [from, to], in store order. Callers poll this; the
// service pushes nothing.
func (s *Service) UpcomingReminders(userID string, from, to time.Time) ([]models.Reminder, error) {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	var due []models.Reminder
	for _, reminder := range data.Reminders {
		if !reminder.Enabled {
			continue
		}
		if reminder.RemindAt.Before(from) || reminder.RemindAt.After(to) {
			continue
		}
		due = append(due, reminder)
	}
	return due, nil
}
