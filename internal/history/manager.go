package history

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/recap/internal/errors"
	"github.com/nguyentantai21042004/recap/internal/logger"
)

// Manager lists and deletes saved history.
type Manager struct {
	store  Store
	logger logger.Logger
}

func NewManager(store Store, log logger.Logger) *Manager {
	return &Manager{store: store, logger: log}
}

func (m *Manager) List(ctx context.Context, userID string) ([]Record, error) {
	if userID == "" {
		return nil, errors.NewInvalidRequest("user_id is required")
	}
	records, err := m.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (m *Manager) DeleteOne(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", errors.NewInvalidRequest("history_id is required")
	}
	found, err := m.store.DeleteOne(ctx, id)
	if err != nil {
		return "", storeError(err)
	}
	if !found {
		return "", errors.NewNotFound(id)
	}
	m.logger.Info(ctx, "Deleted history %s", id)
	return "history deleted", nil
}

func (m *Manager) DeleteAll(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", errors.NewInvalidRequest("user_id is required")
	}
	n, err := m.store.DeleteByUser(ctx, userID)
	if err != nil {
		return "", storeError(err)
	}
	if n == 0 {
		return "no history found of user", nil
	}
	m.logger.Info(ctx, "Deleted %d history entries of %s", n, userID)
	return fmt.Sprintf("%d history entries deleted", n), nil
}

func (m *Manager) DeleteSelected(ctx context.Context, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", errors.NewInvalidRequest("no history IDs provided")
	}
	n, err := m.store.DeleteByIDs(ctx, ids)
	if err != nil {
		return "", storeError(err)
	}
	if n == 0 {
		return "no history found for the selected entries", nil
	}
	m.logger.Info(ctx, "Deleted %d selected history entries", n)
	return fmt.Sprintf("%d history entries deleted", n), nil
}

// DeleteOneOf deletes id only if it belongs to userID. Another user's id is
// reported as not found.
func (m *Manager) DeleteOneOf(ctx context.Context, userID, id string) (string, error) {
	if id == "" {
		return "", errors.NewInvalidRequest("history_id is required")
	}
	owned, err := m.ownedIDs(ctx, userID, []string{id})
	if err != nil {
		return "", err
	}
	if len(owned) == 0 {
		return "", errors.NewNotFound(id)
	}
	return m.DeleteOne(ctx, id)
}

// DeleteSelectedOf deletes the ids that belong to userID and ignores the rest.
func (m *Manager) DeleteSelectedOf(ctx context.Context, userID string, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", errors.NewInvalidRequest("no history IDs provided")
	}
	owned, err := m.ownedIDs(ctx, userID, ids)
	if err != nil {
		return "", err
	}
	if len(owned) == 0 {
		return "no history found for the selected entries", nil
	}
	return m.DeleteSelected(ctx, owned)
}

func (m *Manager) ownedIDs(ctx context.Context, userID string, ids []string) ([]string, error) {
	if userID == "" {
		return nil, errors.NewInvalidRequest("user_id is required")
	}
	records, err := m.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	mine := make(map[string]bool, len(records))
	for _, r := range records {
		mine[r.ID] = true
	}
	var owned []string
	for _, id := range ids {
		if mine[id] {
			owned = append(owned, id)
		}
	}
	return owned, nil
}

// storeError passes structured errors through and wraps the rest.
func storeError(err error) error {
	if errors.As(err).Code != errors.ErrInternal {
		return err
	}
	pErr := errors.NewPersistence(err)
	pErr.Stage = errors.StageHistory
	return pErr
}
