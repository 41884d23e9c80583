package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/rsu-vesting/internal/models"
)

// ErrAwardNotFound is returned when a session has no award with the given name.
var ErrAwardNotFound = errors.New("award not found")

// AwardRepository defines the interface for session-scoped award storage.
// Awards are keyed by name within a session; FindAll returns them in the
// order they were first submitted.
type AwardRepository interface {
	Upsert(ctx context.Context, sessionID string, award *models.Award) error
	FindByName(ctx context.Context, sessionID, name string) (*models.Award, error)
	FindAll(ctx context.Context, sessionID string) ([]*models.Award, error)
}
