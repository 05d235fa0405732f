package ports

import (
	"context"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/domain/entities"
)

type SelectionRepository interface {
	AddSelection(ctx context.Context, selection entities.Selection) (string, error)
	ListSelectionsByEmail(ctx context.Context, email string) ([]entities.Selection, error)
	// FindSelection returns domainerrors.ErrSelectionNotFound when absent.
	FindSelection(ctx context.Context, selectionID string) (entities.Selection, error)
	// RemoveSelection reports how many selections were deleted (0 or 1).
	RemoveSelection(ctx context.Context, selectionID string) (int64, error)
}
