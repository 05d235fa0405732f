package queries

import (
	"context"
	"strings"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/ports"
)

type ListSelectionsUseCase struct {
	Selections ports.SelectionRepository
}

// Execute returns the email's selections, or an empty list when there is no
// email to look up.
func (uc ListSelectionsUseCase) Execute(ctx context.Context, email string) ([]entities.Selection, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return []entities.Selection{}, nil
	}
	return uc.Selections.ListSelectionsByEmail(ctx, email)
}

type FindSelectionUseCase struct {
	Selections ports.SelectionRepository
}

func (uc FindSelectionUseCase) Execute(ctx context.Context, selectionID string) (entities.Selection, error) {
	selectionID = strings.TrimSpace(selectionID)
	if selectionID == "" {
		return entities.Selection{}, domainerrors.ErrSelectionNotFound
	}
	return uc.Selections.FindSelection(ctx, selectionID)
}
