package commands

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/ports"
)

type RemoveSelectionUseCase struct {
	Selections ports.SelectionRepository
	Logger     *slog.Logger
}

// Execute deletes the selection and reports the number removed. Unknown and
// malformed ids remove nothing and are not errors.
func (uc RemoveSelectionUseCase) Execute(ctx context.Context, selectionID string) (int64, error) {
	selectionID = strings.TrimSpace(selectionID)
	if selectionID == "" {
		return 0, nil
	}

	removed, err := uc.Selections.RemoveSelection(ctx, selectionID)
	if err != nil {
		application.ResolveLogger(uc.Logger).Error("remove selection failed",
			"event", "selection_remove_failed",
			"module", "learning-marketplace/selection-ledger",
			"layer", "application",
			"selection_id", selectionID,
			"error", err.Error(),
		)
		return 0, err
	}
	return removed, nil
}
