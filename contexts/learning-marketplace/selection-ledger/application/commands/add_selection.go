package commands

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/ports"
)

type AddSelectionCommand struct {
	Email          string
	ClassID        string
	Name           string
	Image          string
	Price          float64
	InstructorName string
	Seats          int64
}

// AddSelectionUseCase appends a selection. It does not look for an existing
// pick of the same class.
type AddSelectionUseCase struct {
	Selections ports.SelectionRepository
	Logger     *slog.Logger
}

func (uc AddSelectionUseCase) Execute(ctx context.Context, cmd AddSelectionCommand) (string, error) {
	logger := application.ResolveLogger(uc.Logger)

	email := strings.TrimSpace(cmd.Email)
	if email == "" {
		return "", domainerrors.ErrInvalidEmail
	}
	classID := strings.TrimSpace(cmd.ClassID)
	if classID == "" || cmd.Price < 0 {
		return "", domainerrors.ErrInvalidSelection
	}

	selectionID, err := uc.Selections.AddSelection(ctx, entities.Selection{
		Email:          email,
		ClassID:        classID,
		Name:           strings.TrimSpace(cmd.Name),
		Image:          strings.TrimSpace(cmd.Image),
		Price:          cmd.Price,
		InstructorName: strings.TrimSpace(cmd.InstructorName),
		Seats:          cmd.Seats,
	})
	if err != nil {
		logger.Error("add selection failed",
			"event", "selection_add_failed",
			"module", "learning-marketplace/selection-ledger",
			"layer", "application",
			"class_id", classID,
			"error", err.Error(),
		)
		return "", err
	}

	logger.Info("selection added",
		"event", "selection_added",
		"module", "learning-marketplace/selection-ledger",
		"layer", "application",
		"selection_id", selectionID,
		"class_id", classID,
	)
	return selectionID, nil
}
