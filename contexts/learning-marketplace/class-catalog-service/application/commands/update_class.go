package commands

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/ports"
)

type UpdateClassCommand struct {
	ClassID string
	Name    *string
	Price   *float64
	Seats   *int64
}

// UpdateClassUseCase writes instructor-editable fields with upsert-on-missing.
type UpdateClassUseCase struct {
	Classes ports.ClassRepository
	Logger  *slog.Logger
}

func (uc UpdateClassUseCase) Execute(ctx context.Context, cmd UpdateClassCommand) (ports.UpdateResult, error) {
	if (cmd.Price != nil && *cmd.Price < 0) || (cmd.Seats != nil && *cmd.Seats < 0) {
		return ports.UpdateResult{}, domainerrors.ErrInvalidClassUpdate
	}
	return upsertClass(ctx, uc.Classes, uc.Logger, "update", cmd.ClassID, entities.ClassFields{
		Name:  cmd.Name,
		Price: cmd.Price,
		Seats: cmd.Seats,
	})
}

type SetClassStatusCommand struct {
	ClassID string
	Status  string
}

type SetClassStatusUseCase struct {
	Classes ports.ClassRepository
	Logger  *slog.Logger
}

func (uc SetClassStatusUseCase) Execute(ctx context.Context, cmd SetClassStatusCommand) (ports.UpdateResult, error) {
	status, ok := entities.ParseClassStatus(cmd.Status)
	if !ok {
		return ports.UpdateResult{}, domainerrors.ErrInvalidClassStatus
	}
	return upsertClass(ctx, uc.Classes, uc.Logger, "status", cmd.ClassID, entities.ClassFields{Status: &status})
}

type SetClassFeedbackCommand struct {
	ClassID  string
	Feedback string
}

type SetClassFeedbackUseCase struct {
	Classes ports.ClassRepository
	Logger  *slog.Logger
}

func (uc SetClassFeedbackUseCase) Execute(ctx context.Context, cmd SetClassFeedbackCommand) (ports.UpdateResult, error) {
	feedback := strings.TrimSpace(cmd.Feedback)
	return upsertClass(ctx, uc.Classes, uc.Logger, "feedback", cmd.ClassID, entities.ClassFields{Feedback: &feedback})
}

func upsertClass(
	ctx context.Context,
	classes ports.ClassRepository,
	logger *slog.Logger,
	kind string,
	classID string,
	fields entities.ClassFields,
) (ports.UpdateResult, error) {
	logger = application.ResolveLogger(logger)

	classID = strings.TrimSpace(classID)
	if classID == "" {
		return ports.UpdateResult{}, domainerrors.ErrInvalidClassID
	}
	if fields.Empty() {
		return ports.UpdateResult{}, domainerrors.ErrInvalidClassUpdate
	}

	result, err := classes.UpsertClassFields(ctx, classID, fields)
	if err != nil {
		logger.Error("class update failed",
			"event", "catalog_class_update_failed",
			"module", "learning-marketplace/class-catalog-service",
			"layer", "application",
			"class_id", classID,
			"kind", kind,
			"error", err.Error(),
		)
		return ports.UpdateResult{}, err
	}

	logger.Info("class updated",
		"event", "catalog_class_updated",
		"module", "learning-marketplace/class-catalog-service",
		"layer", "application",
		"class_id", classID,
		"kind", kind,
		"upserted", result.UpsertedCount > 0,
	)
	return result, nil
}
