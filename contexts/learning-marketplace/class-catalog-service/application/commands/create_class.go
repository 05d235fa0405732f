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

type CreateClassCommand struct {
	InstructorEmail string
	InstructorName  string
	Name            string
	Image           string
	Price           float64
	Seats           int64
}

// CreateClassUseCase stores a new class owned by the calling instructor.
// New classes wait for admin review with no enrollments.
type CreateClassUseCase struct {
	Classes ports.ClassRepository
	Logger  *slog.Logger
}

func (uc CreateClassUseCase) Execute(ctx context.Context, cmd CreateClassCommand) (string, error) {
	logger := application.ResolveLogger(uc.Logger)

	instructorEmail := strings.TrimSpace(cmd.InstructorEmail)
	if instructorEmail == "" {
		return "", domainerrors.ErrInvalidInstructorID
	}
	name := strings.TrimSpace(cmd.Name)
	if name == "" || cmd.Price < 0 || cmd.Seats < 0 {
		return "", domainerrors.ErrInvalidClass
	}

	classID, err := uc.Classes.CreateClass(ctx, entities.Class{
		Name:            name,
		Image:           strings.TrimSpace(cmd.Image),
		Price:           cmd.Price,
		Seats:           cmd.Seats,
		EnrollStudent:   0,
		InstructorName:  strings.TrimSpace(cmd.InstructorName),
		InstructorEmail: instructorEmail,
		Status:          entities.ClassStatusPending,
	})
	if err != nil {
		logger.Error("create class failed",
			"event", "catalog_create_class_failed",
			"module", "learning-marketplace/class-catalog-service",
			"layer", "application",
			"error", err.Error(),
		)
		return "", err
	}

	logger.Info("class created",
		"event", "catalog_class_created",
		"module", "learning-marketplace/class-catalog-service",
		"layer", "application",
		"class_id", classID,
		"seats", cmd.Seats,
	)
	return classID, nil
}
