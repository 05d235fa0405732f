package queries

import (
	"context"
	"strings"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/ports"
)

type ListAllClassesUseCase struct {
	Classes ports.ClassRepository
}

func (uc ListAllClassesUseCase) Execute(ctx context.Context) ([]entities.Class, error) {
	return uc.Classes.ListClasses(ctx, ports.ClassFilter{})
}

type GetClassUseCase struct {
	Classes ports.ClassRepository
}

func (uc GetClassUseCase) Execute(ctx context.Context, classID string) (entities.Class, error) {
	classID = strings.TrimSpace(classID)
	if classID == "" {
		return entities.Class{}, domainerrors.ErrInvalidClassID
	}
	return uc.Classes.GetClass(ctx, classID)
}

type ListInstructorsUseCase struct {
	Instructors ports.InstructorRepository
}

func (uc ListInstructorsUseCase) Execute(ctx context.Context) ([]entities.Instructor, error) {
	return uc.Instructors.ListInstructors(ctx)
}
