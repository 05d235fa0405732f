package ports

import (
	"context"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/entities"
)

type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedCount int64
	UpsertedID    string
}

type ClassFilter struct {
	Status entities.ClassStatus
	// SortBy is a class field ordered descending; empty keeps storage order.
	SortBy string
	Limit  int64
}

type ClassRepository interface {
	CreateClass(ctx context.Context, class entities.Class) (string, error)
	ListClasses(ctx context.Context, filter ClassFilter) ([]entities.Class, error)
	// GetClass returns domainerrors.ErrClassNotFound when absent.
	GetClass(ctx context.Context, classID string) (entities.Class, error)
	UpsertClassFields(ctx context.Context, classID string, fields entities.ClassFields) (UpdateResult, error)
}

type InstructorRepository interface {
	ListInstructors(ctx context.Context) ([]entities.Instructor, error)
}
