package docstoreadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/ports"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
)

type classDocument struct {
	ID              string  `json:"_id,omitempty" bson:"_id,omitempty"`
	Name            string  `json:"name" bson:"name"`
	Image           string  `json:"image,omitempty" bson:"image,omitempty"`
	Price           float64 `json:"price" bson:"price"`
	Seats           int64   `json:"seats" bson:"seats"`
	EnrollStudent   int64   `json:"enrollStudent" bson:"enrollStudent"`
	InstructorName  string  `json:"instructorName,omitempty" bson:"instructorName,omitempty"`
	InstructorEmail string  `json:"instructorEmail,omitempty" bson:"instructorEmail,omitempty"`
	Status          string  `json:"status,omitempty" bson:"status,omitempty"`
	Feedback        string  `json:"feedback,omitempty" bson:"feedback,omitempty"`
}

func (d classDocument) toEntity() entities.Class {
	status, _ := entities.ParseClassStatus(d.Status)
	return entities.Class{
		ID:              d.ID,
		Name:            d.Name,
		Image:           d.Image,
		Price:           d.Price,
		Seats:           d.Seats,
		EnrollStudent:   d.EnrollStudent,
		InstructorName:  d.InstructorName,
		InstructorEmail: d.InstructorEmail,
		Status:          status,
		Feedback:        d.Feedback,
	}
}

type instructorDocument struct {
	ID              string `json:"_id,omitempty" bson:"_id,omitempty"`
	Name            string `json:"name,omitempty" bson:"name,omitempty"`
	Email           string `json:"email,omitempty" bson:"email,omitempty"`
	Photo           string `json:"photo,omitempty" bson:"photo,omitempty"`
	NumberOfClasses int64  `json:"numberOfClasses" bson:"numberOfClasses"`
}

// Repository implements ports.ClassRepository and ports.InstructorRepository.
type Repository struct {
	classes     docstore.Collection
	instructors docstore.Collection
	logger      *slog.Logger
}

func NewRepository(store docstore.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		classes:     store.Collection(docstore.CollectionClasses),
		instructors: store.Collection(docstore.CollectionInstructors),
		logger:      logger,
	}
}

func (r *Repository) CreateClass(ctx context.Context, class entities.Class) (string, error) {
	result, err := r.classes.InsertOne(ctx, classDocument{
		Name:            class.Name,
		Image:           class.Image,
		Price:           class.Price,
		Seats:           class.Seats,
		EnrollStudent:   class.EnrollStudent,
		InstructorName:  class.InstructorName,
		InstructorEmail: class.InstructorEmail,
		Status:          string(class.Status),
		Feedback:        class.Feedback,
	})
	if err != nil {
		return "", fmt.Errorf("create class: %w", err)
	}
	return result.InsertedID, nil
}

func (r *Repository) ListClasses(ctx context.Context, filter ports.ClassFilter) ([]entities.Class, error) {
	query := docstore.Filter{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	opts := docstore.FindOptions{Limit: filter.Limit}
	if filter.SortBy != "" {
		opts.SortField = filter.SortBy
		opts.SortOrder = docstore.SortDescending
	}

	var docs []classDocument
	if err := r.classes.Find(ctx, query, opts, &docs); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	classes := make([]entities.Class, 0, len(docs))
	for _, doc := range docs {
		classes = append(classes, doc.toEntity())
	}
	return classes, nil
}

func (r *Repository) GetClass(ctx context.Context, classID string) (entities.Class, error) {
	var doc classDocument
	err := r.classes.FindOne(ctx, docstore.Filter{docstore.IDField: classID}, &doc)
	if errors.Is(err, docstore.ErrNotFound) {
		return entities.Class{}, domainerrors.ErrClassNotFound
	}
	if err != nil {
		return entities.Class{}, fmt.Errorf("get class: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *Repository) UpsertClassFields(ctx context.Context, classID string, fields entities.ClassFields) (ports.UpdateResult, error) {
	set := map[string]any{}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Price != nil {
		set["price"] = *fields.Price
	}
	if fields.Seats != nil {
		set["seats"] = *fields.Seats
	}
	if fields.Status != nil {
		set["status"] = string(*fields.Status)
	}
	if fields.Feedback != nil {
		set["feedback"] = *fields.Feedback
	}

	result, err := r.classes.UpdateOne(ctx, docstore.Filter{docstore.IDField: classID}, set, true)
	if err != nil {
		return ports.UpdateResult{}, fmt.Errorf("upsert class fields: %w", err)
	}
	if result.UpsertedCount > 0 {
		r.logger.Warn("class update created a new document",
			"event", "catalog_class_upserted",
			"module", "learning-marketplace/class-catalog-service",
			"layer", "adapter",
			"class_id", classID,
		)
	}
	return ports.UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedCount: result.UpsertedCount,
		UpsertedID:    result.UpsertedID,
	}, nil
}

func (r *Repository) ListInstructors(ctx context.Context) ([]entities.Instructor, error) {
	var docs []instructorDocument
	if err := r.instructors.Find(ctx, docstore.Filter{}, docstore.FindOptions{}, &docs); err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	instructors := make([]entities.Instructor, 0, len(docs))
	for _, doc := range docs {
		instructors = append(instructors, entities.Instructor{
			ID:              doc.ID,
			Name:            doc.Name,
			Email:           doc.Email,
			Photo:           doc.Photo,
			NumberOfClasses: doc.NumberOfClasses,
		})
	}
	return instructors, nil
}
