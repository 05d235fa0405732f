package docstoreadapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
)

type selectionDocument struct {
	ID             string  `json:"_id,omitempty" bson:"_id,omitempty"`
	Email          string  `json:"email" bson:"email"`
	ClassID        string  `json:"classId" bson:"classId"`
	Name           string  `json:"name,omitempty" bson:"name,omitempty"`
	Image          string  `json:"image,omitempty" bson:"image,omitempty"`
	Price          float64 `json:"price" bson:"price"`
	InstructorName string  `json:"instructorName,omitempty" bson:"instructorName,omitempty"`
	Seats          int64   `json:"seats" bson:"seats"`
}

func (d selectionDocument) toEntity() entities.Selection {
	return entities.Selection{
		ID:             d.ID,
		Email:          d.Email,
		ClassID:        d.ClassID,
		Name:           d.Name,
		Image:          d.Image,
		Price:          d.Price,
		InstructorName: d.InstructorName,
		Seats:          d.Seats,
	}
}

// Repository implements ports.SelectionRepository over the selects collection.
type Repository struct {
	selections docstore.Collection
}

func NewRepository(store docstore.Store) *Repository {
	return &Repository{selections: store.Collection(docstore.CollectionSelections)}
}

func (r *Repository) AddSelection(ctx context.Context, selection entities.Selection) (string, error) {
	result, err := r.selections.InsertOne(ctx, selectionDocument{
		Email:          selection.Email,
		ClassID:        selection.ClassID,
		Name:           selection.Name,
		Image:          selection.Image,
		Price:          selection.Price,
		InstructorName: selection.InstructorName,
		Seats:          selection.Seats,
	})
	if err != nil {
		return "", fmt.Errorf("add selection: %w", err)
	}
	return result.InsertedID, nil
}

func (r *Repository) ListSelectionsByEmail(ctx context.Context, email string) ([]entities.Selection, error) {
	var docs []selectionDocument
	if err := r.selections.Find(ctx, docstore.Filter{"email": email}, docstore.FindOptions{}, &docs); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	selections := make([]entities.Selection, 0, len(docs))
	for _, doc := range docs {
		selections = append(selections, doc.toEntity())
	}
	return selections, nil
}

func (r *Repository) FindSelection(ctx context.Context, selectionID string) (entities.Selection, error) {
	var doc selectionDocument
	err := r.selections.FindOne(ctx, docstore.Filter{docstore.IDField: selectionID}, &doc)
	if errors.Is(err, docstore.ErrNotFound) {
		return entities.Selection{}, domainerrors.ErrSelectionNotFound
	}
	if err != nil {
		return entities.Selection{}, fmt.Errorf("find selection: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *Repository) RemoveSelection(ctx context.Context, selectionID string) (int64, error) {
	result, err := r.selections.DeleteOne(ctx, docstore.Filter{docstore.IDField: selectionID})
	if err != nil {
		return 0, fmt.Errorf("remove selection: %w", err)
	}
	return result.DeletedCount, nil
}
