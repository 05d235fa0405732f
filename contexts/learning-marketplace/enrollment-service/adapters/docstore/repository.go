package docstoreadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
)

type paymentDocument struct {
	ID            string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Email         string    `json:"email" bson:"email"`
	Price         float64   `json:"price" bson:"price"`
	TransactionID string    `json:"transactionId" bson:"transactionId"`
	AddItems      []string  `json:"addItems" bson:"addItems"`
	SelectedItems []string  `json:"selectedItems" bson:"selectedItems"`
	ItemNames     []string  `json:"itemNames" bson:"itemNames"`
	Date          time.Time `json:"date" bson:"date"`
}

// Repository covers the enrollment writes against the payments, selects
// and class collections.
type Repository struct {
	payments   docstore.Collection
	selections docstore.Collection
	classes    docstore.Collection
}

func NewRepository(store docstore.Store) *Repository {
	return &Repository{
		payments:   store.Collection(docstore.CollectionPayments),
		selections: store.Collection(docstore.CollectionSelections),
		classes:    store.Collection(docstore.CollectionClasses),
	}
}

func (r *Repository) RecordPayment(ctx context.Context, payment entities.Payment) (string, error) {
	result, err := r.payments.InsertOne(ctx, paymentDocument{
		Email:         payment.Email,
		Price:         payment.Price,
		TransactionID: payment.TransactionID,
		AddItems:      payment.AddItems,
		SelectedItems: payment.SelectedItems,
		ItemNames:     payment.ItemNames,
		Date:          payment.Date,
	})
	if err != nil {
		return "", fmt.Errorf("record payment: %w", err)
	}
	return result.InsertedID, nil
}

func (r *Repository) ListPaymentsByEmail(ctx context.Context, email string) ([]entities.Payment, error) {
	var docs []paymentDocument
	if err := r.payments.Find(ctx, docstore.Filter{"email": email}, docstore.FindOptions{}, &docs); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	payments := make([]entities.Payment, 0, len(docs))
	for _, doc := range docs {
		payments = append(payments, entities.Payment{
			ID:            doc.ID,
			Email:         doc.Email,
			Price:         doc.Price,
			TransactionID: doc.TransactionID,
			AddItems:      doc.AddItems,
			SelectedItems: doc.SelectedItems,
			ItemNames:     doc.ItemNames,
			Date:          doc.Date,
		})
	}
	return payments, nil
}

func (r *Repository) RemoveSelection(ctx context.Context, selectionID string) (int64, error) {
	result, err := r.selections.DeleteOne(ctx, docstore.Filter{docstore.IDField: selectionID})
	if err != nil {
		return 0, fmt.Errorf("remove paid selection: %w", err)
	}
	return result.DeletedCount, nil
}

// ApplyEnrollment is one guarded increment: the seats >= 1 check and both
// counter changes happen in a single store write.
func (r *Repository) ApplyEnrollment(ctx context.Context, classID string) (bool, error) {
	result, err := r.classes.Increment(ctx, docstore.Filter{docstore.IDField: classID}, map[string]int64{
		"enrollStudent": 1,
		"seats":         -1,
	})
	if err != nil {
		return false, fmt.Errorf("apply enrollment: %w", err)
	}
	return result.MatchedCount > 0, nil
}
