package ports

import (
	"context"
	"time"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/messaging"
)

type PaymentIntentProvider interface {
	// CreatePaymentIntent returns the client secret for amount minor units.
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type PaymentRepository interface {
	RecordPayment(ctx context.Context, payment entities.Payment) (string, error)
	ListPaymentsByEmail(ctx context.Context, email string) ([]entities.Payment, error)
}

type SelectionRemover interface {
	// RemoveSelection reports how many selections were deleted (0 or 1).
	RemoveSelection(ctx context.Context, selectionID string) (int64, error)
}

type ClassCounter interface {
	// ApplyEnrollment atomically adds one enrolled student and takes one
	// seat. It reports false when the class is missing or has no seats left.
	ApplyEnrollment(ctx context.Context, classID string) (bool, error)
}

type EventEnvelope = messaging.Envelope

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
