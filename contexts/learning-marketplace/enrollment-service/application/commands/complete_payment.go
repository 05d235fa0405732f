package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/services"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/ports"
)

type CompletePaymentCommand struct {
	Email         string
	Price         float64
	TransactionID string
	AddItems      []string
	SelectedItems []string
	ItemNames     []string
}

type CompletePaymentResult struct {
	PaymentID         string
	RemovedSelections int64
	// Task is not yet queued; DispatchEnrollmentUseCase queues it once the
	// caller has answered the client.
	Task entities.EnrollmentTask
}

// CompletePaymentUseCase records a confirmed payment and clears the paid
// selections. Both writes run detached from ctx cancellation so a client
// that disconnects mid-request cannot leave a charge unrecorded.
type CompletePaymentUseCase struct {
	Payments   ports.PaymentRepository
	Selections ports.SelectionRemover
	Clock      ports.Clock
	SeatPolicy entities.SeatPolicy
	Logger     *slog.Logger
}

func (uc CompletePaymentUseCase) Execute(ctx context.Context, cmd CompletePaymentCommand) (CompletePaymentResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	email := strings.TrimSpace(cmd.Email)
	if email == "" {
		return CompletePaymentResult{}, domainerrors.ErrInvalidEmail
	}
	if cmd.Price < 0 {
		return CompletePaymentResult{}, domainerrors.ErrInvalidPayment
	}

	writeCtx := context.WithoutCancel(ctx)
	now := uc.now()

	paymentID, err := uc.Payments.RecordPayment(writeCtx, entities.Payment{
		Email:         email,
		Price:         cmd.Price,
		TransactionID: strings.TrimSpace(cmd.TransactionID),
		AddItems:      nonNil(cmd.AddItems),
		SelectedItems: nonNil(cmd.SelectedItems),
		ItemNames:     nonNil(cmd.ItemNames),
		Date:          now,
	})
	if err != nil {
		logger.Error("payment record failed",
			"event", "enrollment_payment_record_failed",
			"module", "learning-marketplace/enrollment-service",
			"layer", "application",
			"transaction_id", cmd.TransactionID,
			"error", err.Error(),
		)
		return CompletePaymentResult{}, err
	}

	var removed int64
	for _, item := range cmd.AddItems {
		selectionID := strings.TrimSpace(item)
		if selectionID == "" {
			continue
		}
		count, err := uc.Selections.RemoveSelection(writeCtx, selectionID)
		if err != nil {
			logger.Error("paid selection removal failed",
				"event", "enrollment_selection_remove_failed",
				"module", "learning-marketplace/enrollment-service",
				"layer", "application",
				"payment_id", paymentID,
				"selection_id", selectionID,
				"error", err.Error(),
			)
			continue
		}
		if count == 0 {
			logger.Warn("paid selection already gone",
				"event", "enrollment_selection_missing",
				"module", "learning-marketplace/enrollment-service",
				"layer", "application",
				"payment_id", paymentID,
				"selection_id", selectionID,
			)
			continue
		}
		removed += count
	}

	policy := uc.SeatPolicy
	if policy == "" {
		policy = entities.SeatPolicyAll
	}
	task := entities.EnrollmentTask{
		PaymentID: paymentID,
		Email:     email,
		ClassIDs:  services.SeatTargets(policy, cmd.SelectedItems),
		QueuedAt:  now,
	}

	logger.Info("payment completed",
		"event", "enrollment_payment_completed",
		"module", "learning-marketplace/enrollment-service",
		"layer", "application",
		"payment_id", paymentID,
		"removed_selections", removed,
		"seat_policy", string(policy),
		"class_count", len(task.ClassIDs),
	)
	return CompletePaymentResult{
		PaymentID:         paymentID,
		RemovedSelections: removed,
		Task:              task,
	}, nil
}

func (uc CompletePaymentUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
