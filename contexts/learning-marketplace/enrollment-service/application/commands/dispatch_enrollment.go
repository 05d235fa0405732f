package commands

import (
	"context"
	"log/slog"
	"time"

	application "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/ports"
)

const (
	defaultEnrollmentTaskTimeout = 30 * time.Second
	enrollmentSourceService      = "enrollment-service"
)

// DispatchEnrollmentUseCase queues an enrollment task on the event bus.
// It runs after the payment response is written, so ctx cancellation is
// ignored and only Timeout bounds the hand-off.
type DispatchEnrollmentUseCase struct {
	Publisher ports.EventPublisher
	IDGen     ports.IDGenerator
	Clock     ports.Clock
	Timeout   time.Duration
	Logger    *slog.Logger
}

func (uc DispatchEnrollmentUseCase) Execute(ctx context.Context, task entities.EnrollmentTask) error {
	logger := application.ResolveLogger(uc.Logger)
	if len(task.ClassIDs) == 0 {
		logger.Info("enrollment task skipped without classes",
			"event", "enrollment_task_empty",
			"module", "learning-marketplace/enrollment-service",
			"layer", "application",
			"payment_id", task.PaymentID,
		)
		return nil
	}

	timeout := uc.Timeout
	if timeout <= 0 {
		timeout = defaultEnrollmentTaskTimeout
	}
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	eventID, err := uc.IDGen.NewID(publishCtx)
	if err != nil {
		return err
	}
	if task.TaskID == "" {
		task.TaskID = eventID
	}
	data, err := application.EncodeEnrollmentTask(task)
	if err != nil {
		return err
	}

	occurredAt := time.Now().UTC()
	if uc.Clock != nil {
		occurredAt = uc.Clock.Now().UTC()
	}
	err = uc.Publisher.Publish(publishCtx, application.EnrollmentTaskTopic, ports.EventEnvelope{
		EventID:       eventID,
		EventType:     application.EnrollmentTaskTopic,
		OccurredAt:    occurredAt,
		SourceService: enrollmentSourceService,
		PartitionKey:  task.PaymentID,
		Data:          data,
	})
	if err != nil {
		logger.Error("enrollment task dispatch failed",
			"event", "enrollment_task_dispatch_failed",
			"module", "learning-marketplace/enrollment-service",
			"layer", "application",
			"payment_id", task.PaymentID,
			"task_id", task.TaskID,
			"class_ids", task.ClassIDs,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("enrollment task queued",
		"event", "enrollment_task_queued",
		"module", "learning-marketplace/enrollment-service",
		"layer", "application",
		"payment_id", task.PaymentID,
		"task_id", task.TaskID,
		"class_count", len(task.ClassIDs),
	)
	return nil
}
