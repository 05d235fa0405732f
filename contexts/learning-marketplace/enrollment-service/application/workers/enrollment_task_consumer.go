package workers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/ports"
)

const defaultEnrollmentCG = "enrollment-service-task-cg"

// EnrollmentTaskConsumer applies queued enrollment tasks to class counters.
// Each class id is applied independently; a class without seats is logged
// and skipped.
type EnrollmentTaskConsumer struct {
	Subscriber    ports.EventSubscriber
	Classes       ports.ClassCounter
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c EnrollmentTaskConsumer) Start(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultEnrollmentCG
	}
	if err := c.Subscriber.Subscribe(ctx, application.EnrollmentTaskTopic, group, c.handle); err != nil {
		logger.Error("enrollment consumer subscribe failed",
			"event", "enrollment_consumer_subscribe_failed",
			"module", "learning-marketplace/enrollment-service",
			"layer", "worker",
			"topic", application.EnrollmentTaskTopic,
			"consumer_group", group,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("enrollment consumer subscription active",
		"event", "enrollment_consumer_started",
		"module", "learning-marketplace/enrollment-service",
		"layer", "worker",
		"consumer_group", group,
	)
	return nil
}

func (c EnrollmentTaskConsumer) handle(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	task, err := application.DecodeEnrollmentTask(event.Data)
	if err != nil {
		logger.Error("enrollment task decode failed",
			"event", "enrollment_task_decode_failed",
			"module", "learning-marketplace/enrollment-service",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}

	var (
		applied  int
		skipped  int
		failures []error
	)
	for _, classID := range task.ClassIDs {
		ok, err := c.Classes.ApplyEnrollment(ctx, classID)
		if err != nil {
			logger.Error("enrollment counter update failed",
				"event", "enrollment_counter_update_failed",
				"module", "learning-marketplace/enrollment-service",
				"layer", "worker",
				"task_id", task.TaskID,
				"payment_id", task.PaymentID,
				"class_id", classID,
				"error", err.Error(),
			)
			failures = append(failures, err)
			continue
		}
		if !ok {
			logger.Warn("enrollment skipped, class missing or full",
				"event", "enrollment_counter_update_skipped",
				"module", "learning-marketplace/enrollment-service",
				"layer", "worker",
				"task_id", task.TaskID,
				"payment_id", task.PaymentID,
				"class_id", classID,
			)
			skipped++
			continue
		}
		logger.Debug("enrollment applied",
			"event", "enrollment_counter_updated",
			"module", "learning-marketplace/enrollment-service",
			"layer", "worker",
			"task_id", task.TaskID,
			"class_id", classID,
		)
		applied++
	}

	logger.Info("enrollment task completed",
		"event", "enrollment_task_completed",
		"module", "learning-marketplace/enrollment-service",
		"layer", "worker",
		"task_id", task.TaskID,
		"payment_id", task.PaymentID,
		"applied", applied,
		"skipped", skipped,
		"failed", len(failures),
	)
	return errors.Join(failures...)
}
