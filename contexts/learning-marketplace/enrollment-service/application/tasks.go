package application

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/errors"
)

const EnrollmentTaskTopic = "enrollment.task_queued"

type enrollmentTaskPayload struct {
	TaskID    string    `json:"task_id"`
	PaymentID string    `json:"payment_id"`
	Email     string    `json:"email"`
	ClassIDs  []string  `json:"class_ids"`
	QueuedAt  time.Time `json:"queued_at"`
}

func EncodeEnrollmentTask(task entities.EnrollmentTask) (json.RawMessage, error) {
	return json.Marshal(enrollmentTaskPayload{
		TaskID:    task.TaskID,
		PaymentID: task.PaymentID,
		Email:     task.Email,
		ClassIDs:  task.ClassIDs,
		QueuedAt:  task.QueuedAt,
	})
}

func DecodeEnrollmentTask(data json.RawMessage) (entities.EnrollmentTask, error) {
	var payload enrollmentTaskPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return entities.EnrollmentTask{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidTask, err)
	}
	return entities.EnrollmentTask{
		TaskID:    payload.TaskID,
		PaymentID: payload.PaymentID,
		Email:     payload.Email,
		ClassIDs:  payload.ClassIDs,
		QueuedAt:  payload.QueuedAt,
	}, nil
}
