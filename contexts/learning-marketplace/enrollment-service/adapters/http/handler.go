package httpadapter

import (
	"context"
	"log/slog"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/application/queries"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
	httptransport "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/transport/http"
)

type Handler struct {
	CreatePaymentIntent commands.CreatePaymentIntentUseCase
	CompletePayment     commands.CompletePaymentUseCase
	DispatchEnrollment  commands.DispatchEnrollmentUseCase
	ListPayments        queries.ListPaymentsUseCase
	Logger              *slog.Logger
}

// CreatePaymentIntentHandler godoc
// @Summary Create payment intent
// @Description Amount is sent to the provider in minor units.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.CreatePaymentIntentRequest true "Price"
// @Success 200 {object} httptransport.CreatePaymentIntentResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Router /create-payment-intent [post]
func (h Handler) CreatePaymentIntentHandler(
	ctx context.Context,
	req httptransport.CreatePaymentIntentRequest,
) (httptransport.CreatePaymentIntentResponse, error) {
	intent, err := h.CreatePaymentIntent.Execute(ctx, commands.CreatePaymentIntentCommand{Price: req.Price})
	if err != nil {
		return httptransport.CreatePaymentIntentResponse{}, err
	}
	return httptransport.CreatePaymentIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

// CompletePaymentHandler godoc
// @Summary Complete payment
// @Description Records the payment and removes the paid selections. Seat
// @Description counters are adjusted after the response is sent.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.PaymentRequest true "Payment"
// @Success 200 {object} httptransport.CompletePaymentResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /payments [post]
func (h Handler) CompletePaymentHandler(
	ctx context.Context,
	identityEmail string,
	req httptransport.PaymentRequest,
) (httptransport.CompletePaymentResponse, entities.EnrollmentTask, error) {
	result, err := h.CompletePayment.Execute(ctx, commands.CompletePaymentCommand{
		Email:         identityEmail,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		AddItems:      req.AddItems,
		SelectedItems: req.SelectedItems,
		ItemNames:     req.ItemNames,
	})
	if err != nil {
		return httptransport.CompletePaymentResponse{}, entities.EnrollmentTask{}, err
	}
	return httptransport.CompletePaymentResponse{
		InsertResult: httptransport.InsertResultResponse{Acknowledged: true, InsertedID: result.PaymentID},
		DeleteResult: httptransport.DeleteResultResponse{Acknowledged: true, DeletedCount: result.RemovedSelections},
	}, result.Task, nil
}

// DispatchEnrollmentHandler queues the counter update for a completed payment.
func (h Handler) DispatchEnrollmentHandler(ctx context.Context, task entities.EnrollmentTask) error {
	return h.DispatchEnrollment.Execute(ctx, task)
}

// ListPaymentsHandler godoc
// @Summary Payment history
// @Tags payments
// @Produce json
// @Param email path string true "Payer email"
// @Success 200 {array} httptransport.PaymentDTO
// @Router /payments/{email} [get]
func (h Handler) ListPaymentsHandler(ctx context.Context, email string) ([]httptransport.PaymentDTO, error) {
	payments, err := h.ListPayments.Execute(ctx, email)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.PaymentDTO, 0, len(payments))
	for _, payment := range payments {
		items = append(items, httptransport.PaymentDTO{
			ID:            payment.ID,
			Email:         payment.Email,
			Price:         payment.Price,
			TransactionID: payment.TransactionID,
			AddItems:      payment.AddItems,
			SelectedItems: payment.SelectedItems,
			ItemNames:     payment.ItemNames,
			Date:          payment.Date,
		})
	}
	return items, nil
}
