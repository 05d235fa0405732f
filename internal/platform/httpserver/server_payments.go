package httpserver

import (
	"errors"
	"net/http"

	enrollmenterrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/errors"
	enrollmenthttp "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/transport/http"
)

const paymentHistoryFailedMessage = "failed to load payment history"

func (s *Server) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireIdentity(w, r); !ok {
		return
	}
	var req enrollmenthttp.CreatePaymentIntentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeEnrollmentError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.enrollment.Handler.CreatePaymentIntentHandler(r.Context(), req)
	if err != nil {
		writeEnrollmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCompletePayment answers once the payment is recorded and the paid
// selections are gone, then queues the seat update.
func (s *Server) handleCompletePayment(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req enrollmenthttp.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeEnrollmentError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, task, err := s.enrollment.Handler.CompletePaymentHandler(r.Context(), identity.Email, req)
	if err != nil {
		writeEnrollmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	if err := http.NewResponseController(w).Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		s.logger.Debug("payment response flush failed",
			"event", "http_payment_flush_failed",
			"module", "internal/platform/httpserver",
			"layer", "transport",
			"error", err.Error(),
		)
	}

	// Dispatch failures are logged by the use case; the client already has
	// its answer.
	_ = s.enrollment.Handler.DispatchEnrollmentHandler(r.Context(), task)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	resp, err := s.enrollment.Handler.ListPaymentsHandler(r.Context(), r.PathValue("email"))
	if err != nil {
		s.logger.Error("payment history query failed",
			"event", "http_list_payments_failed",
			"module", "internal/platform/httpserver",
			"layer", "transport",
			"error", err.Error(),
		)
		writePlainError(w, http.StatusInternalServerError, paymentHistoryFailedMessage)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeEnrollmentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, enrollmenterrors.ErrPaymentProvider):
		writeEnrollmentError(w, http.StatusBadGateway, "payment provider unavailable")
	case errors.Is(err, enrollmenterrors.ErrInvalidAmount),
		errors.Is(err, enrollmenterrors.ErrInvalidPayment),
		errors.Is(err, enrollmenterrors.ErrInvalidEmail):
		writeEnrollmentError(w, http.StatusBadRequest, err.Error())
	default:
		writeEnrollmentError(w, http.StatusInternalServerError, internalMessage)
	}
}

func writeEnrollmentError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, enrollmenthttp.ErrorResponse{Error: true, Message: message})
}
