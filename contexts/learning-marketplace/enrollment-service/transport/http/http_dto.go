package httptransport

import "time"

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type CreatePaymentIntentRequest struct {
	Price float64 `json:"price"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentRequest is the client-confirmed checkout. The payer is always the
// token identity; the email field is accepted for compatibility and ignored.
type PaymentRequest struct {
	Email         string   `json:"email"`
	Price         float64  `json:"price"`
	TransactionID string   `json:"transactionId"`
	AddItems      []string `json:"addItems"`
	SelectedItems []string `json:"selectedItems"`
	ItemNames     []string `json:"itemNames"`
}

type InsertResultResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type DeleteResultResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type CompletePaymentResponse struct {
	InsertResult InsertResultResponse `json:"insertResult"`
	DeleteResult DeleteResultResponse `json:"deleteResult"`
}

type PaymentDTO struct {
	ID            string    `json:"_id"`
	Email         string    `json:"email"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	AddItems      []string  `json:"addItems"`
	SelectedItems []string  `json:"selectedItems"`
	ItemNames     []string  `json:"itemNames"`
	Date          time.Time `json:"date"`
}
