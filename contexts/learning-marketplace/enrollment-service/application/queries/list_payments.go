package queries

import (
	"context"
	"sort"
	"strings"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/ports"
)

type ListPaymentsUseCase struct {
	Payments ports.PaymentRepository
}

// Execute returns the email's payments, newest first.
func (uc ListPaymentsUseCase) Execute(ctx context.Context, email string) ([]entities.Payment, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return []entities.Payment{}, nil
	}
	payments, err := uc.Payments.ListPaymentsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.After(payments[j].Date)
	})
	return payments, nil
}
