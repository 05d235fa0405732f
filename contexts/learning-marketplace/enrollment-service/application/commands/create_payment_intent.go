package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/services"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/ports"
)

const (
	defaultPaymentCurrency        = "usd"
	defaultPaymentProviderTimeout = 10 * time.Second
)

type CreatePaymentIntentCommand struct {
	Price float64
}

// CreatePaymentIntentUseCase asks the provider for a client secret. Nothing
// is written locally, so a failed or timed-out call leaves no state behind.
type CreatePaymentIntentUseCase struct {
	Provider ports.PaymentIntentProvider
	Currency string
	Timeout  time.Duration
	Logger   *slog.Logger
}

type providerResult struct {
	secret string
	err    error
}

func (uc CreatePaymentIntentUseCase) Execute(ctx context.Context, cmd CreatePaymentIntentCommand) (entities.PaymentIntent, error) {
	logger := application.ResolveLogger(uc.Logger)

	amount := services.ToMinorUnits(cmd.Price)
	if amount <= 0 {
		return entities.PaymentIntent{}, domainerrors.ErrInvalidAmount
	}
	currency := strings.ToLower(strings.TrimSpace(uc.Currency))
	if currency == "" {
		currency = defaultPaymentCurrency
	}
	timeout := uc.Timeout
	if timeout <= 0 {
		timeout = defaultPaymentProviderTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// The provider call runs on its own goroutine so the deadline holds even
	// when a client ignores context cancellation.
	results := make(chan providerResult, 1)
	go func() {
		secret, err := uc.Provider.CreatePaymentIntent(callCtx, amount, currency)
		results <- providerResult{secret: secret, err: err}
	}()

	var result providerResult
	select {
	case result = <-results:
	case <-callCtx.Done():
		result = providerResult{err: callCtx.Err()}
	}
	if result.err == nil && strings.TrimSpace(result.secret) == "" {
		result.err = errors.New("empty client secret")
	}
	if result.err != nil {
		logger.Error("payment intent creation failed",
			"event", "enrollment_payment_intent_failed",
			"module", "learning-marketplace/enrollment-service",
			"layer", "application",
			"amount", amount,
			"currency", currency,
			"timed_out", errors.Is(result.err, context.DeadlineExceeded),
			"error", result.err.Error(),
		)
		return entities.PaymentIntent{}, fmt.Errorf("%w: %v", domainerrors.ErrPaymentProvider, result.err)
	}

	logger.Info("payment intent created",
		"event", "enrollment_payment_intent_created",
		"module", "learning-marketplace/enrollment-service",
		"layer", "application",
		"amount", amount,
		"currency", currency,
	)
	return entities.PaymentIntent{
		ClientSecret: result.secret,
		Amount:       amount,
		Currency:     currency,
	}, nil
}
