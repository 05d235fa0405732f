package sandboxprovider

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Provider issues fake client secrets for local runs without a payment
// account. It records every requested amount.
type Provider struct {
	mu      sync.Mutex
	amounts []int64
}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) CreatePaymentIntent(ctx context.Context, amount int64, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	p.amounts = append(p.amounts, amount)
	p.mu.Unlock()

	intentID := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	return intentID + "_secret_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16], nil
}

// Amounts returns the minor-unit amounts requested so far.
func (p *Provider) Amounts() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int64(nil), p.amounts...)
}
