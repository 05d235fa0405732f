package enrollment_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	enrollment "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service"
	sandboxprovider "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/adapters/sandbox"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/errors"
	httptransport "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/transport/http"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/memory"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/messaging"
)

type classCounters struct {
	Seats         int64 `json:"seats"`
	EnrollStudent int64 `json:"enrollStudent"`
}

type harness struct {
	store    *memory.Store
	bus      *messaging.Bus
	provider *sandboxprovider.Provider
	module   enrollment.Module
	stop     context.CancelFunc
}

func newHarness(t *testing.T, policy entities.SeatPolicy) *harness {
	t.Helper()
	store := memory.NewStore()
	bus := messaging.NewBus(16, nil)
	provider := sandboxprovider.NewProvider()
	module := enrollment.NewDocstoreModule(store, bus, provider, enrollment.Settings{SeatPolicy: policy}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := module.Consumer.Start(ctx); err != nil {
		t.Fatalf("start consumer: %v", err)
	}
	h := &harness{store: store, bus: bus, provider: provider, module: module, stop: cancel}
	t.Cleanup(h.drain)
	return h
}

// drain stops the consumer and waits until every queued task was applied.
func (h *harness) drain() {
	h.stop()
	h.bus.Wait()
}

func (h *harness) seed(t *testing.T, collection string, doc map[string]any) {
	t.Helper()
	if _, err := h.store.Collection(collection).InsertOne(context.Background(), doc); err != nil {
		t.Fatalf("seed %s: %v", collection, err)
	}
}

func (h *harness) counters(t *testing.T, classID string) classCounters {
	t.Helper()
	var out classCounters
	if err := h.store.Collection(docstore.CollectionClasses).FindOne(context.Background(), docstore.Filter{"_id": classID}, &out); err != nil {
		t.Fatalf("load class %s: %v", classID, err)
	}
	return out
}

func (h *harness) pay(t *testing.T, ctx context.Context, email string, req httptransport.PaymentRequest) httptransport.CompletePaymentResponse {
	t.Helper()
	resp, task, err := h.module.Handler.CompletePaymentHandler(ctx, email, req)
	if err != nil {
		t.Fatalf("complete payment: %v", err)
	}
	if err := h.module.Handler.DispatchEnrollmentHandler(ctx, task); err != nil {
		t.Fatalf("dispatch enrollment: %v", err)
	}
	return resp
}

func TestPaymentScenarioEnrollsStudent(t *testing.T) {
	h := newHarness(t, entities.SeatPolicyAll)
	ctx := context.Background()
	h.seed(t, docstore.CollectionClasses, map[string]any{"_id": "c1", "name": "Ink", "price": 50, "seats": 5, "enrollStudent": 10, "status": "approved"})
	h.seed(t, docstore.CollectionSelections, map[string]any{"_id": "s1", "email": "a@example.com", "classId": "c1", "price": 50})

	if _, err := h.module.Handler.CreatePaymentIntentHandler(ctx, httptransport.CreatePaymentIntentRequest{Price: 50}); err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if amounts := h.provider.Amounts(); len(amounts) != 1 || amounts[0] != 5000 {
		t.Fatalf("expected one 5000 minor unit intent, got %v", amounts)
	}

	resp := h.pay(t, ctx, "a@example.com", httptransport.PaymentRequest{
		Price:         50,
		TransactionID: "pi_123",
		AddItems:      []string{"s1"},
		SelectedItems: []string{"c1"},
		ItemNames:     []string{"Ink"},
	})
	if resp.InsertResult.InsertedID == "" || resp.DeleteResult.DeletedCount != 1 {
		t.Fatalf("unexpected payment response: %+v", resp)
	}
	h.drain()

	if got := h.counters(t, "c1"); got.Seats != 4 || got.EnrollStudent != 11 {
		t.Fatalf("expected seats=4 enrollStudent=11, got %+v", got)
	}
	if h.store.Count(docstore.CollectionSelections) != 0 {
		t.Fatalf("expected paid selection to be removed")
	}
	payments, err := h.module.Handler.ListPaymentsHandler(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 1 || payments[0].Price != 50 || payments[0].TransactionID != "pi_123" {
		t.Fatalf("expected one recorded payment, got %+v", payments)
	}
}

func TestPaymentAdjustsEveryPurchasedClass(t *testing.T) {
	h := newHarness(t, entities.SeatPolicyAll)
	h.seed(t, docstore.CollectionClasses, map[string]any{"_id": "c1", "seats": 5, "enrollStudent": 0})
	h.seed(t, docstore.CollectionClasses, map[string]any{"_id": "c2", "seats": 3, "enrollStudent": 1})

	h.pay(t, context.Background(), "a@example.com", httptransport.PaymentRequest{
		Price:         80,
		SelectedItems: []string{"c1", "c2"},
	})
	h.drain()

	if got := h.counters(t, "c1"); got.Seats != 4 || got.EnrollStudent != 1 {
		t.Fatalf("c1: unexpected counters %+v", got)
	}
	if got := h.counters(t, "c2"); got.Seats != 2 || got.EnrollStudent != 2 {
		t.Fatalf("c2: unexpected counters %+v", got)
	}
}

// The "first" policy keeps the legacy behavior where a multi-class payment
// only takes a seat in the first class. This test pins that discrepancy.
func TestFirstSeatPolicyOnlyAdjustsFirstClass(t *testing.T) {
	h := newHarness(t, entities.SeatPolicyFirst)
	h.seed(t, docstore.CollectionClasses, map[string]any{"_id": "c1", "seats": 5, "enrollStudent": 0})
	h.seed(t, docstore.CollectionClasses, map[string]any{"_id": "c2", "seats": 3, "enrollStudent": 1})

	h.pay(t, context.Background(), "a@example.com", httptransport.PaymentRequest{
		Price:         80,
		SelectedItems: []string{"c1", "c2"},
	})
	h.drain()

	if got := h.counters(t, "c1"); got.Seats != 4 || got.EnrollStudent != 1 {
		t.Fatalf("c1: unexpected counters %+v", got)
	}
	if got := h.counters(t, "c2"); got.Seats != 3 || got.EnrollStudent != 1 {
		t.Fatalf("c2 must stay untouched under the first policy, got %+v", got)
	}
}

func TestPaymentSurvivesCancelledRequest(t *testing.T) {
	h := newHarness(t, entities.SeatPolicyAll)
	h.seed(t, docstore.CollectionClasses, map[string]any{"_id": "c1", "seats": 2, "enrollStudent": 0})
	h.seed(t, docstore.CollectionSelections, map[string]any{"_id": "s1", "email": "a@example.com", "classId": "c1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := h.pay(t, ctx, "a@example.com", httptransport.PaymentRequest{
		Price:         20,
		AddItems:      []string{"s1", "missing"},
		SelectedItems: []string{"c1"},
	})
	h.drain()

	if h.store.Count(docstore.CollectionPayments) != 1 {
		t.Fatalf("expected the payment to be recorded")
	}
	if resp.DeleteResult.DeletedCount != 1 {
		t.Fatalf("expected one removed selection, got %d", resp.DeleteResult.DeletedCount)
	}
	if got := h.counters(t, "c1"); got.Seats != 1 || got.EnrollStudent != 1 {
		t.Fatalf("unexpected counters %+v", got)
	}
}

type failingProvider struct{}

func (failingProvider) CreatePaymentIntent(context.Context, int64, string) (string, error) {
	return "", errors.New("provider unavailable")
}

func TestProviderFailureLeavesNoState(t *testing.T) {
	store := memory.NewStore()
	module := enrollment.NewDocstoreModule(store, messaging.NewBus(1, nil), failingProvider{}, enrollment.Settings{}, nil)

	_, err := module.Handler.CreatePaymentIntentHandler(context.Background(), httptransport.CreatePaymentIntentRequest{Price: 50})
	if !errors.Is(err, domainerrors.ErrPaymentProvider) {
		t.Fatalf("expected ErrPaymentProvider, got %v", err)
	}
	for _, collection := range []string{docstore.CollectionPayments, docstore.CollectionSelections, docstore.CollectionClasses} {
		if n := store.Count(collection); n != 0 {
			t.Fatalf("expected no %s documents, got %d", collection, n)
		}
	}
}

func TestConcurrentPaymentsNeverOversellSeats(t *testing.T) {
	h := newHarness(t, entities.SeatPolicyAll)
	h.seed(t, docstore.CollectionClasses, map[string]any{"_id": "c1", "seats": 2, "enrollStudent": 0})

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, task, err := h.module.Handler.CompletePaymentHandler(context.Background(), "a@example.com", httptransport.PaymentRequest{
				Price:         10,
				SelectedItems: []string{"c1"},
			})
			if err != nil {
				t.Errorf("complete payment: %v", err)
				return
			}
			if err := h.module.Handler.DispatchEnrollmentHandler(context.Background(), task); err != nil {
				t.Errorf("dispatch enrollment: %v", err)
			}
		}()
	}
	wg.Wait()
	h.drain()

	if got := h.counters(t, "c1"); got.Seats != 0 || got.EnrollStudent != 2 {
		t.Fatalf("expected seats=0 enrollStudent=2, got %+v", got)
	}
	if h.store.Count(docstore.CollectionPayments) != 6 {
		t.Fatalf("expected every payment to be recorded")
	}
}

func TestCompletePaymentRequiresIdentity(t *testing.T) {
	h := newHarness(t, entities.SeatPolicyAll)
	_, _, err := h.module.Handler.CompletePaymentHandler(context.Background(), "", httptransport.PaymentRequest{Price: 10})
	if !errors.Is(err, domainerrors.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}
