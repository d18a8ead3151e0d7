package service

import (
	"context"
	"sync"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/domain"
)

// mockOrderBackend is a scriptable OrderBackend for orchestrator tests.
type mockOrderBackend struct {
	createOrderResult domain.Order
	createOrderErr    error
	intentSecret      string
	intentErr         error
	markPaidErr       error

	createOrderCalls int
	intentCalls      int
	markPaidCalls    int

	lastIntentAmount int64
	lastReceipt      domain.PaymentReceipt
}

func (m *mockOrderBackend) CreateOrder(ctx context.Context, token string, draft domain.OrderDraft) (domain.Order, error) {
	m.createOrderCalls++
	if m.createOrderErr != nil {
		return domain.Order{}, m.createOrderErr
	}
	return m.createOrderResult, nil
}

func (m *mockOrderBackend) CreatePaymentIntent(ctx context.Context, token, orderID string, amountMinor int64, currency string) (string, error) {
	m.intentCalls++
	m.lastIntentAmount = amountMinor
	if m.intentErr != nil {
		return "", m.intentErr
	}
	return m.intentSecret, nil
}

func (m *mockOrderBackend) MarkOrderPaid(ctx context.Context, token, orderID string, receipt domain.PaymentReceipt) error {
	m.markPaidCalls++
	m.lastReceipt = receipt
	return m.markPaidErr
}

// mockCardConfirmer is a scriptable CardConfirmer.
type mockCardConfirmer struct {
	transactionID string
	err           error
	calls         int
	lastSecret    string
}

func (m *mockCardConfirmer) Confirm(ctx context.Context, clientSecret string, billing domain.BillingDetails) (string, error) {
	m.calls++
	m.lastSecret = clientSecret
	if m.err != nil {
		return "", m.err
	}
	return m.transactionID, nil
}

// mockNotifier records delivered messages.
type mockNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (m *mockNotifier) Success(ctx context.Context, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes = append(m.successes, message)
}

func (m *mockNotifier) Error(ctx context.Context, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}

// mockRegistry is an in-memory FinalizeRegistry.
type mockRegistry struct {
	issued     map[string]bool
	markErr    error
	clearErr   error
	markCalls  int
	clearCalls int
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{issued: make(map[string]bool)}
}

func (m *mockRegistry) MarkIssued(ctx context.Context, orderID string) (bool, error) {
	m.markCalls++
	if m.markErr != nil {
		return false, m.markErr
	}
	if m.issued[orderID] {
		return false, nil
	}
	m.issued[orderID] = true
	return true, nil
}

func (m *mockRegistry) Clear(ctx context.Context, orderID string) error {
	m.clearCalls++
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.issued, orderID)
	return nil
}

// mockCart records local cart clears.
type mockCart struct {
	clearCalls int
}

func (m *mockCart) ClearCart() {
	m.clearCalls++
}
