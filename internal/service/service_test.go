package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boddenberg/credits-checkout-go/internal/domain"
	"github.com/boddenberg/credits-checkout-go/internal/infra/cache"
	"github.com/boddenberg/credits-checkout-go/internal/infra/observability"
	"github.com/boddenberg/credits-checkout-go/internal/service"

	"go.uber.org/zap"
)

// --- Mocks ---

type mockCheckoutCreator struct {
	session    *domain.CheckoutSession
	err        error
	lastIntent *domain.CheckoutIntent
	calls      int
}

func (m *mockCheckoutCreator) CreateCheckoutSession(_ context.Context, intent *domain.CheckoutIntent) (*domain.CheckoutSession, error) {
	m.calls++
	m.lastIntent = intent
	return m.session, m.err
}

type mockPackageStore struct {
	packages []domain.CreditPackage
	err      error
	calls    int
}

func (m *mockPackageStore) ListCreditPackages(_ context.Context) ([]domain.CreditPackage, error) {
	m.calls++
	return m.packages, m.err
}

type mockCreditsStore struct {
	balance      *domain.CreditBalance
	balanceErr   error
	purchases    []domain.CreditPurchase
	purchasesErr error
}

func (m *mockCreditsStore) GetCreditBalance(_ context.Context, _ string) (*domain.CreditBalance, error) {
	return m.balance, m.balanceErr
}

func (m *mockCreditsStore) ListCreditPurchases(_ context.Context, _ string, _ int) ([]domain.CreditPurchase, error) {
	return m.purchases, m.purchasesErr
}

// --- Contact ---

func TestContactProcess_AppliesDefaultMessage(t *testing.T) {
	svc := service.NewContactService(0, observability.NewMetrics(), zap.NewNop())

	data, err := svc.Process(context.Background(), domain.ContactSubmission{
		Name:  "Ada",
		Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if data.Message != domain.DefaultContactMessage {
		t.Errorf("expected default message, got '%s'", data.Message)
	}
	if _, err := time.Parse(time.RFC3339, data.Timestamp); err != nil {
		t.Errorf("expected RFC3339 timestamp, got '%s'", data.Timestamp)
	}
}

func TestContactProcess_KeepsProvidedMessage(t *testing.T) {
	svc := service.NewContactService(0, observability.NewMetrics(), zap.NewNop())

	data, err := svc.Process(context.Background(), domain.ContactSubmission{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Hello",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if data.Message != "Hello" {
		t.Errorf("expected 'Hello', got '%s'", data.Message)
	}
}

func TestContactProcess_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := service.NewContactService(time.Second, observability.NewMetrics(), zap.NewNop())

	_, err := svc.Process(ctx, domain.ContactSubmission{Name: "Ada", Email: "ada@example.com"})
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

// --- Checkout ---

func TestCheckoutCreateSession_Success(t *testing.T) {
	creator := &mockCheckoutCreator{
		session: &domain.CheckoutSession{SessionID: "cs_test_123", URL: "https://checkout.example/cs_test_123"},
	}
	svc := service.NewCheckoutService(creator, "https://app.example/success", "https://app.example/cancel", observability.NewMetrics(), zap.NewNop())

	session, err := svc.CreateSession(context.Background(), "user-1", "price_100")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.SessionID != "cs_test_123" {
		t.Errorf("expected session id 'cs_test_123', got '%s'", session.SessionID)
	}
	if creator.lastIntent.UserID != "user-1" {
		t.Errorf("expected user id 'user-1', got '%s'", creator.lastIntent.UserID)
	}
	if creator.lastIntent.PriceID != "price_100" {
		t.Errorf("expected price id 'price_100', got '%s'", creator.lastIntent.PriceID)
	}
	if creator.lastIntent.SuccessURL != "https://app.example/success" {
		t.Errorf("unexpected success url '%s'", creator.lastIntent.SuccessURL)
	}
	if creator.lastIntent.Reference == "" {
		t.Error("expected a generated reference")
	}
}

func TestCheckoutCreateSession_FailureIsNotRetried(t *testing.T) {
	creator := &mockCheckoutCreator{err: &domain.ErrUpstream{Service: "stripe", Err: errors.New("boom")}}
	svc := service.NewCheckoutService(creator, "s", "c", observability.NewMetrics(), zap.NewNop())

	_, err := svc.CreateSession(context.Background(), "user-1", "price_100")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if creator.calls != 1 {
		t.Errorf("expected exactly 1 call, got %d", creator.calls)
	}
}

// --- Credits ---

func TestListPackages_CachesCatalog(t *testing.T) {
	store := &mockPackageStore{packages: []domain.CreditPackage{
		{ID: "pkg-1", Name: "Starter", Credits: 100, PriceCents: 500, PriceID: "price_100"},
	}}
	svc := service.NewCreditsService(
		&mockCreditsStore{},
		store,
		cache.New[[]domain.CreditPackage](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)

	first, err := svc.ListPackages(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.ListPackages(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.calls != 1 {
		t.Errorf("expected 1 store call, got %d", store.calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Errorf("expected 1 package on both reads, got %d and %d", len(first), len(second))
	}
}

func TestGetBalance_MissingRowMeansZero(t *testing.T) {
	svc := service.NewCreditsService(
		&mockCreditsStore{balanceErr: &domain.ErrNotFound{Resource: "credit_balance", ID: "user-1"}},
		&mockPackageStore{},
		cache.New[[]domain.CreditPackage](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)

	balance, err := svc.GetBalance(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if balance.Balance != 0 {
		t.Errorf("expected zero balance, got %d", balance.Balance)
	}
	if balance.UserID != "user-1" {
		t.Errorf("expected user id 'user-1', got '%s'", balance.UserID)
	}
}

func TestGetBalance_UpstreamError(t *testing.T) {
	svc := service.NewCreditsService(
		&mockCreditsStore{balanceErr: &domain.ErrUpstream{Service: "supabase/credits", Err: errors.New("timeout")}},
		&mockPackageStore{},
		cache.New[[]domain.CreditPackage](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)

	_, err := svc.GetBalance(context.Background(), "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestGetSummary_Success(t *testing.T) {
	now := time.Now().UTC()
	svc := service.NewCreditsService(
		&mockCreditsStore{
			balance: &domain.CreditBalance{UserID: "user-1", Balance: 250, UpdatedAt: now},
			purchases: []domain.CreditPurchase{
				{ID: "p-1", UserID: "user-1", Credits: 100, Status: "completed", CreatedAt: now},
			},
		},
		&mockPackageStore{},
		cache.New[[]domain.CreditPackage](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)

	summary, err := svc.GetSummary(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.Balance.Balance != 250 {
		t.Errorf("expected balance 250, got %d", summary.Balance.Balance)
	}
	if len(summary.RecentPurchases) != 1 {
		t.Errorf("expected 1 purchase, got %d", len(summary.RecentPurchases))
	}
}

func TestGetSummary_PurchasesError(t *testing.T) {
	svc := service.NewCreditsService(
		&mockCreditsStore{
			balance:      &domain.CreditBalance{UserID: "user-1", Balance: 250},
			purchasesErr: &domain.ErrUpstream{Service: "supabase/purchases", Err: errors.New("boom")},
		},
		&mockPackageStore{},
		cache.New[[]domain.CreditPackage](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)

	_, err := svc.GetSummary(context.Background(), "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
