package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/claimdesk/claimdesk/internal/domain/claim"
	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	"github.com/claimdesk/claimdesk/internal/domain/permission"
	sharedvo "github.com/claimdesk/claimdesk/internal/domain/shared/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/services/markdown"
)

type mockClaimRepository struct {
	SaveFunc        func(ctx context.Context, c *claim.Claim) error
	UpdateFunc      func(ctx context.Context, c *claim.Claim) error
	GetByIDFunc     func(ctx context.Context, id string) (*claim.Claim, error)
	GetByNumberFunc func(ctx context.Context, number string) (*claim.Claim, error)
	GetByIDsFunc    func(ctx context.Context, ids []string) ([]*claim.Claim, error)
	ListFunc        func(ctx context.Context, filter claim.ListFilter) ([]*claim.Claim, int64, error)
}

func (m *mockClaimRepository) Save(ctx context.Context, c *claim.Claim) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockClaimRepository) Update(ctx context.Context, c *claim.Claim) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockClaimRepository) GetByID(ctx context.Context, id string) (*claim.Claim, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, claim.ErrClaimNotFound
}

func (m *mockClaimRepository) GetByNumber(ctx context.Context, number string) (*claim.Claim, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, claim.ErrClaimNotFound
}

func (m *mockClaimRepository) GetByIDs(ctx context.Context, ids []string) ([]*claim.Claim, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockClaimRepository) List(ctx context.Context, filter claim.ListFilter) ([]*claim.Claim, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockAuditRepository struct {
	mu         sync.Mutex
	entries    []claim.AuditEntry
	AppendFunc func(ctx context.Context, entry claim.AuditEntry) error
	ListFunc   func(ctx context.Context, claimID string) ([]claim.AuditEntry, error)
}

func (m *mockAuditRepository) Append(ctx context.Context, entry claim.AuditEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepository) ListByClaim(ctx context.Context, claimID string) ([]claim.AuditEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, claimID)
	}
	return nil, nil
}

func (m *mockAuditRepository) appended() []claim.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]claim.AuditEntry(nil), m.entries...)
}

type mockTxRunner struct {
	calls int
	mu    sync.Mutex
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return fn(ctx)
}

type mockNotifier struct {
	ch chan claim.AuditEntry
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{ch: make(chan claim.AuditEntry, 16)}
}

func (m *mockNotifier) NotifyTransition(ctx context.Context, c *claim.Claim, entry claim.AuditEntry) error {
	m.ch <- entry
	return nil
}

// memoryClaims backs mockClaimRepository with a map and enforces the
// version check of Update.
type memoryClaims struct {
	mu     sync.Mutex
	claims map[string]*claim.Claim
}

func newMemoryClaims(claims ...*claim.Claim) *memoryClaims {
	m := &memoryClaims{claims: make(map[string]*claim.Claim)}
	for _, c := range claims {
		m.claims[c.ID()] = c
	}
	return m
}

func (m *memoryClaims) repo() *mockClaimRepository {
	return &mockClaimRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*claim.Claim, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			c, ok := m.claims[id]
			if !ok {
				return nil, claim.ErrClaimNotFound
			}
			return c, nil
		},
		UpdateFunc: func(ctx context.Context, c *claim.Claim) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			stored, ok := m.claims[c.ID()]
			if !ok {
				return claim.ErrClaimNotFound
			}
			if stored.Version() != c.Version()-1 {
				return claim.ErrStaleClaim
			}
			m.claims[c.ID()] = c
			return nil
		},
	}
}

func (m *memoryClaims) get(id string) *claim.Claim {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.claims[id]
}

func newTestClaim(t *testing.T, number string) *claim.Claim {
	t.Helper()
	c, err := claim.NewClaim(claim.NewClaimParams{
		Number:     number,
		IMEI:       "356938035643809",
		ProductID:  "galaxy-a55",
		Customer:   claim.Customer{Name: "Chinedu Eze", Email: "chinedu@example.com"},
		RepairCost: sharedvo.NewMoney(decimal.NewFromInt(10000), "NGN"),
	})
	require.NoError(t, err)
	return c
}

func advance(t *testing.T, c *claim.Claim, transitions ...vo.Transition) *claim.Claim {
	t.Helper()
	for _, tr := range transitions {
		next, _, err := c.Apply(tr, claim.TransitionInput{
			ActorID:              "setup@example.com",
			Reason:               "setup",
			TransactionReference: "TX-SETUP-1",
		})
		require.NoError(t, err)
		c = next
	}
	return c
}

func actor(role permission.RoleKey) Actor {
	return Actor{UserID: "ops@example.com", Role: role}
}

type transitionFixture struct {
	store    *memoryClaims
	audit    *mockAuditRepository
	tx       *mockTxRunner
	notifier *mockNotifier
	uc       *TransitionClaimUseCase
}

func newTransitionFixture(claims ...*claim.Claim) *transitionFixture {
	f := &transitionFixture{
		store:    newMemoryClaims(claims...),
		audit:    &mockAuditRepository{},
		tx:       &mockTxRunner{},
		notifier: newMockNotifier(),
	}
	authorizer := claim.NewAuthorizer(permission.NewResolver(permission.DefaultTable()))
	f.uc = NewTransitionClaimUseCase(
		f.store.repo(),
		f.audit,
		f.tx,
		authorizer,
		f.notifier,
		markdown.NewRenderer(),
		logger.NewNopLogger(),
	)
	return f
}
