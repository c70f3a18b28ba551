package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimdesk/claimdesk/internal/domain/permission"
	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
	apperrors "github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

type mockPolicyStore struct {
	table            *permission.Table
	SnapshotErr      error
	SetOverrideErr   error
	seeded           *permission.Table
	setOverrideCalls int
	deleteCalls      int
}

func (m *mockPolicyStore) Snapshot(ctx context.Context) (*permission.Table, error) {
	if m.SnapshotErr != nil {
		return nil, m.SnapshotErr
	}
	return m.table, nil
}

func (m *mockPolicyStore) SeedRoles(ctx context.Context, t *permission.Table) error {
	m.seeded = t
	m.table = t
	return nil
}

func (m *mockPolicyStore) SetOverride(ctx context.Context, user permission.UserKey, o permission.Override) error {
	m.setOverrideCalls++
	return m.SetOverrideErr
}

func (m *mockPolicyStore) DeleteOverride(ctx context.Context, user permission.UserKey) error {
	m.deleteCalls++
	return nil
}

type mapCache struct {
	sets        map[string]permission.PermissionSet
	gets        int
	invalidated []permission.UserKey
	flushed     int
}

func newMapCache() *mapCache {
	return &mapCache{sets: map[string]permission.PermissionSet{}}
}

func (m *mapCache) key(role permission.RoleKey, user permission.UserKey) string {
	return role.String() + "|" + user.String()
}

func (m *mapCache) Get(ctx context.Context, role permission.RoleKey, user permission.UserKey) (permission.PermissionSet, bool, error) {
	m.gets++
	set, ok := m.sets[m.key(role, user)]
	return set, ok, nil
}

func (m *mapCache) Set(ctx context.Context, role permission.RoleKey, user permission.UserKey, set permission.PermissionSet) error {
	m.sets[m.key(role, user)] = set
	return nil
}

func (m *mapCache) InvalidateUser(ctx context.Context, user permission.UserKey) error {
	m.invalidated = append(m.invalidated, user)
	return nil
}

func (m *mapCache) InvalidateAll(ctx context.Context) error {
	m.flushed++
	m.sets = map[string]permission.PermissionSet{}
	return nil
}

func newLoadedService(t *testing.T, cache Cache) (*Service, *mockPolicyStore) {
	t.Helper()
	store := &mockPolicyStore{table: permission.DefaultTable()}
	svc := NewService(store, cache, logger.NewNopLogger())
	require.NoError(t, svc.Load(context.Background()))
	return svc, store
}

func TestService_DefaultDenyBeforeLoad(t *testing.T) {
	svc := NewService(&mockPolicyStore{}, nil, logger.NewNopLogger())

	assert.False(t, svc.HasCapability(permission.RoleAdmin, vo.CapabilityApproveClaim, ""))
	assert.Empty(t, svc.Resolve(context.Background(), permission.RoleAdmin, "").Granted())
}

func TestService_Load_Error(t *testing.T) {
	svc := NewService(&mockPolicyStore{SnapshotErr: errors.New("db down")}, nil, logger.NewNopLogger())

	err := svc.Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestService_Resolve_UsesCache(t *testing.T) {
	cache := newMapCache()
	svc, _ := newLoadedService(t, cache)
	ctx := context.Background()

	first := svc.Resolve(ctx, permission.RoleSamsungPartners, "p@example.com")
	second := svc.Resolve(ctx, permission.RoleSamsungPartners, "p@example.com")

	assert.True(t, first.Has(vo.CapabilityApproveClaim))
	assert.False(t, first.Has(vo.CapabilityExecutePayment))
	assert.True(t, first.Equals(second))
	assert.Len(t, cache.sets, 1)
	assert.Equal(t, 1, cache.flushed)
}

func TestService_SetOverride(t *testing.T) {
	cache := newMapCache()
	svc, store := newLoadedService(t, cache)
	ctx := context.Background()
	user := permission.NewUserKey("Auditor@Example.com")

	o, err := svc.SetOverride(ctx, "Auditor@Example.com", map[string]bool{
		"canExecutePayment": true,
		"canViewClaims":     false,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, store.setOverrideCalls)
	assert.Equal(t, map[string]bool{"canExecutePayment": true, "canViewClaims": false}, o.ToMap())
	assert.True(t, svc.HasCapability(permission.RoleSamsungPartners, vo.CapabilityExecutePayment, user))
	assert.False(t, svc.HasCapability(permission.RoleSamsungPartners, vo.CapabilityViewClaims, user))
	assert.Equal(t, []permission.UserKey{user}, cache.invalidated)

	got, ok := svc.GetOverride(user)
	require.True(t, ok)
	assert.Equal(t, o.ToMap(), got.ToMap())
}

func TestService_SetOverride_Errors(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		entries  map[string]bool
		storeErr error
		wantType apperrors.ErrorType
	}{
		{
			name:     "unknown capability",
			email:    "a@example.com",
			entries:  map[string]bool{"canFly": true},
			wantType: apperrors.ErrorTypeValidation,
		},
		{
			name:     "missing user",
			email:    " ",
			entries:  map[string]bool{"canViewClaims": true},
			wantType: apperrors.ErrorTypeValidation,
		},
		{
			name:     "store failure",
			email:    "a@example.com",
			entries:  map[string]bool{"canViewClaims": true},
			storeErr: errors.New("write failed"),
			wantType: apperrors.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newLoadedService(t, nil)
			store.SetOverrideErr = tt.storeErr

			_, err := svc.SetOverride(context.Background(), tt.email, tt.entries)

			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.GetAppError(err).Type)
			_, ok := svc.GetOverride(permission.NewUserKey(tt.email))
			assert.False(t, ok)
		})
	}
}

func TestService_SetOverride_EmptyDeletes(t *testing.T) {
	svc, store := newLoadedService(t, nil)
	ctx := context.Background()

	_, err := svc.SetOverride(ctx, "x@example.com", map[string]bool{"canApproveClaim": true})
	require.NoError(t, err)

	_, err = svc.SetOverride(ctx, "x@example.com", map[string]bool{})
	require.NoError(t, err)

	assert.Equal(t, 1, store.deleteCalls)
	_, ok := svc.GetOverride("x@example.com")
	assert.False(t, ok)
	assert.False(t, svc.HasCapability(permission.RoleServiceCenter, vo.CapabilityApproveClaim, "x@example.com"))
}

func TestService_Seed(t *testing.T) {
	svc, store := newLoadedService(t, nil)

	table, err := permission.NewTable(map[permission.RoleKey][]vo.Capability{
		"auditor": {vo.CapabilityViewClaims, vo.CapabilityExportReports},
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Seed(context.Background(), table))

	assert.Same(t, table, store.seeded)
	assert.True(t, svc.HasCapability("auditor", vo.CapabilityExportReports, ""))
	assert.False(t, svc.HasCapability(permission.RoleAdmin, vo.CapabilityViewClaims, ""))
}

func TestService_Seed_WritesTableOverrides(t *testing.T) {
	svc, store := newLoadedService(t, nil)

	o, err := permission.NewOverride(map[vo.Capability]bool{vo.CapabilityExecutePayment: true})
	require.NoError(t, err)
	table, err := permission.NewTable(map[permission.RoleKey][]vo.Capability{
		permission.RoleAdmin: {vo.CapabilityViewClaims},
	}, map[permission.UserKey]permission.Override{"ops@example.com": o})
	require.NoError(t, err)

	require.NoError(t, svc.Seed(context.Background(), table))

	assert.Equal(t, 1, store.setOverrideCalls)
	assert.True(t, svc.HasCapability(permission.RoleAdmin, vo.CapabilityExecutePayment, "ops@example.com"))
}
