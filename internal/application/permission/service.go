package permission

import (
	"context"
	"fmt"
	"sync"

	"github.com/claimdesk/claimdesk/internal/domain/permission"
	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

// Cache stores resolved permission sets per role and user.
type Cache interface {
	Get(ctx context.Context, role permission.RoleKey, user permission.UserKey) (permission.PermissionSet, bool, error)
	Set(ctx context.Context, role permission.RoleKey, user permission.UserKey, set permission.PermissionSet) error
	InvalidateUser(ctx context.Context, user permission.UserKey) error
	InvalidateAll(ctx context.Context) error
}

// Service owns the in-memory resolver built from the policy store. Writes
// go to the store first; the resolver snapshot is swapped afterwards.
type Service struct {
	store  permission.PolicyStore
	cache  Cache
	logger logger.Interface

	mu       sync.RWMutex
	resolver *permission.Resolver
}

func NewService(store permission.PolicyStore, cache Cache, logger logger.Interface) *Service {
	if cache == nil {
		cache = NoopCache()
	}
	return &Service{
		store:    store,
		cache:    cache,
		logger:   logger,
		resolver: permission.NewResolver(nil),
	}
}

// Load replaces the resolver with a fresh snapshot of the store.
func (s *Service) Load(ctx context.Context) error {
	table, err := s.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load permission table: %w", err)
	}

	s.swap(table)
	s.invalidateAll(ctx)

	s.logger.Infow("permission table loaded", "roles", len(table.Roles()), "overrides", len(table.Users()))
	return nil
}

func (s *Service) Resolver() *permission.Resolver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver
}

func (s *Service) Table() *permission.Table {
	return s.Resolver().Table()
}

func (s *Service) swap(table *permission.Table) {
	s.mu.Lock()
	s.resolver = permission.NewResolver(table)
	s.mu.Unlock()
}

func (s *Service) update(fn func(t *permission.Table) *permission.Table) {
	s.mu.Lock()
	s.resolver = permission.NewResolver(fn(s.resolver.Table()))
	s.mu.Unlock()
}

// HasCapability answers against the current snapshot without touching the
// cache.
func (s *Service) HasCapability(role permission.RoleKey, c vo.Capability, user permission.UserKey) bool {
	return s.Resolver().HasCapability(role, c, user)
}

// Resolve returns the full permission set for a role and user. Cache
// failures fall back to the in-memory resolver.
func (s *Service) Resolve(ctx context.Context, role permission.RoleKey, user permission.UserKey) permission.PermissionSet {
	if set, ok, err := s.cache.Get(ctx, role, user); err != nil {
		s.logger.Warnw("permission cache read failed", "role", role, "user", user, "error", err)
	} else if ok {
		return set
	}

	set := s.Resolver().Resolve(role, user)
	if err := s.cache.Set(ctx, role, user, set); err != nil {
		s.logger.Warnw("permission cache write failed", "role", role, "user", user, "error", err)
	}
	return set
}

func (s *Service) GetOverride(user permission.UserKey) (permission.Override, bool) {
	return s.Table().Override(user)
}

// SetOverride replaces the user's override entries. An empty map removes
// the override.
func (s *Service) SetOverride(ctx context.Context, email string, entries map[string]bool) (permission.Override, error) {
	user := permission.NewUserKey(email)
	if user.IsZero() {
		return permission.Override{}, errors.NewValidationError("user email is required")
	}

	o, err := permission.ParseOverride(entries)
	if err != nil {
		return permission.Override{}, errors.NewValidationError("invalid override", err.Error())
	}

	if o.IsEmpty() {
		if err := s.DeleteOverride(ctx, email); err != nil {
			return permission.Override{}, err
		}
		return o, nil
	}

	s.logger.Infow("setting permission override", "user", user, "entries", o.ToMap())

	if err := s.store.SetOverride(ctx, user, o); err != nil {
		s.logger.Errorw("failed to store permission override", "user", user, "error", err)
		return permission.Override{}, errors.NewInternalError("failed to store permission override")
	}

	s.update(func(t *permission.Table) *permission.Table { return t.WithOverride(user, o) })
	s.invalidateUser(ctx, user)
	return o, nil
}

func (s *Service) DeleteOverride(ctx context.Context, email string) error {
	user := permission.NewUserKey(email)
	if user.IsZero() {
		return errors.NewValidationError("user email is required")
	}

	s.logger.Infow("deleting permission override", "user", user)

	if err := s.store.DeleteOverride(ctx, user); err != nil {
		s.logger.Errorw("failed to delete permission override", "user", user, "error", err)
		return errors.NewInternalError("failed to delete permission override")
	}

	s.update(func(t *permission.Table) *permission.Table { return t.WithoutOverride(user) })
	s.invalidateUser(ctx, user)
	return nil
}

// Seed writes the role grants of table to the store, adds the overrides
// the table declares, and reloads. Overrides for other users are kept.
func (s *Service) Seed(ctx context.Context, table *permission.Table) error {
	if err := s.store.SeedRoles(ctx, table); err != nil {
		return fmt.Errorf("failed to seed role grants: %w", err)
	}
	for _, user := range table.Users() {
		o, _ := table.Override(user)
		if err := s.store.SetOverride(ctx, user, o); err != nil {
			return fmt.Errorf("failed to seed override for %s: %w", user, err)
		}
	}
	return s.Load(ctx)
}

func (s *Service) invalidateUser(ctx context.Context, user permission.UserKey) {
	if err := s.cache.InvalidateUser(ctx, user); err != nil {
		s.logger.Warnw("permission cache invalidation failed", "user", user, "error", err)
	}
}

func (s *Service) invalidateAll(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warnw("permission cache flush failed", "error", err)
	}
}
