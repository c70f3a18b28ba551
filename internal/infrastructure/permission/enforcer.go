// Package permission stores role grants and user overrides as casbin
// policies persisted through the gorm adapter.
package permission

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/claimdesk/claimdesk/internal/domain/permission"
	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

const (
	claimsObject = "claims"
	effectAllow  = "allow"
	effectDeny   = "deny"
	rolePrefix   = "role:"
	userPrefix   = "user:"
)

// A request matches the role's policies and the user's policies. Any deny
// wins, so a user override of false revokes a role grant.
const modelText = `
[request_definition]
r = role, user, obj, act

[policy_definition]
p = sub, obj, act, eft

[policy_effect]
e = some(where (p.eft == allow)) && !some(where (p.eft == deny))

[matchers]
m = (p.sub == r.role || p.sub == r.user) && p.obj == r.obj && p.act == r.act
`

var _ permission.PolicyStore = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func roleSubject(r permission.RoleKey) string {
	return rolePrefix + r.String()
}

func userSubject(u permission.UserKey) string {
	return userPrefix + u.String()
}

// Enforce evaluates a capability directly against the stored policies.
func (e *Enforcer) Enforce(role permission.RoleKey, user permission.UserKey, c vo.Capability) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(roleSubject(role), userSubject(user), claimsObject, c.String())
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "user", user, "capability", c)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// Disagreements lists the capabilities where the stored policies decide
// differently from set, in canonical order.
func (e *Enforcer) Disagreements(role permission.RoleKey, user permission.UserKey, set permission.PermissionSet) ([]vo.Capability, error) {
	var out []vo.Capability
	for _, c := range vo.AllCapabilities() {
		allowed, err := e.Enforce(role, user, c)
		if err != nil {
			return nil, err
		}
		if allowed != set.Has(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Snapshot converts the loaded policies into a permission.Table. Rows with
// unknown capabilities are skipped with a warning.
func (e *Enforcer) Snapshot(ctx context.Context) (*permission.Table, error) {
	e.mu.RLock()
	rules, err := e.enforcer.GetPolicy()
	e.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read policies: %w", err)
	}

	roles := map[permission.RoleKey][]vo.Capability{}
	overrides := map[permission.UserKey]map[vo.Capability]bool{}

	for _, rule := range rules {
		if len(rule) < 4 || rule[1] != claimsObject {
			continue
		}
		c, err := vo.NewCapability(rule[2])
		if err != nil {
			e.logger.Warnw("skipping policy with unknown capability", "rule", rule)
			continue
		}

		switch sub := rule[0]; {
		case strings.HasPrefix(sub, rolePrefix):
			if rule[3] != effectAllow {
				continue
			}
			role := permission.NewRoleKey(strings.TrimPrefix(sub, rolePrefix))
			roles[role] = append(roles[role], c)
		case strings.HasPrefix(sub, userPrefix):
			user := permission.NewUserKey(strings.TrimPrefix(sub, userPrefix))
			if overrides[user] == nil {
				overrides[user] = map[vo.Capability]bool{}
			}
			overrides[user][c] = rule[3] == effectAllow
		}
	}

	built := make(map[permission.UserKey]permission.Override, len(overrides))
	for user, entries := range overrides {
		o, err := permission.NewOverride(entries)
		if err != nil {
			return nil, err
		}
		built[user] = o
	}

	return permission.NewTable(roles, built)
}

// SeedRoles replaces every role policy with the grants in t.
func (e *Enforcer) SeedRoles(ctx context.Context, t *permission.Table) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rules, err := e.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}

	var stale [][]string
	for _, rule := range rules {
		if len(rule) > 0 && strings.HasPrefix(rule[0], rolePrefix) {
			stale = append(stale, rule)
		}
	}
	if len(stale) > 0 {
		if _, err := e.enforcer.RemovePolicies(stale); err != nil {
			return fmt.Errorf("failed to remove role policies: %w", err)
		}
	}

	var fresh [][]string
	for _, role := range t.Roles() {
		for _, c := range t.RoleGrants(role) {
			fresh = append(fresh, []string{roleSubject(role), claimsObject, c.String(), effectAllow})
		}
	}
	if len(fresh) > 0 {
		if _, err := e.enforcer.AddPolicies(fresh); err != nil {
			e.logger.Errorw("failed to add role policies", "error", err)
			return fmt.Errorf("failed to add role policies: %w", err)
		}
	}

	e.logger.Infow("role policies seeded", "roles", len(t.Roles()), "policies", len(fresh))
	return nil
}

func (e *Enforcer) SetOverride(ctx context.Context, user permission.UserKey, o permission.Override) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.removeUser(user); err != nil {
		return err
	}

	var rules [][]string
	for c, v := range o.Entries() {
		eft := effectDeny
		if v {
			eft = effectAllow
		}
		rules = append(rules, []string{userSubject(user), claimsObject, c.String(), eft})
	}
	if len(rules) == 0 {
		return nil
	}
	if _, err := e.enforcer.AddPolicies(rules); err != nil {
		e.logger.Errorw("failed to add override policies", "error", err, "user", user)
		return fmt.Errorf("failed to add override policies: %w", err)
	}
	return nil
}

func (e *Enforcer) DeleteOverride(ctx context.Context, user permission.UserKey) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.removeUser(user)
}

func (e *Enforcer) removeUser(user permission.UserKey) error {
	if _, err := e.enforcer.RemoveFilteredPolicy(0, userSubject(user)); err != nil {
		return fmt.Errorf("failed to remove override policies: %w", err)
	}
	return nil
}

// LoadPolicy rereads the policies from the database.
func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
