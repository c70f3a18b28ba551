package handlers

import (
	"context"

	"github.com/claimdesk/claimdesk/internal/domain/permission"
)

// permissionService is the subset of the permission application service
// used by PermissionHandler.
type permissionService interface {
	Resolve(ctx context.Context, role permission.RoleKey, user permission.UserKey) permission.PermissionSet
	Table() *permission.Table
	GetOverride(user permission.UserKey) (permission.Override, bool)
	SetOverride(ctx context.Context, email string, entries map[string]bool) (permission.Override, error)
	DeleteOverride(ctx context.Context, email string) error
	Load(ctx context.Context) error
}
