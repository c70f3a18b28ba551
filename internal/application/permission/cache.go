package permission

import (
	"context"

	"github.com/claimdesk/claimdesk/internal/domain/permission"
)

type noopCache struct{}

// NoopCache never hits. It is used when redis is disabled.
func NoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, permission.RoleKey, permission.UserKey) (permission.PermissionSet, bool, error) {
	return permission.PermissionSet{}, false, nil
}

func (noopCache) Set(context.Context, permission.RoleKey, permission.UserKey, permission.PermissionSet) error {
	return nil
}

func (noopCache) InvalidateUser(context.Context, permission.UserKey) error {
	return nil
}

func (noopCache) InvalidateAll(context.Context) error {
	return nil
}
