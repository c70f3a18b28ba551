package usecases

import (
	"github.com/claimdesk/claimdesk/internal/domain/permission"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
)

// Actor is the authenticated caller. UserID is the caller's email.
type Actor struct {
	UserID string
	Role   permission.RoleKey
}

func (a Actor) UserKey() permission.UserKey {
	return permission.NewUserKey(a.UserID)
}

func (a Actor) validate() error {
	if a.UserID == "" {
		return errors.NewUnauthorizedError("actor is required")
	}
	return nil
}
