package permission

import "context"

// PolicyStore persists role grants and user overrides.
type PolicyStore interface {
	// Snapshot loads the current grants and overrides as an immutable Table.
	Snapshot(ctx context.Context) (*Table, error)
	// SeedRoles replaces all role grants with those of t. Overrides are kept.
	SeedRoles(ctx context.Context, t *Table) error
	SetOverride(ctx context.Context, user UserKey, o Override) error
	DeleteOverride(ctx context.Context, user UserKey) error
}
