package claim

import (
	"golang.org/x/sync/errgroup"

	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	"github.com/claimdesk/claimdesk/internal/domain/permission"
)

// DefaultBulkConcurrency bounds per-item work in a bulk run.
const DefaultBulkConcurrency = 8

// ItemResult is the outcome for one claim in a bulk run.
type ItemResult struct {
	ClaimID string
	OK      bool
	Kind    ErrorKind
	Err     error
	Claim   *Claim
	Audit   *AuditEntry
}

// BulkResult aggregates item results. Items keep the input order no matter
// which item finished first.
type BulkResult struct {
	Successful int
	Failed     int
	Items      []ItemResult
}

// FailedIDs lists the claim IDs whose item failed, in input order.
func (r BulkResult) FailedIDs() []string {
	var ids []string
	for _, item := range r.Items {
		if !item.OK {
			ids = append(ids, item.ClaimID)
		}
	}
	return ids
}

// Succeeded returns the items that succeeded, in input order.
func (r BulkResult) Succeeded() []ItemResult {
	out := make([]ItemResult, 0, r.Successful)
	for _, item := range r.Items {
		if item.OK {
			out = append(out, item)
		}
	}
	return out
}

// RunBulk calls fn for every id with at most limit calls in flight. fn
// reports failures in its ItemResult; one failing item never stops the
// others.
func RunBulk(ids []string, limit int, fn func(id string) ItemResult) BulkResult {
	return runIndexed(len(ids), limit, func(i int) ItemResult {
		res := fn(ids[i])
		res.ClaimID = ids[i]
		return res
	})
}

func runIndexed(n, limit int, fn func(i int) ItemResult) BulkResult {
	if limit <= 0 {
		limit = DefaultBulkConcurrency
	}

	items := make([]ItemResult, n)
	var g errgroup.Group
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			res := fn(i)
			if !res.OK && res.Kind == "" {
				res.Kind = KindOf(res.Err)
			}
			items[i] = res
			return nil
		})
	}
	_ = g.Wait()

	result := BulkResult{Items: items}
	for _, item := range items {
		if item.OK {
			result.Successful++
		} else {
			result.Failed++
		}
	}
	return result
}

// BulkAuth authorizes every item of a bulk run as Role and User.
type BulkAuth struct {
	Authorizer *Authorizer
	Role       permission.RoleKey
	User       permission.UserKey
}

// ApplyBulk applies t with the same input to every claim. With an
// authorizer, each claim is authorized for role and user first. A claim
// listed more than once is applied once, at its first position; a nil entry
// fails as a validation item.
func ApplyBulk(claims []*Claim, t vo.Transition, in TransitionInput, auth *BulkAuth, limit int) BulkResult {
	MustTransitionSpec(t)

	seen := make(map[string]struct{}, len(claims))
	unique := make([]*Claim, 0, len(claims))
	for _, c := range claims {
		if c != nil {
			if _, dup := seen[c.ID()]; dup {
				continue
			}
			seen[c.ID()] = struct{}{}
		}
		unique = append(unique, c)
	}

	return runIndexed(len(unique), limit, func(i int) ItemResult {
		c := unique[i]
		if c == nil {
			return ItemResult{Err: newValidationError("claim", "claim is required")}
		}
		if auth != nil {
			if d := auth.Authorizer.Authorize(auth.Role, auth.User, c, t); !d.Allowed {
				return ItemResult{ClaimID: c.ID(), Err: d.Err(c, auth.Role)}
			}
		}
		next, audit, err := c.Apply(t, in)
		if err != nil {
			return ItemResult{ClaimID: c.ID(), Err: err}
		}
		return ItemResult{ClaimID: c.ID(), OK: true, Claim: next, Audit: &audit}
	})
}
