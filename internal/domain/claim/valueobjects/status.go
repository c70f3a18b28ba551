package valueobjects

import (
	"fmt"
	"strings"
)

// ClaimStatus is the stored lifecycle status of a claim. Payment
// authorization is tracked by a separate flag, not by this status.
type ClaimStatus string

const (
	StatusPending   ClaimStatus = "PENDING"
	StatusApproved  ClaimStatus = "APPROVED"
	StatusRejected  ClaimStatus = "REJECTED"
	StatusCompleted ClaimStatus = "COMPLETED"
)

var validClaimStatuses = map[ClaimStatus]bool{
	StatusPending:   true,
	StatusApproved:  true,
	StatusRejected:  true,
	StatusCompleted: true,
}

var claimStatusTransitions = map[ClaimStatus][]ClaimStatus{
	StatusPending: {
		StatusApproved,
		StatusRejected,
	},
	StatusApproved: {
		StatusCompleted,
	},
}

func (s ClaimStatus) String() string {
	return string(s)
}

func (s ClaimStatus) IsValid() bool {
	return validClaimStatuses[s]
}

func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	for _, allowed := range claimStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ClaimStatus) IsPending() bool {
	return s == StatusPending
}

func (s ClaimStatus) IsApproved() bool {
	return s == StatusApproved
}

func (s ClaimStatus) IsRejected() bool {
	return s == StatusRejected
}

func (s ClaimStatus) IsCompleted() bool {
	return s == StatusCompleted
}

// NewClaimStatus parses a status name, case-insensitively.
func NewClaimStatus(s string) (ClaimStatus, error) {
	cs := ClaimStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !cs.IsValid() {
		return "", fmt.Errorf("invalid claim status: %s", s)
	}
	return cs, nil
}
