package valueobjects

import (
	"fmt"
	"strings"
)

// Capability is a named boolean permission. The string values are the
// camelCase keys exposed to clients.
type Capability string

const (
	CapabilityViewClaims             Capability = "canViewClaims"
	CapabilityRegisterClaim          Capability = "canRegisterClaim"
	CapabilityApproveClaim           Capability = "canApproveClaim"
	CapabilityRejectClaim            Capability = "canRejectClaim"
	CapabilityCompleteRepair         Capability = "canCompleteRepair"
	CapabilityAuthorizePayment       Capability = "canAuthorizePayment"
	CapabilityExecutePayment         Capability = "canExecutePayment"
	CapabilityUpdateWalletBalance    Capability = "canUpdateWalletBalance"
	CapabilityManageServiceCenters   Capability = "canManageServiceCenters"
	CapabilityManagePermissions      Capability = "canManagePermissions"
	CapabilityViewRepaymentSchedules Capability = "canViewRepaymentSchedules"
	CapabilityExportReports          Capability = "canExportReports"
)

var allCapabilities = []Capability{
	CapabilityViewClaims,
	CapabilityRegisterClaim,
	CapabilityApproveClaim,
	CapabilityRejectClaim,
	CapabilityCompleteRepair,
	CapabilityAuthorizePayment,
	CapabilityExecutePayment,
	CapabilityUpdateWalletBalance,
	CapabilityManageServiceCenters,
	CapabilityManagePermissions,
	CapabilityViewRepaymentSchedules,
	CapabilityExportReports,
}

var validCapabilities = func() map[Capability]bool {
	m := make(map[Capability]bool, len(allCapabilities))
	for _, c := range allCapabilities {
		m[c] = true
	}
	return m
}()

// AllCapabilities returns every known capability in declaration order.
func AllCapabilities() []Capability {
	out := make([]Capability, len(allCapabilities))
	copy(out, allCapabilities)
	return out
}

func (c Capability) String() string {
	return string(c)
}

func (c Capability) IsValid() bool {
	return validCapabilities[c]
}

func NewCapability(s string) (Capability, error) {
	c := Capability(strings.TrimSpace(s))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid capability: %s", s)
	}
	return c, nil
}
