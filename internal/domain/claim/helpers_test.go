package claim

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	sharedvo "github.com/claimdesk/claimdesk/internal/domain/shared/valueobjects"
)

var testNow = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

func newTestClaim(t *testing.T) *Claim {
	t.Helper()
	c, err := NewClaim(NewClaimParams{
		Number:    "CLM-000001",
		IMEI:      "356938035643809",
		ProductID: "galaxy-s24",
		Customer: Customer{
			Name:  "Ada Obi",
			Phone: "+2348000000000",
			Email: "ada@example.com",
		},
		ServiceCenterID: "sc-lagos-1",
		RepairCost:      sharedvo.NewMoney(decimal.NewFromInt(45000), "NGN"),
	})
	require.NoError(t, err)
	return c
}

func testInput(actor string) TransitionInput {
	return TransitionInput{
		ActorID:              actor,
		Role:                 "admin",
		Reason:               "duplicate claim",
		TransactionReference: "TXN-20240301-01",
		At:                   testNow,
	}
}

func mustApply(t *testing.T, c *Claim, tr vo.Transition) *Claim {
	t.Helper()
	next, _, err := c.Apply(tr, testInput("ops@example.com"))
	require.NoError(t, err)
	return next
}

// claimAtStage drives a fresh claim to the given stage through the
// regular transitions.
func claimAtStage(t *testing.T, stage vo.Stage) *Claim {
	t.Helper()
	c := newTestClaim(t)
	switch stage {
	case vo.StagePending:
		return c
	case vo.StageRejected:
		return mustApply(t, c, vo.TransitionReject)
	}

	c = mustApply(t, c, vo.TransitionApprove)
	if stage == vo.StageApproved {
		return c
	}
	c = mustApply(t, c, vo.TransitionComplete)
	if stage == vo.StageCompleted {
		return c
	}
	c = mustApply(t, c, vo.TransitionAuthorizePayment)
	if stage == vo.StageAuthorized {
		return c
	}
	return mustApply(t, c, vo.TransitionExecutePayment)
}

var allStages = []vo.Stage{
	vo.StagePending,
	vo.StageApproved,
	vo.StageRejected,
	vo.StageCompleted,
	vo.StageAuthorized,
	vo.StagePaid,
}
