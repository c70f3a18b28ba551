package claim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
)

// =====================================================================
// Valid transitions
// =====================================================================

func TestApply_Approve(t *testing.T) {
	c := newTestClaim(t)
	in := testInput("partner@example.com")
	in.Notes = "  covered by plan  "

	next, audit, err := c.Apply(vo.TransitionApprove, in)

	require.NoError(t, err)
	assert.Equal(t, vo.StatusApproved, next.Status())
	require.NotNil(t, next.Approved())
	assert.Equal(t, testNow, next.Approved().At)
	assert.Equal(t, "partner@example.com", next.Approved().By)
	assert.Nil(t, next.Rejected())
	assert.Equal(t, "covered by plan", next.Notes(vo.TransitionApprove))
	assert.Equal(t, c.Version()+1, next.Version())
	assert.Equal(t, testNow, next.UpdatedAt())

	assert.Equal(t, c.ID(), audit.ClaimID)
	assert.Equal(t, vo.TransitionApprove, audit.Transition)
	assert.Equal(t, vo.StagePending, audit.FromStatus)
	assert.Equal(t, vo.StageApproved, audit.ToStatus)
	assert.Equal(t, "partner@example.com", audit.ActorID)
	assert.Equal(t, "admin", audit.Role)
	assert.NotEmpty(t, audit.ID)
}

func TestApply_Reject(t *testing.T) {
	c := newTestClaim(t)

	next, audit, err := c.Apply(vo.TransitionReject, testInput("partner@example.com"))

	require.NoError(t, err)
	assert.Equal(t, vo.StatusRejected, next.Status())
	assert.Equal(t, "duplicate claim", next.RejectionReason())
	require.NotNil(t, next.Rejected())
	assert.Equal(t, "partner@example.com", next.Rejected().By)
	assert.Nil(t, next.Approved())
	assert.Equal(t, "duplicate claim", audit.Detail)
	assert.True(t, next.Stage().IsTerminal())
}

func TestApply_Complete(t *testing.T) {
	c := claimAtStage(t, vo.StageApproved)

	next, _, err := c.Apply(vo.TransitionComplete, testInput("tech@example.com"))

	require.NoError(t, err)
	assert.Equal(t, vo.StatusCompleted, next.Status())
	assert.Equal(t, vo.PaymentStatusUnpaid, next.PaymentStatus())
	assert.False(t, next.IsAuthorizedForPayment())
	require.NotNil(t, next.Completed())
	assert.Equal(t, "tech@example.com", next.Completed().By)
}

func TestApply_AuthorizePayment(t *testing.T) {
	c := claimAtStage(t, vo.StageCompleted)

	next, audit, err := c.Apply(vo.TransitionAuthorizePayment, testInput("partner@example.com"))

	require.NoError(t, err)
	assert.True(t, next.IsAuthorizedForPayment())
	assert.Equal(t, vo.StatusCompleted, next.Status())
	assert.Equal(t, vo.StageAuthorized, next.Stage())
	require.NotNil(t, next.Authorized())
	assert.Equal(t, vo.StageCompleted, audit.FromStatus)
	assert.Equal(t, vo.StageAuthorized, audit.ToStatus)
}

func TestApply_ExecutePayment(t *testing.T) {
	c := claimAtStage(t, vo.StageAuthorized)

	next, audit, err := c.Apply(vo.TransitionExecutePayment, testInput("finance@example.com"))

	require.NoError(t, err)
	assert.Equal(t, vo.PaymentStatusPaid, next.PaymentStatus())
	assert.Equal(t, "TXN-20240301-01", next.TransactionReference())
	assert.True(t, next.PaidAmount().Equals(next.RepairCost()))
	require.NotNil(t, next.Paid())
	assert.Equal(t, "finance@example.com", next.Paid().By)
	assert.Equal(t, vo.StagePaid, next.Stage())
	assert.Equal(t, "TXN-20240301-01", audit.Detail)
	assert.NoError(t, next.Validate())
}

func TestApply_DoesNotMutateReceiver(t *testing.T) {
	c := newTestClaim(t)
	in := testInput("partner@example.com")
	in.Notes = "ok"

	_, _, err := c.Apply(vo.TransitionApprove, in)

	require.NoError(t, err)
	assert.Equal(t, vo.StatusPending, c.Status())
	assert.Nil(t, c.Approved())
	assert.Empty(t, c.Notes(vo.TransitionApprove))
	assert.Equal(t, 1, c.Version())
}

// =====================================================================
// Invalid transitions
// =====================================================================

func TestApply_PreconditionMatrix(t *testing.T) {
	allowedFrom := map[vo.Transition]vo.Stage{
		vo.TransitionApprove:          vo.StagePending,
		vo.TransitionReject:           vo.StagePending,
		vo.TransitionComplete:         vo.StageApproved,
		vo.TransitionAuthorizePayment: vo.StageCompleted,
		vo.TransitionExecutePayment:   vo.StageAuthorized,
	}

	for _, stage := range allStages {
		for _, tr := range vo.AllTransitions() {
			t.Run(stage.String()+"/"+tr.String(), func(t *testing.T) {
				c := claimAtStage(t, stage)
				beforeStage, beforeVersion := c.Stage(), c.Version()

				next, _, err := c.Apply(tr, testInput("ops@example.com"))

				if allowedFrom[tr] == stage {
					require.NoError(t, err)
					assert.NotNil(t, next)
					assert.True(t, c.CanApply(tr))
					return
				}

				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTransition))
				assert.Nil(t, next)
				assert.False(t, c.CanApply(tr))
				assert.Equal(t, beforeStage, c.Stage())
				assert.Equal(t, beforeVersion, c.Version())

				var ite *InvalidTransitionError
				require.True(t, errors.As(err, &ite))
				assert.Equal(t, tr, ite.Transition)
				assert.Equal(t, c.Status(), ite.Status)
				assert.Contains(t, err.Error(), c.Status().String())
			})
		}
	}
}

func TestApply_ApproveThenRejectFails(t *testing.T) {
	approved := mustApply(t, newTestClaim(t), vo.TransitionApprove)

	_, _, err := approved.Apply(vo.TransitionReject, testInput("partner@example.com"))

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, KindInvalidTransition, KindOf(err))
	assert.Nil(t, approved.Rejected())
}

func TestApply_RejectedIsTerminal(t *testing.T) {
	rejected := claimAtStage(t, vo.StageRejected)

	_, _, err := rejected.Apply(vo.TransitionApprove, testInput("admin@example.com"))

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApply_ApprovedAndRejectedNeverBothSet(t *testing.T) {
	for _, stage := range allStages {
		c := claimAtStage(t, stage)
		for _, tr := range vo.AllTransitions() {
			next, _, err := c.Apply(tr, testInput("ops@example.com"))
			if err != nil {
				continue
			}
			assert.False(t, next.Approved() != nil && next.Rejected() != nil,
				"%s from %s set both stamps", tr, stage)
			assert.NoError(t, next.Validate())
		}
	}
}

func TestApply_AuthorizeIsIdempotent(t *testing.T) {
	authorized := claimAtStage(t, vo.StageAuthorized)
	firstStamp := authorized.Authorized()

	again, _, err := authorized.Apply(vo.TransitionAuthorizePayment, testInput("other@example.com"))

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, again)
	assert.True(t, authorized.IsAuthorizedForPayment())
	assert.Equal(t, firstStamp, authorized.Authorized())
}

func TestApply_ExecutePaymentRequiresAuthorization(t *testing.T) {
	completed := claimAtStage(t, vo.StageCompleted)

	_, _, err := completed.Apply(vo.TransitionExecutePayment, testInput("finance@example.com"))

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, vo.PaymentStatusUnpaid, completed.PaymentStatus())
}

// =====================================================================
// Input validation
// =====================================================================

func TestApply_InputValidation(t *testing.T) {
	tests := []struct {
		name  string
		stage vo.Stage
		tr    vo.Transition
		edit  func(in *TransitionInput)
		field string
	}{
		{
			name:  "missing actor",
			stage: vo.StagePending,
			tr:    vo.TransitionApprove,
			edit:  func(in *TransitionInput) { in.ActorID = "  " },
			field: "actorId",
		},
		{
			name:  "empty reason",
			stage: vo.StagePending,
			tr:    vo.TransitionReject,
			edit:  func(in *TransitionInput) { in.Reason = "" },
			field: "reason",
		},
		{
			name:  "blank reason",
			stage: vo.StagePending,
			tr:    vo.TransitionReject,
			edit:  func(in *TransitionInput) { in.Reason = "   " },
			field: "reason",
		},
		{
			name:  "short transaction reference",
			stage: vo.StageAuthorized,
			tr:    vo.TransitionExecutePayment,
			edit:  func(in *TransitionInput) { in.TransactionReference = "TX12" },
			field: "transactionReference",
		},
		{
			name:  "padded short transaction reference",
			stage: vo.StageAuthorized,
			tr:    vo.TransitionExecutePayment,
			edit:  func(in *TransitionInput) { in.TransactionReference = "  TX1  " },
			field: "transactionReference",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := claimAtStage(t, tt.stage)
			in := testInput("ops@example.com")
			tt.edit(&in)

			next, _, err := c.Apply(tt.tr, in)

			require.Error(t, err)
			assert.Nil(t, next)
			assert.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.stage, c.Stage())
		})
	}
}

func TestApply_ExecutePaymentAcceptsFiveCharacterReference(t *testing.T) {
	in := testInput("finance@example.com")
	in.TransactionReference = "ABCDE"

	next, _, err := claimAtStage(t, vo.StageAuthorized).Apply(vo.TransitionExecutePayment, in)

	require.NoError(t, err)
	assert.Equal(t, "ABCDE", next.TransactionReference())
}

func TestApply_DefaultsTimestampToNow(t *testing.T) {
	next, audit, err := newTestClaim(t).Apply(vo.TransitionApprove, TransitionInput{ActorID: "ops@example.com"})

	require.NoError(t, err)
	assert.False(t, next.Approved().At.IsZero())
	assert.Equal(t, next.Approved().At, audit.At)
}

// =====================================================================
// Transition table
// =====================================================================

func TestMustTransitionSpec_PanicsOnUnknown(t *testing.T) {
	assert.PanicsWithError(t, "unknown transition: Reopen", func() {
		MustTransitionSpec("Reopen")
	})

	_, ok := TransitionSpecFor("Reopen")
	assert.False(t, ok)
}

func TestTransitionTable_Complete(t *testing.T) {
	for _, tr := range vo.AllTransitions() {
		spec, ok := TransitionSpecFor(tr)
		require.True(t, ok, tr)
		assert.Equal(t, tr, spec.Transition)
		assert.True(t, spec.Capability.IsValid())
		assert.Contains(t, spec.Required, InputActorID)
	}
}
