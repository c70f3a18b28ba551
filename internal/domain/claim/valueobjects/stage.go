package valueobjects

// Stage is the single lifecycle position derived from a claim's status,
// authorization flag and payment status.
type Stage string

const (
	StagePending    Stage = "PENDING"
	StageApproved   Stage = "APPROVED"
	StageRejected   Stage = "REJECTED"
	StageCompleted  Stage = "COMPLETED"
	StageAuthorized Stage = "AUTHORIZED"
	StagePaid       Stage = "PAID"
)

// DeriveStage combines the stored fields into a Stage. It assumes the
// combination is consistent.
func DeriveStage(status ClaimStatus, authorized bool, payment PaymentStatus) Stage {
	switch {
	case status.IsCompleted() && payment.IsPaid():
		return StagePaid
	case status.IsCompleted() && authorized:
		return StageAuthorized
	default:
		return Stage(status)
	}
}

func (s Stage) String() string {
	return string(s)
}

// IsTerminal reports whether no transition can leave this stage.
func (s Stage) IsTerminal() bool {
	return s == StageRejected || s == StagePaid
}
