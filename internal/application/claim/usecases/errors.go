package usecases

import (
	stderrors "errors"

	"github.com/claimdesk/claimdesk/internal/domain/claim"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
)

// toAppError maps claim domain errors onto the HTTP-facing error types.
// Errors that already are AppErrors pass through.
func toAppError(err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}

	switch claim.KindOf(err) {
	case claim.KindInvalidTransition:
		return errors.NewInvalidStateError(err.Error())
	case claim.KindNotPermitted:
		return errors.NewForbiddenError(err.Error())
	case claim.KindValidation:
		var ve *claim.ValidationError
		if stderrors.As(err, &ve) {
			return errors.NewValidationError(ve.Error(), ve.Field)
		}
		return errors.NewValidationError(err.Error())
	case claim.KindNotFound:
		return errors.NewNotFoundError("claim not found")
	case claim.KindStale:
		return errors.NewConflictError("claim was modified concurrently, reload and retry")
	default:
		return errors.NewInternalError("unexpected error")
	}
}
