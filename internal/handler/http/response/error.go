package response

import (
	"errors"
	"net/http"

	"github.com/onsite-hq/onsite-backend-go/internal/domain/comptime"
	"github.com/onsite-hq/onsite-backend-go/internal/domain/leave"
	"github.com/onsite-hq/onsite-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Business-rule rejections carry their shortfall in the message
	var insufficientBalance *leave.InsufficientBalanceError
	if errors.As(err, &insufficientBalance) {
		BadRequest(w, insufficientBalance.Error(), nil)
		return
	}
	var insufficientCompTime *leave.InsufficientCompTimeError
	if errors.As(err, &insufficientCompTime) {
		BadRequest(w, insufficientCompTime.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrPolicyNotFound):
		NotFound(w, "Leave policy not found")
	case errors.Is(err, comptime.ErrEntryNotFound):
		NotFound(w, "Comp-time entry not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
