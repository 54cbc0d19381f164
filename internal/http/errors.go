package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/Devy09/masetrack-sub001/internal/domain/mp"
	"github.com/Devy09/masetrack-sub001/internal/domain/poll"
	"github.com/Devy09/masetrack-sub001/internal/domain/user"
	"github.com/Devy09/masetrack-sub001/internal/domain/vote"
	"github.com/Devy09/masetrack-sub001/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

// mapError translates domain sentinels to HTTP exactly once. Anything not
// recognized is a generic 500 so storage details never reach clients.
func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "invalid email or password", err)
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.Validation("email", "already taken")
	case errors.Is(err, user.ErrInvalidRole):
		return apperr.Validation("role", "must be admin, personnel or user")
	case errors.Is(err, user.ErrMissingField):
		return apperr.BadRequest("validation_error", "email, password and display_name are required", err)
	case errors.Is(err, poll.ErrNotFound):
		return apperr.NotFound("poll_not_found", "poll not found", err)
	case errors.Is(err, poll.ErrNotOwner):
		return apperr.Forbidden("forbidden", "insufficient permissions", err)
	case errors.Is(err, poll.ErrEmptyQuestion):
		return apperr.Validation("question", "must not be empty")
	case errors.Is(err, poll.ErrTooFewOptions):
		return apperr.Validation("options", "at least 2 options required")
	case errors.Is(err, poll.ErrEmptyOption):
		return apperr.Validation("options", "option text must not be empty")
	case errors.Is(err, poll.ErrDuplicateOption):
		return apperr.Validation("options", "duplicate option text")
	case errors.Is(err, vote.ErrPollNotFound):
		return apperr.NotFound("poll_not_found", "poll not found", err)
	case errors.Is(err, vote.ErrPollClosed):
		return apperr.Conflict("poll_closed", "poll is closed", err)
	case errors.Is(err, vote.ErrOptionNotInPoll):
		return apperr.BadRequest("invalid_option", "option does not belong to poll", err)
	case errors.Is(err, mp.ErrMPNotFound):
		return apperr.NotFound("mp_not_found", "mp not found", err)
	case errors.Is(err, mp.ErrUserNotFound):
		return apperr.NotFound("user_not_found", "user not found", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
