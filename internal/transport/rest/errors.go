package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// Error codes carried in the response envelope.
const (
	codeValidation      = "validation"
	codeInvalidState    = "invalid_state"
	codeUnauthenticated = "unauthenticated"
	codeForbidden       = "forbidden"
	codeNotFound        = "not_found"
	codeConflict        = "conflict"
	codeTransient       = "transient"
	codeInternal        = "internal"
)

// presentError maps err onto a status and envelope. Unclassified errors are
// logged and hidden behind a generic message.
func presentError(ctx context.Context, log *slog.Logger, err error) (int, errorBody) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		body := errorBody{Code: codeValidation, Message: "validation failed"}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			body.Fields = make([]fieldError, 0, len(ve.Errors))
			for _, fe := range ve.Errors {
				body.Fields = append(body.Fields, fieldError{Field: fe.Field, Message: fe.Message})
			}
		}
		return http.StatusBadRequest, body

	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest, errorBody{Code: codeInvalidState, Message: err.Error()}

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorBody{Code: codeUnauthenticated, Message: "authentication required"}

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorBody{Code: codeForbidden, Message: err.Error()}

	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorBody{Code: codeNotFound, Message: err.Error()}

	case domain.IsConflict(err):
		return http.StatusConflict, errorBody{Code: codeConflict, Message: err.Error()}

	case errors.Is(err, domain.ErrTransient):
		log.WarnContext(ctx, "transient failure",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		)
		return http.StatusServiceUnavailable, errorBody{Code: codeTransient, Message: "temporarily unavailable, retry later"}

	case errors.Is(err, context.Canceled):
		// Client went away; the status is never seen.
		return 499, errorBody{Code: codeInternal, Message: "request canceled"}

	default:
		log.ErrorContext(ctx, "unexpected error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		)
		return http.StatusInternalServerError, errorBody{Code: codeInternal, Message: "internal error"}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, body := presentError(r.Context(), log, err)
	writeJSON(w, status, errorEnvelope{Error: body})
}
