package response

import (
	"errors"
	"net/http"

	"github.com/wellbot/wellbot-backend/internal/domain"
	"github.com/wellbot/wellbot-backend/internal/logger"
)

type ErrorBody struct {
	Detail    string            `json:"detail"`
	Code      string            `json:"code"`
	Meta      map[string]string `json:"meta,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Duplicate registration is 400 so clients can tell it from a 422.
var kindStatus = map[domain.ErrKind]int{
	domain.KindValidation:     http.StatusUnprocessableEntity,
	domain.KindConflict:       http.StatusBadRequest,
	domain.KindAuth:           http.StatusUnauthorized,
	domain.KindNotFound:       http.StatusNotFound,
	domain.KindInfrastructure: http.StatusServiceUnavailable,
	domain.KindInternal:       http.StatusInternalServerError,
}

// WriteError is the single place domain errors become HTTP responses.
// Anything that is not a *domain.Error is reported as a bare 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := describe(err)
	body.RequestID = RequestIDFromContext(r)

	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error().
			Err(err).
			Str("code", body.Code).
			Int("status", status).
			Msg("request failed")
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	WriteJSON(w, status, body)
}

func describe(err error) (int, ErrorBody) {
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, ErrorBody{Detail: "internal error", Code: "internal_error"}
	}
	status, ok := kindStatus[de.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return status, ErrorBody{Detail: de.Message, Code: de.Code, Meta: de.Meta}
}
