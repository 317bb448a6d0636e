package response

import (
	"encoding/json"
	"net/http"

	"github.com/wellbot/wellbot-backend/internal/logger"
)

// fallbackBody is sent when a response value cannot be encoded.
const fallbackBody = `{"detail":"internal error","code":"internal_error"}` + "\n"

// WriteJSON encodes v before touching the ResponseWriter, so an encoding
// failure still yields a well-formed 500. Responses are never cacheable:
// some carry access tokens.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Logger.Error().Err(err).Int("status", status).Msg("response encoding failed")
		status = http.StatusInternalServerError
		body = []byte(fallbackBody)
	} else {
		body = append(body, '\n')
	}

	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func OK(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusOK, v)
}

// Message writes 200 {"message": msg}.
func Message(w http.ResponseWriter, msg string) {
	OK(w, struct {
		Message string `json:"message"`
	}{msg})
}
