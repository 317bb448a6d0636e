package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

// maxBodyBytes caps request bodies; every payload here is a handful of short strings.
const maxBodyBytes = 1 << 16

// DecodeJSON decodes exactly one JSON value from the request body into dst.
// Unknown fields are ignored. Failures are invalid_json errors whose meta
// carries a short reason.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		return invalidJSON(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return invalidJSON(errTrailingData)
	}
	return nil
}

var errTrailingData = errors.New("trailing data after JSON value")

func invalidJSON(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		sizeErr   *http.MaxBytesError
	)

	reason := "malformed JSON"
	switch {
	case errors.Is(err, io.EOF):
		reason = "request body is empty"
	case errors.As(err, &sizeErr):
		reason = fmt.Sprintf("request body exceeds %d bytes", sizeErr.Limit)
	case errors.As(err, &syntaxErr):
		reason = fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		reason = fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)
	case errors.Is(err, errTrailingData):
		reason = "body must contain a single JSON object"
	}

	return domain.ErrInvalidJSON(err).With("reason", reason)
}
