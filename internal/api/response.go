package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"emphub/internal/domain"
)

const (
	msgSignupOK         = "User created successfully."
	msgLoginOK          = "Login successful."
	msgEmployeeCreated  = "Employee created successfully."
	msgEmployeeUpdated  = "Employee details updated successfully."
	msgAPIBanner        = "Employee Management API"
	maxRequestBodyBytes = 1 << 20
)

type errorResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation, domain.KindConflict, domain.KindAuthentication:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders any error as the {status:false, message} envelope.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(domain.KindOf(err)), errorResponse{
		Status:  false,
		Message: domain.MessageOf(err),
	})
}

func writeInternalError(w http.ResponseWriter) {
	writeError(w, domain.NewInternalError(errors.New("panic")))
}

// decodeJSON reads the request body into dest. An empty body decodes as {}.
// With strict set, keys that dest does not declare are rejected.
func decodeJSON(r *http.Request, dest interface{}, strict bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}

	err := dec.Decode(dest)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		// exactly one JSON value per body
		var extra json.RawMessage
		if dec.Decode(&extra) == io.EOF {
			return nil
		}
		return domain.NewValidationError(domain.MsgInvalidBody)
	}

	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return domain.NewValidationError(fmt.Sprintf("Unknown field %s", field))
	}
	return domain.NewValidationError(domain.MsgInvalidBody)
}
