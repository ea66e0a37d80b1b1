package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/billing-estimator/internal/store"
	"github.com/sells-group/billing-estimator/internal/validate"
	"github.com/sells-group/billing-estimator/internal/wizard"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error  string                `json:"error"`
	Fields []validate.FieldError `json:"fields,omitempty"`
}

// writeJSON encodes v before writing the header, so a value that cannot be
// encoded turns into a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorBody{Error: "internal error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string, fields []validate.FieldError) {
	writeJSON(w, status, errorBody{Error: msg, Fields: fields})
}

// writeErr maps domain errors onto HTTP statuses.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, "validation failed", verr.Fields)
	case errors.Is(err, wizard.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found", nil)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "estimate not found", nil)
	case errors.Is(err, wizard.ErrCalculationFailed):
		writeError(w, http.StatusInternalServerError, wizard.CalculationFailedMessage, nil)
	default:
		zap.L().Error("server: request failed",
			zap.String("path", r.URL.Path),
			zap.String("error", eris.ToString(err, false)),
		)
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	return true
}
