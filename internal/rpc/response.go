package rpc

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aTrapDeer/portfolio-backend/internal/schema"
	"github.com/aTrapDeer/portfolio-backend/internal/store"
)

type envelope struct {
	Result *result    `json:"result,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

type result struct {
	Data any `json:"data"`
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Issues  []schema.Issue `json:"issues,omitempty"`
}

// classify maps a service error onto an HTTP status and error body.
func classify(err error) (int, *errorBody) {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, &errorBody{Code: "BAD_REQUEST", Message: verr.Error(), Issues: verr.Issues}
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, &errorBody{Code: "NOT_FOUND", Message: err.Error()}
	default:
		return http.StatusInternalServerError, &errorBody{Code: "INTERNAL_SERVER_ERROR", Message: err.Error()}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		response, _ = json.Marshal(envelope{Error: &errorBody{Code: "INTERNAL_SERVER_ERROR", Message: "failed to encode response"}})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Error: &errorBody{Code: code, Message: message}})
}
