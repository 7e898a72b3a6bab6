package http

import (
	"encoding/json"
	"net/http"

	"github.com/picstash/picstash/internal/domain"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(data)
}

// errorResponse is the body shape for all error responses
type errorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the given status code
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// decodeJSON decodes JSON from request body into the target struct
func decodeJSON(r *http.Request, target interface{}) error {
	if r.Body == nil {
		return domain.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(target); err != nil {
		return domain.ErrInvalidInput
	}

	return nil
}
