package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "roombooking/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError renders an error. Known HTTP errors keep their status and
// message; anything else is logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var he *apperrors.HTTPError
	if errors.As(err, &he) {
		writeJSON(w, he.Code, errorBody{Error: he.Message})
		return
	}
	log.Printf("api: internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return false
	}
	return true
}
