package responses

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteAction serializes a dispatch result. Action outcomes always travel as
// HTTP 200; success or failure lives inside the envelope body.
func WriteAction(w http.ResponseWriter, payload any) {
	WriteJSON(w, http.StatusOK, payload)
}

// WriteJSON writes any payload with an explicit status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
