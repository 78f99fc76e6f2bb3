package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes data with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes the `{error}` shape every failure response carries
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Message writes the `{message}` shape bulk operations reply with
func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, map[string]string{"message": message})
}

// Success writes data with a 200 status
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}
