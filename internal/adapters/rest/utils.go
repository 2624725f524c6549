package rest

import (
	"encoding/json"
	"net/http"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// WriteJSONRejection - как WriteJSONError, но с машиночитаемой причиной,
// чтобы фронтенд мог различать пользовательские отказы.
func WriteJSONRejection(w http.ResponseWriter, statusCode int, reason, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error":  message,
		"reason": reason,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
