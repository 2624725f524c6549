package rest

import (
	"errors"
	"net/http"

	"discovery-service/internal/core/domain"
	usecases_port "discovery-service/internal/core/port/usecases_port"
)

type SuggestHandler struct {
	suggestUC usecases_port.GetSuggestionsUseCase
}

func NewSuggestHandler(suggestUC usecases_port.GetSuggestionsUseCase) *SuggestHandler {
	return &SuggestHandler{suggestUC: suggestUC}
}

func (h *SuggestHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	suggestions, err := h.suggestUC.Execute(r.Context(), query)
	if err != nil {
		// Вытеснение более новым запросом - ожидаемый исход, не ошибка:
		// этому клиенту просто нечего показывать.
		if errors.Is(err, domain.ErrSuperseded) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get suggestions")
		return
	}

	response := SuggestionsResponse{Suggestions: make([]SuggestionResponse, len(suggestions))}
	for i, s := range suggestions {
		response.Suggestions[i] = SuggestionResponse{
			Type:     string(s.Type),
			Value:    s.Value,
			Subtitle: s.Subtitle,
			Score:    s.Score,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}
