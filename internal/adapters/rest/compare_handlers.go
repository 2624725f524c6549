package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"discovery-service/internal/core/domain"
	usecases_port "discovery-service/internal/core/port/usecases_port"
)

type CompareHandler struct {
	compareUC usecases_port.ToggleCompareUseCase
}

func NewCompareHandler(compareUC usecases_port.ToggleCompareUseCase) *CompareHandler {
	return &CompareHandler{compareUC: compareUC}
}

func (h *CompareHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	var req CompareToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PropertyID == "" {
		WriteJSONError(w, http.StatusBadRequest, "property_id is required")
		return
	}

	group, err := h.compareUC.Toggle(r.Context(), sessionID, req.PropertyID)
	if err != nil {
		// Отказы лимита и типа - пользовательские сообщения, а не сбои;
		// причина отдается машиночитаемо, состояние группы не изменилось.
		switch {
		case errors.Is(err, domain.ErrCompareLimitReached):
			WriteJSONRejection(w, http.StatusConflict, "limit_reached",
				"You can compare up to 3 properties at a time")
		case errors.Is(err, domain.ErrCompareTypeMismatch):
			WriteJSONRejection(w, http.StatusConflict, "type_mismatch",
				"You can only compare properties of the same type")
		case errors.Is(err, domain.ErrPropertyNotFound):
			WriteJSONError(w, http.StatusNotFound, "Property not found")
		default:
			WriteJSONError(w, http.StatusInternalServerError, "Failed to toggle compare")
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, toCompareGroupResponse(group))
}

func (h *CompareHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	group := h.compareUC.Get(r.Context(), sessionID)
	RespondWithJSON(w, http.StatusOK, toCompareGroupResponse(group))
}

func (h *CompareHandler) ClearGroup(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	h.compareUC.Clear(r.Context(), sessionID)
	w.WriteHeader(http.StatusNoContent)
}

func toCompareGroupResponse(group *domain.CompareGroup) CompareGroupResponse {
	memberIDs := group.MemberIDs
	if memberIDs == nil {
		memberIDs = []string{}
	}
	return CompareGroupResponse{
		MemberIDs:     memberIDs,
		BaseTypeLabel: group.BaseTypeLabel,
	}
}
