package rest

import (
	"encoding/json"
	"net/http"

	"discovery-service/internal/core/domain"
	usecases_port "discovery-service/internal/core/port/usecases_port"
)

type NearbyHandler struct {
	nearbyUC usecases_port.FindNearbyUseCase
}

func NewNearbyHandler(nearbyUC usecases_port.FindNearbyUseCase) *NearbyHandler {
	return &NearbyHandler{nearbyUC: nearbyUC}
}

func (h *NearbyHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	var req NearbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.RadiusKm <= 0 {
		WriteJSONError(w, http.StatusBadRequest, "radius_km must be positive")
		return
	}

	center := domain.Coordinates{Lat: req.Center.Lat, Lng: req.Center.Lng}
	result, err := h.nearbyUC.Execute(r.Context(), center, req.RadiusKm)
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, "Nearby search failed")
		return
	}

	results := make([]NearbyPropertyResponse, len(result.Results))
	for i := range result.Results {
		results[i] = NearbyPropertyResponse{
			PropertyResponse: toPropertyResponse(&result.Results[i].PropertyRecord),
			DistanceKm:       result.Results[i].DistanceKm,
		}
	}

	RespondWithJSON(w, http.StatusOK, NearbyResponse{
		Results:      results,
		CatalogSize:  result.CatalogSize,
		GeocodedSize: result.GeocodedSize,
	})
}
