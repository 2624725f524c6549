package rest

import (
	"net/http"

	"discovery-service/internal/core/port"
)

type StatsHandler struct {
	catalog port.CatalogPort
}

func NewStatsHandler(catalog port.CatalogPort) *StatsHandler {
	return &StatsHandler{catalog: catalog}
}

// GetCatalogStats отдает размер каталога против его геокодированной части:
// UI показывает, какая доля объектов вообще попадает в поиск по карте.
func (h *StatsHandler) GetCatalogStats(w http.ResponseWriter, r *http.Request) {
	stats := h.catalog.Stats()
	RespondWithJSON(w, http.StatusOK, CatalogStatsResponse{
		Total:    stats.Total,
		Geocoded: stats.Geocoded,
	})
}
