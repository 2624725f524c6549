package rest

import (
	"encoding/json"
	"net/http"

	"discovery-service/internal/core/domain"
	usecases_port "discovery-service/internal/core/port/usecases_port"
)

const defaultSearchLimit = 10

type SearchHandler struct {
	searchUC usecases_port.SearchObjectsUseCase
}

func NewSearchHandler(searchUC usecases_port.SearchObjectsUseCase) *SearchHandler {
	return &SearchHandler{searchUC: searchUC}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	// 1. Разбираем тело запроса
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	criteria := domain.FilterCriteria{
		SearchText:     req.SearchText,
		PropertyTypeID: req.PropertyTypeID,
		City:           req.City,
		PriceRange:     domain.PriceRange(req.PriceRange),
		ListingType:    req.ListingType,
	}

	switch criteria.PriceRange {
	case domain.PriceRangeNone, domain.PriceRangeLow, domain.PriceRangeMid, domain.PriceRangeHigh:
	default:
		WriteJSONError(w, http.StatusBadRequest, "Unknown price range")
		return
	}

	// 2. Вызываем Use Case
	result, err := h.searchUC.Execute(r.Context(), criteria)
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	// 3. Пагинация применяется только к странице ответа; рекомендации
	// всегда считаются по полному числу совпадений.
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	page := paginate(result.Matched, limit, offset)

	RespondWithJSON(w, http.StatusOK, SearchResponse{
		Objects: toPropertyResponses(page),
		Related: toPropertyResponses(result.Related),
		Total:   len(result.Matched),
		Limit:   limit,
		Offset:  offset,
	})
}

func paginate(records []domain.PropertyRecord, limit, offset int) []domain.PropertyRecord {
	if offset >= len(records) {
		return nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
