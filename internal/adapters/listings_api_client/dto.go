package listings_api_client

import "discovery-service/internal/adapters/catalog"

// ListingsResponse - ответ listings API со списком активных объявлений.
type ListingsResponse struct {
	Objects []catalog.RawListing `json:"objects"`
	Total   int                  `json:"total"`
}

// DictionaryItemResponse - элемент справочника listings API.
type DictionaryItemResponse struct {
	SystemName  string `json:"system_name"`
	DisplayName string `json:"display_name"`
}

// DictionaryItemsResponse - справочники, сгруппированные по имени.
type DictionaryItemsResponse map[string][]DictionaryItemResponse

// SuggestionItemResponse - один кандидат автодополнения от listings API.
type SuggestionItemResponse struct {
	Type     string  `json:"type"`
	Value    string  `json:"value"`
	Subtitle string  `json:"subtitle"`
	Score    float64 `json:"score"`
}

type SuggestionsResponse struct {
	Suggestions []SuggestionItemResponse `json:"suggestions"`
}
