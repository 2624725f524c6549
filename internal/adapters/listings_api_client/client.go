package listings_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"discovery-service/internal/adapters/catalog"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
)

// Client - исходящий адаптер к listings API. Реализует
// port.CatalogSourcePort и port.SuggestionSourcePort.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, requestURL string, body io.Reader) (*http.Response, error) {
	traceID := contextkeys.TraceIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Пробрасываем trace_id для сквозной трассировки
	if traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

func (c *Client) decodeResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("listings API returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode listings API response: %w", err)
	}
	return nil
}

// LoadCatalog забирает все активные объявления и нормализует их
// в каноническую форму записи каталога.
func (c *Client) LoadCatalog(ctx context.Context) ([]domain.PropertyRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "ListingsApiClient",
		"method":    "LoadCatalog",
	})

	requestURL := fmt.Sprintf("%s/api/v1/objects?status=active", c.baseURL)
	clientLogger.Debug("Sending request to listings API", port.Fields{"url": requestURL})

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to listings API", err, nil)
		return nil, err
	}

	var listings ListingsResponse
	if err := c.decodeResponse(resp, &listings); err != nil {
		clientLogger.Error("Received error response from listings API", err, nil)
		return nil, err
	}

	// Маппим DTO в доменную модель - это изолирует ядро от деталей
	// чужого API.
	records := make([]domain.PropertyRecord, len(listings.Objects))
	for i, raw := range listings.Objects {
		records[i] = catalog.MapRawListing(raw)
	}

	clientLogger.Info("Successfully received and decoded catalog", port.Fields{
		"objects_count": len(records),
	})
	return records, nil
}

// GetPropertyTypes забирает справочник типов для таксономии.
func (c *Client) GetPropertyTypes(ctx context.Context) (map[string]string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "ListingsApiClient",
		"method":    "GetPropertyTypes",
	})

	requestURL := fmt.Sprintf("%s/api/v1/dictionaries?names=property_types", c.baseURL)
	clientLogger.Debug("Sending request to listings API", port.Fields{"url": requestURL})

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to listings API", err, nil)
		return nil, err
	}

	var dictionaries DictionaryItemsResponse
	if err := c.decodeResponse(resp, &dictionaries); err != nil {
		clientLogger.Error("Received error response from listings API", err, nil)
		return nil, err
	}

	buckets := make(map[string]string, len(dictionaries["property_types"]))
	for _, item := range dictionaries["property_types"] {
		buckets[item.SystemName] = item.DisplayName
	}

	clientLogger.Info("Successfully received property types", port.Fields{
		"types_count": len(buckets),
	})
	return buckets, nil
}

// Fetch реализует источник подсказок поверх эндпоинта listings API.
func (c *Client) Fetch(ctx context.Context, query string) ([]domain.Suggestion, error) {
	requestURL := fmt.Sprintf("%s/api/v1/suggestions?q=%s", c.baseURL, url.QueryEscape(query))

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	var payload SuggestionsResponse
	if err := c.decodeResponse(resp, &payload); err != nil {
		return nil, err
	}

	suggestions := make([]domain.Suggestion, len(payload.Suggestions))
	for i, item := range payload.Suggestions {
		suggestions[i] = domain.Suggestion{
			Type:     domain.SuggestionType(item.Type),
			Value:    item.Value,
			Subtitle: item.Subtitle,
			Score:    item.Score,
		}
	}
	return suggestions, nil
}
