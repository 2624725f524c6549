package suggest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"

	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
)

const defaultSuggestLimit = 10

// indexedTerm - один кандидат в индексе подсказок.
type indexedTerm struct {
	kind     domain.SuggestionType
	value    string
	subtitle string
}

// CatalogScanSource - локальный источник подсказок поверх снимка каталога.
// Города, районы и названия проектов складываются в префиксное дерево;
// запросы, не попавшие по префиксу, добираются полным сканом с
// RelevanceScore. Реализует port.SuggestionSourcePort и
// port.SuggestionIndexPort.
type CatalogScanSource struct {
	catalog port.CatalogPort
	logger  port.LoggerPort
	limit   int

	mu    sync.RWMutex
	trie  *patricia.Trie
	terms []indexedTerm
}

func NewCatalogScanSource(catalog port.CatalogPort, logger port.LoggerPort, limit int) *CatalogScanSource {
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	source := &CatalogScanSource{
		catalog: catalog,
		logger:  logger.WithFields(port.Fields{"component": "suggest_catalog_source"}),
		limit:   limit,
		trie:    patricia.NewTrie(),
	}
	source.Rebuild()
	return source
}

// Rebuild пересобирает индекс из текущего снимка каталога.
func (s *CatalogScanSource) Rebuild() {
	snapshot := s.catalog.Snapshot()

	trie := patricia.NewTrie()
	terms := make([]indexedTerm, 0, len(snapshot))
	seen := make(map[string]struct{})

	add := func(kind domain.SuggestionType, value, subtitle string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		key := string(kind) + "|" + strings.ToLower(value)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}

		term := indexedTerm{kind: kind, value: value, subtitle: subtitle}
		terms = append(terms, term)
		trie.Set(patricia.Prefix(strings.ToLower(value)), term)
	}

	for i := range snapshot {
		rec := &snapshot[i]
		add(domain.SuggestionTypeCity, rec.Address.City, rec.Address.State)
		add(domain.SuggestionTypeLocality, rec.Address.Locality, rec.Address.City)
		add(domain.SuggestionTypeProject, rec.Title, joinNonEmpty(rec.Address.Locality, rec.Address.City))
	}

	s.mu.Lock()
	s.trie = trie
	s.terms = terms
	s.mu.Unlock()

	s.logger.Debug("Suggestion index rebuilt", port.Fields{"terms": len(terms)})
}

// Fetch возвращает ранжированный список кандидатов для запроса.
func (s *CatalogScanSource) Fetch(ctx context.Context, query string) ([]domain.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Suggestion{}, nil
	}

	s.mu.RLock()
	trie := s.trie
	terms := s.terms
	s.mu.RUnlock()

	scored := make(map[string]domain.Suggestion)

	// Быстрый путь: префиксные попадания из дерева.
	_ = trie.VisitSubtree(patricia.Prefix(q), func(prefix patricia.Prefix, item patricia.Item) error {
		term := item.(indexedTerm)
		s.collect(scored, term, q)
		return nil
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Медленный путь: подстроки и разреженные совпадения по всему индексу.
	if len(scored) < s.limit {
		for _, term := range terms {
			s.collect(scored, term, q)
		}
	}

	suggestions := make([]domain.Suggestion, 0, len(scored))
	for _, sg := range scored {
		suggestions = append(suggestions, sg)
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Value < suggestions[j].Value
	})

	if len(suggestions) > s.limit {
		suggestions = suggestions[:s.limit]
	}
	return suggestions, nil
}

func (s *CatalogScanSource) collect(scored map[string]domain.Suggestion, term indexedTerm, q string) {
	key := string(term.kind) + "|" + strings.ToLower(term.value)
	if _, ok := scored[key]; ok {
		return
	}
	score := RelevanceScore(q, term.value)
	if score == 0 {
		return
	}
	scored[key] = domain.Suggestion{
		Type:     term.kind,
		Value:    term.value,
		Subtitle: term.subtitle,
		Score:    float64(score),
	}
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return strings.Join(out, ", ")
}
