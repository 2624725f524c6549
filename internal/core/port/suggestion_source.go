package port

import (
	"context"

	"discovery-service/internal/core/domain"
)

// SuggestionSourcePort - внешний источник кандидатов автодополнения.
// Может быть серверным эндпоинтом или локальным сканом каталога; ранжирование
// возвращаемого списка - ответственность источника.
type SuggestionSourcePort interface {
	Fetch(ctx context.Context, query string) ([]domain.Suggestion, error)
}

// SuggestionIndexPort - перестроение локального индекса подсказок после
// изменения каталога. Источники без индекса реализуют его как no-op.
type SuggestionIndexPort interface {
	Rebuild()
}
