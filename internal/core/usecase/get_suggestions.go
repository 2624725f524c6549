package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
)

// Эталонные параметры ленты подсказок.
const (
	DefaultSuggestDebounce = 150 * time.Millisecond
	DefaultSuggestCacheTTL = 60 * time.Second
	DefaultSuggestTimeout  = 3 * time.Second
	suggestMinQueryLength  = 2
)

// SuggestionConfig - настройки таймингов; нулевые значения заменяются
// эталонными, тесты подставляют укороченные окна.
type SuggestionConfig struct {
	Debounce     time.Duration
	CacheTTL     time.Duration
	FetchTimeout time.Duration
}

func (c SuggestionConfig) withDefaults() SuggestionConfig {
	if c.Debounce <= 0 {
		c.Debounce = DefaultSuggestDebounce
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultSuggestCacheTTL
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultSuggestTimeout
	}
	return c
}

type cacheEntry struct {
	data     []domain.Suggestion
	storedAt time.Time
}

// fetchAttempt - одна логическая попытка получить подсказки. Слот текущей
// попытки ровно один: новая попытка сначала отменяет предыдущую, поэтому
// в полете не бывает больше одного запроса и устаревший ответ никогда
// не перезаписывает более новый.
type fetchAttempt struct {
	cancel context.CancelFunc
}

// GetSuggestionsUseCase - лента автодополнения с кэшем, дебаунсом и отменой
// вытесненных запросов. Кэш и слот попытки - явное состояние экземпляра,
// жизненный цикл которого контролирует вызывающая сторона (один экземпляр
// на сессию поискового UI).
type GetSuggestionsUseCase struct {
	source port.SuggestionSourcePort
	cfg    SuggestionConfig

	mu      sync.Mutex
	cache   map[string]cacheEntry
	pending *fetchAttempt
}

func NewGetSuggestionsUseCase(source port.SuggestionSourcePort, cfg SuggestionConfig) *GetSuggestionsUseCase {
	return &GetSuggestionsUseCase{
		source: source,
		cfg:    cfg.withDefaults(),
		cache:  make(map[string]cacheEntry),
	}
}

// Execute выполняет один "нажатый" запрос. Наблюдаемый контракт: при быстрой
// серии запросов видимое состояние в итоге отражает подсказки для последнего
// набранного запроса; все более ранние попытки завершаются ErrSuperseded.
func (uc *GetSuggestionsUseCase) Execute(ctx context.Context, query string) ([]domain.Suggestion, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetSuggestions",
		"query":    query,
	})

	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < suggestMinQueryLength {
		// Слишком короткий запрос гасит и уже ожидающую попытку.
		uc.mu.Lock()
		uc.cancelPendingLocked()
		uc.mu.Unlock()
		return []domain.Suggestion{}, nil
	}

	key := strings.ToLower(trimmed)

	// Проверка кэша и захват слота попытки атомарны относительно друг друга:
	// между ними нет точек приостановки.
	uc.mu.Lock()
	if entry, ok := uc.cache[key]; ok && time.Since(entry.storedAt) <= uc.cfg.CacheTTL {
		data := cloneSuggestions(entry.data)
		uc.mu.Unlock()
		ucLogger.Debug("Served from cache", port.Fields{"count": len(data)})
		return data, nil
	}

	uc.cancelPendingLocked()
	attemptCtx, cancel := context.WithCancel(ctx)
	attempt := &fetchAttempt{cancel: cancel}
	uc.pending = attempt
	uc.mu.Unlock()

	// Дебаунс: ждем паузу в наборе, прежде чем ходить к источнику.
	debounce := time.NewTimer(uc.cfg.Debounce)
	select {
	case <-attemptCtx.Done():
		debounce.Stop()
		return nil, domain.ErrSuperseded
	case <-debounce.C:
	}

	fetchCtx, cancelFetch := context.WithTimeout(attemptCtx, uc.cfg.FetchTimeout)
	defer cancelFetch()

	data, fetchErr := uc.source.Fetch(fetchCtx, trimmed)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.pending == attempt {
		uc.pending = nil
	}

	// Вытеснение во время запроса: результат выбрасывается молча.
	if attemptCtx.Err() != nil {
		return nil, domain.ErrSuperseded
	}

	if fetchErr != nil {
		if errors.Is(fetchErr, context.Canceled) {
			return nil, domain.ErrSuperseded
		}
		// Таймаут и любой другой сбой источника - это "подсказок нет",
		// неудача не кэшируется.
		ucLogger.Warn("Suggestion source failed", port.Fields{"error": fetchErr.Error()})
		return []domain.Suggestion{}, nil
	}

	uc.cache[key] = cacheEntry{data: cloneSuggestions(data), storedAt: time.Now()}
	ucLogger.Debug("Suggestions fetched", port.Fields{"count": len(data)})
	return data, nil
}

// cancelPendingLocked отменяет текущую попытку; вызывается под mu.
func (uc *GetSuggestionsUseCase) cancelPendingLocked() {
	if uc.pending != nil {
		uc.pending.cancel()
		uc.pending = nil
	}
}

func cloneSuggestions(src []domain.Suggestion) []domain.Suggestion {
	out := make([]domain.Suggestion, len(src))
	copy(out, src)
	return out
}
