package usecase

import (
	"context"

	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
)

// SearchObjectsUseCase - основной сценарий страницы выдачи: фильтрация
// каталога по критериям плюс подбор "похожих объектов", когда точных
// совпадений мало.
type SearchObjectsUseCase struct {
	catalog  port.CatalogPort
	taxonomy port.TaxonomyPort
}

func NewSearchObjectsUseCase(catalog port.CatalogPort, taxonomy port.TaxonomyPort) *SearchObjectsUseCase {
	return &SearchObjectsUseCase{catalog: catalog, taxonomy: taxonomy}
}

func (uc *SearchObjectsUseCase) Execute(ctx context.Context, criteria domain.FilterCriteria) (*domain.SearchResult, error) {
	// Получаем и обогащаем логгер
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchObjects",
		"criteria": criteria,
	})

	ucLogger.Info("Use case started", nil)

	catalog := uc.catalog.Snapshot()
	bucket := uc.taxonomy.BucketName(criteria.PropertyTypeID)

	// Стабильный фильтр: порядок каталога сохраняется, пересортировки нет.
	matched := make([]domain.PropertyRecord, 0)
	for i := range catalog {
		if matchesCriteria(&catalog[i], criteria, bucket) {
			matched = append(matched, catalog[i])
		}
	}

	// Рекомендации подключаются только при непустом критерии и скудной выдаче.
	var related []domain.PropertyRecord
	if !criteria.IsEmpty() && len(matched) < relatedTrigger {
		related = recommendRelated(catalog, matched, criteria, bucket)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"catalog_size":  len(catalog),
		"matched_count": len(matched),
		"related_count": len(related),
	})

	return &domain.SearchResult{Matched: matched, Related: related}, nil
}
