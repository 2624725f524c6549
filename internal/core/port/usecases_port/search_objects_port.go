package usecases_port

import (
	"context"

	"discovery-service/internal/core/domain"
)

type SearchObjectsUseCase interface {
	Execute(ctx context.Context, criteria domain.FilterCriteria) (*domain.SearchResult, error)
}
