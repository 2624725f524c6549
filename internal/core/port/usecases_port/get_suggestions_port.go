package usecases_port

import (
	"context"

	"discovery-service/internal/core/domain"
)

type GetSuggestionsUseCase interface {
	Execute(ctx context.Context, query string) ([]domain.Suggestion, error)
}
