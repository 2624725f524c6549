package usecases_port

import (
	"context"

	"discovery-service/internal/core/domain"
)

type ToggleCompareUseCase interface {
	Toggle(ctx context.Context, sessionID, propertyID string) (*domain.CompareGroup, error)
	Get(ctx context.Context, sessionID string) *domain.CompareGroup
	Clear(ctx context.Context, sessionID string)
}
