package usecases_port

import (
	"context"

	"discovery-service/internal/core/domain"
)

type FindNearbyUseCase interface {
	Execute(ctx context.Context, center domain.Coordinates, radiusKm float64) (*domain.NearbyResult, error)
}
