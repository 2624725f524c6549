package usecases_port

import (
	"context"

	"discovery-service/internal/core/domain"
)

type ApplyListingEventUseCase interface {
	Execute(ctx context.Context, event domain.ListingEvent) error
}
