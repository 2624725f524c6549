package usecase

import (
	"context"
	"fmt"

	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
)

// ApplyListingEventUseCase применяет входящее событие каталога к активному
// снимку и перестраивает локальный индекс подсказок.
type ApplyListingEventUseCase struct {
	writer port.CatalogWriterPort
	index  port.SuggestionIndexPort
}

func NewApplyListingEventUseCase(writer port.CatalogWriterPort, index port.SuggestionIndexPort) *ApplyListingEventUseCase {
	return &ApplyListingEventUseCase{writer: writer, index: index}
}

func (uc *ApplyListingEventUseCase) Execute(ctx context.Context, event domain.ListingEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "ApplyListingEvent",
		"event_kind": event.Kind,
	})

	ucLogger.Info("Use case started", nil)

	switch event.Kind {
	case domain.ListingUpserted:
		if event.Record == nil {
			return fmt.Errorf("apply listing event: upsert without record")
		}
		applied := uc.writer.Upsert(*event.Record)
		ucLogger.Info("Use case finished successfully", port.Fields{
			"property_id": event.Record.ID,
			"applied":     applied,
		})
	case domain.ListingArchived:
		removed := uc.writer.Archive(event.PropertyID)
		ucLogger.Info("Use case finished successfully", port.Fields{
			"property_id": event.PropertyID,
			"removed":     removed,
		})
	default:
		return fmt.Errorf("apply listing event: unknown kind %q", event.Kind)
	}

	if uc.index != nil {
		uc.index.Rebuild()
	}
	return nil
}
