package usecase

import (
	"context"
	"sync"

	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
)

const DefaultCompareMaxSize = 3

// ToggleCompareUseCase держит группы сравнения по сессиям поискового UI.
// Группы живут только в памяти и умирают вместе с сервисом.
type ToggleCompareUseCase struct {
	catalog port.CatalogPort
	maxSize int

	mu     sync.Mutex
	groups map[string]*domain.CompareGroup
}

func NewToggleCompareUseCase(catalog port.CatalogPort, maxSize int) *ToggleCompareUseCase {
	if maxSize <= 0 {
		maxSize = DefaultCompareMaxSize
	}
	return &ToggleCompareUseCase{
		catalog: catalog,
		maxSize: maxSize,
		groups:  make(map[string]*domain.CompareGroup),
	}
}

// Toggle добавляет или убирает объект из группы сессии. Отказы доменного
// уровня (лимит, несовпадение типа) пробрасываются как есть - адаптер
// переводит их в пользовательское сообщение, группа остается неизменной.
func (uc *ToggleCompareUseCase) Toggle(ctx context.Context, sessionID, propertyID string) (*domain.CompareGroup, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "ToggleCompare",
		"session_id":  sessionID,
		"property_id": propertyID,
	})

	ucLogger.Info("Use case started", nil)

	rec, ok := uc.catalog.Get(propertyID)
	if !ok {
		ucLogger.Warn("Property not found in active catalog", nil)
		return nil, domain.ErrPropertyNotFound
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	group, ok := uc.groups[sessionID]
	if !ok {
		group = &domain.CompareGroup{}
		uc.groups[sessionID] = group
	}

	if err := uc.toggleLocked(group, rec); err != nil {
		ucLogger.Info("Toggle rejected", port.Fields{"reason": err.Error()})
		return snapshotGroup(group), err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"group_size": len(group.MemberIDs),
		"base_type":  group.BaseTypeLabel,
	})
	return snapshotGroup(group), nil
}

func (uc *ToggleCompareUseCase) toggleLocked(group *domain.CompareGroup, rec *domain.PropertyRecord) error {
	return group.Toggle(rec, uc.maxSize)
}

// Get возвращает копию группы сессии; для незнакомой сессии - пустую группу.
func (uc *ToggleCompareUseCase) Get(ctx context.Context, sessionID string) *domain.CompareGroup {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	group, ok := uc.groups[sessionID]
	if !ok {
		return &domain.CompareGroup{}
	}
	return snapshotGroup(group)
}

// Clear сбрасывает группу сессии.
func (uc *ToggleCompareUseCase) Clear(ctx context.Context, sessionID string) {
	logger := contextkeys.LoggerFromContext(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.groups, sessionID)

	logger.Info("Compare group cleared", port.Fields{
		"use_case":   "ToggleCompare",
		"session_id": sessionID,
	})
}

func snapshotGroup(group *domain.CompareGroup) *domain.CompareGroup {
	ids := make([]string, len(group.MemberIDs))
	copy(ids, group.MemberIDs)
	return &domain.CompareGroup{MemberIDs: ids, BaseTypeLabel: group.BaseTypeLabel}
}
