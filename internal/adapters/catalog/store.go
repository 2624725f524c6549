package catalog

import (
	"sync"

	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
)

// Store - in-memory хранилище активного каталога. Порядок вставки
// сохраняется - "порядок каталога" для стабильного фильтра это он и есть.
// Реализует port.CatalogPort и port.CatalogWriterPort.
type Store struct {
	logger port.LoggerPort

	mu      sync.RWMutex
	records []domain.PropertyRecord
	index   map[string]int    // id -> позиция в records
	hashes  map[string]string // LocationHash -> id первого владельца
}

func NewStore(logger port.LoggerPort) *Store {
	return &Store{
		logger: logger.WithFields(port.Fields{"component": "catalog_store"}),
		index:  make(map[string]int),
		hashes: make(map[string]string),
	}
}

// ReplaceAll целиком заменяет активный снимок. Дубли по отпечатку
// местоположения отбрасываются, выживает первая запись.
func (s *Store) ReplaceAll(records []domain.PropertyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
	s.index = make(map[string]int, len(records))
	s.hashes = make(map[string]string, len(records))

	duplicates := 0
	for i := range records {
		if !s.appendLocked(records[i]) {
			duplicates++
		}
	}

	s.logger.Info("Catalog replaced", port.Fields{
		"total":      len(records),
		"accepted":   len(s.records),
		"duplicates": duplicates,
	})
}

// Upsert применяет одно объявление. Возвращает false, если запись
// отброшена как дубль чужого объявления или пришла не активной.
func (s *Store) Upsert(rec domain.PropertyRecord) bool {
	if rec.ID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Status != domain.StatusActive {
		return s.removeLocked(rec.ID)
	}

	if pos, ok := s.index[rec.ID]; ok {
		old := s.records[pos]
		if old.LocationHash != rec.LocationHash {
			delete(s.hashes, old.LocationHash)
			s.hashes[rec.LocationHash] = rec.ID
		}
		s.records[pos] = rec
		return true
	}

	return s.appendLocked(rec)
}

// Archive убирает запись из активного снимка.
func (s *Store) Archive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

// Snapshot возвращает копию активных записей в порядке каталога.
func (s *Store) Snapshot() []domain.PropertyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PropertyRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Get возвращает копию записи по id.
func (s *Store) Get(id string) (*domain.PropertyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return nil, false
	}
	rec := s.records[pos]
	return &rec, true
}

// Stats - общий размер каталога и размер его геокодированной части.
func (s *Store) Stats() domain.CatalogStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.CatalogStats{Total: len(s.records)}
	for i := range s.records {
		if s.records[i].HasCoordinates() {
			stats.Geocoded++
		}
	}
	return stats
}

func (s *Store) appendLocked(rec domain.PropertyRecord) bool {
	if rec.ID == "" {
		return false
	}
	if owner, ok := s.hashes[rec.LocationHash]; ok && owner != rec.ID {
		s.logger.Debug("Duplicate listing dropped", port.Fields{
			"property_id": rec.ID,
			"owner_id":    owner,
		})
		return false
	}
	if _, ok := s.index[rec.ID]; ok {
		return false
	}

	s.index[rec.ID] = len(s.records)
	s.hashes[rec.LocationHash] = rec.ID
	s.records = append(s.records, rec)
	return true
}

func (s *Store) removeLocked(id string) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}

	delete(s.hashes, s.records[pos].LocationHash)
	delete(s.index, id)

	s.records = append(s.records[:pos], s.records[pos+1:]...)
	for i := pos; i < len(s.records); i++ {
		s.index[s.records[i].ID] = i
	}
	return true
}
