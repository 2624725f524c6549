package port

import (
	"context"

	"discovery-service/internal/core/domain"
)

// CatalogPort - доступ движка к активному каталогу. Каталог для движка
// строго read-only, на каждое изменение движок пересчитывает все с нуля
// по свежему снимку.
type CatalogPort interface {
	// Snapshot возвращает копию активных записей в порядке каталога.
	Snapshot() []domain.PropertyRecord

	// Get возвращает копию записи по id.
	Get(id string) (*domain.PropertyRecord, bool)

	// Stats - размер каталога против геокодированной части.
	Stats() domain.CatalogStats
}

// CatalogWriterPort - применение входящих событий каталога.
// Реализуется тем же in-memory хранилищем, но ядро видит только операции.
type CatalogWriterPort interface {
	Upsert(rec domain.PropertyRecord) bool
	Archive(id string) bool
}

// CatalogSourcePort - внешний поставщик каталога (listings API или
// read-only выборка из базы), используется один раз при старте.
type CatalogSourcePort interface {
	LoadCatalog(ctx context.Context) ([]domain.PropertyRecord, error)
}
