package catalog

import (
	"strings"
	"sync"
)

// Встроенная таблица таксономии: хватает для старта без listings API,
// обновляется из справочников при их наличии.
var builtinBuckets = map[string]string{
	"residential": "Residential",
	"commercial":  "Commercial",
	"plot":        "Plot & Land",
	"land":        "Plot & Land",
}

// StaticTaxonomy - реализация port.TaxonomyPort поверх карты в памяти.
type StaticTaxonomy struct {
	mu      sync.RWMutex
	buckets map[string]string
}

func NewStaticTaxonomy() *StaticTaxonomy {
	buckets := make(map[string]string, len(builtinBuckets))
	for k, v := range builtinBuckets {
		buckets[k] = v
	}
	return &StaticTaxonomy{buckets: buckets}
}

// BucketName возвращает имя семантической корзины для id типа.
// Источники иногда кладут в propertyTypeId само имя корзины
// ("Residential") - такой id резолвится в себя. Для незнакомого id
// возвращается пустая строка.
func (t *StaticTaxonomy) BucketName(propertyTypeID string) string {
	id := strings.TrimSpace(propertyTypeID)
	if id == "" {
		return ""
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if name, ok := t.buckets[id]; ok {
		return name
	}
	if name, ok := t.buckets[strings.ToLower(id)]; ok {
		return name
	}

	lower := strings.ToLower(id)
	if strings.Contains(lower, "residen") ||
		strings.Contains(lower, "commercial") ||
		strings.Contains(lower, "plot") ||
		strings.Contains(lower, "land") {
		return id
	}
	return ""
}

// SetAll заменяет таблицу соответствий (обновление из справочников API).
func (t *StaticTaxonomy) SetAll(buckets map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buckets = make(map[string]string, len(buckets)+len(builtinBuckets))
	for k, v := range builtinBuckets {
		t.buckets[k] = v
	}
	for k, v := range buckets {
		t.buckets[k] = v
	}
}
