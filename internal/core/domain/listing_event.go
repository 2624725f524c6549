package domain

// ListingEventKind - вид события об изменении каталога.
type ListingEventKind string

const (
	ListingUpserted ListingEventKind = "listing_upserted"
	ListingArchived ListingEventKind = "listing_archived"
)

// ListingEvent - одно событие об изменении объявления, приходящее от
// внешнего поставщика каталога. Для upsert заполнена запись целиком,
// для archive достаточно id.
type ListingEvent struct {
	Kind       ListingEventKind
	Record     *PropertyRecord
	PropertyID string
}
