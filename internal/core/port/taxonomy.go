package port

// TaxonomyPort отображает propertyTypeId в человекочитаемое имя
// семантической корзины ("Residential", "Commercial", "Plot & Land").
// Пустая строка означает "корзина неизвестна" - фильтр в этом случае
// откатывается к строгому сравнению id.
type TaxonomyPort interface {
	BucketName(propertyTypeID string) string
}
