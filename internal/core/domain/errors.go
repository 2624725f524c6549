package domain

import "errors"

var (
	// ErrPropertyNotFound - запрошенный id отсутствует в активном каталоге.
	ErrPropertyNotFound = errors.New("property not found in catalog")

	// ErrCompareLimitReached - группа сравнения уже заполнена.
	ErrCompareLimitReached = errors.New("compare group limit reached")

	// ErrCompareTypeMismatch - тип кандидата не совпадает с типом группы.
	ErrCompareTypeMismatch = errors.New("compare group type mismatch")

	// ErrSuperseded - запрос подсказок был вытеснен более новым запросом.
	// Это ожидаемый исход, а не сбой: вызывающая сторона молча игнорирует его.
	ErrSuperseded = errors.New("suggestion request superseded by a newer one")
)
