package domain

import "strings"

// SemanticFlags - производная классификация записи. Не хранится на самой
// записи, потому что текст категории бывает несогласованным между
// источниками; вычисляется по требованию.
type SemanticFlags struct {
	IsResidential      bool
	IsCommercial       bool
	NormalizedTypeName string
}

// Таблицы ключевых слов вынесены на уровень пакета, чтобы тесты могли
// проверять классификацию слово за словом.
var residentialKeywords = []string{
	"apartment",
	"flat",
	"villa",
	"house",
	"studio",
	"row house",
	"farm house",
	"penthouse",
	"independent",
	"builder floor",
}

var commercialKeywords = []string{
	"office",
	"shop",
	"showroom",
	"restaurant",
	"cafe",
	"warehouse",
	"industrial",
	"co-working",
	"coworking",
	"godown",
	"retail",
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// MatchesResidentialKeywords проверяет произвольный текст (например, поисковую
// строку) по списку жилых ключевых слов. Текст приводится к нижнему регистру.
func MatchesResidentialKeywords(text string) bool {
	return containsAny(strings.ToLower(text), residentialKeywords)
}

// MatchesCommercialKeywords - то же для коммерческих ключевых слов.
func MatchesCommercialKeywords(text string) bool {
	return containsAny(strings.ToLower(text), commercialKeywords)
}

// Classify вычисляет семантические флаги записи по свободному тексту
// категории и типа. Никогда не возвращает ошибку: пустой или незнакомый
// вход дает самую нейтральную классификацию {false, false, "Property"}.
// Оба флага могут быть истинны или оба ложны - "ни то ни другое" является
// валидной третьей корзиной (прочее/участок).
func Classify(rec *PropertyRecord) SemanticFlags {
	category := strings.ToLower(strings.TrimSpace(rec.CategoryRaw))
	typeName := strings.ToLower(strings.TrimSpace(rec.PropertyTypeName))
	combined := strings.TrimSpace(category + " " + typeName)

	flags := SemanticFlags{NormalizedTypeName: "Property"}
	if combined == "" {
		return flags
	}

	flags.IsResidential = strings.Contains(category, "residen") || containsAny(typeName, residentialKeywords)
	flags.IsCommercial = strings.Contains(category, "commercial") || containsAny(typeName, commercialKeywords)

	// Участки - отдельный случай: "commercial plot" показывается как
	// коммерческая недвижимость, любой другой участок как жилая.
	isPlot := strings.Contains(combined, "plot") || strings.Contains(combined, "land")
	switch {
	case isPlot && flags.IsCommercial:
		flags.NormalizedTypeName = "Commercial Property"
	case isPlot:
		flags.NormalizedTypeName = "Residential Property"
	case flags.IsResidential:
		flags.NormalizedTypeName = "Residential Property"
	case flags.IsCommercial:
		flags.NormalizedTypeName = "Commercial Property"
	}

	return flags
}
