package usecase

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"discovery-service/internal/core/domain"
)

// Веса подобраны вручную и воспроизводятся как есть: это зафиксированный
// эталон для тестов совместимости, а не настраиваемые параметры.
const (
	relatedTrigger  = 6
	relatedMax      = 6
	relatedMinScore = 15

	weightCategoryMatch    = 30
	weightCategoryBaseline = 10
	weightListingMatch     = 25
	weightListingBaseline  = 10
	weightCityMatch        = 20
	weightCityOther        = 5
	weightCityBaseline     = 5
	weightTokenHit         = 15
	weightFullTextHit      = 15
	weightBHKExact         = 20
	weightBHKNear          = 10
	weightPriceSame        = 15
	weightPriceAdjacent    = 8
)

var bhkPattern = regexp.MustCompile(`(?i)(\d+)\s*bhk`)

// recommendRelated оценивает остаток каталога против тех же критериев и
// возвращает ограниченный ранжированный набор "похожих". Это эвристический
// запасной вариант, а не точный рекомендатель.
func recommendRelated(catalog, matched []domain.PropertyRecord, c domain.FilterCriteria, bucket string) []domain.PropertyRecord {
	exclude := make(map[string]struct{}, len(matched))
	for i := range matched {
		exclude[matched[i].ID] = struct{}{}
	}

	wantResidential, wantCommercial := targetCategory(c, bucket)

	type scoredCandidate struct {
		rec   domain.PropertyRecord
		score int
	}

	var candidates []scoredCandidate
	for i := range catalog {
		if _, ok := exclude[catalog[i].ID]; ok {
			continue
		}
		score := scoreCandidate(&catalog[i], c, wantResidential, wantCommercial)
		if score >= relatedMinScore {
			candidates = append(candidates, scoredCandidate{rec: catalog[i], score: score})
		}
	}

	// Стабильная сортировка: при равном счете сохраняется порядок каталога.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > relatedMax {
		candidates = candidates[:relatedMax]
	}

	related := make([]domain.PropertyRecord, len(candidates))
	for i, cand := range candidates {
		related[i] = cand.rec
	}
	return related
}

// targetCategory определяет "ищут жилое/коммерческое" из комбинации
// семантической корзины критерия и ключевых слов в поисковой строке.
// Корзина участков целевой категории не задает.
func targetCategory(c domain.FilterCriteria, bucket string) (wantResidential, wantCommercial bool) {
	b := strings.ToLower(bucket)
	isPlotBucket := strings.Contains(b, "plot") || strings.Contains(b, "land")

	wantResidential = strings.Contains(b, "residen") ||
		domain.MatchesResidentialKeywords(c.SearchText)
	wantCommercial = (strings.Contains(b, "commercial") && !isPlotBucket) ||
		domain.MatchesCommercialKeywords(c.SearchText)
	return wantResidential, wantCommercial
}

func scoreCandidate(rec *domain.PropertyRecord, c domain.FilterCriteria, wantResidential, wantCommercial bool) int {
	flags := domain.Classify(rec)
	score := 0

	// Совпадение категории; если целевая категория не определена,
	// каждый кандидат получает базовую релевантность.
	if wantResidential || wantCommercial {
		if (wantResidential && flags.IsResidential) || (wantCommercial && flags.IsCommercial) {
			score += weightCategoryMatch
		}
	} else {
		score += weightCategoryBaseline
	}

	if c.ListingType != "" {
		if strings.EqualFold(string(rec.ListingType), c.ListingType) {
			score += weightListingMatch
		}
	} else {
		score += weightListingBaseline
	}

	if c.City != "" {
		if strings.EqualFold(rec.Address.City, c.City) {
			score += weightCityMatch
		} else {
			score += weightCityOther
		}
	} else {
		score += weightCityBaseline
	}

	if q := strings.ToLower(strings.TrimSpace(c.SearchText)); q != "" {
		score += scoreTextAffinity(rec, flags, q)
	}

	if c.PriceRange != domain.PriceRangeNone {
		bucket := domain.PriceBucketOf(rec.NormalizedPrice())
		switch {
		case bucket == c.PriceRange:
			score += weightPriceSame
		case domain.BucketsAdjacent(bucket, c.PriceRange):
			score += weightPriceAdjacent
		}
	}

	return score
}

func scoreTextAffinity(rec *domain.PropertyRecord, flags domain.SemanticFlags, q string) int {
	score := 0

	typeName := strings.ToLower(flags.NormalizedTypeName)
	title := strings.ToLower(rec.Title)
	for _, token := range strings.Fields(q) {
		if len(token) > 2 && (strings.Contains(typeName, token) || strings.Contains(title, token)) {
			score += weightTokenHit
			break
		}
	}

	// Полное вхождение запроса считается независимо от токенов.
	// Поля проверяются по отдельности: запрос не должен склеиваться
	// на стыке типа и заголовка.
	if strings.Contains(typeName, q) || strings.Contains(title, q) ||
		strings.Contains(strings.ToLower(rec.BHK), q) {
		score += weightFullTextHit
	}

	if m := bhkPattern.FindStringSubmatch(q); m != nil && rec.Bedrooms > 0 {
		wanted, _ := strconv.Atoi(m[1])
		diff := rec.Bedrooms - wanted
		switch {
		case diff == 0:
			score += weightBHKExact
		case diff == 1 || diff == -1:
			score += weightBHKNear
		}
	}

	return score
}
