package suggest

import "strings"

// Баллы релевантности кандидата автодополнения.
const (
	scoreExact       = 100
	scorePrefix      = 90
	scoreWordPrefix  = 80
	scoreSubstring   = 70
	scoreSubsequence = 50
)

// RelevanceScore оценивает, насколько текст кандидата отвечает запросу.
// Шкала фиксированная: точное совпадение 100, префикс 90, префикс любого
// слова 80, подстрока 70, разреженное вхождение символов по порядку 50,
// иначе 0. Регистр не учитывается.
func RelevanceScore(query, text string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(strings.TrimSpace(text))
	if q == "" || t == "" {
		return 0
	}

	switch {
	case t == q:
		return scoreExact
	case strings.HasPrefix(t, q):
		return scorePrefix
	}

	for _, word := range strings.Fields(t) {
		if strings.HasPrefix(word, q) {
			return scoreWordPrefix
		}
	}

	if strings.Contains(t, q) {
		return scoreSubstring
	}

	if isSubsequence(q, t) {
		return scoreSubsequence
	}
	return 0
}

// isSubsequence: каждый символ запроса встречается в тексте в том же
// порядке, не обязательно подряд.
func isSubsequence(query, text string) bool {
	runes := []rune(query)
	pos := 0
	for _, r := range text {
		if pos == len(runes) {
			break
		}
		if r == runes[pos] {
			pos++
		}
	}
	return pos == len(runes)
}
