package domain

type SuggestionType string

const (
	SuggestionTypeCity     SuggestionType = "city"
	SuggestionTypeLocality SuggestionType = "locality"
	SuggestionTypeProject  SuggestionType = "project"
)

// Suggestion - один кандидат автодополнения. Эфемерный объект:
// создается заново на каждый запрос, не персистится.
type Suggestion struct {
	Type     SuggestionType
	Value    string
	Subtitle string
	Score    float64
}

// CursorAction - результат обработки клавиши над списком подсказок.
type CursorAction int

const (
	// CursorNone - активный индекс сдвинулся (или остался), список открыт.
	CursorNone CursorAction = iota
	// CursorCommitSuggestion - пользователь выбрал подсказку под курсором.
	CursorCommitSuggestion
	// CursorCommitQuery - Enter при индексе -1: ищем по сырому запросу.
	CursorCommitQuery
	// CursorClose - закрыть список, не трогая запрос.
	CursorClose
)

// Cursor - клавиатурная навигация по упорядоченному списку подсказок.
// Активный индекс стартует с -1 ("ничего не выбрано, в поле сырой запрос").
type Cursor struct {
	Size   int
	Active int
}

func NewCursor(size int) Cursor {
	return Cursor{Size: size, Active: -1}
}

// Handle обрабатывает одну клавишу. Down ограничен последним индексом,
// Up ограничен -1 (возврат к сырому запросу).
func (c *Cursor) Handle(key string) CursorAction {
	switch key {
	case "ArrowDown":
		if c.Active < c.Size-1 {
			c.Active++
		}
		return CursorNone
	case "ArrowUp":
		if c.Active > -1 {
			c.Active--
		}
		return CursorNone
	case "Enter":
		if c.Active >= 0 {
			return CursorCommitSuggestion
		}
		return CursorCommitQuery
	case "Escape":
		return CursorClose
	}
	return CursorNone
}
