package domain

// CompareGroup - ограниченный набор объектов, выбранных для сравнения.
// Бизнес-правило: сравнивать можно только объекты одного типа, тип группы
// задается первым добавленным объектом.
type CompareGroup struct {
	MemberIDs     []string
	BaseTypeLabel string
}

// Contains проверяет членство по id.
func (g *CompareGroup) Contains(id string) bool {
	for _, memberID := range g.MemberIDs {
		if memberID == id {
			return true
		}
	}
	return false
}

// Toggle добавляет или убирает запись из группы. Отказы (переполнение,
// несовпадение типа) - это восстановимые пользовательские сигналы:
// группа остается без изменений, вызывающая сторона показывает сообщение.
func (g *CompareGroup) Toggle(rec *PropertyRecord, maxSize int) error {
	if g.Contains(rec.ID) {
		g.remove(rec.ID)
		if len(g.MemberIDs) == 0 {
			g.BaseTypeLabel = ""
		}
		return nil
	}

	if len(g.MemberIDs) >= maxSize {
		return ErrCompareLimitReached
	}

	label := rec.TypeLabel()
	if g.BaseTypeLabel == "" {
		g.BaseTypeLabel = label
	} else if g.BaseTypeLabel != label {
		return ErrCompareTypeMismatch
	}

	g.MemberIDs = append(g.MemberIDs, rec.ID)
	return nil
}

// Clear сбрасывает группу в исходное пустое состояние.
func (g *CompareGroup) Clear() {
	g.MemberIDs = nil
	g.BaseTypeLabel = ""
}

func (g *CompareGroup) remove(id string) {
	for i, memberID := range g.MemberIDs {
		if memberID == id {
			g.MemberIDs = append(g.MemberIDs[:i], g.MemberIDs[i+1:]...)
			return
		}
	}
}
