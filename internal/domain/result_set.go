package domain

import "encoding/json"

// ResultSet - кандидаты, сгруппированные по категории.
// Порядок категорий - порядок первого появления в ответе провайдера,
// порядок внутри категории - порядок ответа. После построения не изменяется.
type ResultSet struct {
	categories []string
	groups     map[string][]LocationCandidate
}

// ResultGroup - одна категория с кандидатами
type ResultGroup struct {
	Category   string              `json:"category"`
	Candidates []LocationCandidate `json:"candidates"`
}

// Add добавляет кандидата в конец его категории
func (r *ResultSet) Add(c LocationCandidate) {
	if r.groups == nil {
		r.groups = make(map[string][]LocationCandidate)
	}
	if _, ok := r.groups[c.Category]; !ok {
		r.categories = append(r.categories, c.Category)
	}
	r.groups[c.Category] = append(r.groups[c.Category], c)
}

// Categories возвращает ключи в порядке первого появления
func (r ResultSet) Categories() []string {
	out := make([]string, len(r.categories))
	copy(out, r.categories)
	return out
}

func (r ResultSet) Get(category string) []LocationCandidate {
	return r.groups[category]
}

// Len - количество категорий
func (r ResultSet) Len() int {
	return len(r.categories)
}

// Total - количество кандидатов во всех категориях
func (r ResultSet) Total() int {
	total := 0
	for _, items := range r.groups {
		total += len(items)
	}
	return total
}

func (r ResultSet) IsEmpty() bool {
	return len(r.categories) == 0
}

// Candidates возвращает всех кандидатов в порядке группировки
func (r ResultSet) Candidates() []LocationCandidate {
	out := make([]LocationCandidate, 0, r.Total())
	for _, category := range r.categories {
		out = append(out, r.groups[category]...)
	}
	return out
}

// Find ищет кандидата по ID; при совпадении ID берется первый в порядке группировки
func (r ResultSet) Find(id string) (LocationCandidate, bool) {
	for _, category := range r.categories {
		for _, c := range r.groups[category] {
			if c.ID == id {
				return c, true
			}
		}
	}
	return LocationCandidate{}, false
}

func (r ResultSet) Groups() []ResultGroup {
	out := make([]ResultGroup, 0, len(r.categories))
	for _, category := range r.categories {
		out = append(out, ResultGroup{Category: category, Candidates: r.groups[category]})
	}
	return out
}

// MarshalJSON сериализует набор массивом групп, чтобы сохранить порядок категорий
func (r ResultSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Groups())
}
