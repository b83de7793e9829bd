package search

import "github.com/address-search/internal/domain"

// GroupByCategory раскладывает кандидатов по Category.
// Каждый кандидат попадает ровно в одну группу, порядок ответа сохраняется.
func GroupByCategory(candidates []domain.LocationCandidate) domain.ResultSet {
	var rs domain.ResultSet
	for _, c := range candidates {
		rs.Add(c)
	}
	return rs
}
