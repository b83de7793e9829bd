package search_test

import (
	"testing"

	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/usecase/search"
	"github.com/stretchr/testify/assert"
)

func TestGroupByCategory(t *testing.T) {
	t.Run("every candidate lands in exactly one group", func(t *testing.T) {
		input := []domain.LocationCandidate{
			candidate("1", "Paris, France", "city"),
			candidate("2", "Paris Street, Lyon", "road"),
			candidate("3", "Parma, Italy", "city"),
			candidate("4", "Parking Lot", "parking"),
		}

		rs := search.GroupByCategory(input)

		assert.Equal(t, []string{"city", "road", "parking"}, rs.Categories())
		assert.Equal(t, len(input), rs.Total())

		var flattened []string
		for _, c := range rs.Candidates() {
			flattened = append(flattened, c.ID)
		}
		assert.ElementsMatch(t, []string{"1", "2", "3", "4"}, flattened)

		for _, category := range rs.Categories() {
			for _, c := range rs.Get(category) {
				assert.Equal(t, category, c.Category)
			}
		}
	})

	t.Run("provider order is kept inside a group", func(t *testing.T) {
		rs := search.GroupByCategory([]domain.LocationCandidate{
			candidate("b", "Parma, Italy", "city"),
			candidate("a", "Paris, France", "city"),
		})

		city := rs.Get("city")
		if assert.Len(t, city, 2) {
			assert.Equal(t, "b", city[0].ID)
			assert.Equal(t, "a", city[1].ID)
		}
	})

	t.Run("empty input gives empty result set", func(t *testing.T) {
		rs := search.GroupByCategory(nil)
		assert.True(t, rs.IsEmpty())
		assert.Equal(t, 0, rs.Len())
	})
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "City", search.Heading("city"))
	assert.Equal(t, "Ägypten", search.Heading("ägypten"))
	assert.Equal(t, "House_number", search.Heading("house_number"))
	assert.Equal(t, "", search.Heading(""))
}
