package nominatim

import (
	"bytes"
	"encoding/json"

	"github.com/address-search/internal/domain"
)

// flexString принимает как строку, так и число; число сохраняется в исходной записи
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n)
	return nil
}

// place - элемент ответа /search (format=jsonv2).
// В jsonv2 поле class переименовано в category, поэтому ключ группировки берется из type.
type place struct {
	PlaceID     flexString      `json:"place_id"`
	ID          flexString      `json:"id"`
	DisplayName string          `json:"display_name"`
	Label       string          `json:"label"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Class       string          `json:"class"`
	AddressType string          `json:"addresstype"`
	Name        string          `json:"name"`
	Lat         flexString      `json:"lat"`
	Lon         flexString      `json:"lon"`
	PlaceRank   int             `json:"place_rank"`
	Importance  float64         `json:"importance"`
	Address     *domain.Address `json:"address"`
	BoundingBox []string        `json:"boundingbox"`
}

// candidateSchema - обязательные поля кандидата до допуска в ResultSet
type candidateSchema struct {
	ID       string `json:"id" validate:"required"`
	Label    string `json:"label" validate:"required"`
	Category string `json:"category" validate:"required"`
	Lat      string `json:"lat" validate:"required,latitude"`
	Lon      string `json:"lon" validate:"required,longitude"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (p place) toCandidate(raw json.RawMessage) domain.LocationCandidate {
	category := firstNonEmpty(p.Type, p.Category)
	class := p.Class
	if class == "" && p.Type != "" {
		class = p.Category
	}

	return domain.LocationCandidate{
		ID:       firstNonEmpty(string(p.PlaceID), string(p.ID)),
		Label:    firstNonEmpty(p.DisplayName, p.Label),
		Category: category,
		Coordinates: domain.Coordinates{
			Lat: string(p.Lat),
			Lon: string(p.Lon),
		},
		Class:       class,
		AddressType: p.AddressType,
		Name:        p.Name,
		PlaceRank:   p.PlaceRank,
		Importance:  p.Importance,
		Address:     p.Address,
		BoundingBox: p.BoundingBox,
		Raw:         raw,
	}
}

func schemaOf(c domain.LocationCandidate) candidateSchema {
	return candidateSchema{
		ID:       c.ID,
		Label:    c.Label,
		Category: c.Category,
		Lat:      c.Coordinates.Lat,
		Lon:      c.Coordinates.Lon,
	}
}
