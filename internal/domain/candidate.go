package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Coordinates - координаты в том виде, в котором их вернул провайдер (строки jsonv2)
type Coordinates struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Float разбирает координаты в float64; исходная точность в Lat/Lon не меняется
func (c Coordinates) Float() (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(c.Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lat %q: %w", c.Lat, err)
	}
	lon, err = strconv.ParseFloat(c.Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lon %q: %w", c.Lon, err)
	}
	return lat, lon, nil
}

// Address - блок addressdetails ответа провайдера
type Address struct {
	Road         string `json:"road,omitempty"`
	HouseNumber  string `json:"house_number,omitempty"`
	Town         string `json:"town,omitempty"`
	City         string `json:"city,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	State        string `json:"state,omitempty"`
	Postcode     string `json:"postcode,omitempty"`
	Country      string `json:"country,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

// LocationCandidate - один результат геокодера
type LocationCandidate struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Category    string      `json:"category"`
	Coordinates Coordinates `json:"coordinates"`

	Class       string   `json:"class,omitempty"`
	AddressType string   `json:"address_type,omitempty"`
	Name        string   `json:"name,omitempty"`
	PlaceRank   int      `json:"place_rank,omitempty"`
	Importance  float64  `json:"importance,omitempty"`
	Address     *Address `json:"address,omitempty"`
	BoundingBox []string `json:"bounding_box,omitempty"`

	// Raw - исходный объект провайдера без изменений, для полей, которые виджет не разбирает
	Raw json.RawMessage `json:"raw,omitempty"`
}

// DisplayLabel возвращает подпись выбранного кандидата: "label (category)"
func (c LocationCandidate) DisplayLabel() string {
	return fmt.Sprintf("%s (%s)", c.Label, c.Category)
}
