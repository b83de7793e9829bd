package search

import (
	"unicode"
	"unicode/utf8"
)

const (
	PlaceholderLabel = "Select place..."
	InputPlaceholder = "Search the place..."
	LoadingMessage   = "Searching..."
	EmptyMessage     = "No results found."
)

// ListState - что показывает область списка
type ListState string

const (
	ListLoading ListState = "loading"
	ListEmpty   ListState = "empty"
	ListResults ListState = "results"
)

// ListView - модель отображения списка результатов
type ListView struct {
	State   ListState   `json:"state"`
	Message string      `json:"message,omitempty"`
	Groups  []GroupView `json:"groups,omitempty"`
}

// GroupView - категория с заголовком
type GroupView struct {
	Category string     `json:"category"`
	Heading  string     `json:"heading"`
	Items    []ItemView `json:"items"`
}

type ItemView struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Items возвращает элементы всех групп подряд, в порядке отображения
func (v ListView) Items() []ItemView {
	var items []ItemView
	for _, g := range v.Groups {
		items = append(items, g.Items...)
	}
	return items
}

// Heading - ключ категории с заглавной первой буквой
func Heading(category string) string {
	r, size := utf8.DecodeRuneInString(category)
	if r == utf8.RuneError {
		return category
	}
	return string(unicode.ToUpper(r)) + category[size:]
}
