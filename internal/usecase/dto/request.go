package dto

// SearchRequest - разовый поиск без дебаунса
type SearchRequest struct {
	Query string `query:"q" json:"q" validate:"max=256"`
	// Strict - вернуть ошибку геокодера вместо пустого результата
	Strict bool `query:"strict" json:"strict"`
}

// SessionInputRequest - изменение текста в поле ввода сессии
type SessionInputRequest struct {
	Text string `json:"text" validate:"max=256"`
}

// SelectCandidateRequest - выбор кандидата из текущих результатов
type SelectCandidateRequest struct {
	CandidateID string `json:"candidate_id" validate:"required"`
}
