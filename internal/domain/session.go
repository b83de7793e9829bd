package domain

// SearchSession - состояние одного экземпляра виджета.
// QueryText, Pending и ResultSet меняет только контроллер запросов,
// Selected и Open - только презентер.
type SearchSession struct {
	QueryText string
	Pending   bool
	ResultSet ResultSet

	Selected *LocationCandidate
	Open     bool
}

func NewSearchSession() *SearchSession {
	return &SearchSession{}
}
