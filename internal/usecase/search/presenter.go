package search

import (
	"github.com/address-search/internal/domain"
	apperrors "github.com/address-search/internal/pkg/errors"
	"github.com/address-search/internal/pkg/metrics"
	"go.uber.org/zap"
)

// SelectLocationFunc - колбэк хоста; nil означает сброс выбора
type SelectLocationFunc func(candidate *domain.LocationCandidate)

// Presenter владеет Selected и Open сессии, ResultSet только читает
type Presenter struct {
	session          *domain.SearchSession
	onSelectLocation SelectLocationFunc
	logger           *zap.Logger

	// lastValue - подпись последнего выбранного элемента для отметки в списке.
	// Повторный выбор того же элемента сбрасывает отметку, но не выбор.
	lastValue string
}

func NewPresenter(session *domain.SearchSession, onSelectLocation SelectLocationFunc, logger *zap.Logger) *Presenter {
	if onSelectLocation == nil {
		onSelectLocation = func(*domain.LocationCandidate) {}
	}
	return &Presenter{
		session:          session,
		onSelectLocation: onSelectLocation,
		logger:           logger,
	}
}

// TriggerLabel - подпись кнопки-триггера
func (p *Presenter) TriggerLabel() string {
	if p.session.Selected == nil {
		return PlaceholderLabel
	}
	return p.session.Selected.DisplayLabel()
}

func (p *Presenter) IsOpen() bool {
	return p.session.Open
}

// Open - Closed -> Open по нажатию на триггер
func (p *Presenter) Open() {
	p.session.Open = true
}

// Dismiss - Open -> Closed при закрытии снаружи. Запрос и результаты сохраняются.
func (p *Presenter) Dismiss() {
	p.session.Open = false
}

// View строит модель списка. Pending важнее старых результатов.
func (p *Presenter) View() ListView {
	if p.session.Pending {
		return ListView{State: ListLoading, Message: LoadingMessage}
	}

	rs := p.session.ResultSet
	if rs.IsEmpty() {
		return ListView{State: ListEmpty, Message: EmptyMessage}
	}

	groups := make([]GroupView, 0, rs.Len())
	for _, category := range rs.Categories() {
		candidates := rs.Get(category)
		items := make([]ItemView, 0, len(candidates))
		for _, c := range candidates {
			items = append(items, ItemView{
				ID:      c.ID,
				Label:   c.Label,
				Checked: p.lastValue != "" && p.lastValue == c.Label,
			})
		}
		groups = append(groups, GroupView{
			Category: category,
			Heading:  Heading(category),
			Items:    items,
		})
	}

	return ListView{State: ListResults, Groups: groups}
}

// Select выбирает кандидата из текущих результатов, вызывает колбэк хоста и закрывает список.
// Повторный выбор того же кандидата снова вызывает колбэк.
func (p *Presenter) Select(candidateID string) error {
	if !p.session.Open {
		return apperrors.ErrListClosed
	}
	if p.session.Pending {
		// во время загрузки список не показан, выбирать нечего
		return apperrors.ErrCandidateNotFound.WithDetails(map[string]interface{}{
			"candidate_id": candidateID,
		})
	}

	candidate, ok := p.session.ResultSet.Find(candidateID)
	if !ok {
		return apperrors.ErrCandidateNotFound.WithDetails(map[string]interface{}{
			"candidate_id": candidateID,
		})
	}

	if candidate.Label == p.lastValue {
		p.lastValue = ""
	} else {
		p.lastValue = candidate.Label
	}

	p.session.Selected = &candidate
	p.session.Open = false

	p.logger.Debug("Location selected",
		zap.String("id", candidate.ID),
		zap.String("label", candidate.Label))
	metrics.SelectionsTotal.WithLabelValues("selected").Inc()

	p.onSelectLocation(&candidate)
	return nil
}

// Clear - программный сброс выбора
func (p *Presenter) Clear() {
	p.session.Selected = nil
	p.lastValue = ""

	p.logger.Debug("Selection cleared")
	metrics.SelectionsTotal.WithLabelValues("cleared").Inc()

	p.onSelectLocation(nil)
}

// Selected возвращает копию выбранного кандидата
func (p *Presenter) Selected() *domain.LocationCandidate {
	if p.session.Selected == nil {
		return nil
	}
	c := *p.session.Selected
	return &c
}
