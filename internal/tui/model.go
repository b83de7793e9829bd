// Package tui - терминальный виджет поиска адреса на bubbletea.
//
// Цикл Update здесь и есть единственный логический поток сессии: нажатия,
// срабатывания дебаунса (tea.Tick + токен) и ответы геокодера приходят сообщениями
// и применяются по очереди.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/domain/repository"
	"github.com/address-search/internal/usecase/search"
)

// debounceMsg - срабатывание таймера дебаунса для конкретного нажатия
type debounceMsg struct {
	token uint64
	query string
}

// lookupResultMsg - ответ геокодера
type lookupResultMsg struct {
	result search.LookupResult
}

// Options - зависимости виджета
type Options struct {
	Geocoder repository.GeocoderRepository
	Config   search.ControllerConfig
	// OnSelectLocation вызывается при выборе и сбросе выбора
	OnSelectLocation search.SelectLocationFunc
	Logger           *zap.Logger
}

// Model - состояние виджета
type Model struct {
	ctrl      *search.Controller
	presenter *search.Presenter
	session   *domain.SearchSession
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	input    textinput.Model
	cursor   int
	width    int
	quitting bool
	styles   styles
}

func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	session := domain.NewSearchSession()
	ctx, cancel := context.WithCancel(context.Background())

	input := textinput.New()
	input.Placeholder = search.InputPlaceholder
	input.Prompt = "> "
	input.CharLimit = 256

	return &Model{
		ctrl:      search.NewController(session, opts.Geocoder, opts.Config, opts.Logger),
		presenter: search.NewPresenter(session, opts.OnSelectLocation, opts.Logger),
		session:   session,
		logger:    opts.Logger,
		ctx:       ctx,
		cancel:    cancel,
		input:     input,
		styles:    defaultStyles(),
	}
}

// Selected - выбранный кандидат, nil если выбора нет
func (m *Model) Selected() *domain.LocationCandidate {
	return m.presenter.Selected()
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case debounceMsg:
		lookup, ok := m.ctrl.Fire(msg.token, msg.query)
		if !ok {
			return m, nil
		}
		return m, m.execute(lookup)

	case lookupResultMsg:
		if m.ctrl.Apply(msg.result) {
			m.clampCursor()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if !m.presenter.IsOpen() {
		switch msg.Type {
		case tea.KeyEnter, tea.KeySpace, tea.KeyDown:
			m.presenter.Open()
			m.cursor = 0
			return m, m.input.Focus()
		case tea.KeyEsc:
			return m.quit()
		case tea.KeyBackspace:
			// Backspace на закрытом триггере сбрасывает выбор
			if m.presenter.Selected() != nil {
				m.presenter.Clear()
			}
			return m, nil
		}
		if msg.String() == "q" {
			return m.quit()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.presenter.Dismiss()
		m.input.Blur()
		return m, nil

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.cursor < len(m.presenter.View().Items())-1 {
			m.cursor++
		}
		return m, nil

	case tea.KeyEnter:
		items := m.presenter.View().Items()
		if m.cursor >= len(items) {
			return m, nil
		}
		if err := m.presenter.Select(items[m.cursor].ID); err != nil {
			m.logger.Debug("Selection rejected", zap.Error(err))
			return m, nil
		}
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() == m.session.QueryText {
		return m, cmd
	}

	m.cursor = 0
	scheduled := m.ctrl.InputChanged(m.input.Value())
	if scheduled == nil {
		return m, cmd
	}
	return m, tea.Batch(cmd, debounce(*scheduled))
}

// debounce шлет debounceMsg через Delay; устаревший токен Controller отбросит сам
func debounce(s search.ScheduledLookup) tea.Cmd {
	return tea.Tick(s.Delay, func(time.Time) tea.Msg {
		return debounceMsg{token: s.Token, query: s.Query}
	})
}

func (m *Model) execute(lookup search.Lookup) tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl
	return func() tea.Msg {
		return lookupResultMsg{result: ctrl.Execute(ctx, lookup)}
	}
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.ctrl.Close()
	m.cancel()
	return m, tea.Quit
}

func (m *Model) clampCursor() {
	n := len(m.presenter.View().Items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	label := m.presenter.TriggerLabel()
	if m.presenter.Selected() == nil {
		b.WriteString(m.styles.placeholder.Render(label))
	} else {
		b.WriteString(m.styles.trigger.Render(label))
	}
	b.WriteString(" ▾\n")

	if m.presenter.IsOpen() {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.listView())
	}

	b.WriteString(m.styles.help.Render(m.helpText()))

	body := b.String()
	if m.width > 0 {
		body = lipgloss.NewStyle().MaxWidth(m.width).Render(body)
	}
	return m.styles.frame.Render(body)
}

func (m *Model) listView() string {
	view := m.presenter.View()
	if view.State != search.ListResults {
		return m.styles.message.Render(view.Message) + "\n"
	}

	var b strings.Builder
	index := 0
	for _, group := range view.Groups {
		b.WriteString(m.styles.heading.Render(group.Heading))
		b.WriteString("\n")

		for _, item := range group.Items {
			mark := "  "
			if item.Checked {
				mark = m.styles.check.Render("✓ ")
			}

			style := m.styles.item
			if index == m.cursor {
				style = m.styles.cursor
			}
			b.WriteString(style.Render(mark + item.Label))
			b.WriteString("\n")
			index++
		}
	}
	return b.String()
}

func (m *Model) helpText() string {
	if m.presenter.IsOpen() {
		return "↑/↓ move • enter select • esc close • ctrl+c quit"
	}
	if m.presenter.Selected() != nil {
		return "enter search • backspace clear • q quit"
	}
	return "enter search • q quit"
}
