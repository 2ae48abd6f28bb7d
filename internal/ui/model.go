// Package ui is the terminal front end of the task list. It renders the
// optimistic list held by a tasklist.Controller and turns key presses into
// API calls.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"task-list/internal/domain"
	"task-list/internal/tasklist"
	"task-list/internal/validation"
)

// loadedMsg carries the result of the initial list request
type loadedMsg struct {
	tasks []domain.Task
	err   error
}

// createdMsg carries the result of a submission
type createdMsg struct {
	tempID int64
	task   *domain.Task
	err    error
}

// completedMsg carries the result of a completion
type completedMsg struct {
	pending tasklist.PendingCompletion
	err     error
}

// Model implements tea.Model for the task list
type Model struct {
	ctx    context.Context
	api    tasklist.API
	list   *tasklist.Controller
	input  textinput.Model
	keys   KeyMap
	help   help.Model
	styles Styles
	now    func() time.Time

	cursor int
	loaded bool
	width  int
}

// NewModel creates the model. Requests run with ctx.
func NewModel(ctx context.Context, api tasklist.API, logger *log.Logger) Model {
	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.CharLimit = validation.DefaultTitleMaxLength
	input.Prompt = "> "
	input.Focus()

	return Model{
		ctx:    ctx,
		api:    api,
		list:   tasklist.New(logger),
		input:  input,
		keys:   DefaultKeyMap,
		help:   help.New(),
		styles: DefaultStyles(),
		now:    time.Now,
	}
}

// Tasks returns the tasks currently shown
func (m Model) Tasks() []domain.Task {
	return m.list.Tasks()
}

// Init implements tea.Model. Starts the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.api.ListTasks(m.ctx)
		return loadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) createCmd(p tasklist.Pending) tea.Cmd {
	return func() tea.Msg {
		task, err := m.api.CreateTask(m.ctx, p.Title)
		return createdMsg{tempID: p.TempID, task: task, err: err}
	}
}

func (m Model) completeCmd(p tasklist.PendingCompletion) tea.Cmd {
	return func() tea.Msg {
		err := m.api.CompleteTask(m.ctx, p.Task.ID)
		return completedMsg{pending: p, err: err}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.list.ApplyLoad(msg.tasks, msg.err)
		m.loaded = true
		m.clampCursor()
		return m, nil

	case createdMsg:
		m.list.ResolveSubmit(msg.tempID, msg.task, msg.err)
		m.clampCursor()
		return m, nil

	case completedMsg:
		m.list.ResolveComplete(msg.pending, msg.err)
		m.clampCursor()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			return m, nil
		}
		p := m.list.BeginSubmit(title, m.now())
		m.input.Reset()
		return m, m.createCmd(p)

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		tasks := m.list.Tasks()
		if m.cursor >= len(tasks) {
			return m, nil
		}
		p, ok := m.list.BeginComplete(tasks[m.cursor].ID)
		if !ok {
			return m, nil
		}
		m.clampCursor()
		return m, m.completeCmd(p)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) clampCursor() {
	if n := m.list.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Tasks"))
	b.WriteString("\n")

	tasks := m.list.Tasks()
	if len(tasks) == 0 {
		if m.loaded {
			b.WriteString(m.styles.EmptyTitle.Render("No tasks yet"))
			b.WriteString("\n")
			b.WriteString(m.styles.EmptyHint.Render("Add your first task below"))
		} else {
			b.WriteString(m.styles.EmptyHint.Render("Loading..."))
		}
		b.WriteString("\n")
	}

	for i, task := range tasks {
		b.WriteString(m.renderTask(i, task))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderTask(i int, task domain.Task) string {
	position := m.styles.Position.Render(fmt.Sprintf("%3d.", i+1))
	line := position + " " + task.Title

	switch {
	case m.list.IsPending(task.ID):
		return m.styles.Pending.Render(line + " (saving)")
	case i == m.cursor:
		return m.styles.Selected.Render("▸" + line)
	default:
		return m.styles.Task.Render(line)
	}
}

// Run starts the terminal program and blocks until the user quits or ctx is
// cancelled
func Run(ctx context.Context, api tasklist.API, logger *log.Logger, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(NewModel(ctx, api, logger), opts...)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
