package ui

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/domain"
	"task-list/internal/errors"
)

// fakeAPI implements tasklist.API with canned answers
type fakeAPI struct {
	tasks       []domain.Task
	listErr     error
	createErr   error
	completeErr error
	nextID      int64
	completed   []int64
}

func (f *fakeAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return f.tasks, f.listErr
}

func (f *fakeAPI) CreateTask(ctx context.Context, title string) (*domain.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	return &domain.Task{ID: f.nextID, Title: title, Position: int64(len(f.tasks))}, nil
}

func (f *fakeAPI) CompleteTask(ctx context.Context, id int64) error {
	f.completed = append(f.completed, id)
	return f.completeErr
}

func newTestModel(api *fakeAPI) Model {
	m := NewModel(context.Background(), api, nil)
	m.now = func() time.Time { return time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC) }
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func load(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.loadCmd()()
	m, _ = update(t, m, msg)
	return m
}

func TestModel_LoadShowsTasks(t *testing.T) {
	api := &fakeAPI{tasks: []domain.Task{{ID: 1, Title: "Buy milk"}, {ID: 2, Title: "Walk dog"}}}
	m := load(t, newTestModel(api))

	view := m.View()
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "Walk dog")
	assert.NotContains(t, view, "No tasks yet")
}

func TestModel_EmptyState(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	assert.Contains(t, m.View(), "Loading...")

	m = load(t, m)
	view := m.View()
	assert.Contains(t, view, "No tasks yet")
	assert.Contains(t, view, "Add your first task below")
}

func TestModel_LoadFailureShowsEmptyList(t *testing.T) {
	m := load(t, newTestModel(&fakeAPI{listErr: stderrors.New("connection refused")}))

	view := m.View()
	assert.Contains(t, view, "No tasks yet")
	assert.NotContains(t, view, "connection refused")
}

func TestModel_SubmitIsOptimistic(t *testing.T) {
	api := &fakeAPI{}
	m := load(t, newTestModel(api))

	m = typeText(t, m, "  Write report  ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// Visible before the request has run
	tasks := m.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0].Title)
	assert.Less(t, tasks[0].ID, int64(0))
	assert.Contains(t, m.View(), "(saving)")
	assert.Equal(t, "", m.input.Value())

	m, _ = update(t, m, cmd())
	tasks = m.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(1), tasks[0].ID)
	assert.NotContains(t, m.View(), "(saving)")
}

func TestModel_SubmitFailureRollsBack(t *testing.T) {
	api := &fakeAPI{
		tasks:     []domain.Task{{ID: 1, Title: "existing"}},
		createErr: stderrors.New("server responded 500"),
	}
	m := load(t, newTestModel(api))

	m = typeText(t, m, "doomed")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.Tasks(), 2)

	m, _ = update(t, m, cmd())
	assert.Equal(t, []domain.Task{{ID: 1, Title: "existing"}}, m.Tasks())
	assert.NotContains(t, m.View(), "server responded 500")
}

func TestModel_SubmitIgnoresBlankInput(t *testing.T) {
	m := load(t, newTestModel(&fakeAPI{}))

	m = typeText(t, m, "   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.Tasks())
}

func TestModel_EscapeClearsInput(t *testing.T) {
	m := load(t, newTestModel(&fakeAPI{}))

	m = typeText(t, m, "draft")
	assert.Equal(t, "draft", m.input.Value())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", m.input.Value())
}

func TestModel_CompleteSelected(t *testing.T) {
	api := &fakeAPI{tasks: []domain.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"}}}
	m := load(t, newTestModel(api))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.NotNil(t, cmd)
	assert.Len(t, m.Tasks(), 2)

	m, _ = update(t, m, cmd())
	assert.Equal(t, []int64{2}, api.completed)
	assert.Equal(t, "A", m.Tasks()[0].Title)
	assert.Equal(t, "C", m.Tasks()[1].Title)
}

func TestModel_CompleteFailureRestores(t *testing.T) {
	api := &fakeAPI{
		tasks:       []domain.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
		completeErr: stderrors.New("server responded 500"),
	}
	m := load(t, newTestModel(api))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	require.Len(t, m.Tasks(), 2)
	assert.Equal(t, "A", m.Tasks()[0].Title)
}

func TestModel_CompleteNotFoundStaysRemoved(t *testing.T) {
	api := &fakeAPI{
		tasks:       []domain.Task{{ID: 1, Title: "A"}},
		completeErr: errors.NewNotFoundError("task", "1"),
	}
	m := load(t, newTestModel(api))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	m, _ = update(t, m, cmd())
	assert.Empty(t, m.Tasks())
}

func TestModel_CursorStaysInRange(t *testing.T) {
	api := &fakeAPI{tasks: []domain.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}}
	m := load(t, newTestModel(api))

	for i := 0; i < 5; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 1, m.cursor)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	m, _ = update(t, m, cmd())
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 3; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, 0, m.cursor)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_HelpListsBindings(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	view := m.View()
	assert.True(t, strings.Contains(view, "add task"))
	assert.True(t, strings.Contains(view, "complete"))
}
