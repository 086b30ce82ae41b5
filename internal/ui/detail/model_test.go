package detail

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/keys"
	"github.com/nhle/dayboard/internal/model"
)

var testNow = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC) // a Wednesday

func TestRenderShowsStepsFilesAndRecurrence(t *testing.T) {
	due := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	m := New(keys.DefaultKeyMap(), func() time.Time { return testNow }, 80, 40)
	m.SetTodo(&model.TodoItem{
		ID:      "t1",
		Title:   "Water plants",
		DueDate: &due,
		Steps: []model.TodoStep{
			{ID: "s1", Title: "Fill can", Completed: true},
			{ID: "s2", Title: "Balcony"},
		},
		Files:      []model.TodoFile{{Name: "plan.pdf", Size: 2048}},
		Recurrence: &model.TodoRecurrence{Type: model.RecurrenceWeekly, Interval: 1},
	}, "Home")

	out := m.renderContent()
	assert.Contains(t, out, "Water plants")
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "Steps (1/2)")
	assert.Contains(t, out, "[x] Fill can")
	assert.Contains(t, out, "plan.pdf")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "next Mon Jan 8")
	assert.Contains(t, out, "No notes")
}

func TestDescribeRecurrenceReportsInvalidRule(t *testing.T) {
	got := describeRecurrence(model.TodoItem{
		Recurrence: &model.TodoRecurrence{Type: model.RecurrenceCustom},
	}, testNow)
	assert.Contains(t, got, "invalid")
}

func TestBackKeyEmitsBackMsg(t *testing.T) {
	m := New(keys.DefaultKeyMap(), nil, 80, 40)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.5 MB", humanSize(1536*1024))
}
