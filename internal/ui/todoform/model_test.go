package todoform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/model"
)

func TestBuildPatchForCreate(t *testing.T) {
	fb := formBindings{
		title:    "  Buy milk ",
		priority: model.PriorityHigh,
		dueDate:  "2024-05-02",
		listID:   "groceries",
		tags:     "errand, , shop",
	}

	p := buildPatch(fb, nil, time.UTC)

	require.NotNil(t, p.Title)
	assert.Equal(t, "Buy milk", *p.Title)
	assert.Equal(t, model.PriorityHigh, *p.Priority)
	assert.Equal(t, "groceries", *p.ListID)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), *p.DueDate)
	assert.Equal(t, []string{"errand", "shop"}, p.Tags)
	assert.Nil(t, p.Notes)
	assert.Nil(t, p.Important)
	assert.Nil(t, p.Recurrence)
}

func TestBuildPatchForEditOnlySetsChanges(t *testing.T) {
	due := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	original := model.TodoItem{
		ID:       "t1",
		Title:    "Buy milk",
		ListID:   "groceries",
		DueDate:  &due,
		Tags:     []string{"errand"},
		Priority: model.PriorityLow,
	}

	fb := bindingsFor(original, time.UTC)
	assert.True(t, buildPatch(fb, &original, time.UTC).IsEmpty())

	fb.important = true
	fb.recurrence = model.RecurrenceWeekly
	p := buildPatch(fb, &original, time.UTC)

	assert.Nil(t, p.Title)
	assert.Nil(t, p.DueDate)
	assert.Equal(t, true, *p.Important)
	assert.Equal(t, &model.TodoRecurrence{Type: model.RecurrenceWeekly, Interval: 1}, p.Recurrence)
}

func TestValidateOptionalDate(t *testing.T) {
	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("2024-12-31"))
	assert.Error(t, validateOptionalDate("31/12/2024"))
	assert.Error(t, validateRequired("Title")("   "))
}
