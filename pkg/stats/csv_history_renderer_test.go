package stats

import (
	"testing"
	"time"

	"github.com/choretracker/choretracker/pkg/assignment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvHistoryRendererImpl_RenderHistory(t *testing.T) {
	renderer := NewCsvHistoryRenderer()

	t.Run("renders header and one row per assignment", func(t *testing.T) {
		completion := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
		history := []assignment.Assignment{
			{
				ChoreName:        "Dishes",
				WeekStartDate:    time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
				OccurrenceNumber: 1,
				IsCompleted:      true,
				CompletionDate:   &completion,
			},
			{
				ChoreName:        "Dishes",
				WeekStartDate:    time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
				OccurrenceNumber: 2,
			},
		}

		rendered, err := renderer.RenderHistory(history)

		require.NoError(t, err)
		expected := "Week start,Chore,Occurrence,Completed,Completion date\n" +
			"2024-06-03,Dishes,1,true,2024-06-05\n" +
			"2024-06-03,Dishes,2,false,\n"
		assert.Equal(t, expected, rendered)
	})

	t.Run("renders only the header for an empty history", func(t *testing.T) {
		rendered, err := renderer.RenderHistory(nil)

		require.NoError(t, err)
		assert.Equal(t, "Week start,Chore,Occurrence,Completed,Completion date\n", rendered)
	})
}
