package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/choretracker/choretracker/pkg/assignment"
	log "github.com/sirupsen/logrus"
)

// HistoryRenderer turns an assignment history into an exportable document.
type HistoryRenderer interface {
	RenderHistory(history []assignment.Assignment) (string, error)
}

type CsvHistoryRendererImpl struct {
}

func NewCsvHistoryRenderer() *CsvHistoryRendererImpl {
	return &CsvHistoryRendererImpl{}
}

func (t *CsvHistoryRendererImpl) RenderHistory(history []assignment.Assignment) (string, error) {
	data := make([][]string, 0, len(history)+1)
	data = append(data, []string{"Week start", "Chore", "Occurrence", "Completed", "Completion date"})
	for _, a := range history {
		completionDate := ""
		if a.CompletionDate != nil {
			completionDate = a.CompletionDate.Format(time.DateOnly)
		}
		data = append(data, []string{
			a.WeekStartDate.Format(time.DateOnly),
			a.ChoreName,
			strconv.Itoa(a.OccurrenceNumber),
			strconv.FormatBool(a.IsCompleted),
			completionDate,
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
