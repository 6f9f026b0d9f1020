package bundle

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var headerRow = []string{"title", "answer"}

func isHeader(row []string) bool {
	return len(row) >= 1 && strings.EqualFold(strings.TrimSpace(row[0]), headerRow[0]) &&
		(len(row) < 2 || strings.EqualFold(strings.TrimSpace(row[1]), headerRow[1]))
}

// questionsFromRows turns title/answer rows into questions, skipping an
// optional header and blank rows.
func questionsFromRows(rows [][]string) []Question {
	var out []Question
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		var q Question
		if len(row) > 0 {
			q.Title = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			q.Answer = strings.TrimSpace(row[1])
		}
		if q.Title == "" && q.Answer == "" {
			continue
		}
		out = append(out, q)
	}
	return out
}

func decodeCSV(r io.Reader, courseName string) (*Document, error) {
	if strings.TrimSpace(courseName) == "" {
		return nil, errors.New("bundle: csv input needs a course name")
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("bundle: decode csv: %w", err)
	}
	return &Document{Courses: []Course{{Name: courseName, Questions: questionsFromRows(rows)}}}, nil
}

func encodeCSV(w io.Writer, doc *Document) error {
	if len(doc.Courses) != 1 {
		return fmt.Errorf("bundle: csv holds exactly one course, got %d", len(doc.Courses))
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(headerRow); err != nil {
		return err
	}
	for _, q := range doc.Courses[0].Questions {
		if err := writer.Write([]string{q.Title, q.Answer}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
