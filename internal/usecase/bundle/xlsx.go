package bundle

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

var sheetNameCleaner = strings.NewReplacer(":", " ", `\`, " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

// decodeXLSX reads one course per sheet, named after the sheet.
func decodeXLSX(r io.Reader) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("bundle: open xlsx: %w", err)
	}
	defer f.Close()

	var doc Document
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("bundle: read sheet %q: %w", sheet, err)
		}
		questions := questionsFromRows(rows)
		if len(questions) == 0 {
			continue
		}
		doc.Courses = append(doc.Courses, Course{Name: strings.TrimSpace(sheet), Questions: questions})
	}
	return &doc, nil
}

func encodeXLSX(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	used := map[string]bool{}
	for i, course := range doc.Courses {
		name := uniqueSheetName(course.Name, used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("bundle: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("bundle: add sheet %q: %w", name, err)
		}

		if err := f.SetSheetRow(name, "A1", &[]string{"title", "answer"}); err != nil {
			return fmt.Errorf("bundle: write header: %w", err)
		}
		for j, q := range course.Questions {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &[]string{q.Title, q.Answer}); err != nil {
				return fmt.Errorf("bundle: write row: %w", err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("bundle: write xlsx: %w", err)
	}
	return nil
}

// uniqueSheetName makes a course name a valid, unused sheet name.
func uniqueSheetName(name string, used map[string]bool) string {
	base := strings.TrimSpace(sheetNameCleaner.Replace(name))
	base = strings.Trim(base, "'")
	if base == "" {
		base = "Course"
	}
	base = truncateRunes(base, maxSheetName)

	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		candidate = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
