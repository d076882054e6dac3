package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"studybuddy-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

var requiredGradeColumns = []string{"subject_id", "evaluation_type", "score", "max_score", "evaluation_date"}

// ImportGrades reads grades for one student from the first sheet of an xlsx
// workbook. Every row is validated before anything is written, and the rows
// are stored in a single transaction.
func (s *RecordStore) ImportGrades(ctx context.Context, studentID int64, data []byte) ([]int64, error) {
	rows, err := parseGradeSheet(data)
	if err != nil {
		return nil, err
	}
	batch := make([][]interface{}, 0, len(rows))
	for i, row := range rows {
		row.grade.StudentID = studentID
		args, err := s.gradeArgs(row.grade, row.opts)
		if err != nil {
			return nil, Validation(fmt.Sprintf("row %d: %s", rows[i].line, err.Error()))
		}
		batch = append(batch, args)
	}
	ids, err := s.insertGrades(ctx, batch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("student_id", studentID).Int("grades", len(ids)).Msg("grades imported")
	return ids, nil
}

type gradeRow struct {
	line  int
	grade models.NewGrade
	opts  models.GradeOptions
}

func parseGradeSheet(data []byte) ([]gradeRow, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, Validation("failed to open spreadsheet: " + err.Error())
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, Validation("spreadsheet has no sheets")
	}
	rows, err := file.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, Validation("failed to read rows: " + err.Error())
	}
	if len(rows) < 2 {
		return nil, Validation("spreadsheet needs a header and at least one row")
	}

	columns := make(map[string]int)
	for i, col := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredGradeColumns {
		if _, ok := columns[col]; !ok {
			return nil, Validation("missing required column: " + col)
		}
	}

	parsed := make([]gradeRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if isBlankRow(row) {
			continue
		}
		value := func(name string) string {
			if idx, ok := columns[name]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		subjectID, err := strconv.ParseInt(value("subject_id"), 10, 64)
		if err != nil {
			return nil, Validation(fmt.Sprintf("row %d: invalid subject_id %q", line, value("subject_id")))
		}
		score, err := strconv.ParseFloat(value("score"), 64)
		if err != nil {
			return nil, Validation(fmt.Sprintf("row %d: invalid score %q", line, value("score")))
		}
		maxScore, err := strconv.ParseFloat(value("max_score"), 64)
		if err != nil {
			return nil, Validation(fmt.Sprintf("row %d: invalid max_score %q", line, value("max_score")))
		}
		parsed = append(parsed, gradeRow{
			line: line,
			grade: models.NewGrade{
				SubjectID:      subjectID,
				EvaluationType: value("evaluation_type"),
				Score:          score,
				MaxScore:       maxScore,
				EvaluationDate: sheetDate(value("evaluation_date")),
			},
			opts: models.GradeOptions{
				Title:    value("title"),
				Term:     value("term"),
				Comments: value("comments"),
			},
		})
	}
	if len(parsed) == 0 {
		return nil, Validation("spreadsheet has no grade rows")
	}
	return parsed, nil
}

// sheetDate turns an Excel date serial into YYYY-MM-DD. Dates typed as
// text pass through unchanged.
func sheetDate(raw string) string {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
