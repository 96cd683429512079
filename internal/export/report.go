// Package export renders attempt results as spreadsheet workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet   = "Summary"
	QuestionsSheet = "Questions"
)

const correctAnswerHeader = "Correct Answer"

var questionHeaders = []string{
	"#", "Question", "Type", "Your Answer", correctAnswerHeader,
	"Earned Points", "Max Points", "Correct", "Partial Credit", "Skipped",
}

// ReportOptions controls what the question sheet reveals.
type ReportOptions struct {
	// ShowCorrectAnswers adds the answer key column.
	ShowCorrectAnswers bool
}

// AttemptReport writes an xlsx workbook with a summary sheet and one row per
// reviewed question.
func AttemptReport(quizTitle string, attempt *models.QuizAttempt, details []models.DetailedResult, opts ReportOptions) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with a default "Sheet1"
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := writeSummary(f, quizTitle, attempt); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(QuestionsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := writeQuestions(f, details, opts); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, quizTitle string, attempt *models.QuizAttempt) error {
	completedAt := ""
	if attempt.CompletedAt != nil {
		completedAt = attempt.CompletedAt.Format(time.RFC3339)
	}

	rows := [][]interface{}{
		{"Quiz", quizTitle},
		{"Attempt", attempt.AttemptID},
		{"Started At", attempt.StartedAt.Format(time.RFC3339)},
		{"Completed At", completedAt},
		{"Score (%)", attempt.Score},
		{"Points", fmt.Sprintf("%d / %d", attempt.EarnedPoints, attempt.TotalPoints)},
		{"Correct Answers", fmt.Sprintf("%d / %d", attempt.CorrectAnswers, attempt.TotalQuestions)},
		{"Passing Score (%)", attempt.PassingScore},
		{"Passed", yesNo(attempt.Passed)},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	return f.SetColWidth(SummarySheet, "A", "A", 20)
}

func writeQuestions(f *excelize.File, details []models.DetailedResult, opts ReportOptions) error {
	header := make([]interface{}, 0, len(questionHeaders))
	for _, h := range questionHeaders {
		if h == correctAnswerHeader && !opts.ShowCorrectAnswers {
			continue
		}
		header = append(header, h)
	}
	if err := f.SetSheetRow(QuestionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, d := range details {
		row := []interface{}{i + 1, d.Prompt, string(d.Type), d.UserAnswerText}
		if opts.ShowCorrectAnswers {
			row = append(row, d.CorrectAnswerText)
		}
		row = append(row,
			d.EarnedPoints,
			d.MaxPoints,
			yesNo(d.Correct),
			yesNo(d.PartialCredit),
			yesNo(d.Skipped),
		)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(QuestionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write question row: %w", err)
		}
	}

	lastText := "D"
	if opts.ShowCorrectAnswers {
		lastText = "E"
	}
	return f.SetColWidth(QuestionsSheet, "B", lastText, 40)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
