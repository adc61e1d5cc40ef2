package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	sectionsSheet = "Sections"
	analysisSheet = "AI Analysis"
)

var sectionsHeader = []any{
	"Feedback ID", "Interviewer", "Submitted", "Recommendation", "Overall",
	"Section", "Rating", "Notes", "Strengths", "Weaknesses",
}

// WriteXLSX saves the report as a spreadsheet with a summary sheet, one row
// per feedback section and, when present, the AI analysis.
func (r *Report) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := r.writeSummarySheet(f); err != nil {
		return err
	}

	if err := r.writeSectionsSheet(f); err != nil {
		return err
	}

	if r.Analysis != nil {
		if err := r.writeAnalysisSheet(f); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}

func (r *Report) writeSummarySheet(f *excelize.File) error {
	rows := [][]any{
		{"Candidate job", r.Header.CandidateJobID},
		{"Candidate", r.Header.CandidateName},
		{"Email", r.Header.CandidateEmail},
		{"Job", r.Header.JobTitle},
		{"Department", r.Header.Department},
		{"Status", r.Header.Status},
		{"Average rating", r.Summary.AverageRating},
		{"Hire recommendations", r.Summary.HireCount},
		{"Reject recommendations", r.Summary.RejectCount},
		{"Total feedback", r.Summary.Total},
		{"Hire ratio", r.Summary.HireRatio},
		{"Generated at", r.GeneratedAt.Format(time.RFC3339)},
	}

	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}

	return f.SetColWidth(summarySheet, "A", "A", 24)
}

func (r *Report) writeSectionsSheet(f *excelize.File) error {
	if _, err := f.NewSheet(sectionsSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sectionsSheet, err)
	}

	rows := [][]any{sectionsHeader}
	for _, fb := range r.Feedback {
		for _, section := range fb.Sections {
			rows = append(rows, []any{
				fb.ID,
				fb.Interviewer,
				formatDate(fb.Date),
				fb.RecommendationLabel,
				fb.OverallRating,
				section.Title,
				section.Rating,
				section.Notes,
				strings.Join(section.Strengths, "; "),
				strings.Join(section.Weaknesses, "; "),
			})
		}
	}

	if err := writeRows(f, sectionsSheet, rows); err != nil {
		return err
	}

	return boldHeader(f, sectionsSheet)
}

func (r *Report) writeAnalysisSheet(f *excelize.File) error {
	if _, err := f.NewSheet(analysisSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", analysisSheet, err)
	}

	a := r.Analysis
	rows := [][]any{
		{"Summary", a.OverallSummary},
		{"Culture fit", a.Fit.CultureFit},
		{"Technical fit", a.Fit.TechnicalFit},
		{"Growth potential", a.Fit.GrowthPotential},
		{"Recommended action", a.RecommendedAction},
		{"Confidence", a.ConfidenceScore},
	}
	for _, p := range a.KeyStrengths {
		rows = append(rows, []any{"Strength", p.Area, p.Details})
	}
	for _, p := range a.KeyWeaknesses {
		rows = append(rows, []any{"Weakness", p.Area, p.Details})
	}

	return writeRows(f, analysisSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func boldHeader(f *excelize.File, sheet string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	return f.SetRowStyle(sheet, 1, 1, style)
}
