package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/interview-insights/internal/ai"
	"github.com/spigell/interview-insights/internal/feedback"
)

func sampleFeedback() []feedback.InterviewFeedback {
	normalizer := feedback.NewNormalizer(nil)
	return normalizer.NormalizeAll([]feedback.RawFeedback{
		{
			FeedbackID:     "f1",
			InterviewerID:  "7",
			Recommendation: feedback.StrongProceed,
			SubmittedAt:    time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC),
			FeedbackData: map[string]feedback.Scalar{
				"1_problemSolving": 9.0,
				"1_codeQuality":    4.0,
				"2_isTeamPlayer":   true,
				"comments":         "Great energy",
			},
		},
		{
			FeedbackID:     "f2",
			InterviewerID:  "8",
			Recommendation: "ON_HOLD",
			FeedbackData:   map[string]feedback.Scalar{},
		},
	})
}

func sampleReport(analysis *ai.Analysis) *Report {
	return New(Header{
		CandidateJobID: "42",
		CandidateName:  "Ada Lovelace",
		CandidateEmail: "ada@example.com",
		JobTitle:       "Backend Engineer",
		Department:     "Platform",
		Status:         "INTERVIEWING",
		CurrentRound:   2,
	}, sampleFeedback(), analysis)
}

func TestNewComputesSummary(t *testing.T) {
	t.Parallel()

	r := sampleReport(nil)

	if r.Summary.Total != 2 || r.Summary.HireCount != 1 || r.Summary.RejectCount != 1 {
		t.Fatalf("unexpected summary: %+v", r.Summary)
	}
	if r.Summary.HireRatio != 0.5 {
		t.Fatalf("expected hire ratio 0.5, got %v", r.Summary.HireRatio)
	}

	empty := New(Header{CandidateJobID: "1"}, nil, nil)
	if empty.Feedback == nil || empty.Summary.Total != 0 || empty.Summary.AverageRating != 0 {
		t.Fatalf("unexpected empty report: %+v", empty)
	}
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	analysis := ai.DefaultAnalysis()
	analysis.KeyStrengths = []ai.Point{{Area: "Go", Details: "Idiomatic code"}}

	var buf bytes.Buffer
	if err := sampleReport(analysis).WriteText(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Ada Lovelace (ada@example.com)",
		"Backend Engineer (Platform)",
		"INTERVIEWING (round 2)",
		"1 of 2 (50%)",
		"Interviewer 7",
		"Strong Hire",
		"Technical Skills:",
		"Problem Solving",
		"Overall Assessment:",
		"Submitted:",
		"unknown",
		"AI analysis",
		"+ Go:",
		"culture 75%, technical 80%, growth 75%",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := sampleReport(nil).WriteJSON(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if _, ok := decoded["analysis"]; ok {
		t.Fatalf("expected analysis to be omitted")
	}
	if items, ok := decoded["feedback"].([]any); !ok || len(items) != 2 {
		t.Fatalf("unexpected feedback: %v", decoded["feedback"])
	}
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.xlsx")
	r := sampleReport(ai.DefaultAnalysis())

	if err := r.WriteXLSX(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if want := []string{summarySheet, sectionsSheet, analysisSheet}; strings.Join(sheets, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	summary, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if summary[0][1] != "42" || summary[1][1] != "Ada Lovelace" {
		t.Fatalf("unexpected summary rows: %v", summary[:2])
	}

	rows, err := f.GetRows(sectionsSheet)
	if err != nil {
		t.Fatalf("read sections: %v", err)
	}

	sectionCount := 0
	for _, fb := range r.Feedback {
		sectionCount += len(fb.Sections)
	}
	if len(rows) != sectionCount+1 {
		t.Fatalf("expected %d rows, got %d", sectionCount+1, len(rows))
	}
	if rows[0][0] != "Feedback ID" || rows[1][0] != "f1" || rows[1][5] != "Technical Skills" {
		t.Fatalf("unexpected section rows: %v", rows[:2])
	}
}

func TestDumpToTmpFile(t *testing.T) {
	t.Parallel()

	name, err := sampleReport(nil).DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(name)

	f, err := excelize.OpenFile(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if got := len(f.GetSheetList()); got != 2 {
		t.Fatalf("expected 2 sheets without analysis, got %d", got)
	}
}

func TestWriteAnalysisText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := sampleReport(nil).WriteAnalysisText(&buf); err == nil {
		t.Fatalf("expected error without analysis")
	}

	if err := sampleReport(ai.DefaultAnalysis()).WriteAnalysisText(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "No specific action recommended at this time.") || strings.Contains(out, "Ada Lovelace") {
		t.Fatalf("unexpected analysis output:\n%s", out)
	}
}
