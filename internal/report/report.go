// Package report composes normalized feedback, its aggregate and an optional
// AI analysis into a single view of one candidate.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spigell/interview-insights/internal/ai"
	"github.com/spigell/interview-insights/internal/feedback"
)

// Header identifies the candidate job a report is about.
type Header struct {
	CandidateJobID string `json:"candidateJobId"`
	CandidateName  string `json:"candidateName,omitempty"`
	CandidateEmail string `json:"candidateEmail,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
	Department     string `json:"department,omitempty"`
	Status         string `json:"status,omitempty"`
	CurrentRound   int    `json:"currentRound,omitempty"`
}

type Report struct {
	Header      Header                       `json:"header"`
	Summary     feedback.AggregateSummary    `json:"summary"`
	Feedback    []feedback.InterviewFeedback `json:"feedback"`
	Analysis    *ai.Analysis                 `json:"analysis,omitempty"`
	GeneratedAt time.Time                    `json:"generatedAt"`
}

// New builds a report and computes the aggregate over feedbacks. The AI
// analysis is kept alongside and never influences the aggregate.
func New(header Header, feedbacks []feedback.InterviewFeedback, analysis *ai.Analysis) *Report {
	if feedbacks == nil {
		feedbacks = []feedback.InterviewFeedback{}
	}

	return &Report{
		Header:      header,
		Summary:     feedback.Aggregate(feedbacks),
		Feedback:    feedbacks,
		Analysis:    analysis,
		GeneratedAt: time.Now().UTC(),
	}
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText renders a human readable report.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Candidate job:\t%s\n", r.Header.CandidateJobID)
	if r.Header.CandidateName != "" {
		fmt.Fprintf(tw, "Candidate:\t%s\n", withDetail(r.Header.CandidateName, r.Header.CandidateEmail))
	}
	if r.Header.JobTitle != "" {
		fmt.Fprintf(tw, "Job:\t%s\n", withDetail(r.Header.JobTitle, r.Header.Department))
	}
	if r.Header.Status != "" {
		fmt.Fprintf(tw, "Status:\t%s (round %d)\n", r.Header.Status, r.Header.CurrentRound)
	}

	fmt.Fprintf(tw, "Average rating:\t%.1f/5\n", r.Summary.AverageRating)
	fmt.Fprintf(tw, "Hire recommendations:\t%d of %d (%.0f%%)\n", r.Summary.HireCount, r.Summary.Total, r.Summary.HireRatio*100)
	fmt.Fprintf(tw, "Reject recommendations:\t%d\n", r.Summary.RejectCount)

	for _, fb := range r.Feedback {
		fmt.Fprintf(tw, "\n%s\t%s\n", fb.Interviewer, fb.RecommendationLabel)
		fmt.Fprintf(tw, "  Submitted:\t%s\n", formatDate(fb.Date))
		fmt.Fprintf(tw, "  Overall:\t%.1f/5\n", fb.OverallRating)
		for _, section := range fb.Sections {
			fmt.Fprintf(tw, "  %s:\t%.1f/5\n", section.Title, section.Rating)
			fmt.Fprintf(tw, "    Notes:\t%s\n", section.Notes)
			if len(section.Strengths) > 0 {
				fmt.Fprintf(tw, "    Strengths:\t%s\n", strings.Join(section.Strengths, "; "))
			}
			if len(section.Weaknesses) > 0 {
				fmt.Fprintf(tw, "    Weaknesses:\t%s\n", strings.Join(section.Weaknesses, "; "))
			}
		}
	}

	if r.Analysis != nil {
		writeAnalysis(tw, r.Analysis)
	}

	return tw.Flush()
}

// WriteAnalysisText renders only the AI analysis.
func (r *Report) WriteAnalysisText(w io.Writer) error {
	if r.Analysis == nil {
		return errors.New("report has no AI analysis")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeAnalysis(tw, r.Analysis)
	return tw.Flush()
}

func writeAnalysis(w io.Writer, a *ai.Analysis) {
	fmt.Fprintf(w, "\nAI analysis\t\n")
	fmt.Fprintf(w, "  Summary:\t%s\n", a.OverallSummary)
	for _, p := range a.KeyStrengths {
		fmt.Fprintf(w, "  + %s:\t%s\n", p.Area, p.Details)
	}
	for _, p := range a.KeyWeaknesses {
		fmt.Fprintf(w, "  - %s:\t%s\n", p.Area, p.Details)
	}
	fmt.Fprintf(w, "  Fit:\tculture %.0f%%, technical %.0f%%, growth %.0f%%\n", a.Fit.CultureFit, a.Fit.TechnicalFit, a.Fit.GrowthPotential)
	fmt.Fprintf(w, "  Recommended action:\t%s\n", a.RecommendedAction)
	fmt.Fprintf(w, "  Confidence:\t%.0f%%\n", a.ConfidenceScore)
}

// DumpToTmpFile writes the report as xlsx into a temporary file and returns its name.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "interview_report_*.xlsx")
	if err != nil {
		return "", err
	}
	name := file.Name()
	if err := file.Close(); err != nil {
		return "", err
	}

	if err := r.WriteXLSX(name); err != nil {
		return "", err
	}

	return name, nil
}

func withDetail(value, detail string) string {
	if detail == "" {
		return value
	}
	return fmt.Sprintf("%s (%s)", value, detail)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(time.DateTime)
}
