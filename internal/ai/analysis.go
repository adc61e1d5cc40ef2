package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/spigell/interview-insights/internal/feedback"
)

const (
	defaultSummary         = "No comprehensive summary available for this candidate."
	defaultStrengthArea    = "Unspecified Strength"
	defaultWeaknessArea    = "Unspecified Weakness"
	defaultDetails         = "Additional details not provided"
	defaultAction          = "No specific action recommended at this time."
	defaultCultureFit      = 75
	defaultTechnicalFit    = 80
	defaultGrowthPotential = 75
	defaultConfidence      = 85
)

// Point is a single strength or weakness in an AI analysis.
type Point struct {
	Area    string `json:"area"`
	Details string `json:"details"`
}

// FitAssessment holds percentage-style fit scores.
type FitAssessment struct {
	CultureFit      float64 `json:"cultureFit"`
	TechnicalFit    float64 `json:"technicalFit"`
	GrowthPotential float64 `json:"growthPotential"`
}

// Analysis is the free-form candidate summary produced by an LLM. It is shown
// next to the normalized feedback and never merged into it.
type Analysis struct {
	OverallSummary    string        `json:"overallSummary"`
	KeyStrengths      []Point       `json:"keyStrengths"`
	KeyWeaknesses     []Point       `json:"keyWeaknesses"`
	Fit               FitAssessment `json:"fitAssessment"`
	RecommendedAction string        `json:"recommendedAction"`
	ConfidenceScore   float64       `json:"confidenceScore"`
	Raw               string        `json:"-"`
}

// Request carries everything an Analyzer may use.
type Request struct {
	CandidateJobID string
	JobDescription string
	Resume         string
	Feedback       []feedback.InterviewFeedback
}

// Analyzer produces an AI analysis for one candidate job.
type Analyzer interface {
	Analyze(ctx context.Context, req *Request) (*Analysis, error)
}

// DefaultAnalysis is shown when no analysis could be obtained.
func DefaultAnalysis() *Analysis {
	return &Analysis{
		OverallSummary: defaultSummary,
		KeyStrengths:   []Point{},
		KeyWeaknesses:  []Point{},
		Fit: FitAssessment{
			CultureFit:      defaultCultureFit,
			TechnicalFit:    defaultTechnicalFit,
			GrowthPotential: defaultGrowthPotential,
		},
		RecommendedAction: defaultAction,
		ConfidenceScore:   defaultConfidence,
	}
}

// ParseAnalysis reads an analysis JSON document, filling every missing field
// with its default.
func ParseAnalysis(raw string) (*Analysis, error) {
	cleaned := ExtractJSON(raw)
	if !gjson.Valid(cleaned) {
		return nil, errors.New("analysis payload is not valid JSON")
	}

	doc := gjson.Parse(cleaned)
	if !doc.IsObject() {
		return nil, errors.New("analysis payload is not a JSON object")
	}

	analysis := DefaultAnalysis()
	analysis.Raw = raw

	if summary := strings.TrimSpace(doc.Get("overallSummary").String()); summary != "" {
		analysis.OverallSummary = summary
	}
	if action := strings.TrimSpace(doc.Get("recommendedAction").String()); action != "" {
		analysis.RecommendedAction = action
	}

	analysis.KeyStrengths = points(doc.Get("strengthsWeaknesses.keyStrengths"), defaultStrengthArea)
	analysis.KeyWeaknesses = points(doc.Get("strengthsWeaknesses.keyWeaknesses"), defaultWeaknessArea)

	setNumber(&analysis.Fit.CultureFit, doc.Get("fitAssessment.cultureFit"))
	setNumber(&analysis.Fit.TechnicalFit, doc.Get("fitAssessment.technicalFit"))
	setNumber(&analysis.Fit.GrowthPotential, doc.Get("fitAssessment.growthPotential"))
	setNumber(&analysis.ConfidenceScore, doc.Get("confidenceScore"))

	return analysis, nil
}

// ExtractJSON strips markdown code fences that LLMs like to wrap JSON in.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func points(list gjson.Result, defaultArea string) []Point {
	result := []Point{}
	if !list.IsArray() {
		return result
	}

	list.ForEach(func(_, item gjson.Result) bool {
		point := Point{
			Area:    strings.TrimSpace(item.Get("area").String()),
			Details: strings.TrimSpace(item.Get("details").String()),
		}
		if point.Area == "" {
			point.Area = defaultArea
		}
		if point.Details == "" {
			point.Details = defaultDetails
		}
		result = append(result, point)
		return true
	})

	return result
}

// setNumber overwrites target only when value is present. Numeric strings are accepted.
func setNumber(target *float64, value gjson.Result) {
	switch value.Type {
	case gjson.Number:
		*target = value.Float()
	case gjson.String:
		trimmed := strings.TrimSpace(value.Str)
		if trimmed == "" {
			return
		}
		if parsed := gjson.Parse(trimmed); parsed.Type == gjson.Number {
			*target = parsed.Float()
		}
	}
}
