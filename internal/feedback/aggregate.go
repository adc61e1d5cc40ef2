package feedback

import "strings"

// Aggregate folds normalized feedback of one candidate into summary statistics.
//
// AverageRating is the mean of every section rating across all records, not the
// mean of the per-record overall ratings. A record counts as a hire when its
// label contains "Hire"; this includes "No Hire" and "Strong No Hire".
func Aggregate(feedbacks []InterviewFeedback) AggregateSummary {
	var (
		sum   float64
		count int
		hires int
	)

	for _, f := range feedbacks {
		for _, section := range f.Sections {
			sum += section.Rating
			count++
		}
		if strings.Contains(f.RecommendationLabel, "Hire") {
			hires++
		}
	}

	summary := AggregateSummary{
		HireCount:   hires,
		RejectCount: len(feedbacks) - hires,
		Total:       len(feedbacks),
	}
	if count > 0 {
		summary.AverageRating = sum / float64(count)
	}
	if len(feedbacks) > 0 {
		summary.HireRatio = float64(hires) / float64(len(feedbacks))
	}

	return summary
}
