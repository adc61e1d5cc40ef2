package feedback

// Normalize turns one raw submission into an InterviewFeedback. It never fails:
// malformed values are dropped and an empty payload yields a single fallback section.
func (n *Normalizer) Normalize(raw RawFeedback) InterviewFeedback {
	var sections []FeedbackSection
	if len(raw.FeedbackData) == 0 {
		sections = []FeedbackSection{fallbackSection()}
	} else {
		categorized := Categorize(raw.FeedbackData)
		sections = make([]FeedbackSection, 0, len(categorized))
		for _, key := range categorized.SectionKeys() {
			sections = append(sections, n.Summarize(key, categorized[key]))
		}
	}

	return InterviewFeedback{
		ID:                  raw.FeedbackID,
		InterviewerID:       raw.InterviewerID,
		Interviewer:         "Interviewer " + raw.InterviewerID,
		Role:                defaultInterviewRole,
		Date:                raw.SubmittedAt,
		Duration:            defaultInterviewTime,
		Status:              defaultInterviewState,
		OverallRating:       OverallRating(sections),
		Sections:            sections,
		Recommendation:      raw.Recommendation,
		RecommendationLabel: MapRecommendation(raw.Recommendation),
	}
}

// NormalizeAll normalizes every submission, preserving order.
func (n *Normalizer) NormalizeAll(raws []RawFeedback) []InterviewFeedback {
	out := make([]InterviewFeedback, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Normalize(raw))
	}
	return out
}

// OverallRating is the mean of the section ratings, or 3.5 when there are none.
func OverallRating(sections []FeedbackSection) float64 {
	if len(sections) == 0 {
		return defaultOverallRating
	}

	var sum float64
	for _, section := range sections {
		sum += section.Rating
	}
	return sum / float64(len(sections))
}

func fallbackSection() FeedbackSection {
	return FeedbackSection{
		Title:      fallbackSectionTitle,
		Rating:     defaultOverallRating,
		Notes:      fallbackSectionNotes,
		Strengths:  []string{fallbackStrength},
		Weaknesses: []string{fallbackWeakness},
	}
}
