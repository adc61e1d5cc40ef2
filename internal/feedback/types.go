// Package feedback recovers structured interview feedback from the free-form
// key/value bags interviewers submit and aggregates it per candidate.
package feedback

import "time"

// Recommendation codes an interviewer can pick when submitting feedback.
const (
	StrongProceed = "STRONG_PROCEED"
	Proceed       = "PROCEED"
	Borderline    = "BORDERLINE"
	Reject        = "REJECT"
	StrongReject  = "STRONG_REJECT"
)

// GeneralSection collects fields that carry no numeric section prefix.
const GeneralSection = "general"

// Scalar is a single raw feedback value as decoded from the wire:
// nil, bool, string, float64, json.Number or any integer kind.
type Scalar = any

// RawFeedback is one interviewer's submission as received from the interview service.
type RawFeedback struct {
	ID             string            `json:"id,omitempty" mapstructure:"id"`
	FeedbackID     string            `json:"feedbackId" mapstructure:"feedbackId"`
	InterviewerID  string            `json:"interviewerId" mapstructure:"interviewerId"`
	Recommendation string            `json:"recommendation" mapstructure:"recommendation"`
	SubmittedAt    time.Time         `json:"submittedAt" mapstructure:"submittedAt"`
	FeedbackData   map[string]Scalar `json:"feedbackData" mapstructure:"feedbackData"`
}

// CategorizedFields maps a section key to the fields of that section.
type CategorizedFields map[string]map[string]Scalar

// FeedbackSection is one normalized section. Rating is on the 0-5 scale.
type FeedbackSection struct {
	Title      string   `json:"title"`
	Rating     float64  `json:"rating"`
	Notes      string   `json:"notes"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// InterviewFeedback is the normalized record of one submission.
type InterviewFeedback struct {
	ID                  string            `json:"id"`
	InterviewerID       string            `json:"interviewerId"`
	Interviewer         string            `json:"interviewer"`
	Role                string            `json:"role"`
	Date                time.Time         `json:"date"`
	Duration            string            `json:"duration"`
	Status              string            `json:"status"`
	OverallRating       float64           `json:"overallRating"`
	Sections            []FeedbackSection `json:"sections"`
	Recommendation      string            `json:"recommendation"`
	RecommendationLabel string            `json:"recommendationLabel"`
}

// AggregateSummary is computed on demand over all feedback of one candidate.
type AggregateSummary struct {
	AverageRating float64 `json:"averageRating"`
	HireCount     int     `json:"hireCount"`
	RejectCount   int     `json:"rejectCount"`
	Total         int     `json:"total"`
	HireRatio     float64 `json:"hireRatio"`
}
