package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCandidateJob is the structured log field key for the candidate job id under review.
	FieldCandidateJob = "candidate_job_id"
	// FieldInterviewer is the structured log field key for an interviewer id.
	FieldInterviewer = "interviewer_id"
	// FieldFeedback is the structured log field key for a feedback submission id.
	FieldFeedback = "feedback_id"
	// FieldProvider is the structured log field key for the AI analysis provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a no-op
// logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// FeedbackFields describes one feedback submission.
func FeedbackFields(feedbackID, interviewerID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldFeedback, Value: feedbackID},
		StringField{Key: FieldInterviewer, Value: interviewerID},
	)
}

// AIFields returns the fields describing the AI provider and model.
// Empty values are ignored to keep log entries compact when information is missing.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCandidateJob scopes the logger to a single candidate job review.
func WithCandidateJob(logger *zap.Logger, candidateJobID string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldCandidateJob, Value: candidateJobID})...)
}
