package filtering

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-insights/internal/feedback"
	"github.com/spigell/interview-insights/internal/logger"
)

// toggle implements the Disable/IsEnabled half of Filter.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type requiredFieldsFilter struct {
	toggle
}

// NewRequiredFields creates a filter that removes submissions without a feedback or interviewer id.
func NewRequiredFields() Filter {
	return &requiredFieldsFilter{}
}

func (f *requiredFieldsFilter) Name() string { return "required_fields" }

func (f *requiredFieldsFilter) Validate(*Config) error { return nil }

func (f *requiredFieldsFilter) Apply(_ context.Context, deps Deps, items []feedback.RawFeedback) ([]feedback.RawFeedback, Step, error) {
	initial := len(items)
	kept := make([]feedback.RawFeedback, 0, initial)

	for _, item := range items {
		var missing []string
		if strings.TrimSpace(item.FeedbackID) == "" {
			missing = append(missing, "feedbackId")
		}
		if strings.TrimSpace(item.InterviewerID) == "" {
			missing = append(missing, "interviewerId")
		}

		if len(missing) > 0 {
			if deps.Logger != nil {
				deps.Logger.Warn("dropping feedback with missing fields",
					append(logger.FeedbackFields(item.FeedbackID, item.InterviewerID), zap.Strings("missing", missing))...,
				)
			}
			continue
		}

		kept = append(kept, item)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *requiredFieldsFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"required": "feedbackId,interviewerId"},
	}
}

type duplicatesFilter struct {
	toggle
}

// NewDuplicates creates a filter that keeps only the latest submission per feedback id.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Validate(*Config) error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, deps Deps, items []feedback.RawFeedback) ([]feedback.RawFeedback, Step, error) {
	initial := len(items)

	latest := make(map[string]int, initial)
	for i, item := range items {
		prev, seen := latest[item.FeedbackID]
		if !seen || item.SubmittedAt.After(items[prev].SubmittedAt) {
			latest[item.FeedbackID] = i
		}
	}

	kept := make([]feedback.RawFeedback, 0, len(latest))
	var dropped []string
	for i, item := range items {
		if latest[item.FeedbackID] != i {
			dropped = append(dropped, item.FeedbackID)
			continue
		}
		kept = append(kept, item)
	}

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("dropping duplicated feedback submissions",
			zap.Strings("feedback_ids", dropped),
			zap.Int("feedback_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *duplicatesFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

type excludedInterviewersFilter struct {
	toggle
	interviewers []string
}

// NewExcludedInterviewers creates a filter that removes submissions by interviewers configured in the config.
func NewExcludedInterviewers() Filter {
	return &excludedInterviewersFilter{}
}

func (f *excludedInterviewersFilter) Name() string { return "excluded_interviewers" }

func (f *excludedInterviewersFilter) Validate(cfg *Config) error {
	f.interviewers = nil
	if cfg != nil {
		for _, id := range cfg.ExcludedInterviewers {
			if id = strings.TrimSpace(id); id != "" {
				f.interviewers = append(f.interviewers, id)
			}
		}
	}
	return nil
}

func (f *excludedInterviewersFilter) Apply(_ context.Context, deps Deps, items []feedback.RawFeedback) ([]feedback.RawFeedback, Step, error) {
	initial := len(items)
	if len(f.interviewers) == 0 {
		return items, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := make([]feedback.RawFeedback, 0, initial)
	var excluded []string
	for _, item := range items {
		if slices.Contains(f.interviewers, strings.TrimSpace(item.InterviewerID)) {
			excluded = append(excluded, item.FeedbackID)
			continue
		}
		kept = append(kept, item)
	}

	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding feedback by interviewers",
			zap.Strings("excluded_interviewers", f.interviewers),
			zap.Strings("excluded_feedback", excluded),
			zap.Int("feedback_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(excluded), Left: len(kept)}, nil
}

func (f *excludedInterviewersFilter) Status() Status {
	details := map[string]string{}
	if len(f.interviewers) > 0 {
		details["interviewers"] = strings.Join(f.interviewers, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
