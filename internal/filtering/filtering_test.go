package filtering

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/interview-insights/internal/feedback"
)

func submission(feedbackID, interviewerID string, day int) feedback.RawFeedback {
	return feedback.RawFeedback{
		FeedbackID:    feedbackID,
		InterviewerID: interviewerID,
		SubmittedAt:   time.Date(2024, time.May, day, 10, 0, 0, 0, time.UTC),
		FeedbackData:  map[string]feedback.Scalar{},
	}
}

func ids(items []feedback.RawFeedback) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		result = append(result, item.FeedbackID+"@"+item.InterviewerID)
	}
	return result
}

func TestRunDefaultChain(t *testing.T) {
	t.Parallel()

	items := []feedback.RawFeedback{
		submission("a", "1", 1),
		submission("", "2", 1),
		submission("b", "", 1),
		submission("c", "3", 1),
		submission("a", "1", 3),
		submission("d", "9", 2),
	}

	core, logs := observer.New(zapcore.InfoLevel)
	got, err := Run(context.Background(), &Config{ExcludedInterviewers: []string{" 9 "}}, Deps{Logger: zap.New(core)}, Default(), items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"c@3", "a@1"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("unexpected result: got %v, want %v", ids(got), want)
	}
	if !got[1].SubmittedAt.Equal(items[4].SubmittedAt) {
		t.Fatalf("expected latest duplicate to be kept")
	}

	steps := logs.FilterMessage("filter step").All()
	if len(steps) != 3 {
		t.Fatalf("expected 3 filter step logs, got %d", len(steps))
	}

	wantDropped := map[string]int64{"required_fields": 2, "duplicates": 1, "excluded_interviewers": 1}
	for _, entry := range steps {
		fields := entry.ContextMap()
		name := fields["name"].(string)
		if fields["dropped"] != wantDropped[name] {
			t.Fatalf("step %s dropped %v, want %d", name, fields["dropped"], wantDropped[name])
		}
	}
}

func TestRunSkipsDisabledFilters(t *testing.T) {
	t.Parallel()

	items := []feedback.RawFeedback{submission("a", "1", 1), submission("a", "1", 2)}

	steps := Default()
	DisableByName(steps, "duplicates", "testing")

	core, logs := observer.New(zapcore.InfoLevel)
	got, err := Run(context.Background(), nil, Deps{Logger: zap.New(core)}, steps, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected duplicates to survive, got %d items", len(got))
	}

	if logs.FilterMessage("filter disabled").Len() != 1 {
		t.Fatalf("expected disabled filter to be logged")
	}

	for _, status := range Describe(steps) {
		if status.Name == "duplicates" && (status.Enabled || status.Reason != "testing") {
			t.Fatalf("unexpected status: %+v", status)
		}
	}
}

type failingFilter struct {
	toggle
	validateErr error
	applyErr    error
}

func (f *failingFilter) Name() string { return "failing" }

func (f *failingFilter) Validate(*Config) error { return f.validateErr }

func (f *failingFilter) Apply(_ context.Context, _ Deps, items []feedback.RawFeedback) ([]feedback.RawFeedback, Step, error) {
	return items, Step{}, f.applyErr
}

func TestRunPropagatesErrors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	for _, filter := range []*failingFilter{{validateErr: errBoom}, {applyErr: errBoom}} {
		_, err := Run(context.Background(), nil, Deps{}, []Filter{filter}, nil)
		if !errors.Is(err, errBoom) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	steps := Default()
	if err := steps[2].Validate(&Config{ExcludedInterviewers: []string{"4", "", "5"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	statuses := Describe(steps)
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, status.Name)
		if !status.Enabled {
			t.Fatalf("expected %s to be enabled", status.Name)
		}
	}

	if want := []string{"required_fields", "duplicates", "excluded_interviewers"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("unexpected order: %v", names)
	}

	if got := statuses[2].Details["interviewers"]; got != "4,5" {
		t.Fatalf("unexpected interviewers detail: %q", got)
	}
}

func TestExcludedInterviewersNoConfig(t *testing.T) {
	t.Parallel()

	filter := NewExcludedInterviewers()
	if err := filter.Validate(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := []feedback.RawFeedback{submission("a", "1", 1)}
	got, step, err := filter.Apply(context.Background(), Deps{}, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || step != (Step{Initial: 1, Dropped: 0, Left: 1}) {
		t.Fatalf("unexpected result: %v %+v", got, step)
	}
}
