package interviews

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/interview-insights/internal/feedback"
	"github.com/spigell/interview-insights/internal/logger"
)

const apiFeedbackPath = "/api/feedback/interview/%s"

// submittedAtLayouts are the timestamp formats the service has been seen to emit.
var submittedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// GetFeedback fetches every raw feedback submission for a candidate job.
func (c *Client) GetFeedback(ctx context.Context, candidateJobID string) ([]feedback.RawFeedback, error) {
	data, err := c.getJSON(ctx, fmt.Sprintf(apiFeedbackPath, url.PathEscape(candidateJobID)))
	if err != nil {
		return nil, fmt.Errorf("get feedback for candidate job %s: %w", candidateJobID, err)
	}

	raws, err := DecodeFeedback(bytes.NewReader(data), c.logger)
	if err != nil {
		return nil, fmt.Errorf("decode feedback for candidate job %s: %w", candidateJobID, err)
	}

	c.logger.Debug("got feedback from the interview service", zap.Int("count", len(raws)))

	return raws, nil
}

// DecodeFeedback reads a JSON array of raw feedback. Numbers inside feedback
// data are kept as json.Number; ids may be strings or numbers. An unparseable
// submittedAt is logged and left as the zero time.
func DecodeFeedback(r io.Reader, log *zap.Logger) ([]feedback.RawFeedback, error) {
	if log == nil {
		log = zap.NewNop()
	}

	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var items []map[string]any
	if err := decoder.Decode(&items); err != nil {
		return nil, err
	}

	raws := make([]feedback.RawFeedback, 0, len(items))
	for i, item := range items {
		var raw feedback.RawFeedback
		badTimestamps, err := decodeItem(item, &raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		if raw.FeedbackID == "" {
			raw.FeedbackID = raw.ID
		}
		for _, value := range badTimestamps {
			log.Warn("unsupported timestamp, leaving it unset",
				append(logger.FeedbackFields(raw.FeedbackID, raw.InterviewerID), zap.String("value", value))...)
		}
		if raw.FeedbackData == nil {
			raw.FeedbackData = map[string]feedback.Scalar{}
		}

		raws = append(raws, raw)
	}

	return raws, nil
}

// decodeItem decodes one submission into target and returns the timestamp
// values it could not parse.
func decodeItem(item map[string]any, target any) ([]string, error) {
	var bad []string
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: func(from reflect.Type, to reflect.Type, data any) (any, error) {
			return timeHook(from, to, data, &bad)
		},
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(item); err != nil {
		return nil, err
	}

	return bad, nil
}

// timeHook parses string timestamps into time.Time. Blank strings yield the
// zero time; so do unknown formats, which are also appended to bad.
func timeHook(from reflect.Type, to reflect.Type, data any, bad *[]string) (any, error) {
	if to != reflect.TypeOf(time.Time{}) || from.Kind() != reflect.String {
		return data, nil
	}

	value := strings.TrimSpace(reflect.ValueOf(data).String())
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range submittedAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	*bad = append(*bad, value)
	return time.Time{}, nil
}
