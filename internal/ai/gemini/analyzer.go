package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/interview-insights/internal/ai"
	"github.com/spigell/interview-insights/internal/logger"
	"github.com/spigell/interview-insights/internal/utils"
)

const (
	providerName        = "gemini"
	defaultMaxLogLength = 200
)

//go:embed prompt.md
var systemPrompt string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Analyzer asks Gemini to summarize normalized interview feedback.
type Analyzer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAnalyzer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Analyzer{
		generator: generator,
		logger:    logger.WithFields(log, logger.AIFields(providerName, generator.Model())...),
		maxLogLen: maxLogLength,
	}
}

type analysisInput struct {
	JobDescription string `json:"jobDescription"`
	Resume         string `json:"resume"`
	Feedback       any    `json:"feedback"`
}

func (a *Analyzer) Analyze(ctx context.Context, req *ai.Request) (*ai.Analysis, error) {
	if req == nil {
		return nil, errors.New("analysis request is required")
	}
	if len(req.Feedback) == 0 {
		return nil, errors.New("no feedback to analyze")
	}

	payload, err := json.MarshalIndent(analysisInput{
		JobDescription: strings.TrimSpace(req.JobDescription),
		Resume:         strings.TrimSpace(req.Resume),
		Feedback:       req.Feedback,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal analysis payload: %w", err)
	}

	message := string(payload)
	log := logger.WithCandidateJob(a.logger, req.CandidateJobID)

	log.Debug("gemini generate content request",
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("message_preview", utils.TruncateForLog(message, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, systemPrompt, message)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	analysis, err := ai.ParseAnalysis(raw)
	if err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	return analysis, nil
}

func (a *Analyzer) Provider() string {
	return providerName
}
