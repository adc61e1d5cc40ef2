package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-insights/internal/ai"
	"github.com/spigell/interview-insights/internal/ai/gemini"
	"github.com/spigell/interview-insights/internal/feedback"
	"github.com/spigell/interview-insights/internal/filtering"
	"github.com/spigell/interview-insights/internal/interviews"
	"github.com/spigell/interview-insights/internal/report"
	"github.com/spigell/interview-insights/internal/secrets"
)

const (
	outputText = "text"
	outputJSON = "json"

	providerService = "service"
	providerGemini  = "gemini"
)

func newNormalizer(config *Config) (*feedback.Normalizer, error) {
	if config.Normalize == nil {
		return feedback.NewNormalizer(nil), nil
	}

	cfg, err := feedback.NewConfig(config.Normalize.SectionTitles, config.Normalize.BooleanKeyPattern)
	if err != nil {
		return nil, fmt.Errorf("normalize.boolean-key-pattern: %w", err)
	}

	return feedback.NewNormalizer(cfg), nil
}

func filterConfig(config *Config) *filtering.Config {
	cfg := &filtering.Config{}
	if config.Exclude != nil {
		cfg.ExcludedInterviewers = config.Exclude.Interviewers
	}
	return cfg
}

// normalizeFeedback runs the filter chain and normalizes what is left.
func normalizeFeedback(ctx context.Context, config *Config, logger *zap.Logger, raws []feedback.RawFeedback) ([]feedback.InterviewFeedback, error) {
	filtered, err := filtering.Run(ctx, filterConfig(config), filtering.Deps{Logger: logger}, filtering.Default(), raws)
	if err != nil {
		return nil, fmt.Errorf("filtering feedback: %w", err)
	}

	normalizer, err := newNormalizer(config)
	if err != nil {
		return nil, err
	}

	return normalizer.NormalizeAll(filtered), nil
}

func newInterviewsClient(config *Config, logger *zap.Logger) (*interviews.Client, error) {
	if config.Service == nil || strings.TrimSpace(config.Service.URL) == "" {
		return nil, errors.New("interview service url is not configured")
	}

	token, err := secrets.Optional(secrets.Source{
		Name:  "interview service token",
		Value: config.Service.Token,
		Env:   "INTERVIEW_TOKEN",
		File:  config.Service.TokenFile,
	})
	if err != nil {
		return nil, err
	}

	client := interviews.New(logger, config.Service.URL, token)
	if config.Service.Timeout > 0 {
		client.HTTPClient.Timeout = config.Service.Timeout
	}
	if config.Service.UserAgent != "" {
		client.UserAgent = config.Service.UserAgent
	}
	if config.Service.MaxRetryTime > 0 {
		client.MaxRetryTime = config.Service.MaxRetryTime
	}

	return client, nil
}

func newAnalyzer(ctx context.Context, cfg *AIConfig, client *interviews.Client, logger *zap.Logger) (ai.Analyzer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", providerService:
		if client == nil {
			return nil, errors.New("service ai provider requires the interview service")
		}
		return interviews.NewAnalyzer(client), nil
	case providerGemini:
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gcfg.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  gcfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, logger, apiKey, gcfg.Model, gcfg.MaxRetries)
	if err != nil {
		return nil, err
	}

	return gemini.NewAnalyzer(generator, logger, gcfg.MaxLogLength), nil
}

func writeReport(r *report.Report, output string) error {
	switch output {
	case outputJSON:
		return r.WriteJSON(os.Stdout)
	case outputText, "":
		return r.WriteText(os.Stdout)
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}

func headerFromJob(candidateJobID string, job *interviews.CandidateJob) report.Header {
	header := report.Header{CandidateJobID: candidateJobID}
	if job == nil {
		return header
	}

	header.CandidateName = job.Candidate.FullName
	header.CandidateEmail = job.Candidate.Email
	header.JobTitle = job.Job.Title
	header.Department = job.Job.Department
	header.Status = job.Status
	header.CurrentRound = job.CurrentRound

	return header
}
