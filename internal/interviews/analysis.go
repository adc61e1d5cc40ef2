package interviews

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spigell/interview-insights/internal/ai"
)

const (
	apiAnalysisPath = "/api/feedback/analysis/candidate/%s"
	providerName    = "service"
)

// GetAnalysis fetches the analysis the interview service computed for a candidate job.
func (c *Client) GetAnalysis(ctx context.Context, candidateJobID string) (*ai.Analysis, error) {
	data, err := c.getJSON(ctx, fmt.Sprintf(apiAnalysisPath, url.PathEscape(candidateJobID)))
	if err != nil {
		return nil, fmt.Errorf("get analysis for candidate job %s: %w", candidateJobID, err)
	}

	analysis, err := ai.ParseAnalysis(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse analysis for candidate job %s: %w", candidateJobID, err)
	}

	return analysis, nil
}

// Analyzer exposes the service-side analysis as an ai.Analyzer.
type Analyzer struct {
	client *Client
}

func NewAnalyzer(client *Client) *Analyzer {
	return &Analyzer{client: client}
}

func (a *Analyzer) Analyze(ctx context.Context, req *ai.Request) (*ai.Analysis, error) {
	return a.client.GetAnalysis(ctx, req.CandidateJobID)
}

func (a *Analyzer) Provider() string {
	return providerName
}
