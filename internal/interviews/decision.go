package interviews

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Decision is the hiring outcome for a candidate job.
type Decision string

const (
	Hire   Decision = "hire"
	Reject Decision = "reject"

	apiHiringPath = "/api/hiring/%s"

	candidatePlaceholder = "[Candidate Name]"
	jobPlaceholder       = "[Job Title]"
)

const hireTemplate = `Dear %s,

We are pleased to inform you that we would like to move forward with your application for the %s position. Our team was impressed with your skills and experience during the interview process.

Our HR team will be in touch with you shortly to discuss the next steps including compensation and start date details.

We look forward to potentially welcoming you to our team!

Best regards,
Company Hiring Team`

const rejectTemplate = `Dear %s,

Thank you for your interest in the %s position and for taking the time to interview with us.

After careful consideration, we have decided to pursue other candidates whose qualifications better meet our current needs. We appreciate your interest in our company and wish you the best in your job search.

Best regards,
Company Hiring Team`

// DecisionRequest is the payload accepted by the hiring endpoints.
type DecisionRequest struct {
	InterviewID  int64  `json:"interviewId"`
	SendEmail    bool   `json:"sendEmail"`
	EmailContent string `json:"emailContent"`
}

func ParseDecision(s string) (Decision, error) {
	switch d := Decision(strings.ToLower(strings.TrimSpace(s))); d {
	case Hire, Reject:
		return d, nil
	default:
		return "", fmt.Errorf("unknown decision %q", s)
	}
}

// EmailTemplate renders the default email for the decision.
func EmailTemplate(decision Decision, job *CandidateJob) string {
	name, title := candidatePlaceholder, jobPlaceholder
	if job != nil {
		if v := strings.TrimSpace(job.Candidate.FullName); v != "" {
			name = v
		}
		if v := strings.TrimSpace(job.Job.Title); v != "" {
			title = v
		}
	}

	if decision == Hire {
		return fmt.Sprintf(hireTemplate, name, title)
	}
	return fmt.Sprintf(rejectTemplate, name, title)
}

// NewDecisionRequest builds the payload for a decision. Hiring always emails
// the candidate; rejection emails only when sendRejectionEmail is set.
// An empty emailContent is replaced with the default template.
func NewDecisionRequest(decision Decision, job *CandidateJob, sendRejectionEmail bool, emailContent string) *DecisionRequest {
	if strings.TrimSpace(emailContent) == "" {
		emailContent = EmailTemplate(decision, job)
	}

	return &DecisionRequest{
		InterviewID:  job.FirstInterviewID(),
		SendEmail:    decision == Hire || sendRejectionEmail,
		EmailContent: emailContent,
	}
}

func (c *Client) SubmitDecision(ctx context.Context, decision Decision, req *DecisionRequest) error {
	if decision != Hire && decision != Reject {
		return fmt.Errorf("unknown decision %q", decision)
	}

	if _, err := c.postJSON(ctx, fmt.Sprintf(apiHiringPath, decision), req); err != nil {
		return fmt.Errorf("submit %s decision: %w", decision, err)
	}

	c.logger.Info("decision submitted",
		zap.String("decision", string(decision)),
		zap.Int64("interview_id", req.InterviewID),
		zap.Bool("send_email", req.SendEmail),
	)

	return nil
}
