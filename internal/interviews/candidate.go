package interviews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

const apiCandidateJobPath = "/api/candidate-jobs/%s"

// ID accepts both JSON strings and numbers.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type Candidate struct {
	ID            ID     `json:"id"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	ResumeContent string `json:"resumeContent,omitempty"`
}

type Job struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Department  string `json:"department"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
}

type Interview struct {
	InterviewID   int64  `json:"interviewId"`
	RoundNumber   int    `json:"roundNumber"`
	InterviewDate string `json:"interviewDate"`
	Position      string `json:"position"`
	Status        string `json:"status"`
}

// CandidateJob is a candidate's application to a job.
type CandidateJob struct {
	ID           ID          `json:"id"`
	Candidate    Candidate   `json:"candidate"`
	Job          Job         `json:"job"`
	CurrentRound int         `json:"currentRound"`
	Status       string      `json:"status"`
	Interviews   []Interview `json:"interviews"`
}

// FirstInterviewID returns the id of the first interview or 0 when there is none.
func (c *CandidateJob) FirstInterviewID() int64 {
	if c == nil || len(c.Interviews) == 0 {
		return 0
	}
	return c.Interviews[0].InterviewID
}

func (c *Client) GetCandidateJob(ctx context.Context, candidateJobID string) (*CandidateJob, error) {
	data, err := c.getJSON(ctx, fmt.Sprintf(apiCandidateJobPath, url.PathEscape(candidateJobID)))
	if err != nil {
		return nil, fmt.Errorf("get candidate job %s: %w", candidateJobID, err)
	}

	var job CandidateJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode candidate job %s: %w", candidateJobID, err)
	}

	return &job, nil
}
