package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-insights/internal/ai"
	"github.com/spigell/interview-insights/internal/interviews"
	"github.com/spigell/interview-insights/internal/logger"
	"github.com/spigell/interview-insights/internal/report"
	"github.com/spigell/interview-insights/internal/utils"
)

const (
	PromptHire         = "Submit hire decision"
	PromptReject       = "Submit reject decision"
	PromptShowAnalysis = "Show AI analysis"
	PromptShowJSON     = "Show report as JSON"
	PromptReportToFile = "Dump report to xlsx file"
	PromptExit         = "Exit"
	PromptYes          = "Yes"
	PromptNo           = "No"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptHire, PromptReject, PromptShowAnalysis, PromptShowJSON, PromptReportToFile, PromptExit},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review interview feedback of a candidate job and submit a decision",
	Run: func(cmd *cobra.Command, _ []string) {
		review(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().StringP("candidate-job", "c", "", "candidate job id to review (required)")
	reviewCmd.Flags().StringP("output", "o", outputText, "report format: text or json")
	reviewCmd.Flags().String("decision", "", "decision to submit without the interactive menu: hire or reject")
	reviewCmd.Flags().BoolP("auto", "y", false, "do not ask for confirmation, submit --decision right away")
	reviewCmd.Flags().Bool("send-rejection-email", false, "email the candidate when rejecting")
	reviewCmd.Flags().String("email-file", "", "file with a custom decision email. Default is a built-in template.")
	reviewCmd.Flags().String("xlsx", "", "also write the report to this xlsx file")

	reviewCmd.MarkFlagRequired("candidate-job")

	viper.BindPFlag("report.xlsx", reviewCmd.Flags().Lookup("xlsx"))
}

type reviewSession struct {
	client             *interviews.Client
	logger             *zap.Logger
	job                *interviews.CandidateJob
	report             *report.Report
	sendRejectionEmail bool
	emailContent       string
}

// review is the main command for the cli.
func review(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting with config", zap.String("config", utils.PreviewJSON(config, maxConfigLogLength)))

	candidateJobID := strings.TrimSpace(cmd.Flag("candidate-job").Value.String())
	logger = loggerWithJob(logger, candidateJobID)

	logger.Info("starting the review", zap.String("version", version))

	client, err := newInterviewsClient(config, logger)
	if err != nil {
		logger.Fatal(
			"creating interview service client",
			zap.Error(err),
			zap.String("hint", "set service.url (INTERVIEW_SERVICE_URL) and service.token-file (INTERVIEW_TOKEN_FILE)"),
		)
	}

	job, err := client.GetCandidateJob(ctx, candidateJobID)
	if err != nil {
		if !errors.Is(err, interviews.ErrNotFound) {
			logger.Fatal("getting candidate job", zap.Error(err))
		}
		logger.Warn("candidate job not found, continuing without candidate details", zap.Error(err))
	}

	raws, err := client.GetFeedback(ctx, candidateJobID)
	if err != nil && !errors.Is(err, interviews.ErrNotFound) {
		logger.Fatal("getting feedback", zap.Error(err))
	}

	logger.Info("got feedback submissions", zap.Int("count", len(raws)))

	feedbacks, err := normalizeFeedback(ctx, config, logger, raws)
	if err != nil {
		logger.Fatal("normalizing feedback", zap.Error(err))
	}

	analysis := analyze(ctx, config, client, logger, &ai.Request{
		CandidateJobID: candidateJobID,
		JobDescription: jobDescription(job),
		Resume:         resume(job),
		Feedback:       feedbacks,
	})

	r := report.New(headerFromJob(candidateJobID, job), feedbacks, analysis)

	if err := writeReport(r, cmd.Flag("output").Value.String()); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}

	if path := strings.TrimSpace(viper.GetString("report.xlsx")); path != "" {
		if err := r.WriteXLSX(path); err != nil {
			logger.Fatal("writing xlsx report", zap.Error(err))
		}
		logger.Info("report written", zap.String("filename", path))
	}

	session := &reviewSession{
		client:             client,
		logger:             logger,
		job:                job,
		report:             r,
		sendRejectionEmail: cmd.Flag("send-rejection-email").Value.String() == "true",
	}

	if path := strings.TrimSpace(cmd.Flag("email-file").Value.String()); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal("reading email file", zap.Error(err))
		}
		session.emailContent = string(content)
	}

	if cmd.Flag("auto").Value.String() == "true" {
		decision := cmd.Flag("decision").Value.String()
		if decision == "" {
			logger.Info("exiting", zap.String("reason", "no decision given in auto mode"))
			return
		}

		parsed, err := interviews.ParseDecision(decision)
		if err != nil {
			logger.Fatal("parsing decision", zap.Error(err))
		}

		if err := session.submit(ctx, parsed, false); err != nil {
			logger.Fatal("submitting decision", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := session.handleAction(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (s *reviewSession) handleAction(ctx context.Context, action string) error {
	switch action {
	case PromptHire:
		return s.submit(ctx, interviews.Hire, true)
	case PromptReject:
		return s.submit(ctx, interviews.Reject, true)
	case PromptShowAnalysis:
		if s.report.Analysis == nil {
			s.logger.Info("no AI analysis available", zap.String("hint", "set ai.enabled in the config"))
			return nil
		}
		return s.report.WriteAnalysisText(os.Stdout)
	case PromptShowJSON:
		return s.report.WriteJSON(os.Stdout)
	case PromptReportToFile:
		filename, err := s.report.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		s.logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// submit sends the decision. A submitted decision ends the session.
func (s *reviewSession) submit(ctx context.Context, decision interviews.Decision, confirm bool) error {
	req := interviews.NewDecisionRequest(decision, s.job, s.sendRejectionEmail, s.emailContent)

	s.logger.Info("prepared decision",
		zap.String("decision", string(decision)),
		zap.Float64("average_rating", s.report.Summary.AverageRating),
		zap.Int("hire_count", s.report.Summary.HireCount),
		zap.Int("reject_count", s.report.Summary.RejectCount),
		zap.Bool("send_email", req.SendEmail),
	)

	if req.SendEmail {
		fmt.Fprintf(os.Stdout, "\n%s\n\n", req.EmailContent)
	}

	if confirm {
		confirmPrompt := promptui.Select{
			Label: fmt.Sprintf("Submit %s decision?", decision),
			Items: []string{PromptYes, PromptNo},
		}
		_, answer, err := confirmPrompt.Run()
		if err != nil {
			return err
		}
		if answer != PromptYes {
			return nil
		}
	}

	if err := s.client.SubmitDecision(ctx, decision, req); err != nil {
		return err
	}

	return errExit
}

// analyze returns the AI analysis or nil when it is disabled or failed.
func analyze(ctx context.Context, config *Config, client *interviews.Client, log *zap.Logger, req *ai.Request) *ai.Analysis {
	if config.AI == nil || !config.AI.Enabled {
		return nil
	}

	analyzer, err := newAnalyzer(ctx, config.AI, client, log)
	if err != nil {
		log.Warn("skipping AI analysis", zap.Error(err))
		return nil
	}

	analysis, err := analyzer.Analyze(ctx, req)
	if err != nil {
		log.Warn("AI analysis failed", zap.Error(err))
		return nil
	}

	return analysis
}

func loggerWithJob(log *zap.Logger, candidateJobID string) *zap.Logger {
	return logger.WithCandidateJob(log, candidateJobID)
}

func jobDescription(job *interviews.CandidateJob) string {
	if job == nil {
		return ""
	}

	parts := []string{job.Job.Title, job.Job.Department, job.Job.Location, job.Job.Description}
	nonEmpty := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}

	return strings.Join(nonEmpty, "\n")
}

func resume(job *interviews.CandidateJob) string {
	if job == nil {
		return ""
	}
	return job.Candidate.ResumeContent
}
