package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-insights/internal/feedback"
	"github.com/spigell/interview-insights/internal/interviews"
	"github.com/spigell/interview-insights/internal/logger"
	"github.com/spigell/interview-insights/internal/report"
	"github.com/spigell/interview-insights/internal/utils"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Normalize raw feedback from a JSON file or stdin without calling the interview service",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		normalize(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().StringP("output", "o", outputText, "report format: text or json")
	normalizeCmd.Flags().StringP("candidate-job", "c", "", "candidate job id shown in the report header")
	normalizeCmd.Flags().String("xlsx", "", "also write the report to this xlsx file")
}

func normalize(cmd *cobra.Command, args []string) {
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

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}

	raws, err := readFeedback(source, cmd.InOrStdin(), logger)
	if err != nil {
		logger.Fatal("reading feedback", zap.String("source", source), zap.Error(err))
	}

	logger.Debug("read feedback submissions", zap.String("source", source), zap.Int("count", len(raws)))

	feedbacks, err := normalizeFeedback(ctx, config, logger, raws)
	if err != nil {
		logger.Fatal("normalizing feedback", zap.Error(err))
	}

	candidateJobID := strings.TrimSpace(cmd.Flag("candidate-job").Value.String())
	if candidateJobID == "" && source != "-" {
		candidateJobID = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	r := report.New(report.Header{CandidateJobID: candidateJobID}, feedbacks, nil)

	if err := writeReport(r, cmd.Flag("output").Value.String()); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}

	if path := strings.TrimSpace(cmd.Flag("xlsx").Value.String()); path != "" {
		if err := r.WriteXLSX(path); err != nil {
			logger.Fatal("writing xlsx report", zap.Error(err))
		}
		logger.Info("report written", zap.String("filename", path))
	}
}

// readFeedback decodes raw feedback from path, or from stdin when path is "-".
func readFeedback(path string, stdin io.Reader, zl *zap.Logger) ([]feedback.RawFeedback, error) {
	var reader io.Reader = stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader = file
	}

	raws, err := interviews.DecodeFeedback(reader, zl)
	if err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}

	return raws, nil
}
