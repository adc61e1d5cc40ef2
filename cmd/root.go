package cmd

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "interview-insights"
)

type Config struct {
	Service   *ServiceConfig   `mapstructure:"service"`
	Exclude   *ExcludeConfig   `mapstructure:"exclude"`
	Normalize *NormalizeConfig `mapstructure:"normalize"`
	AI        *AIConfig        `mapstructure:"ai"`
	Report    *ReportConfig    `mapstructure:"report"`
}

type ServiceConfig struct {
	URL          string        `mapstructure:"url"`
	Token        string        `mapstructure:"token" json:"-"`
	TokenFile    string        `mapstructure:"token-file"`
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user-agent"`
	MaxRetryTime time.Duration `mapstructure:"max-retry-time"`
}

type ExcludeConfig struct {
	Interviewers []string `mapstructure:"interviewers"`
}

type NormalizeConfig struct {
	SectionTitles     map[string]string `mapstructure:"section-titles"`
	BooleanKeyPattern string            `mapstructure:"boolean-key-pattern"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ReportConfig struct {
	XLSX string `mapstructure:"xlsx"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interview-insights normalizes interviewer feedback and helps to make a hiring decision",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"service.url":            "INTERVIEW_SERVICE_URL",
		"service.token-file":     "INTERVIEW_TOKEN_FILE",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interview-insights.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// .env is optional; variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// An explicitly given config must exist. The default one is optional since
	// normalize works without it.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

const maxConfigLogLength = 2000

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}
