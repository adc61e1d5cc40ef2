// Package interviews is a client of the interview service that stores raw
// interviewer feedback, candidate jobs and hiring decisions.
package interviews

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	userAgent = "spigell/interview-insights"

	defaultTimeout         = 10 * time.Second
	defaultMaxRetryTime    = 30 * time.Second
	defaultInitialInterval = 500 * time.Millisecond
)

// ErrNotFound is returned when the service answers 404.
var ErrNotFound = errors.New("not found")

type Client struct {
	token           string
	logger          *zap.Logger
	initialInterval time.Duration
	HTTPClient      *http.Client
	UserAgent       string
	APIURL          string
	// MaxRetryTime bounds retries of GET requests. Zero disables retries.
	MaxRetryTime time.Duration
}

func New(logger *zap.Logger, apiURL, token string) *Client {
	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:          logger,
		UserAgent:       userAgent,
		MaxRetryTime:    defaultMaxRetryTime,
		initialInterval: defaultInitialInterval,
	}
}
