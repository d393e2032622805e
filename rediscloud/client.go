// Package rediscloud is a client for the task endpoints of the Redis Cloud management API.
package rediscloud

import (
	"errors"
	"net/http"

	"github.com/redis-developer/redisctl-go/lro"
	"github.com/redis-developer/redisctl-go/restapi"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public Redis Cloud API endpoint.
const DefaultBaseURL = "https://api.redislabs.com/v1"

var (
	ErrMissingCredentials = errors.New("redis cloud API key and secret are required")
	ErrEmptyTaskID        = errors.New("empty task ID")
)

type Options struct {
	// Base URL of the API.
	// Defaults to DefaultBaseURL.
	BaseURL string
	// Account API key, sent as X-Api-Key.
	APIKey string
	// User API secret, sent as X-Api-Secret-Key.
	APISecret string
	// An Client to use for making HTTP requests.
	// Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Defaults to a no-op logger.
	Logger *zap.Logger
	// Retry, if set, retries failed status fetches while waiting for a task.
	// Retryable defaults to restapi.IsRetryable.
	Retry *lro.RetryOptions
}

type Client struct {
	// The options this client was created with after applying defaults.
	Options Options
	rest    *restapi.Client
	logger  *zap.Logger
}

func NewClient(options Options) (*Client, error) {
	if options.APIKey == "" || options.APISecret == "" {
		return nil, ErrMissingCredentials
	}
	if options.BaseURL == "" {
		options.BaseURL = DefaultBaseURL
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Retry != nil && options.Retry.Retryable == nil {
		retry := *options.Retry
		retry.Retryable = restapi.IsRetryable
		options.Retry = &retry
	}
	rest, err := restapi.NewClient(restapi.Options{
		BaseURL:       options.BaseURL,
		HTTPClient:    options.HTTPClient,
		Authenticator: restapi.APIKeyAuth{Key: options.APIKey, Secret: options.APISecret},
		Logger:        options.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Client{
		Options: options,
		rest:    rest,
		logger:  options.Logger,
	}, nil
}
