// Package redisenterprise is a client for the asynchronous task endpoints of the Redis Enterprise REST API.
package redisenterprise

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"

	"github.com/redis-developer/redisctl-go/lro"
	"github.com/redis-developer/redisctl-go/restapi"
	"go.uber.org/zap"
)

// DefaultBaseURL is the cluster API address on a local node.
const DefaultBaseURL = "https://localhost:9443"

var (
	ErrMissingCredentials = errors.New("redis enterprise username and password are required")
	ErrEmptyID            = errors.New("empty operation ID")
)

type Options struct {
	// Base URL of the cluster API.
	// Defaults to DefaultBaseURL.
	BaseURL string
	// Username for basic authentication.
	Username string
	// Password for basic authentication.
	Password string
	// Insecure skips TLS certificate verification. Clusters commonly run with self-signed certificates.
	// Ignored when HTTPClient is set.
	Insecure bool
	// An Client to use for making HTTP requests.
	// Defaults to a client honoring Insecure.
	HTTPClient *http.Client
	// Defaults to a no-op logger.
	Logger *zap.Logger
	// Retry, if set, retries failed status fetches while waiting.
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
	if options.Username == "" || options.Password == "" {
		return nil, ErrMissingCredentials
	}
	if options.BaseURL == "" {
		options.BaseURL = DefaultBaseURL
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.HTTPClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if options.Insecure {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}
		options.HTTPClient = &http.Client{Transport: transport}
	}
	if options.Retry != nil && options.Retry.Retryable == nil {
		retry := *options.Retry
		retry.Retryable = restapi.IsRetryable
		options.Retry = &retry
	}
	rest, err := restapi.NewClient(restapi.Options{
		BaseURL:       options.BaseURL,
		HTTPClient:    options.HTTPClient,
		Authenticator: restapi.BasicAuth{Username: options.Username, Password: options.Password},
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

// tracked is implemented by every resource that can be waited on.
type tracked interface {
	operationID() string
	rawStatus() string
	failureMessage() string
}

func toOperation[T tracked](v T) *lro.Operation[T] {
	op := &lro.Operation[T]{
		ID:     v.operationID(),
		Status: Status(v.rawStatus()),
		Result: v,
	}
	if op.Status == lro.StatusFailed {
		op.Failure = &lro.Failure{Message: v.failureMessage()}
	}
	return op
}

// newFetcher adapts a typed getter into a poller fetch function, wrapped with retries when configured.
func newFetcher[T tracked](c *Client, get func(ctx context.Context) (T, error)) lro.FetchFunc[T] {
	fetch := func(ctx context.Context) (*lro.Operation[T], error) {
		v, err := get(ctx)
		if err != nil {
			return nil, err
		}
		return toOperation(v), nil
	}
	if c.Options.Retry != nil {
		return lro.RetryFetch(fetch, *c.Options.Retry)
	}
	return fetch
}

// wait fills in the operation ID and logger and polls until a terminal status. Deadline and Interval are used as
// given, so zero values are rejected as invalid configuration.
func wait[T tracked](ctx context.Context, c *Client, kind string, id string, fetch lro.FetchFunc[T], options lro.PollOptions) (*lro.Operation[T], error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if options.OperationID == "" {
		options.OperationID = id
	}
	if options.Logger == nil {
		options.Logger = c.logger
	}
	c.logger.Info("waiting for "+kind, zap.String("id", id), zap.Duration("deadline", options.Deadline), zap.Duration("interval", options.Interval))
	return lro.PollUntilTerminal(ctx, fetch, options)
}
