package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// An Authenticator decorates outgoing requests with credentials.
type Authenticator interface {
	Authenticate(*http.Request)
}

// APIKeyAuth authenticates with the Redis Cloud key headers.
type APIKeyAuth struct {
	Key    string
	Secret string
}

func (a APIKeyAuth) Authenticate(request *http.Request) {
	request.Header.Set(HeaderAPIKey, a.Key)
	request.Header.Set(HeaderAPISecretKey, a.Secret)
}

// BasicAuth authenticates with HTTP basic credentials.
type BasicAuth struct {
	Username string
	Password string
}

func (a BasicAuth) Authenticate(request *http.Request) {
	request.SetBasicAuth(a.Username, a.Password)
}

type Options struct {
	// Base URL of the API, including any version prefix.
	BaseURL string
	// An Client to use for making HTTP requests.
	// Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Authenticator applied to every request. Optional.
	Authenticator Authenticator
	// Logger for request tracing.
	// Defaults to a no-op logger.
	Logger *zap.Logger
	// Optional marshaler for request bodies.
	// Defaults to DefaultMarshaler.
	Marshaler Marshaler
}

// Client issues JSON requests against a REST API.
type Client struct {
	// The options this client was created with after applying defaults.
	Options Options
	baseURL *url.URL
	logger  *zap.Logger
}

func NewClient(options Options) (*Client, error) {
	if options.BaseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	baseURL, err := url.Parse(options.BaseURL)
	if err != nil {
		return nil, err
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, ErrInvalidURLScheme
	}
	if options.HTTPClient == nil {
		options.HTTPClient = http.DefaultClient
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Marshaler == nil {
		options.Marshaler = DefaultMarshaler
	}
	return &Client{
		Options: options,
		baseURL: baseURL,
		logger:  options.Logger,
	}, nil
}

// BaseURL returns the parsed base URL.
func (c *Client) BaseURL() *url.URL {
	return c.baseURL
}

func (c *Client) joinURL(path string) *url.URL {
	path, rawQuery, _ := strings.Cut(path, "?")
	u := c.baseURL.JoinPath(path)
	u.RawQuery = rawQuery
	return u
}

// Get issues a GET request for path and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON encoded body and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Delete issues a DELETE request for path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do issues a request. body, if not nil, is JSON encoded. out, if not nil, receives the decoded response body.
func (c *Client) Do(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := c.Options.Marshaler(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	u := c.joinURL(path)
	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		httpReq.Header.Set(HeaderContentType, ContentTypeJSON)
	}
	httpReq.Header.Set(HeaderAccept, ContentTypeJSON)
	httpReq.Header.Set("User-Agent", UserAgent)
	requestID := uuid.NewString()
	httpReq.Header.Set(HeaderRequestID, requestID)
	if c.Options.Authenticator != nil {
		c.Options.Authenticator.Authenticate(httpReq)
	}

	c.logger.Debug("sending request", zap.String("method", method), zap.String("url", u.String()), zap.String("requestID", requestID))
	response, err := c.Options.HTTPClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	c.logger.Debug("received response", zap.String("requestID", requestID), zap.Int("status", response.StatusCode))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &APIError{
			Method:       method,
			Path:         path,
			StatusCode:   response.StatusCode,
			Response:     response,
			ResponseBody: responseBody,
		}
	}
	if out == nil || len(bytes.TrimSpace(responseBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}
