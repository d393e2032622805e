package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/redis-developer/redisctl-go/lro"
	"github.com/redis-developer/redisctl-go/rediscloud"
	"github.com/redis-developer/redisctl-go/redisenterprise"
)

// Settings are read from REDISCTL_* environment variables. Command line flags take precedence.
type Settings struct {
	CloudAPIKey    string `envconfig:"REDIS_CLOUD_API_KEY" default:""`
	CloudAPISecret string `envconfig:"REDIS_CLOUD_API_SECRET" default:""`
	CloudAPIURL    string `envconfig:"REDIS_CLOUD_API_URL" default:"https://api.redislabs.com/v1"`

	EnterpriseURL      string `envconfig:"REDIS_ENTERPRISE_URL" default:"https://localhost:9443"`
	EnterpriseUser     string `envconfig:"REDIS_ENTERPRISE_USER" default:""`
	EnterprisePassword string `envconfig:"REDIS_ENTERPRISE_PASSWORD" default:""`
	EnterpriseInsecure bool   `envconfig:"REDIS_ENTERPRISE_INSECURE" default:"false"`

	// WaitTimeout is the maximum time to wait before giving up.
	WaitTimeout time.Duration `envconfig:"WAIT_TIMEOUT" default:"300s"`
	// WaitInterval is the time between status checks.
	WaitInterval time.Duration `envconfig:"WAIT_INTERVAL" default:"2s"`
	// FetchRetries is the number of extra attempts for a failed status check while waiting.
	FetchRetries int `envconfig:"FETCH_RETRIES" default:"0"`

	Output string `envconfig:"OUTPUT" default:"json"`
}

const envPrefix = "redisctl"

func NewSettings() (Settings, error) {
	var s Settings
	err := envconfig.Process(envPrefix, &s)
	return s, err
}

func (s Settings) retryOptions() *lro.RetryOptions {
	if s.FetchRetries <= 0 {
		return nil
	}
	return &lro.RetryOptions{MaxAttempts: s.FetchRetries + 1, Jitter: true}
}

func (s Settings) cloudOptions() rediscloud.Options {
	return rediscloud.Options{
		BaseURL:   s.CloudAPIURL,
		APIKey:    s.CloudAPIKey,
		APISecret: s.CloudAPISecret,
		Retry:     s.retryOptions(),
	}
}

func (s Settings) enterpriseOptions() redisenterprise.Options {
	return redisenterprise.Options{
		BaseURL:  s.EnterpriseURL,
		Username: s.EnterpriseUser,
		Password: s.EnterprisePassword,
		Insecure: s.EnterpriseInsecure,
		Retry:    s.retryOptions(),
	}
}
