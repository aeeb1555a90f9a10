// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	gerrors "github.com/poptimizer/actors/errors"
	"github.com/poptimizer/actors/internal/errorschain"
	"github.com/poptimizer/actors/log"
	"github.com/poptimizer/actors/resilience"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "POPTIMIZER_"

// Config is the configuration of the poptimizer process
type Config struct {
	// LogLevel is one of debug, info, warn, error. The default value is info
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	// ShutdownTimeout bounds the graceful shutdown. The default value is 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	// MOEX configures the exchange client
	MOEX MOEX `yaml:"moex" envPrefix:"MOEX_"`
	// Retry configures the retry policy around exchange calls
	Retry Retry `yaml:"retry" envPrefix:"RETRY_"`
}

// MOEX configures the exchange client and the trading day watcher
type MOEX struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// Timeout of a single HTTP request
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	// CheckInterval is the delay between two successful checks
	CheckInterval time.Duration `yaml:"check_interval" env:"CHECK_INTERVAL"`
	// MaxCheckInterval caps the delay after repeated failures
	MaxCheckInterval time.Duration `yaml:"max_check_interval" env:"MAX_CHECK_INTERVAL"`
}

// Retry mirrors resilience.Policy
type Retry struct {
	Attempts       int           `yaml:"attempts" env:"ATTEMPTS"`
	InitialBackoff time.Duration `yaml:"initial_backoff" env:"INITIAL_BACKOFF"`
	Factor         float64       `yaml:"factor" env:"FACTOR"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		LogLevel:        "info",
		ShutdownTimeout: 30 * time.Second,
		MOEX: MOEX{
			BaseURL:          "https://iss.moex.com",
			Timeout:          30 * time.Second,
			CheckInterval:    time.Hour,
			MaxCheckInterval: 24 * time.Hour,
		},
		Retry: Retry{
			Attempts:       resilience.DefaultAttempts,
			InitialBackoff: resilience.DefaultInitialBackoff,
			Factor:         resilience.DefaultFactor,
		},
	}
}

// LoadDotEnv exports the variables of the given .env files that are not
// already set. Without argument it reads ./.env
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load dotenv files: %w", err)
	}
	return nil
}

// Load builds the configuration from the defaults, the YAML file at path when
// given, then the POPTIMIZER_ environment variables, then the options.
// The result is validated.
func Load(path string, opts ...Option) (*Config, error) {
	config := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(content, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	for _, opt := range opts {
		opt.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	_, policyErr := c.Policy()

	chain := errorschain.New(errorschain.ReturnAll()).
		AddErrorIf(log.ParseLevel(c.LogLevel) == log.InvalidLevel, fmt.Errorf("unknown log level %q", c.LogLevel)).
		AddErrorIf(c.ShutdownTimeout <= 0, gerrors.ErrInvalidTimeout).
		AddErrorFn(c.MOEX.validate).
		AddError(policyErr)

	if err := chain.Error(); err != nil {
		return gerrors.NewErrInvalidConfig(err)
	}
	return nil
}

// Policy returns the retry policy described by the configuration
func (c *Config) Policy(kinds ...resilience.Kind) (*resilience.Policy, error) {
	return resilience.NewPolicy(c.Retry.Attempts, c.Retry.InitialBackoff, c.Retry.Factor, kinds...)
}

// Logger returns a JSON logger writing to os.Stdout at the configured level
func (c *Config) Logger() log.Logger {
	return log.NewZap(log.ParseLevel(c.LogLevel), os.Stdout)
}

func (m MOEX) validate() error {
	chain := errorschain.New(errorschain.ReturnAll())

	endpoint, err := url.Parse(m.BaseURL)
	switch {
	case err != nil:
		chain.AddError(fmt.Errorf("invalid moex base url: %w", err))
	case endpoint.Scheme != "http" && endpoint.Scheme != "https", endpoint.Host == "":
		chain.AddError(fmt.Errorf("invalid moex base url %q", m.BaseURL))
	}

	return chain.
		AddErrorIf(m.Timeout <= 0, fmt.Errorf("moex timeout: %w", gerrors.ErrInvalidTimeout)).
		AddErrorIf(m.CheckInterval <= 0, fmt.Errorf("check interval must be positive, got %s", m.CheckInterval)).
		AddErrorIf(m.MaxCheckInterval < m.CheckInterval, fmt.Errorf("max check interval %s is below check interval %s", m.MaxCheckInterval, m.CheckInterval)).
		Error()
}
