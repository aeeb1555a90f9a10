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

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/poptimizer/actors/actor"
	"github.com/poptimizer/actors/config"
	"github.com/poptimizer/actors/internal/moex"
	"github.com/poptimizer/actors/internal/updater"
	"github.com/poptimizer/actors/resilience"
)

// runCmd starts the actors tree and blocks until SIGINT or SIGTERM
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the trading day watcher",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}

		logger := cfg.Logger()

		policy, err := cfg.Policy(resilience.Is(updater.ErrDataUpdate), resilience.Transient())
		if err != nil {
			return errors.Wrap(err, "invalid retry policy")
		}

		client, err := moex.NewClient(cfg.MOEX.BaseURL, cfg.MOEX.Timeout)
		if err != nil {
			return errors.Wrap(err, "failed to create the exchange client")
		}

		app := updater.NewApp(client,
			updater.WithPolicy(policy),
			updater.WithCheckInterval(cfg.MOEX.CheckInterval),
			updater.WithMaxCheckInterval(cfg.MOEX.MaxCheckInterval))

		logger.Info("poptimizer is starting")
		if err := actor.Run(cmd.Context(), app,
			actor.WithLogger(logger),
			actor.WithShutdownTimeout(cfg.ShutdownTimeout)); err != nil {
			return errors.Wrap(err, "poptimizer stopped with errors")
		}
		return nil
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}

		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		defer encoder.Close()
		return encoder.Encode(cfg)
	},
}
