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
	"io/fs"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/poptimizer/actors/config"
)

var (
	configPath string
	envFiles   []string
)

var rootCmd = &cobra.Command{
	Use:           "poptimizer",
	Short:         "Watches the Moscow Exchange and keeps market data up to date",
	SilenceUsage:  true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		err := config.LoadDotEnv(envFiles...)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(err, "error loading .env file")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path of the YAML configuration file")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load, ./.env by default")
	rootCmd.AddCommand(runCmd, configCmd)
}
