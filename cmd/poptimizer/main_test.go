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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/poptimizer/actors/config"
)

func TestConfigCommand(t *testing.T) {
	t.Run("With a configuration file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "poptimizer.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nmoex:\n  check_interval: 2h\n"), 0o600))

		output := new(bytes.Buffer)
		rootCmd.SetOut(output)
		rootCmd.SetArgs([]string{"config", "--config", path})
		require.NoError(t, rootCmd.Execute())

		printed := new(config.Config)
		require.NoError(t, yaml.Unmarshal(output.Bytes(), printed))
		assert.Equal(t, "debug", printed.LogLevel)
		assert.Equal(t, "2h0m0s", printed.MOEX.CheckInterval.String())
		assert.Equal(t, config.Default().MOEX.BaseURL, printed.MOEX.BaseURL)
	})
	t.Run("With an invalid configuration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "poptimizer.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o600))

		rootCmd.SetOut(new(bytes.Buffer))
		rootCmd.SetErr(new(bytes.Buffer))
		rootCmd.SetArgs([]string{"config", "--config", path})
		require.Error(t, rootCmd.Execute())
	})
}
