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

package moex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, boardDatesPath, r.URL.Path)
		assert.Equal(t, "off", r.URL.Query().Get("iss.meta"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLastTradingDay(t *testing.T) {
	t.Run("With one row", func(t *testing.T) {
		server := newServer(t, http.StatusOK, `{"dates": {"columns": ["from", "till"], "data": [["1997-03-24", "2024-01-05"]]}}`)

		client, err := NewClient(server.URL, time.Second)
		require.NoError(t, err)

		day, err := client.LastTradingDay(context.Background())
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), day)
	})
	t.Run("With reordered columns", func(t *testing.T) {
		server := newServer(t, http.StatusOK, `{"dates": {"columns": ["till", "from"], "data": [["2024-01-05", "1997-03-24"]]}}`)

		client, err := NewClient(server.URL, time.Second)
		require.NoError(t, err)

		day, err := client.LastTradingDay(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 5, day.Day())
	})
	t.Run("With bad payloads", func(t *testing.T) {
		testCases := []struct {
			name string
			body string
		}{
			{name: "no rows", body: `{"dates": {"columns": ["from", "till"], "data": []}}`},
			{name: "two rows", body: `{"dates": {"columns": ["from", "till"], "data": [["1997-03-24", "2024-01-05"], ["1997-03-24", "2024-01-08"]]}}`},
			{name: "missing column", body: `{"dates": {"columns": ["from"], "data": [["1997-03-24"]]}}`},
			{name: "short row", body: `{"dates": {"columns": ["from", "till"], "data": [["1997-03-24"]]}}`},
			{name: "not a string", body: `{"dates": {"columns": ["from", "till"], "data": [["1997-03-24", 42]]}}`},
			{name: "not a date", body: `{"dates": {"columns": ["from", "till"], "data": [["1997-03-24", "yesterday"]]}}`},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				server := newServer(t, http.StatusOK, tc.body)

				client, err := NewClient(server.URL, time.Second)
				require.NoError(t, err)

				_, err = client.LastTradingDay(context.Background())
				require.ErrorIs(t, err, ErrBadPayload)
			})
		}
	})
	t.Run("With bad status", func(t *testing.T) {
		server := newServer(t, http.StatusBadGateway, "")

		client, err := NewClient(server.URL, time.Second)
		require.NoError(t, err)

		_, err = client.LastTradingDay(context.Background())
		require.ErrorIs(t, err, ErrBadStatus)
	})
	t.Run("With canceled context", func(t *testing.T) {
		server := newServer(t, http.StatusOK, "{}")

		client, err := NewClient(server.URL, time.Second)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = client.LastTradingDay(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
	t.Run("With invalid base url", func(t *testing.T) {
		_, err := NewClient("://nowhere", time.Second)
		require.Error(t, err)
	})
	t.Run("With defaults", func(t *testing.T) {
		client, err := NewClient("", 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.baseURL.String())
		assert.Equal(t, DefaultTimeout, client.http.Timeout)
	})
}
