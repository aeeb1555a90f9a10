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

// Package moex reads market status from the Moscow Exchange information
// and statistical server (ISS).
package moex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the public ISS endpoint
	DefaultBaseURL = "https://iss.moex.com"
	// DefaultTimeout bounds a single request
	DefaultTimeout = 30 * time.Second

	boardDatesPath = "/iss/history/engines/stock/markets/shares/boards/TQBR/dates.json"
	dateLayout     = time.DateOnly
)

var (
	// ErrBadPayload is returned when ISS answers with an unexpected table
	ErrBadPayload = errors.New("unexpected ISS payload")
	// ErrBadStatus is returned when ISS answers with a non 200 status code
	ErrBadStatus = errors.New("unexpected ISS status")
)

// Client queries ISS over HTTP
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient creates a Client for baseURL. Requests time out after timeout;
// zero selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ISS base url %q: %w", baseURL, err)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: parsed,
		http:    newHTTPClient(timeout),
	}, nil
}

// newHTTPClient keeps connections alive between the periodic checks
func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			MaxIdleConns:        4,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// LastTradingDay returns the last day for which TQBR trading results are published
func (c *Client) LastTradingDay(ctx context.Context) (time.Time, error) {
	var payload struct {
		Dates table `json:"dates"`
	}

	if err := c.get(ctx, boardDatesPath, &payload); err != nil {
		return time.Time{}, err
	}

	if rows := len(payload.Dates.Data); rows != 1 {
		return time.Time{}, fmt.Errorf("%w: wrong rows count %d", ErrBadPayload, rows)
	}

	till, err := payload.Dates.value(0, "till")
	if err != nil {
		return time.Time{}, err
	}

	day, err := time.Parse(dateLayout, till)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return day, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	query := endpoint.Query()
	query.Set("iss.meta", "off")
	endpoint.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build ISS request: %w", err)
	}

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("ISS request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrBadStatus, response.Status)
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode ISS response: %w", err)
	}
	return nil
}

// table is the ISS columnar block: column names and rows of values
type table struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

// value returns the string cell of row under column
func (t table) value(row int, column string) (string, error) {
	for index, name := range t.Columns {
		if name != column {
			continue
		}

		if index >= len(t.Data[row]) {
			return "", fmt.Errorf("%w: row %d is too short", ErrBadPayload, row)
		}

		cell, ok := t.Data[row][index].(string)
		if !ok {
			return "", fmt.Errorf("%w: column %s is not a string", ErrBadPayload, column)
		}
		return cell, nil
	}
	return "", fmt.Errorf("%w: missing column %s", ErrBadPayload, column)
}
