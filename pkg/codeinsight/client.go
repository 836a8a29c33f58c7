// Package codeinsight is a small client for the Code Insight REST API used by custom reports
package codeinsight

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const apiPrefix = "/codeinsight/api"

// Config holds the connection settings for one Code Insight server
type Config struct {
	BaseURL   string
	AuthToken string

	// TLS configuration, including any self signed certificate from server_properties.json
	TLS *tls.Config

	// Timeout for a single call (0 = none)
	Timeout time.Duration

	UserAgent string
}

// Client talks to the Code Insight REST API. Every call is attempted exactly once.
type Client struct {
	client *http.Client
	config Config
	logger zerolog.Logger

	// Request tracking
	requestCount int64
	totalTime    time.Duration
}

// Response is a completed API call with its body already read
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	RequestURL    string
	RequestMethod string
	Duration      time.Duration
}

// NewClient creates a new Code Insight client
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ProjectLockUtility/1.0"
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		transport.TLSClientConfig = cfg.TLS.Clone()
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}
}

// BaseURL returns the server the client talks to
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Do performs an API call against a path below /codeinsight/api
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*Response, error) {
	url := c.config.BaseURL + apiPrefix + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &APIError{
			URL:       url,
			Method:    method,
			Message:   err.Error(),
			ErrorType: "request_creation",
		}
	}

	c.setRequestHeaders(req, headers)

	startTime := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(startTime)

	c.requestCount++
	c.totalTime += duration

	if err != nil {
		apiErr := &APIError{
			URL:       url,
			Method:    method,
			Duration:  duration,
			Message:   err.Error(),
			ErrorType: classifyHTTPError(err),
		}
		c.logger.Error().Err(apiErr).Msg("Code Insight API call failed")
		return nil, apiErr
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	response := &Response{
		StatusCode:    resp.StatusCode,
		Header:        resp.Header,
		Body:          bodyBytes,
		RequestURL:    url,
		RequestMethod: method,
		Duration:      duration,
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("Code Insight API call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(response)
		c.logger.Error().Err(apiErr).Msg("Code Insight API call returned an error status")
		return nil, apiErr
	}

	return response, nil
}

// getJSON performs a GET and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", resp.RequestURL, err)
	}

	return nil
}

// setRequestHeaders sets the headers every Code Insight call needs
func (c *Client) setRequestHeaders(req *http.Request, additionalHeaders map[string]string) {
	req.Header.Set("User-Agent", c.config.UserAgent)

	if c.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}

	for key, value := range additionalHeaders {
		req.Header.Set(key, value)
	}

	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
}

// GetStats returns client statistics
func (c *Client) GetStats() (int64, time.Duration) {
	if c.requestCount == 0 {
		return 0, 0
	}
	return c.requestCount, c.totalTime / time.Duration(c.requestCount)
}

// Close releases idle connections
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}
