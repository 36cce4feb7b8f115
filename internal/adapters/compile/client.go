// Package compile forwards source code to a remote execution service.
package compile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrUnsupportedLanguage = errors.New("unsupported or missing language")

// responses above this size are treated as an upstream failure
const maxResponseBytes = 4 << 20

// UpstreamError is a non-2xx answer from the execution service.
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("execution service returned %d", e.Status)
}

type Options struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type Client struct {
	opts Options
	http *http.Client
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}
}

type executeRequest struct {
	Script       string `json:"script"`
	Language     string `json:"language"`
	VersionIndex string `json:"versionIndex"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// Execute runs code once on the remote service and returns its body verbatim.
func (c *Client) Execute(ctx context.Context, code, language string) ([]byte, error) {
	version, ok := VersionIndex(language)
	if !ok {
		return nil, ErrUnsupportedLanguage
	}

	payload, err := json.Marshal(executeRequest{
		Script:       code,
		Language:     language,
		VersionIndex: version,
		ClientID:     c.opts.ClientID,
		ClientSecret: c.opts.ClientSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("encode execute request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build execute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call execution service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read execution response: %w", err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("execution response exceeds %d bytes", maxResponseBytes)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: body}
	}

	log.Debug().Str("module", "compile").Str("language", language).Int("status", resp.StatusCode).Dur("took", time.Since(started)).Msg("executed")
	return body, nil
}
