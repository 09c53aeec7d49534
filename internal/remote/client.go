// Package remote delegates a remix to an HTTP service that accepts the
// original audio file plus mood, tempo and pitch as a multipart form.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-remix/internal/config"
)

// Form field names understood by the remote service.
const (
	FieldAudio = "audio"
	FieldMood  = "mood"
	FieldTempo = "tempoMultiplier"
	FieldPitch = "pitch"
)

const maxErrorBody = 4 << 10

// ErrNotConfigured is returned by NewClient when no URL is set.
var ErrNotConfigured = errors.New("remote: no service URL configured")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote: service returned %d %s", e.Code, http.StatusText(e.Code))
	}

	return fmt.Sprintf("remote: service returned %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

// Request is one remix job.
type Request struct {
	Audio    []byte
	Filename string
	Mood     string
	Tempo    float64
	Pitch    int // semitones
}

// Client posts remix jobs to a remote service.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client built from the configured
// timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client for cfg.URL. The API key, when set, is sent as a
// bearer token.
func NewClient(cfg config.RemoteConfig, opts ...Option) (*Client, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	c := &Client{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: cfg.Timeout},
	}

	for _, o := range opts {
		o(c)
	}

	return c, nil
}

// Remix uploads req and returns the response body, the encoded result.
func (c *Client) Remix(ctx context.Context, req Request) ([]byte, error) {
	body, contentType, err := encodeForm(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("remote: build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", contentType)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("remote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("remote: read response: %w", err)
	}

	return out, nil
}

func encodeForm(req Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	name := req.Filename
	if name == "" {
		name = "input.wav"
	}

	part, err := mw.CreateFormFile(FieldAudio, name)
	if err != nil {
		return nil, "", fmt.Errorf("remote: build form: %w", err)
	}

	if _, err := part.Write(req.Audio); err != nil {
		return nil, "", fmt.Errorf("remote: build form: %w", err)
	}

	fields := [][2]string{
		{FieldMood, req.Mood},
		{FieldTempo, strconv.FormatFloat(req.Tempo, 'g', -1, 64)},
		{FieldPitch, strconv.Itoa(req.Pitch)},
	}

	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("remote: build form: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("remote: build form: %w", err)
	}

	return &buf, mw.FormDataContentType(), nil
}
