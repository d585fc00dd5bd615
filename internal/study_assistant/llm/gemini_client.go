package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/studymate/studymate-backend/internal/logging"
	"github.com/studymate/studymate-backend/internal/metrics"
)

const maxErrorBody = 64 << 10

var (
	ErrMissingAPIKey   = errors.New("gemini api key not configured")
	ErrUpstreamStatus  = errors.New("gemini returned non-2xx status")
	ErrEmptyCandidates = errors.New("gemini returned no candidate text")
)

// Options configures a Client. A zero Timeout leaves the call bounded only by ctx.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   strings.TrimSpace(opts.Model),
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Generate sends req.Prompt and returns the first candidate's first text part.
// When req.Schema is set the reply is requested as JSON conforming to it.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	logger := logging.NewLogger(ctx)
	start := time.Now()

	text, err := c.generate(ctx, logger, req)
	metrics.ObserveUpstreamCall(req.Operation, time.Since(start), err)
	if err != nil {
		logger.LogError(req.Operation, err)
		return "", err
	}
	return text, nil
}

func (c *Client) generate(ctx context.Context, logger *logging.Logger, req GenerateRequest) (string, error) {
	if !c.Enabled() {
		return "", ErrMissingAPIKey
	}

	body := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: req.Prompt}}}},
	}
	if req.Schema != nil {
		body.GenerationConfig = &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   req.Schema,
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", redact(err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("upstream request failed: %w", redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != nil {
			logger.LogWarnf(req.Operation, "upstream status=%d reason=%s message=%q", resp.StatusCode, er.Error.Status, er.Error.Message)
		} else {
			logger.LogWarnf(req.Operation, "upstream status=%d", resp.StatusCode)
		}
		return "", fmt.Errorf("%w: status %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(out.Candidates) == 0 {
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyCandidates, out.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyCandidates
	}
	parts := out.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return "", fmt.Errorf("%w: finish reason %q", ErrEmptyCandidates, out.Candidates[0].FinishReason)
	}

	logger.LogDebugf(req.Operation, "upstream returned %d bytes", len(*parts[0].Text))
	return *parts[0].Text, nil
}

func (c *Client) endpoint() string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	return fmt.Sprintf("%s/models/%s:generateContent?%s", c.baseURL, c.model, q.Encode())
}

// redact drops the request URL, which carries the API key, from transport errors.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
