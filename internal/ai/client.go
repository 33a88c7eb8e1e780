package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "researchops/internal/errors"
)

// DefaultSystemContext is the system prompt used by the create-research flow.
const DefaultSystemContext = "You are an AI assistant that helps people find information.."

const (
	maxAttempts      = 3
	baseBackoff      = 4 * time.Second
	maxBackoff       = 10 * time.Second
	requestTimeout   = 30 * time.Second
	defaultMaxTokens = 800
)

// Options control completion sampling. The zero value is not useful; use
// DefaultOptions.
type Options struct {
	MaxTokens        int      `json:"max_tokens"`
	Temperature      float64  `json:"temperature"`
	TopP             float64  `json:"top_p"`
	FrequencyPenalty float64  `json:"frequency_penalty"`
	PresencePenalty  float64  `json:"presence_penalty"`
	Stop             []string `json:"stop,omitempty"`
	Stream           bool     `json:"stream"`
}

// DefaultOptions returns the sampling parameters used by the pipeline.
func DefaultOptions() Options {
	return Options{
		MaxTokens:   defaultMaxTokens,
		Temperature: 0.7,
		TopP:        0.95,
	}
}

// Client calls the Azure OpenAI chat completions API. Configuration is
// captured at construction time; there is no package-level state.
type Client struct {
	endpoint   string
	apiKey     string
	deployment string
	apiVersion string
	httpClient *http.Client
	log        *logrus.Logger

	// Backoff knobs, overridable in tests.
	attempts  int
	baseDelay time.Duration
	maxDelay  time.Duration
}

// NewClient initializes a completion gateway client.
func NewClient(endpoint, apiKey, deployment, apiVersion string, log *logrus.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		deployment: deployment,
		apiVersion: apiVersion,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		log:       log,
		attempts:  maxAttempts,
		baseDelay: baseBackoff,
		maxDelay:  maxBackoff,
	}
}

type messageContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type chatMessage struct {
	Role    string           `json:"role"`
	Content []messageContent `json:"content"`
}

type completionRequest struct {
	Messages []chatMessage `json:"messages"`
	Options
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// prepareChat builds the system + user message pair.
func prepareChat(question, systemContext string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: []messageContent{{Type: "text", Text: systemContext}}},
		{Role: "user", Content: []messageContent{{Type: "text", Text: question}}},
	}
}

func (c *Client) completionsURL() string {
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, c.apiVersion)
}

// Answer asks the provider the question with the given system context and
// returns the first generated message's text. Transient failures are retried
// sequentially with exponential backoff; a failure persisting after all
// attempts surfaces as ErrUpstreamUnavailable, a response that cannot be
// interpreted as ErrUpstreamMalformed.
func (c *Client) Answer(ctx context.Context, question, systemContext string) (string, error) {
	return c.AnswerWithOptions(ctx, question, systemContext, DefaultOptions())
}

// AnswerWithOptions is Answer with explicit sampling parameters.
func (c *Client) AnswerWithOptions(ctx context.Context, question, systemContext string, opts Options) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Messages: prepareChat(question, systemContext),
		Options:  opts,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	backoff := c.baseDelay
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		body, retryable, err := c.doRequest(ctx, payload)
		if err == nil {
			return c.extractContent(body)
		}
		lastErr = err
		c.log.WithError(err).WithField("attempt", attempt).Warn("completion request failed")

		if !retryable || attempt == c.attempts {
			break
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return "", apperrors.ErrUpstreamUnavailable
		}
		backoff *= 2
		if backoff > c.maxDelay {
			backoff = c.maxDelay
		}
	}

	c.log.WithError(lastErr).Error("completion request gave up")
	return "", apperrors.ErrUpstreamUnavailable
}

// doRequest performs one attempt. The second return value reports whether the
// failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, payload []byte) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.completionsURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, false, nil
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusRequestTimeout,
		resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

func (c *Client) extractContent(body []byte) (string, error) {
	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.log.WithError(err).Error("completion response is not valid JSON")
		return "", apperrors.ErrUpstreamMalformed
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", apperrors.ErrUpstreamMalformed
	}
	return parsed.Choices[0].Message.Content, nil
}
