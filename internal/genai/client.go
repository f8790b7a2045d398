package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// Outbound pacing; the generative API is the only high-latency,
	// failure-prone boundary in the system.
	rateLimit = 1 // requests per second
	rateBurst = 3

	maxRetries   = 2
	initialDelay = 1 * time.Second
	maxDelay     = 8 * time.Second
)

// ErrDisabled is returned by every generation call when no API key is
// configured. Callers treat it like any other endpoint failure.
var ErrDisabled = errors.New("generative language API key not configured")

// Generator produces a single text completion for a prompt.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Client calls the Gemini generateContent endpoint with a fixed
// safety/moderation configuration.
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a Gemini API client. An empty apiKey yields a client
// whose calls all fail with ErrDisabled.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey:      apiKey,
		model:       model,
		baseURL:     defaultBaseURL,
		timeout:     timeout,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type generateRequest struct {
	Contents       []content       `json:"contents"`
	SafetySettings []safetySetting `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Blocks harmful content at medium probability and above across all four
// harm categories.
var defaultSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// GenerateText sends one prompt and returns the first candidate's text. The
// call runs under a bounded timeout; expiry counts as an endpoint failure.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody := generateRequest{
		Contents:       []content{{Parts: []part{{Text: prompt}}}},
		SafetySettings: defaultSafetySettings,
	}
	bodyJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyJSON))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries && ctx.Err() == nil {
				log.Printf("[genai] request failed (attempt %d/%d): %v, retrying in %v",
					attempt+1, maxRetries, err, delay)
				if err := sleepContext(ctx, delay); err != nil {
					return "", err
				}
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return "", fmt.Errorf("request failed after %d attempts: %w", attempt+1, err)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			if shouldRetry(resp.StatusCode) && attempt < maxRetries {
				lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
				log.Printf("[genai] HTTP %d (attempt %d/%d), retrying in %v",
					resp.StatusCode, attempt+1, maxRetries, delay)
				if err := sleepContext(ctx, delay); err != nil {
					return "", err
				}
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}

		var genResp generateResponse
		if err := json.Unmarshal(respBody, &genResp); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
		if genResp.Error != nil {
			return "", fmt.Errorf("API error %d: %s", genResp.Error.Code, genResp.Error.Message)
		}
		if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
			return "", errors.New("empty completion")
		}

		text := ""
		for _, p := range genResp.Candidates[0].Content.Parts {
			text += p.Text
		}
		return text, nil
	}

	return "", lastErr
}

// sleepContext waits for d or until ctx is cancelled, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
