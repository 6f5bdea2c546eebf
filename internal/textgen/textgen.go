package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"churn-insights-go/internal/logger"
)

// Options are the knobs the generators pass through to the model endpoint.
type Options struct {
	// MaxLength caps generation length in tokens/characters.
	MaxLength int `json:"max_length,omitempty"`
	// NumReturnSequences asks for that many candidate outputs; only the
	// first usable one is kept.
	NumReturnSequences int `json:"num_return_sequences,omitempty"`
}

// Generator is the narrow capability the persona/story/insight generators
// depend on. Any failure, including an unrecognizable response shape, is an
// error; callers substitute their deterministic templates.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// FromEnv builds a Generator from environment configuration. Returns nil
// when no endpoint is configured and mock mode is off; a nil Generator is a
// valid state meaning "templates only".
func FromEnv() Generator {
	if os.Getenv("USE_MOCK_TEXTGEN") == "true" {
		return mockGenerator{}
	}
	url := os.Getenv("TEXTGEN_URL")
	if url == "" {
		return nil
	}
	return &Client{
		url:    url,
		apiKey: os.Getenv("TEXTGEN_API_KEY"),
		http:   &http.Client{Timeout: 12 * time.Second},
	}
}

// mockGenerator enables offline demos, mirroring the gateway's happy path
// deterministically.
type mockGenerator struct{}

func (mockGenerator) Generate(_ context.Context, prompt string, _ Options) (string, error) {
	head := prompt
	if i := strings.IndexByte(head, '\n'); i > 0 {
		head = head[:i]
	}
	if len(head) > 60 {
		head = head[:60]
	}
	return "Mock generation for: " + head, nil
}

// Client calls an HTTP text-generation endpoint. The response body shape is
// provider-dependent; ExtractText normalizes it at this boundary so nothing
// upstream ever sees the raw payloads.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

func (c *Client) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	log := logger.New().WithComponent("textgen")

	reqBody := map[string]interface{}{
		"inputs":     prompt,
		"parameters": opts,
	}
	data, _ := json.Marshal(reqBody)

	var out string
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, 12*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.url, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if resp.StatusCode >= 500 {
			return fmt.Errorf("textgen server error: %s", strings.TrimSpace(string(body)))
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("textgen rejected request: %s", strings.TrimSpace(string(body))))
		}
		text := ExtractText(body)
		if text == "" {
			return backoff.Permanent(fmt.Errorf("unrecognized textgen response shape"))
		}
		out = text
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 20 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		log.WithError(err).Warn("generation failed")
		return "", fmt.Errorf("text generation: %w", err)
	}
	return out, nil
}

// ExtractText normalizes the heterogeneous result shapes providers return:
// a plain string, {generated_text}, {generated_text: [...]}, {text},
// {sequences: [{text}]}, an array of strings, or an array of objects with a
// text field. Anything else yields "" and the caller falls back.
func ExtractText(raw []byte) string {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		// Some gateways return bare text with no JSON framing at all.
		s := strings.TrimSpace(string(raw))
		if s != "" && !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
			return s
		}
		return ""
	}
	return extractValue(v)
}

func extractValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []interface{}:
		for _, elem := range t {
			if s := extractValue(elem); s != "" {
				return s
			}
		}
	case map[string]interface{}:
		for _, key := range []string{"generated_text", "text", "sequences"} {
			if inner, ok := t[key]; ok {
				if s := extractValue(inner); s != "" {
					return s
				}
			}
		}
	}
	return ""
}
