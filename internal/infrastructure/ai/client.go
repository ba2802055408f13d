package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"contentstudio-backend/internal/config"
)

// =====================================================
// GENERATION PROVIDER CLIENT
// =====================================================
// One-shot request/response client for an OpenAI-compatible provider.
// No retries and no streaming: a failed call is terminal for that
// attempt, the caller decides whether to resubmit.

// Prompt is the assembled instruction for one generation call.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
	JSONMode    bool // ask the provider for a JSON object response
}

// Image is the result of one image generation call.
type Image struct {
	Data        []byte
	ContentType string
}

// Generator is the surface content domains depend on; tests substitute
// a fake that counts calls.
type Generator interface {
	Complete(ctx context.Context, p Prompt) (string, error)
	CompleteJSON(ctx context.Context, p Prompt, out interface{}) error
	GenerateImage(ctx context.Context, prompt, size string) (*Image, error)
}

// ProviderError carries the provider's failure verbatim; the message is
// surfaced to the user unchanged.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return e.Message
}

type Client struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

// NewClient creates the provider client. The timeout is configuration,
// not a constant: a hung provider request fails after cfg.TimeoutSeconds
// instead of pinning the caller forever.
func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// =====================================================
// CHAT COMPLETIONS
// =====================================================

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	Temperature    float64       `json:"temperature,omitempty"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type providerErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete issues exactly one chat-completion request and returns the
// generated text.
func (c *Client) Complete(ctx context.Context, p Prompt) (string, error) {
	// Step 1: Build request body
	req := chatRequest{
		Model:       c.cfg.Model,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	}
	if p.System != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: p.System})
	}
	req.Messages = append(req.Messages, chatMessage{Role: "user", Content: p.User})
	if p.JSONMode {
		req.ResponseFormat = &respFormat{Type: "json_object"}
	}

	// Step 2: Call provider
	body, err := c.post(ctx, "/chat/completions", req)
	if err != nil {
		return "", err
	}

	// Step 3: Extract generated text
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Message: "provider returned no choices"}
	}

	return resp.Choices[0].Message.Content, nil
}

// CompleteJSON issues one request in JSON mode and unmarshals the
// response object into out.
func (c *Client) CompleteJSON(ctx context.Context, p Prompt, out interface{}) error {
	p.JSONMode = true

	content, err := c.Complete(ctx, p)
	if err != nil {
		return err
	}

	// Some providers wrap the object in a fenced block despite JSON mode
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	if err := json.Unmarshal([]byte(content), out); err != nil {
		return &ProviderError{Message: fmt.Sprintf("provider returned malformed JSON: %v", err)}
	}
	return nil
}

// =====================================================
// IMAGE GENERATION
// =====================================================

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// GenerateImage issues one image request and returns the decoded bytes.
func (c *Client) GenerateImage(ctx context.Context, prompt, size string) (*Image, error) {
	req := imageRequest{
		Model:          c.cfg.ImageModel,
		Prompt:         prompt,
		N:              1,
		Size:           size,
		ResponseFormat: "b64_json",
	}

	body, err := c.post(ctx, "/images/generations", req)
	if err != nil {
		return nil, err
	}

	var resp imageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, &ProviderError{Message: "provider returned no image"}
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}

	return &Image{Data: data, ContentType: "image/png"}, nil
}

// =====================================================
// HTTP PLUMBING
// =====================================================

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	bodyJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Message: err.Error()}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Pass the provider's message through verbatim
		var errBody providerErrorBody
		if err := json.Unmarshal(bodyBytes, &errBody); err == nil && errBody.Error.Message != "" {
			return nil, &ProviderError{StatusCode: resp.StatusCode, Message: errBody.Error.Message}
		}
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	return bodyBytes, nil
}
