package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/sentinai/sentinai/internal/domain"
)

// Client talks to the SentinAI backend over HTTP. It implements
// domain.AgentGateway for the console controller.
type Client struct {
	baseURL string
	httpc   *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the underlying transport, for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type processResponse struct {
	Status            string `json:"status"`
	Response          string `json:"response"`
	FileProcessed     string `json:"file_processed"`
	IntermediateSteps string `json:"intermediate_steps"`
}

// Process posts a multipart payload (query and/or file) to the processing
// endpoint.
func (c *Client) Process(ctx context.Context, req domain.ProcessRequest) (*domain.ProcessResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("query", req.Query); err != nil {
		return nil, fmt.Errorf("encode query field: %w", err)
	}

	if req.FileName != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, req.FileName))
		if req.FileType != "" {
			h.Set("Content-Type", req.FileType)
		}
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("encode file part: %w", err)
		}
		if _, err := part.Write(req.Data); err != nil {
			return nil, fmt.Errorf("encode file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/agents/process", &buf)
	if err != nil {
		return nil, fmt.Errorf("build process request: %w", err)
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("process request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("process request: unexpected status %s", resp.Status)
	}

	var body processResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode process response: %w", err)
	}

	return &domain.ProcessResult{
		Status:            body.Status,
		Response:          body.Response,
		FileProcessed:     body.FileProcessed,
		IntermediateSteps: body.IntermediateSteps,
	}, nil
}

type chatResponse struct {
	Response string `json:"response"`
	AgentID  string `json:"agent_id"`
	Status   string `json:"status"`
}

// Chat uses the simpler text-only endpoint.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/agents/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("chat request: unexpected status %s", resp.Status)
	}

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	return body.Response, nil
}

// AgentStatus is the backend's self-description from /api/agents/status.
type AgentStatus struct {
	AgentID      string   `json:"agent_id"`
	Status       string   `json:"status"`
	Capabilities []string `json:"capabilities"`
	Tools        []string `json:"tools"`
}

func (c *Client) Status(ctx context.Context) (*AgentStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/agents/status", nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("status request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status request: unexpected status %s", resp.Status)
	}

	var body AgentStatus
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &body, nil
}

// Health checks the backend's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health request: unexpected status %s", resp.Status)
	}
	return nil
}
