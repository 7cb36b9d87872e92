// Package gemini is the generative extraction backend: documents go to
// Vertex AI as inline image/PDF parts and come back as constrained JSON.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"

	"github.com/CorretorBrazza/docu-flow-automato/internal/common"
)

// Config carries the Vertex AI connection settings.
type Config struct {
	ProjectID string
	Region    string
	Model     string
	Timeout   time.Duration
}

// Client holds one pre-configured generative model per task. Extraction and
// quality answer JSON; classification answers a single bare token.
type Client struct {
	extractModel  *genai.GenerativeModel
	classifyModel *genai.GenerativeModel
	qualityModel  *genai.GenerativeModel
	base          *genai.Client
	timeout       time.Duration
	logger        *slog.Logger
}

// NewClient dials Vertex AI and configures the task models.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.ProjectID == "" || cfg.Region == "" {
		return nil, common.NewAppError("INVALID_INPUT", "gemini: project id and region are required", nil)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	base, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	extractModel := base.GenerativeModel(cfg.Model)
	extractModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(extractSystemPrompt)},
	}
	extractModel.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}

	classifyModel := base.GenerativeModel(cfg.Model)
	classifyModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(classifySystemPrompt)},
	}
	classifyModel.GenerationConfig = genai.GenerationConfig{
		Temperature: genai.Ptr[float32](0.0),
	}

	qualityModel := base.GenerativeModel(cfg.Model)
	qualityModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(qualitySystemPrompt)},
	}
	qualityModel.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}

	return &Client{
		extractModel:  extractModel,
		classifyModel: classifyModel,
		qualityModel:  qualityModel,
		base:          base,
		timeout:       cfg.Timeout,
		logger:        logger,
	}, nil
}

func (c *Client) Close() error {
	if c.base != nil {
		return c.base.Close()
	}
	return nil
}

// generate sends one inline document part plus a user prompt and returns the
// concatenated text of the first candidate. Transport and model failures map
// to common.ErrBackendUnavailable.
func (c *Client) generate(ctx context.Context, model *genai.GenerativeModel, mimeType string, data []byte, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	doc := genai.Blob{MIMEType: mimeType, Data: data}
	resp, err := model.GenerateContent(ctx, doc, genai.Text(prompt))
	if err != nil {
		return "", common.BackendErrorf("gemini: generate content: %v", err)
	}
	txt := firstCandidateText(resp)
	if strings.TrimSpace(txt) == "" {
		return "", common.BackendErrorf("gemini: empty response")
	}
	return txt, nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}
