package acl

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/ritual-service/internal/adapters/clients"
	"github.com/jsamuelsen/ritual-service/internal/domain"
)

const (
	chatCompletionsPath  = "/v1/chat/completions"
	imageGenerationsPath = "/v1/images/generations"

	defaultChatModel  = "gpt-4o-mini"
	defaultImageModel = "dall-e-3"
	imageQuality      = "standard"
)

// OpenAIConfig configures the OpenAI adapter.
type OpenAIConfig struct {
	// Client must authenticate with BearerAuth.
	Client *clients.Client

	ChatModel  string
	ImageModel string

	Logger *slog.Logger
}

// OpenAIClient implements ports.ContentGenerator against the OpenAI REST API.
type OpenAIClient struct {
	BaseAdapter

	chatModel  string
	imageModel string
	logger     *slog.Logger
}

// NewOpenAIClient panics if Client is nil.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Client == nil {
		panic("OpenAIClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = defaultChatModel
	}

	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = defaultImageModel
	}

	return &OpenAIClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, ""),
		chatModel:   chatModel,
		imageModel:  imageModel,
		logger:      logger.With(slog.String("component", "acl.OpenAIClient")),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type imageResponse struct {
	Data []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
}

// GenerateRitual sends prompt as the only system message and decodes the JSON
// object the model returns.
func (c *OpenAIClient) GenerateRitual(ctx context.Context, prompt string) (*domain.Ritual, error) {
	if err := ValidateRequired(strings.TrimSpace(prompt), "prompt"); err != nil {
		return nil, err
	}

	req := chatRequest{
		Model:          c.chatModel,
		Messages:       []chatMessage{{Role: "system", Content: prompt}},
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	var resp chatResponse
	if err := c.PostJSON(ctx, chatCompletionsPath, req, &resp, "generate ritual"); err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "ritual completion received",
		slog.String("completion_id", resp.ID),
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return c.translateRitual(&resp)
}

func (c *OpenAIClient) translateRitual(resp *chatResponse) (*domain.Ritual, error) {
	if len(resp.Choices) == 0 {
		return nil, domain.NewUnavailableError(c.ServiceName(), "completion has no choices")
	}

	choice := resp.Choices[0]

	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		return nil, domain.NewUnavailableError(c.ServiceName(), "completion is empty")
	}

	var ritual domain.Ritual
	if err := json.Unmarshal([]byte(content), &ritual); err != nil {
		reason := "completion is not a ritual object"
		if choice.FinishReason == "length" {
			reason = "completion truncated"
		}

		return nil, domain.NewUnavailableError(c.ServiceName(), reason)
	}

	return &ritual, nil
}

// GenerateImage asks for a single image and returns its URL.
func (c *OpenAIClient) GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error) {
	if err := ValidateRequired(strings.TrimSpace(req.Prompt), "prompt"); err != nil {
		return "", err
	}

	size := req.Size
	if size == "" {
		size = domain.ImageSizeSquare
	}

	body := imageRequest{
		Model:   c.imageModel,
		Prompt:  req.Prompt,
		N:       1,
		Size:    size,
		Quality: imageQuality,
	}

	var resp imageResponse
	if err := c.PostJSON(ctx, imageGenerationsPath, body, &resp, "generate image"); err != nil {
		return "", err
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", domain.NewUnavailableError(c.ServiceName(), "image response has no url")
	}

	return resp.Data[0].URL, nil
}
