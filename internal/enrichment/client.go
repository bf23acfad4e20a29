package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mhosigiri/FeedbackAI/internal/models"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// Classifier is the optional external classification collaborator. It is
// best-effort: the pipeline runs heuristic-only whenever it is disabled,
// errors out or returns garbage.
type Classifier interface {
	IsEnabled() bool
	Classify(ctx context.Context, posts []models.Post) (string, error)
}

// maxPostChars bounds how much of each post is sent to the model.
const maxPostChars = 600

// Client calls an OpenAI-compatible chat-completions API to classify posts.
type Client struct {
	client *openai.Client
	model  string
	brand  string
	apiKey string
}

var _ Classifier = (*Client)(nil)

// ClientConfig carries the connection settings for the enrichment API.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Brand   string
}

// NewClient creates a new enrichment client. An empty API key yields a
// disabled client, which the pipeline treats as "no enrichment available".
func NewClient(cfg ClientConfig) *Client {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		brand:  cfg.Brand,
		apiKey: cfg.APIKey,
	}
}

func (c *Client) IsEnabled() bool {
	return c.apiKey != ""
}

type promptPost struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Author   string `json:"author"`
	Location string `json:"location"`
}

// Classify sends a truncated view of the posts to the model and returns the
// raw response content. Parsing and validation happen at the merge boundary.
func (c *Client) Classify(ctx context.Context, posts []models.Post) (string, error) {
	if !c.IsEnabled() || len(posts) == 0 {
		return "", nil
	}

	payload := make([]promptPost, 0, len(posts))
	for _, post := range posts {
		text := post.Text
		if len(text) > maxPostChars {
			text = text[:maxPostChars]
		}
		locationHint := ""
		if post.Location != nil {
			locationHint = post.Location.Raw
		}
		payload = append(payload, promptPost{
			ID:       post.ID,
			Text:     text,
			Author:   post.Author,
			Location: locationHint,
		})
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode posts for enrichment: %w", err)
	}

	userPrompt := fmt.Sprintf(
		"You are an operations analyst for %s. "+
			"Rate each post from 1 (very negative) to 5 (very positive) about customer experience, "+
			"infer the primary problem category from this list: "+
			"[Network Coverage, Customer Service, Billing, Pricing & Plans, Device and Equipment, Store Experience, Mobile App, Other]. "+
			"Extract a short location hint if present and suggest a one-sentence remediation. "+
			"Return JSON with fields `items` (array of {id, rating, category, sentiment, location, insight, solution}) "+
			"and `summary` (string). Only output JSON.\nPosts: %s",
		c.brand, string(encoded))

	completion, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "Respond with valid JSON only."},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.4,
		TopP:        0.8,
		MaxTokens:   900,
	})
	if err != nil {
		return "", fmt.Errorf("enrichment request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		logrus.Warn("Enrichment API returned no choices")
		return "", nil
	}

	content := completion.Choices[0].Message.Content
	return stripCodeFences(content), nil
}

// stripCodeFences removes markdown fences some models wrap JSON output in.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
