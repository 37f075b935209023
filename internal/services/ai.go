package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
	model  string
}

// GeneratedTask is a suggested task. It is not stored until a user creates it.
type GeneratedTask struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

func NewAIService(apiKey string) *AIService {
	return NewAIServiceWithClient(openai.NewClient(apiKey))
}

// NewAIServiceWithClient wraps a preconfigured client, e.g. one pointed at a
// compatible gateway.
func NewAIServiceWithClient(client *openai.Client) *AIService {
	return &AIService{client: client, model: openai.GPT4o}
}

// GenerateTasksFromText extracts actionable tasks for a record from free-form text.
func (s *AIService) GenerateTasksFromText(ctx context.Context, recordName, text string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, errors.New("OpenAI client not initialized")
	}

	currentTime := time.Now().UTC().Format(time.RFC3339)
	prompt := fmt.Sprintf(`You are a task extraction assistant for a Kanban board.
Extract concrete tasks for the board "%s" from the text below.

Current time: %s

Text:
%s

Return a JSON array of tasks in this form:
[
  {
    "name": "short task name",
    "description": "task details",
    "due_date": "deadline as an RFC 3339 timestamp, e.g. 2025-10-28T23:59:59Z, or null when none is given"
  }
]

Rules:
- Return [] when the text contains no tasks
- Convert relative deadlines ("tomorrow", "next week") into concrete timestamps
- Return JSON only, with no commentary`, recordName, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	return tasks, nil
}

// stripCodeFence removes a surrounding ```json fence if the model added one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
