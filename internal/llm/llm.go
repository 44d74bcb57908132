// Package llm produces study explanations through an OpenAI-compatible API.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Ateebshaikh21/Thinkora/internal/llm/prompts"
)

// ErrNotConfigured is returned by a nil Client.
var ErrNotConfigured = errors.New("llm endpoint not configured")

const (
	defaultMarks = 5
	maxListItems = 8
)

// ExplanationRequest asks for help with one exam question.
type ExplanationRequest struct {
	Question string       `json:"question"`
	Subject  string       `json:"subject"`
	Kind     prompts.Kind `json:"kind"`
	Marks    int          `json:"marks"`
}

// MarksBreakdown splits a question's marks over the parts of a model answer.
type MarksBreakdown struct {
	Introduction int `json:"introduction"`
	MainContent  int `json:"main_content"`
	Examples     int `json:"examples"`
	Conclusion   int `json:"conclusion"`
	WordsMin     int `json:"words_min"`
	WordsMax     int `json:"words_max"`
}

// Explanation is the structured answer returned to the learner.
type Explanation struct {
	Question        string         `json:"question"`
	Subject         string         `json:"subject"`
	Kind            prompts.Kind   `json:"kind"`
	Marks           int            `json:"marks"`
	Explanation     string         `json:"explanation"`
	KeyPoints       []string       `json:"key_points"`
	ExamTips        []string       `json:"exam_tips"`
	AnswerStructure []string       `json:"answer_structure"`
	TimeAllocation  string         `json:"time_allocation"`
	Breakdown       MarksBreakdown `json:"marks_breakdown"`
}

// Breakdown computes the marks split for a question worth marks.
func Breakdown(marks int) MarksBreakdown {
	return MarksBreakdown{
		Introduction: max(1, marks/5),
		MainContent:  marks * 3 / 4,
		Examples:     max(1, marks/4),
		Conclusion:   max(1, marks/5),
		WordsMin:     marks * 40,
		WordsMax:     marks * 60,
	}
}

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a new LLM client. An empty apiKey and baseURL yields a nil
// client whose calls fail with ErrNotConfigured.
func New(baseURL, apiKey, modelName string) *Client {
	if baseURL == "" && apiKey == "" {
		return nil
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// Ping lists the endpoint's models to verify connectivity and credentials.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return ErrNotConfigured
	}
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// Explain asks the model for an explanation of req.Question in the style of req.Kind.
func (c *Client) Explain(ctx context.Context, req ExplanationRequest) (*Explanation, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("question is required")
	}
	if req.Kind == "" {
		req.Kind = prompts.KindDetailed
	}
	if req.Marks <= 0 {
		req.Marks = defaultMarks
	}
	bd := Breakdown(req.Marks)

	prompt, err := prompts.Build(req.Kind, prompts.Data{
		Question: req.Question,
		Subject:  req.Subject,
		Marks:    req.Marks,
		WordsMin: bd.WordsMin,
		WordsMax: bd.WordsMax,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are an expert tutor helping students prepare for exams. Provide clear, detailed, exam-focused explanations."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("LLM returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM response", "kind", req.Kind, "raw", raw)

	if err := validateExplanation([]byte(raw)); err != nil {
		return nil, err
	}
	var out Explanation
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("parse LLM response: %w (raw: %s)", err, raw)
	}

	out.Question, out.Subject, out.Kind, out.Marks = req.Question, req.Subject, req.Kind, req.Marks
	out.Breakdown = bd
	out.KeyPoints = capList(out.KeyPoints)
	out.ExamTips = capList(out.ExamTips)
	out.AnswerStructure = capList(out.AnswerStructure)
	return &out, nil
}

func capList(items []string) []string {
	out := make([]string, 0, min(len(items), maxListItems))
	for _, s := range items {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == maxListItems {
			break
		}
	}
	return out
}
