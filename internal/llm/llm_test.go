package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ateebshaikh21/Thinkora/internal/llm/prompts"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL+"/v1", "test-key", "gpt-4o-mini")
}

func chatReply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}
}

func TestBreakdown(t *testing.T) {
	assert.Equal(t, MarksBreakdown{Introduction: 1, MainContent: 1, Examples: 1, Conclusion: 1, WordsMin: 80, WordsMax: 120}, Breakdown(2))
	assert.Equal(t, MarksBreakdown{Introduction: 1, MainContent: 3, Examples: 1, Conclusion: 1, WordsMin: 200, WordsMax: 300}, Breakdown(5))
	assert.Equal(t, MarksBreakdown{Introduction: 3, MainContent: 11, Examples: 3, Conclusion: 3, WordsMin: 600, WordsMax: 900}, Breakdown(15))
}

func TestNilClient(t *testing.T) {
	c := New("", "", "")
	assert.Nil(t, c)
	_, err := c.Explain(context.Background(), ExplanationRequest{Question: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrNotConfigured)
}

func TestExplain(t *testing.T) {
	var gotPrompt string
	items := make([]string, 12)
	for i := range items {
		items[i] = "point"
	}
	reply, _ := json.Marshal(map[string]any{
		"explanation":      "Paging splits memory into fixed-size frames.",
		"key_points":       items,
		"exam_tips":        []string{"Draw the page table", "  "},
		"answer_structure": []string{"Definition", "Mechanism"},
		"time_allocation":  "10 minutes",
	})

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "json_object", req.ResponseFormat.Type)
		gotPrompt = req.Messages[len(req.Messages)-1].Content
		chatReply(string(reply))(w, r)
	})

	exp, err := c.Explain(context.Background(), ExplanationRequest{Question: "Explain paging.", Subject: "OS"})
	require.NoError(t, err)
	assert.Contains(t, gotPrompt, "Explain paging.")
	assert.Contains(t, gotPrompt, "5 marks")

	assert.Equal(t, prompts.KindDetailed, exp.Kind)
	assert.Equal(t, 5, exp.Marks)
	assert.Equal(t, "Paging splits memory into fixed-size frames.", exp.Explanation)
	assert.Len(t, exp.KeyPoints, maxListItems)
	assert.Equal(t, []string{"Draw the page table"}, exp.ExamTips)
	assert.Equal(t, "10 minutes", exp.TimeAllocation)
	assert.Equal(t, Breakdown(5), exp.Breakdown)
}

func TestExplainRejectsInvalidReply(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "Sure! Here is your answer."},
		{"missing explanation", `{"key_points": ["a"]}`},
		{"wrong type", `{"explanation": "x", "key_points": "a"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, chatReply(tt.content))
			_, err := c.Explain(context.Background(), ExplanationRequest{Question: "Define X.", Kind: prompts.KindShort, Marks: 2})
			assert.Error(t, err)
		})
	}
}

func TestExplainValidation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := c.Explain(context.Background(), ExplanationRequest{Question: "  "})
	assert.ErrorContains(t, err, "question is required")

	_, err = c.Explain(context.Background(), ExplanationRequest{Question: "Q", Kind: "poem"})
	assert.ErrorContains(t, err, "invalid explanation kind")
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o-mini","object":"model"}]}`))
	})
	require.NoError(t, c.Ping(context.Background()))

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	})
	assert.Error(t, down.Ping(context.Background()))
}
