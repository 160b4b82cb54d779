package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"

	"github.com/at-ishikawa/verbdrill/internal/inference"
)

func chatResponse(content string) ChatCompletionResponse {
	return ChatCompletionResponse{
		ID:      "chatcmpl-123",
		Object:  "chat.completion",
		Created: 1677652288,
		Model:   "gpt-4",
		Choices: []Choice{
			{
				Index:        0,
				Message:      ChoiceMessage{Role: RoleAssistant, Content: content},
				FinishReason: "stop",
			},
		},
		Usage: Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
	}
}

func TestClient_ExplainMistake(t *testing.T) {
	request := inference.ExplainMistakeRequest{
		Pronoun:  "they",
		Verb:     "go",
		Tense:    "Past Simple",
		Form:     "question",
		Expected: "Did they go?",
		Given:    "did they went",
	}

	tests := []struct {
		name              string
		mockServerHandler func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request)

		wantResponse    inference.ExplainMistakeResponse
		wantCalls       int32
		wantErrorString string
	}{
		{
			name: "success",
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/chat/completions", r.URL.Path)

				var reqBody ChatCompletionRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
				assert.Equal(t, "gpt-4", reqBody.Model)
				require.Len(t, reqBody.Messages, 2)
				assert.Equal(t, RoleSystem, reqBody.Messages[0].Role)
				assert.Contains(t, reqBody.Messages[1].Content, `"given":"did they went"`)
				require.NotNil(t, reqBody.ResponseFormat)
				assert.Equal(t, "json_object", reqBody.ResponseFormat.Type)

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(chatResponse(`{"explanation": "After did, use the base form go.", "rule": "Past Simple question: did + subject + base verb"}`))
			},
			wantResponse: inference.ExplainMistakeResponse{
				Explanation: "After did, use the base form go.",
				Rule:        "Past Simple question: did + subject + base verb",
			},
			wantCalls: 1,
		},
		{
			name: "retries a server error",
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				if calls == 1 {
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(chatResponse(`{"explanation": "Use the base form.", "rule": "did + base verb"}`))
			},
			wantResponse: inference.ExplainMistakeResponse{
				Explanation: "Use the base form.",
				Rule:        "did + base verb",
			},
			wantCalls: 2,
		},
		{
			name: "does not retry a client error",
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error": "invalid api key"}`))
			},
			wantCalls:       1,
			wantErrorString: "response error 401",
		},
		{
			name: "invalid JSON content is retried and then fails",
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(chatResponse(`invalid json content`))
			},
			wantCalls:       2,
			wantErrorString: "json.Unmarshal",
		},
		{
			name: "empty choices",
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(ChatCompletionResponse{ID: "chatcmpl-123"})
			},
			wantCalls:       1,
			wantErrorString: "empty response body or choices",
		},
		{
			name: "missing explanation",
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(chatResponse(`{"rule": "did + base verb"}`))
			},
			wantCalls:       1,
			wantErrorString: "no explanation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, calls.Add(1), w, r)
			}))
			defer server.Close()

			client := &Client{
				httpClient:       resty.New().SetBaseURL(server.URL),
				model:            "gpt-4",
				maxRetryAttempts: 1,
			}
			defer client.Close()

			got, err := client.ExplainMistake(context.Background(), request)
			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantErrorString != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResponse, got)
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "other error", err: assert.AnError, want: false},
		{name: "decode failure", err: errorString("json.Unmarshal(x) > invalid character"), want: true},
		{name: "server error", err: errorString("response error 502: bad gateway"), want: true},
		{name: "rate limited", err: errorString("response error 429: slow down"), want: true},
		{name: "unauthorized", err: errorString("response error 401: invalid key"), want: false},
		{name: "connection refused", err: errorString("dial tcp: connection refused"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

type errorString string

func (e errorString) Error() string {
	return string(e)
}

func TestNewClient(t *testing.T) {
	client := NewClient("key", "gpt-4o-mini", inference.DefaultMaxRetryAttempts)
	defer client.Close()

	assert.Equal(t, "gpt-4o-mini", client.GetModel())
	assert.Equal(t, uint(inference.DefaultMaxRetryAttempts), client.maxRetryAttempts)
}
