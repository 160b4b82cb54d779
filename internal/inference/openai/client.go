package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/verbdrill/internal/inference"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(defaultBaseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Incomplete responses fail to decode
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// 5xx and rate limiting
	if strings.Contains(errStr, "response error 5") || strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

// ExplainMistake implements the inference.Client interface
func (client *Client) ExplainMistake(
	ctx context.Context,
	params inference.ExplainMistakeRequest,
) (inference.ExplainMistakeResponse, error) {
	var result inference.ExplainMistakeResponse
	if err := retry.Do(
		func() error {
			response, err := client.explainMistake(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying OpenAI API call",
				"attempt", n+1,
				"verb", params.Verb,
				"error", err)
		}),
	); err != nil {
		return inference.ExplainMistakeResponse{}, err
	}
	return result, nil
}

const systemPrompt = `You are an English grammar tutor helping a learner practice verb conjugation.
The learner was asked to conjugate a verb for a pronoun, tense and form, and answered incorrectly.

Return ONLY a JSON object with two fields:
- "explanation": one or two sentences in plain English saying what is wrong in the learner's answer and how the expected answer is built.
- "rule": the grammar rule in one short line, e.g. "Past Continuous question: was/were + subject + verb-ing".

Treat the expected answer as the reference. Do not correct or question it.
Ignore differences in capitalization and trailing punctuation.`

func (client *Client) getRequestBody(args inference.ExplainMistakeRequest) (ChatCompletionRequest, error) {
	userContent, err := json.Marshal(args)
	if err != nil {
		return ChatCompletionRequest{}, fmt.Errorf("json.Marshal > %w", err)
	}

	return ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: string(userContent)},
		},
		Temperature:    0.2,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}, nil
}

func (client *Client) explainMistake(
	ctx context.Context,
	args inference.ExplainMistakeRequest,
) (inference.ExplainMistakeResponse, error) {
	requestBody, err := client.getRequestBody(args)
	if err != nil {
		return inference.ExplainMistakeResponse{}, fmt.Errorf("getRequestBody > %w", err)
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return inference.ExplainMistakeResponse{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return inference.ExplainMistakeResponse{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return inference.ExplainMistakeResponse{}, fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return inference.ExplainMistakeResponse{}, fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"response", responseBody,
	)

	var decoded inference.ExplainMistakeResponse
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return inference.ExplainMistakeResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	if decoded.Explanation == "" {
		return inference.ExplainMistakeResponse{}, errors.New("response has no explanation")
	}
	return decoded, nil
}
