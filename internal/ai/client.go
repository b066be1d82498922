package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/proposalgen/proposal-backend/internal/logger"
	"github.com/proposalgen/proposal-backend/internal/pkg/apperror"
)

// GenerateOptions - параметры запроса на генерацию.
type GenerateOptions struct {
	Model       string
	Seed        int
	Temperature float64
	MaxTokens   int
}

// ClientConfig описывает подключение к OpenAI-совместимому API.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Options GenerateOptions
}

// Client обращается к сервису генерации текста через OpenAI-совместимый API.
type Client struct {
	baseURL    string
	apiKey     string
	opts       GenerateOptions
	httpClient *http.Client
	now        func() time.Time
}

// NewClient создаёт экземпляр клиента.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		opts:    cfg.Options,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
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
	Seed           int            `json:"seed"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	Stream         bool           `json:"stream"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// VerifyCredentials проверяет ключ API дешёвым запросом к списку моделей.
// Отказ в доступе даёт ошибку вида AUTHENTICATION_ERROR, остальные сбои GENERATION_FAILED.
func (c *Client) VerifyCredentials(ctx context.Context) error {
	if c.apiKey == "" {
		logger.Log.Error("ai: ключ API не задан")
		return apperror.Authentication(errors.New("ai: ключ API не задан"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return c.fail("verify", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail("verify", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		logger.Log.WithField("status", resp.StatusCode).Error("ai: ключ API отклонён")
		return apperror.Authentication(fmt.Errorf("ai: код ответа %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		return c.fail("verify", fmt.Errorf("ai: код ответа %d", resp.StatusCode))
	}

	return nil
}

// Generate отправляет промпт и возвращает текст предложения с шапкой из meta.
// Любой сбой возвращается как GENERATION_FAILED с безопасным сообщением, подробности уходят в лог.
func (c *Client) Generate(ctx context.Context, prompt string, meta HeaderMeta) (string, error) {
	body, err := c.chatCompletion(ctx, []chatMessage{
		{Role: "system", Content: systemPersona},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", c.fail("generate", err)
	}

	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = c.now()
	}

	return RenderHeader(meta) + body, nil
}

// chatCompletion выполняет запрос к chat/completions с параметрами клиента.
func (c *Client) chatCompletion(ctx context.Context, messages []chatMessage) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("ai: baseURL не задан")
	}

	payload := chatRequest{
		Model:          c.opts.Model,
		Messages:       messages,
		Seed:           c.opts.Seed,
		Temperature:    c.opts.Temperature,
		MaxTokens:      c.opts.MaxTokens,
		Stream:         false,
		ResponseFormat: responseFormat{Type: "text"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("ai: код ответа %d: %v", resp.StatusCode, errorBody)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("ai: не удалось разобрать ответ: %w", err)
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("ai: пустой ответ")
	}

	return result.Choices[0].Message.Content, nil
}

// fail логирует причину и возвращает обобщённую ошибку генерации.
func (c *Client) fail(op string, cause error) error {
	logger.Log.WithFields(logrus.Fields{
		"op":    op,
		"model": c.opts.Model,
		"error": cause.Error(),
	}).Error("ai: запрос к сервису генерации не выполнен")
	return apperror.GenerationFailed(cause)
}
