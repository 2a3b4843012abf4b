package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultMaxTokens = 4096

// GroqClient calls the Groq OpenAI-compatible chat completions API.
type GroqClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type groqChatRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type groqMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type groqContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *groqImageURL `json:"image_url,omitempty"`
}

type groqImageURL struct {
	URL string `json:"url"`
}

type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type groqModelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// NewGroqClient создает клиент Groq с заданными параметрами.
func NewGroqClient(apiKey, baseURL, model string, timeout time.Duration, maxTokens int) *GroqClient {
	trimmedURL := strings.TrimRight(baseURL, "/")
	return &GroqClient{
		apiKey:    apiKey,
		baseURL:   trimmedURL,
		model:     model,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Chat отправляет сообщения в Groq и возвращает текст ответа и сырой ответ
// API. Изображения кодируются как data URI в мультимодальном content.
func (c *GroqClient) Chat(ctx context.Context, messages []Message) (string, []byte, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", nil, errors.New("groq api key is missing")
	}

	converted := make([]groqMessage, 0, len(messages))
	for _, message := range messages {
		if message.Image == nil {
			converted = append(converted, groqMessage{Role: message.Role, Content: message.Content})
			continue
		}

		dataURI := fmt.Sprintf("data:%s;base64,%s",
			message.Image.MimeType,
			base64.StdEncoding.EncodeToString(message.Image.Data),
		)
		parts := []groqContentPart{
			{Type: "text", Text: message.Content},
			{Type: "image_url", ImageURL: &groqImageURL{URL: dataURI}},
		}
		converted = append(converted, groqMessage{Role: message.Role, Content: parts})
	}

	reqBody := groqChatRequest{
		Model:       c.model,
		Messages:    converted,
		Temperature: 0.2,
		MaxTokens:   resolveMaxTokens(c.maxTokens),
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", nil, err
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.baseURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}

	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var apiErr groqChatResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != nil {
			return "", body, fmt.Errorf("groq api error: %s", apiErr.Error.Message)
		}
		return "", body, fmt.Errorf("groq api error: %s", strings.TrimSpace(string(body)))
	}

	var parsed groqChatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", body, err
	}

	if len(parsed.Choices) == 0 {
		return "", body, errors.New("groq response missing choices")
	}

	return parsed.Choices[0].Message.Content, body, nil
}

// ListModels возвращает доступные модели Groq.
func (c *GroqClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, errors.New("groq api key is missing")
	}

	endpoint := fmt.Sprintf("%s/models", c.baseURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+c.apiKey)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("groq api error: %s", strings.TrimSpace(string(body)))
	}

	var parsed groqModelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	models := make([]ModelInfo, 0, len(parsed.Data))
	for _, model := range parsed.Data {
		models = append(models, ModelInfo{ID: model.ID})
	}

	return models, nil
}
