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

// GeminiClient calls the Google Generative Language API (Gemini).
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  *geminiConfig   `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type geminiModelsResponse struct {
	Models []struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	} `json:"models"`
}

// NewGeminiClient создает клиент Gemini с заданными параметрами.
func NewGeminiClient(apiKey, baseURL, model string, timeout time.Duration, maxTokens int) *GeminiClient {
	trimmedURL := strings.TrimRight(baseURL, "/")
	return &GeminiClient{
		apiKey:    apiKey,
		baseURL:   trimmedURL,
		model:     model,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Chat отправляет сообщения в Gemini и возвращает текст ответа и сырой ответ
// API. Вложенные изображения уходят как inline_data.
func (c *GeminiClient) Chat(ctx context.Context, messages []Message) (string, []byte, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", nil, errors.New("gemini api key is missing")
	}

	systemParts := make([]geminiPart, 0)
	contents := make([]geminiContent, 0)

	for _, message := range messages {
		role := strings.ToLower(strings.TrimSpace(message.Role))
		text := strings.TrimSpace(message.Content)
		if text == "" && message.Image == nil {
			continue
		}

		parts := make([]geminiPart, 0, 2)
		if text != "" {
			parts = append(parts, geminiPart{Text: text})
		}
		if message.Image != nil {
			parts = append(parts, geminiPart{InlineData: &geminiInlineData{
				MimeType: message.Image.MimeType,
				Data:     base64.StdEncoding.EncodeToString(message.Image.Data),
			}})
		}

		switch role {
		case "system":
			systemParts = append(systemParts, parts...)
		case "assistant", "model":
			contents = append(contents, geminiContent{Role: "model", Parts: parts})
		default:
			contents = append(contents, geminiContent{Role: "user", Parts: parts})
		}
	}

	if len(contents) == 0 {
		return "", nil, errors.New("gemini request has no user content")
	}

	request := geminiRequest{
		Contents: contents,
		GenerationConfig: &geminiConfig{
			Temperature:     0.2,
			MaxOutputTokens: resolveMaxTokens(c.maxTokens),
		},
	}

	if len(systemParts) > 0 {
		request.SystemInstruction = &geminiContent{Role: "system", Parts: systemParts}
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", nil, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var apiErr geminiResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != nil {
			return "", body, fmt.Errorf("gemini api error: %s", apiErr.Error.Message)
		}
		return "", body, fmt.Errorf("gemini api error: %s", strings.TrimSpace(string(body)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", body, err
	}

	if len(parsed.Candidates) == 0 {
		return "", body, errors.New("gemini response missing candidates")
	}

	parts := parsed.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", body, errors.New("gemini response missing content")
	}

	var builder strings.Builder
	for _, part := range parts {
		builder.WriteString(part.Text)
	}

	return builder.String(), body, nil
}

// ListModels возвращает доступные модели Gemini.
func (c *GeminiClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, errors.New("gemini api key is missing")
	}

	endpoint := fmt.Sprintf("%s/models?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini api error: %s", strings.TrimSpace(string(body)))
	}

	var parsed geminiModelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	models := make([]ModelInfo, 0, len(parsed.Models))
	for _, model := range parsed.Models {
		models = append(models, ModelInfo{
			ID:          strings.TrimPrefix(model.Name, "models/"),
			DisplayName: model.DisplayName,
		})
	}

	return models, nil
}
