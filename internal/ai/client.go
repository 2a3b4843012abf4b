package ai

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Image   *ImageData
}

// ImageData описывает вложение изображения для мультимодального запроса.
type ImageData struct {
	MimeType string
	Data     []byte
}

type ModelInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

type Client interface {
	Chat(ctx context.Context, messages []Message) (string, []byte, error)
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

func resolveMaxTokens(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxTokens
}
