package services

import (
	"chatweb/models"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// InferenceClient は推論サーバー呼び出しの抽象化。テストではモックに差し替える。
type InferenceClient interface {
	// Complete は応答が完成するまでブロックし、本文を1つの文字列で返す。
	Complete(ctx context.Context, messages []models.Message, temperature float64) (string, error)
	// Stream は応答の断片を到着順にfragmentsへ送る。完了・失敗を問わず
	// 必ずfragmentsをクローズしてから返る。
	Stream(ctx context.Context, messages []models.Message, temperature float64, fragments chan<- string) error
}

// OllamaService はOllamaのOpenAI互換エンドポイント(/v1/chat/completions)を呼び出す。
type OllamaService struct {
	client *openai.Client
	model  string
}

func NewOllamaService(baseURL string, model string) *OllamaService {
	// Ollamaは認証不要だがSDKはキー文字列を要求する
	cfg := openai.DefaultConfig("ollama")
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/") + "/v1"

	return &OllamaService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// 会話履歴をそのままの順序でリクエスト形式に変換する
func buildChatMessages(messages []models.Message) []openai.ChatCompletionMessage {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return chatMessages
}

func (o *OllamaService) Complete(ctx context.Context, messages []models.Message, temperature float64) (string, error) {
	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       o.model,
			Messages:    buildChatMessages(messages),
			Temperature: float32(temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %v", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return resp.Choices[0].Message.Content, nil
}

func (o *OllamaService) Stream(ctx context.Context, messages []models.Message, temperature float64, fragments chan<- string) error {
	defer close(fragments)

	stream, err := o.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{
			Model:       o.model,
			Messages:    buildChatMessages(messages),
			Temperature: float32(temperature),
			Stream:      true,
		},
	)
	if err != nil {
		return fmt.Errorf("chat completion stream failed: %v", err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("stream receive failed: %v", err)
		}

		if len(resp.Choices) > 0 && resp.Choices[0].Delta.Content != "" {
			fragments <- resp.Choices[0].Delta.Content
		}
	}
}
