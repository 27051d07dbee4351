package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"adventurego/internal/config"
	"adventurego/internal/models"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// Service adapts an eino chat model to the game master's chat boundary.
type Service struct {
	chatModel model.BaseChatModel
}

// New builds the chat model for the configured provider.
func New(ctx context.Context, provider string, provCfg config.ProviderConfig) (*Service, error) {
	var (
		chatModel model.BaseChatModel
		err       error
	)

	switch provider {
	case "openai":
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: provCfg.BaseURL,
			Model:   provCfg.Model,
			APIKey:  provCfg.APIKey,
		})
	case "gemini":
		var client *genai.Client
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: provCfg.APIKey,
		})
		if err != nil {
			break
		}
		chatModel, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  provCfg.Model,
		})
	case "claude":
		var baseURLPtr *string
		if provCfg.BaseURL != "" {
			baseURLPtr = &provCfg.BaseURL
		}
		chatModel, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:    provCfg.APIKey,
			Model:     provCfg.Model,
			BaseURL:   baseURLPtr,
			MaxTokens: 3000,
		})
	default:
		return nil, fmt.Errorf("invalid provider: %s", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s chat model: %w", provider, err)
	}

	return &Service{chatModel: chatModel}, nil
}

// Complete returns the model's full reply for the given history.
func (s *Service) Complete(ctx context.Context, history []*models.Message) (string, error) {
	resp, err := s.chatModel.Generate(ctx, convertMessages(history))
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return resp.Content, nil
}

// Stream forwards each incremental fragment of the model's reply to onDelta
// as it arrives. An error from onDelta aborts the stream.
func (s *Service) Stream(ctx context.Context, history []*models.Message, onDelta func(string) error) error {
	reader, err := s.chatModel.Stream(ctx, convertMessages(history))
	if err != nil {
		return fmt.Errorf("open model stream: %w", err)
	}
	defer reader.Close()

	for {
		chunk, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("model stream: %w", err)
		}
		if chunk.Content == "" {
			continue
		}
		if err := onDelta(chunk.Content); err != nil {
			return err
		}
	}
}

func convertMessages(history []*models.Message) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history))
	for _, msg := range history {
		var role schema.RoleType
		switch msg.Role {
		case models.RoleAssistant:
			role = schema.Assistant
		case models.RoleSystem:
			role = schema.System
		default:
			role = schema.User
		}
		messages = append(messages, &schema.Message{
			Role:    role,
			Content: msg.Content,
		})
	}
	return messages
}
