package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/schema"

	einoobs "z-doc-ai-api/internal/observability/eino"
	"z-doc-ai-api/internal/workflow/port"
)

// EinoCompleter 通过 Eino ChatModel 完成文本生成
type EinoCompleter struct {
	factory  port.ChatModelFactory
	provider string
}

// NewEinoCompleter 创建 Eino 生成器
func NewEinoCompleter(factory port.ChatModelFactory, provider string) *EinoCompleter {
	return &EinoCompleter{factory: factory, provider: provider}
}

// Complete 调用模型生成
func (c *EinoCompleter) Complete(ctx context.Context, msgs []*schema.Message) (string, error) {
	chatModel, err := c.factory.Get(ctx, c.provider)
	if err != nil {
		return "", err
	}

	ctx = callbacks.InitCallbacks(einoobs.WithProvider(ctx, c.provider), &callbacks.RunInfo{
		Name:      c.provider,
		Type:      "ChatModel",
		Component: components.ComponentOfChatModel,
	})
	out, err := chatModel.Generate(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("eino generate (%s): %w", c.provider, err)
	}
	if out == nil {
		return "", errors.New("empty llm response")
	}
	return out.Content, nil
}
