package port

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModelFactory 定义工作流层对 LLM ChatModel 的最小依赖（port）。
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}

// Completer 文本生成能力：输入一组消息，返回一段文本，可能失败。
type Completer interface {
	Complete(ctx context.Context, msgs []*schema.Message) (string, error)
}

// ErrProviderDisabled 未配置凭据时 Completer 返回该错误
var ErrProviderDisabled = errors.New("llm provider disabled: missing credentials")
