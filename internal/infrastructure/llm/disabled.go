package llm

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"z-doc-ai-api/internal/workflow/port"
)

// ErrProviderDisabled 未配置凭据时所有生成调用返回该错误
var ErrProviderDisabled = port.ErrProviderDisabled

// DisabledCompleter 占位生成器，调用方全部走降级路径
type DisabledCompleter struct{}

// Complete 总是失败
func (DisabledCompleter) Complete(context.Context, []*schema.Message) (string, error) {
	return "", ErrProviderDisabled
}
