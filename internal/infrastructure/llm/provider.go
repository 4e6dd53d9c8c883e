package llm

import (
	"context"
	"fmt"

	"z-doc-ai-api/internal/config"
	"z-doc-ai-api/internal/workflow/port"
	"z-doc-ai-api/pkg/logger"
)

// NewCompleter 按默认 provider 的 kind 选择生成适配器。
// 缺少凭据时返回 DisabledCompleter，服务照常启动。
func NewCompleter(cfg *config.Config, factory *EinoFactory) (port.Completer, error) {
	ctx := context.Background()
	name := cfg.LLM.DefaultProvider
	if name == "" {
		logger.Warn(ctx, "no default llm provider configured, content generation disabled")
		return DisabledCompleter{}, nil
	}

	providerCfg, ok := cfg.LLM.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}
	if providerCfg.APIKey == "" {
		logger.Warn(ctx, "llm api key missing, content generation disabled", "provider", name)
		return DisabledCompleter{}, nil
	}

	switch providerCfg.Kind {
	case config.ProviderKindOpenAI:
		return NewOpenAICompleter(providerCfg)
	case config.ProviderKindEino, "":
		return NewEinoCompleter(factory, name), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider kind %q", providerCfg.Kind)
	}
}
