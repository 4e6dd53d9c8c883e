package eino

import (
	"context"
	"errors"
	"testing"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"z-doc-ai-api/pkg/metrics"
)

func TestProviderFromContext(t *testing.T) {
	assert.Equal(t, "unknown", ProviderFromContext(context.Background()))
	assert.Equal(t, "deepseek", ProviderFromContext(WithProvider(context.Background(), "deepseek")))
}

func TestChatModelCallback_RecordsTokens(t *testing.T) {
	h := newChatModelCallbackHandler()
	ctx := WithProvider(context.Background(), "cb-test")
	info := &einocb.RunInfo{Type: "OpenAI"}

	ctx = h.OnStart(ctx, info, &model.CallbackInput{
		Messages: []*schema.Message{schema.UserMessage("hi")},
		Config:   &model.Config{Model: "gpt-test"},
	})
	assert.Greater(t, elapsedSeconds(ctx), -1.0)

	h.OnEnd(ctx, info, &model.CallbackOutput{
		Config:     &model.Config{Model: "gpt-test"},
		TokenUsage: &model.TokenUsage{PromptTokens: 12, CompletionTokens: 30},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LLMModelCallTotal.WithLabelValues("cb-test", "gpt-test", "success")))
	assert.Equal(t, 12.0, testutil.ToFloat64(metrics.LLMTokensUsed.WithLabelValues("cb-test", "gpt-test", "prompt")))
	assert.Equal(t, 30.0, testutil.ToFloat64(metrics.LLMTokensUsed.WithLabelValues("cb-test", "gpt-test", "completion")))
}

func TestChatModelCallback_RecordsErrors(t *testing.T) {
	h := newChatModelCallbackHandler()
	ctx := WithProvider(context.Background(), "cb-error")
	info := &einocb.RunInfo{Type: "OpenAI"}

	ctx = h.OnStart(ctx, info, nil)
	h.OnError(ctx, info, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LLMModelCallTotal.WithLabelValues("cb-error", "OpenAI", "error")))
}
