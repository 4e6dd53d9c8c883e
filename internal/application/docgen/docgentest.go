package docgen

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"
)

// ScriptedCompleter 按顺序返回预设回复的 Completer，供测试使用
type ScriptedCompleter struct {
	mu      sync.Mutex
	replies []ScriptedReply
	calls   [][]*schema.Message
	// Fn 非空时优先使用，可根据消息动态回复
	Fn func(ctx context.Context, msgs []*schema.Message) (string, error)
}

// ScriptedReply 单次回复
type ScriptedReply struct {
	Text string
	Err  error
}

// NewScriptedCompleter 创建脚本化 Completer
func NewScriptedCompleter(replies ...ScriptedReply) *ScriptedCompleter {
	return &ScriptedCompleter{replies: replies}
}

// Complete 返回下一条预设回复，用尽后返回空文本
func (s *ScriptedCompleter) Complete(ctx context.Context, msgs []*schema.Message) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, msgs)
	fn := s.Fn
	var next ScriptedReply
	if fn == nil && len(s.replies) > 0 {
		next = s.replies[0]
		s.replies = s.replies[1:]
	}
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, msgs)
	}
	return next.Text, next.Err
}

// Calls 返回全部调用的消息
func (s *ScriptedCompleter) Calls() [][]*schema.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]*schema.Message, len(s.calls))
	copy(out, s.calls)
	return out
}

// LastUserPrompt 返回最近一次调用的用户消息内容
func (s *ScriptedCompleter) LastUserPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return ""
	}
	msgs := s.calls[len(s.calls)-1]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == schema.User {
			return msgs[i].Content
		}
	}
	return ""
}
