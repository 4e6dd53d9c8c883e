// Package docgen 封装外部文本生成能力：大纲、小节内容、精修，失败时返回确定性降级值。
package docgen

// FallbackReason 降级原因
type FallbackReason string

const (
	ReasonNone             FallbackReason = ""
	ReasonProviderDisabled FallbackReason = "provider_disabled"
	ReasonTimeout          FallbackReason = "timeout"
	ReasonProviderError    FallbackReason = "provider_error"
	ReasonEmptyResponse    FallbackReason = "empty_response"
)

// Result 生成结果：要么是模型真实输出，要么是带原因的降级值
type Result[T any] struct {
	Value    T
	Fallback bool
	Reason   FallbackReason
	Err      error
}

// Ok 构造正常结果
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fallback 构造降级结果
func Fallback[T any](v T, reason FallbackReason, err error) Result[T] {
	return Result[T]{Value: v, Fallback: true, Reason: reason, Err: err}
}

// outcome 指标标签
func (r Result[T]) outcome() string {
	if !r.Fallback {
		return "ok"
	}
	return string(r.Reason)
}
