package eino

import "context"

type providerKey struct{}

// WithProvider 标记本次模型调用所属的 provider，供回调打标签
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, providerKey{}, provider)
}

// ProviderFromContext 读取 provider，未设置时为 "unknown"
func ProviderFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(providerKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
