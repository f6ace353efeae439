package ctxutil

import "context"

// requestIDKeyType 使用私有类型避免与其他 context key 冲突
type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// WithRequestID 将 requestID 注入到 context 中
// 说明：由 RequestID 中间件调用
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID 从 context 中解析 requestID
// 返回值：
//   - string: 解析到的 requestID
//   - bool  : 是否存在有效的 requestID
func GetRequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
