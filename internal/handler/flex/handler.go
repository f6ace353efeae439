package flex

import (
	"context"
	"time"

	"flexgen/internal/model/generation"
	"flexgen/internal/pkg/cache"
	"flexgen/internal/pkg/flextools"
	httputil "flexgen/internal/pkg/http"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// FlexService 生成服务接口，便于测试替换
type FlexService interface {
	ConfigError() error
	Generate(ctx context.Context, payload map[string]any) (flextools.GeneratedPost, error)
	Freeform(ctx context.Context, payload map[string]any) (flextools.GeneratedPost, error)
	Stats(ctx context.Context) (*cache.GenerationStats, error)
	RecentGenerations(ctx context.Context, limit int64, outcome string) ([]*generation.Generation, error)
}

// Handler 帖子生成处理器
type Handler struct {
	flexService FlexService
	timeout     time.Duration
}

// NewHandler 创建帖子生成处理器
// timeout 为每个生成请求的截止时间，<=0 表示只跟随客户端连接
func NewHandler(flexService FlexService, timeout time.Duration) *Handler {
	return &Handler{
		flexService: flexService,
		timeout:     timeout,
	}
}

// requestContext 给生成请求加上截止时间
func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}
