package flex

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"flexgen/internal/model/generation"
	"flexgen/internal/pkg/flextools"
	httputil "flexgen/internal/pkg/http"
	"flexgen/internal/service"
)

// Stats 生成计数
// @Summary      生成计数
// @Description  按结果和平台统计的生成次数（Redis），未配置 Redis 时返回 503
// @Tags         统计
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "成功响应"  "{\"code\": 0, \"message\": \"success\", \"data\": {\"total\": 3, ...}}"
// @Failure      503  {object}  ErrorResponse           "统计不可用"
// @Failure      500  {object}  ErrorResponse           "服务器内部错误"
// @Router       /api/v1/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.flexService.Stats(c.Request.Context())
	if err != nil {
		writeQueryError(c, err, service.ErrStatsUnavailable)
		return
	}
	c.JSON(http.StatusOK, httputil.NewSuccessResponse("success", stats))
}

// ListGenerationsRequest 审计查询参数
type ListGenerationsRequest struct {
	Limit   int64  `form:"limit"`   // 条数，默认 20，最大 200
	Outcome string `form:"outcome"` // success 或错误分类，可选
}

// GenerationInfo 审计记录 DTO
type GenerationInfo struct {
	ID             string `json:"id"`
	RequestID      string `json:"request_id,omitempty"`
	Mode           string `json:"mode"`
	Platform       string `json:"platform,omitempty"`
	Tone           string `json:"tone,omitempty"`
	Arrogance      int    `json:"arrogance"`
	Buzzwords      int    `json:"buzzwords"`
	FakeMetrics    int    `json:"fake_metrics"`
	SpiceLevel     *int   `json:"spice_level,omitempty"`
	Outcome        string `json:"outcome"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
	OutputChars    int    `json:"output_chars"`
	LatencyMs      int64  `json:"latency_ms"`
	CreatedAt      string `json:"created_at"`
}

// ListGenerationsResponseData 审计查询响应数据
type ListGenerationsResponseData struct {
	Generations []GenerationInfo `json:"generations"`
}

// ListGenerations 最近的生成记录
// @Summary      最近的生成记录
// @Description  按时间倒序返回生成审计（只有元数据，不含正文），未配置 MongoDB 时返回 503
// @Tags         统计
// @Produce      json
// @Param        limit    query     int     false  "条数（默认20，最大200）"
// @Param        outcome  query     string  false  "按结果过滤"
// @Success      200      {object}  map[string]interface{}  "成功响应"
// @Failure      400      {object}  ErrorResponse           "请求参数错误"
// @Failure      503      {object}  ErrorResponse           "审计不可用"
// @Router       /api/v1/generations [get]
func (h *Handler) ListGenerations(c *gin.Context) {
	var req ListGenerationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(
			httputil.CodeInvalidRequest, flextools.ReasonInvalidRequest, "Invalid query", err.Error()))
		return
	}

	list, err := h.flexService.RecentGenerations(c.Request.Context(), req.Limit, req.Outcome)
	if err != nil {
		writeQueryError(c, err, service.ErrAuditUnavailable)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("success", ListGenerationsResponseData{
		Generations: toGenerationInfoList(list),
	}))
}

func writeQueryError(c *gin.Context, err, unavailable error) {
	if errors.Is(err, unavailable) {
		c.JSON(http.StatusServiceUnavailable, httputil.NewErrorResponse(
			httputil.CodeUnavailable, "unavailable", err.Error()))
		return
	}
	c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse(
		httputil.CodeInternal, flextools.ReasonInternal, "Query failed", err.Error()))
}

func toGenerationInfoList(list []*generation.Generation) []GenerationInfo {
	out := make([]GenerationInfo, len(list))
	for i, g := range list {
		out[i] = GenerationInfo{
			ID:             g.ID,
			RequestID:      g.RequestID,
			Mode:           g.Mode.String(),
			Platform:       g.Platform,
			Tone:           g.Tone,
			Arrogance:      g.Arrogance,
			Buzzwords:      g.Buzzwords,
			FakeMetrics:    g.FakeMetrics,
			SpiceLevel:     g.SpiceLevel,
			Outcome:        g.Outcome,
			UpstreamStatus: g.UpstreamStatus,
			OutputChars:    g.OutputChars,
			LatencyMs:      g.LatencyMs,
			CreatedAt:      g.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}
