package flex

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"flexgen/internal/pkg/flextools"
	httputil "flexgen/internal/pkg/http"
)

const textContentType = "text/plain; charset=utf-8"

// GenerateRequest 生成请求（仅用于文档，实际按宽松 JSON 解析）
type GenerateRequest struct {
	Platform    string `json:"platform" example:"linkedin"`        // linkedin | x | instagram
	Tone        string `json:"tone" example:"Humblebrag"`          // Humblebrag | Growth Bro | Survivor | Stoic Monk CEO
	Arrogance   int    `json:"arrogance" example:"7"`              // 0..10
	Buzzwords   int    `json:"buzzwords" example:"5"`              // 0..10
	FakeMetrics int    `json:"fakeMetrics" example:"8"`            // 0..10
	Niche       string `json:"niche,omitempty" example:"B2B SaaS"` // 可选
	Tools       string `json:"tools,omitempty" example:"Notion"`   // 可选
	MRR         string `json:"mrr,omitempty" example:"$10k"`       // 可选，字符串或数字
	Followers   string `json:"followers,omitempty" example:"12k"`  // 可选，字符串或数字
	SpiceLevel  *int   `json:"spiceLevel,omitempty" example:"3"`   // 可选，0..10
}

// Generate 生成帖子
// @Summary      生成帖子
// @Description  按平台、语气和三个强度滑块生成一篇自吹自擂的社交帖子，成功时直接返回纯文本
// @Tags         生成
// @Accept       json
// @Produce      plain
// @Param        request  body      GenerateRequest  true  "生成参数"
// @Success      200      {string}  string           "帖子正文"
// @Failure      400      {object}  ErrorResponse    "请求参数错误"
// @Failure      500      {object}  ErrorResponse    "服务端配置错误"
// @Failure      502      {object}  ErrorResponse    "模型调用失败或输出为空"
// @Router       /api/v1/generate [post]
func (h *Handler) Generate(c *gin.Context) {
	h.serve(c, h.flexService.Generate)
}

// PlaygroundRequest 自由模式请求（仅用于文档）
type PlaygroundRequest struct {
	Prompt   string `json:"prompt" example:"brag about waking up at 4am"` // 必填
	Platform string `json:"platform,omitempty" example:"x"`               // 缺省 x
	Tone     string `json:"tone,omitempty" example:"Humblebrag"`          // 缺省 Humblebrag
}

// Playground 自由模式生成
// @Summary      自由模式生成
// @Description  用一条自由指令生成帖子，强度固定为 5/5/4
// @Tags         生成
// @Accept       json
// @Produce      plain
// @Param        request  body      PlaygroundRequest  true  "自由指令"
// @Success      200      {string}  string             "帖子正文"
// @Failure      400      {object}  ErrorResponse      "请求参数错误"
// @Failure      500      {object}  ErrorResponse      "服务端配置错误"
// @Failure      502      {object}  ErrorResponse      "模型调用失败或输出为空"
// @Router       /api/v1/playground [post]
func (h *Handler) Playground(c *gin.Context) {
	h.serve(c, h.flexService.Freeform)
}

type generateFunc func(ctx context.Context, payload map[string]any) (flextools.GeneratedPost, error)

func (h *Handler) serve(c *gin.Context, generate generateFunc) {
	// 配置错误先于请求体解析
	if err := h.flexService.ConfigError(); err != nil {
		c.JSON(httputil.FromError(err))
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		resp := httputil.NewErrorResponse(httputil.CodeInvalidRequest, flextools.ReasonInvalidRequest, "Invalid request body")
		if err != nil {
			resp.Detail = err.Error()
		} else {
			resp.Detail = "request body must be a JSON object"
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	post, err := generate(ctx, payload)
	if err != nil {
		c.JSON(httputil.FromError(err))
		return
	}

	c.Data(http.StatusOK, textContentType, []byte(post.Text))
}
