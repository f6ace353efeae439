package http

import (
	"errors"
	"net/http"

	"flexgen/internal/pkg/flextools"
)

// ErrorResponse 错误响应（所有API共用）
// Reason 是可供机器判断的稳定分类，Fields 仅在输入校验失败时出现
type ErrorResponse struct {
	Code    int                 `json:"code"`             // 错误码（非0表示错误）
	Reason  string              `json:"reason"`           // 错误分类
	Message string              `json:"message"`          // 错误消息
	Detail  string              `json:"detail,omitempty"` // 错误详情（可选）
	Fields  map[string][]string `json:"fields,omitempty"` // 字段级错误（可选）
}

// SuccessResponse 成功响应（JSON 接口共用）
type SuccessResponse struct {
	Code    int         `json:"code"`           // 状态码（0表示成功）
	Message string      `json:"message"`        // 响应消息
	Data    interface{} `json:"data,omitempty"` // 响应数据（可选）
}

// 错误码
const (
	CodeInvalidRequest    = 40001
	CodeMissingCredential = 50001
	CodeInternal          = 50000
	CodeUnavailable       = 50301
	CodeUpstream          = 50201
	CodeEmptyOutput       = 50202
)

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(message string, data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Code:    0,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, reason flextools.Reason, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Reason:  reason.String(),
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// FromError 把流水线错误映射为 HTTP 状态码和错误响应
func FromError(err error) (int, *ErrorResponse) {
	switch flextools.ReasonOf(err) {
	case flextools.ReasonInvalidRequest:
		resp := NewErrorResponse(CodeInvalidRequest, flextools.ReasonInvalidRequest, "Invalid request")
		var verr *flextools.ValidationError
		if errors.As(err, &verr) {
			resp.Fields = verr.Fields
		}
		return http.StatusBadRequest, resp
	case flextools.ReasonMissingCredential:
		return http.StatusInternalServerError,
			NewErrorResponse(CodeMissingCredential, flextools.ReasonMissingCredential, "Server misconfigured: missing model service credential")
	case flextools.ReasonUpstream:
		return http.StatusBadGateway,
			NewErrorResponse(CodeUpstream, flextools.ReasonUpstream, "Upstream model call failed", err.Error())
	case flextools.ReasonEmptyOutput:
		return http.StatusBadGateway,
			NewErrorResponse(CodeEmptyOutput, flextools.ReasonEmptyOutput, "Empty response from model")
	default:
		return http.StatusInternalServerError,
			NewErrorResponse(CodeInternal, flextools.ReasonInternal, "Unexpected server error")
	}
}
