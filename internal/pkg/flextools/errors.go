package flextools

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Reason 面向调用方的稳定错误分类
type Reason string

const (
	ReasonInvalidRequest    Reason = "invalid_request"
	ReasonMissingCredential Reason = "missing_credential"
	ReasonUpstream          Reason = "upstream_error"
	ReasonEmptyOutput       Reason = "empty_output"
	ReasonInternal          Reason = "internal_error"
)

// String 返回分类的字符串表示
func (r Reason) String() string {
	return string(r)
}

// ValidationError 输入不符合 schema，Fields 收集所有字段的违规项
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// ConfigurationError 服务凭证等必需配置缺失，进程级错误
type ConfigurationError struct {
	Setting string
	Msg     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("server misconfigured: %s: %s", e.Setting, e.Msg)
}

// UpstreamError 远端调用失败（网络、非 2xx、响应体无法解析）
type UpstreamError struct {
	StatusCode int // 0 表示未拿到 HTTP 状态
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream call failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream call failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// EmptyOutputError 上游调用成功但没有可用文本
type EmptyOutputError struct{}

func (e *EmptyOutputError) Error() string {
	return "empty response from model"
}

// ReasonOf 按错误类型分类，不解析错误文本
func ReasonOf(err error) Reason {
	var (
		validationErr *ValidationError
		configErr     *ConfigurationError
		upstreamErr   *UpstreamError
		emptyErr      *EmptyOutputError
	)
	switch {
	case errors.As(err, &validationErr):
		return ReasonInvalidRequest
	case errors.As(err, &configErr):
		return ReasonMissingCredential
	case errors.As(err, &upstreamErr):
		return ReasonUpstream
	case errors.As(err, &emptyErr):
		return ReasonEmptyOutput
	default:
		return ReasonInternal
	}
}
