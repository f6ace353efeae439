package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"flexgen/internal/config"
	"flexgen/internal/pkg/flextools"
)

// ResponsesCompleter 基于 OpenAI Responses API 的 Completer
type ResponsesCompleter struct {
	client  openai.Client
	model   string
	options config.AIOptionsConfig
}

// NewResponsesCompleter 创建 Responses API 客户端，SDK 自带的重试被关闭
func NewResponsesCompleter(cfg *config.AIConfig) (*ResponsesCompleter, error) {
	if err := requireAPIKey(cfg); err != nil {
		return nil, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &ResponsesCompleter{
		client:  openai.NewClient(opts...),
		model:   model,
		options: cfg.Options,
	}, nil
}

// Model 返回使用的模型名
func (c *ResponsesCompleter) Model() string {
	return c.model
}

// Complete 以 system + user 两条消息调用 Responses API
func (c *ResponsesCompleter) Complete(ctx context.Context, prompt flextools.CompiledPrompt) (flextools.ModelResponse, error) {
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(c.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(prompt.System, responses.EasyInputMessageRoleSystem),
				responses.ResponseInputItemParamOfMessage(prompt.User, responses.EasyInputMessageRoleUser),
			},
		},
	}
	if c.options.Temperature > 0 {
		params.Temperature = openai.Float(c.options.Temperature)
	}
	if c.options.MaxTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(c.options.MaxTokens))
	}
	if c.options.TopP > 0 {
		params.TopP = openai.Float(c.options.TopP)
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return flextools.ModelResponse{}, toUpstreamError(err)
	}

	decoded, err := flextools.DecodeModelResponse([]byte(resp.RawJSON()))
	if err != nil {
		return flextools.ModelResponse{}, &flextools.UpstreamError{Err: fmt.Errorf("malformed response: %w", err)}
	}
	return decoded, nil
}

// toUpstreamError 保留 HTTP 状态码（如果有）
func toUpstreamError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &flextools.UpstreamError{StatusCode: apiErr.StatusCode, Err: err}
	}
	return &flextools.UpstreamError{Err: err}
}
