package ai

import (
	"context"
	"fmt"
	"strings"

	"flexgen/internal/ai/component"
	"flexgen/internal/config"
	"flexgen/internal/pkg/flextools"
)

// DefaultModel 未配置模型时使用的模型
const DefaultModel = "gpt-4o-mini"

// Completer 调用外部文本生成服务
// 每次调用恰好发出一个请求：不重试、不流式、没有部分结果
type Completer interface {
	Complete(ctx context.Context, prompt flextools.CompiledPrompt) (flextools.ModelResponse, error)
}

// NewCompleter 按配置的 Provider 创建 Completer
// 凭证缺失时返回 *flextools.ConfigurationError，不会发起任何网络请求
func NewCompleter(ctx context.Context, cfg *config.AIConfig) (Completer, error) {
	if err := requireAPIKey(cfg); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "openai", "":
		return NewResponsesCompleter(cfg)
	case "gemini":
		return NewGeminiCompleter(ctx, cfg)
	default:
		withModel := *cfg
		if withModel.Model == "" {
			withModel.Model = DefaultModel
		}
		chatModel, err := component.NewChatModel(ctx, &withModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		return NewEinoCompleter(chatModel), nil
	}
}

func requireAPIKey(cfg *config.AIConfig) error {
	if cfg == nil || strings.TrimSpace(cfg.APIKey) == "" {
		return &flextools.ConfigurationError{
			Setting: "ai.api_key",
			Msg:     "missing credential for the text-generation service (set FLEXGEN_AI_API_KEY)",
		}
	}
	return nil
}
