package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"flexgen/internal/config"
	"flexgen/internal/pkg/flextools"
)

// DefaultGeminiModel gemini Provider 未配置模型时使用
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiCompleter 基于 Gemini API 的 Completer
// 候选内容的文本片段映射为 message 项，不填便捷字段
type GeminiCompleter struct {
	client  *genai.Client
	model   string
	options config.AIOptionsConfig
}

// NewGeminiCompleter 创建 Gemini 客户端
func NewGeminiCompleter(ctx context.Context, cfg *config.AIConfig) (*GeminiCompleter, error) {
	if err := requireAPIKey(cfg); err != nil {
		return nil, err
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiCompleter{
		client:  client,
		model:   model,
		options: cfg.Options,
	}, nil
}

// Complete system 走 SystemInstruction，user 作为唯一一条内容
func (c *GeminiCompleter) Complete(ctx context.Context, prompt flextools.CompiledPrompt) (flextools.ModelResponse, error) {
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
	}
	if c.options.Temperature > 0 {
		genCfg.Temperature = genai.Ptr(float32(c.options.Temperature))
	}
	if c.options.TopP > 0 {
		genCfg.TopP = genai.Ptr(float32(c.options.TopP))
	}
	if c.options.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(c.options.MaxTokens)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt.User, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return flextools.ModelResponse{}, &flextools.UpstreamError{StatusCode: apiErr.Code, Err: err}
		}
		return flextools.ModelResponse{}, &flextools.UpstreamError{Err: err}
	}

	return fromGeminiResponse(resp), nil
}

// fromGeminiResponse 只取第一个候选，跳过思考片段
func fromGeminiResponse(resp *genai.GenerateContentResponse) flextools.ModelResponse {
	out := flextools.ModelResponse{Output: []flextools.OutputItem{}}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out
	}

	item := flextools.OutputItem{Type: "message"}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		text := part.Text
		item.Content = append(item.Content, flextools.ContentSegment{Type: "output_text", Text: &text})
	}
	out.Output = append(out.Output, item)
	return out
}
