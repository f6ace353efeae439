package ai

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"flexgen/internal/pkg/flextools"
)

// EinoCompleter 基于 eino ChatModel 的 Completer（Chat Completions 协议的 Provider）
type EinoCompleter struct {
	chatModel model.BaseChatModel
}

// NewEinoCompleter 创建 EinoCompleter
func NewEinoCompleter(chatModel model.BaseChatModel) *EinoCompleter {
	return &EinoCompleter{chatModel: chatModel}
}

// Complete 调用 ChatModel.Generate，并把消息映射为 ModelResponse:
// Content 进入便捷字段，MultiContent 的文本片段进入 message 项
func (c *EinoCompleter) Complete(ctx context.Context, prompt flextools.CompiledPrompt) (flextools.ModelResponse, error) {
	messages := []*schema.Message{
		schema.SystemMessage(prompt.System),
		schema.UserMessage(prompt.User),
	}

	msg, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return flextools.ModelResponse{}, &flextools.UpstreamError{Err: err}
	}
	if msg == nil {
		return flextools.ModelResponse{}, &flextools.UpstreamError{Err: errors.New("chat model returned no message")}
	}

	return toModelResponse(msg), nil
}

func toModelResponse(msg *schema.Message) flextools.ModelResponse {
	content := msg.Content
	resp := flextools.ModelResponse{OutputText: &content}
	if len(msg.MultiContent) == 0 {
		return resp
	}

	item := flextools.OutputItem{Type: "message"}
	for _, part := range msg.MultiContent {
		seg := flextools.ContentSegment{Type: string(part.Type)}
		if part.Type == schema.ChatMessagePartTypeText {
			seg.Type = "output_text"
			text := part.Text
			seg.Text = &text
		}
		item.Content = append(item.Content, seg)
	}
	resp.Output = []flextools.OutputItem{item}
	return resp
}
