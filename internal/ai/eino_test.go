package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"

	"flexgen/internal/pkg/flextools"
)

type fakeChatModel struct {
	reply    *schema.Message
	err      error
	received []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.received = input
	return f.reply, f.err
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func TestEinoCompleter_Complete(t *testing.T) {
	Convey("EinoCompleter 把 ChatModel 消息映射为 ModelResponse", t, func() {
		Convey("发送 system + user 并把 Content 放进便捷字段", func() {
			fake := &fakeChatModel{reply: schema.AssistantMessage("  Stay humble.  ", nil)}
			resp, err := NewEinoCompleter(fake).Complete(context.Background(), testPrompt)

			So(err, ShouldBeNil)
			So(len(fake.received), ShouldEqual, 2)
			So(fake.received[0].Role, ShouldEqual, schema.System)
			So(fake.received[0].Content, ShouldEqual, "system rules")
			So(fake.received[1].Role, ShouldEqual, schema.User)
			So(flextools.ExtractText(resp), ShouldEqual, "  Stay humble.  ")
		})

		Convey("Content 为空时使用 MultiContent 文本片段", func() {
			msg := &schema.Message{
				Role: schema.Assistant,
				MultiContent: []schema.ChatMessagePart{
					{Type: schema.ChatMessagePartTypeText, Text: "part one, "},
					{Type: schema.ChatMessagePartTypeImageURL},
					{Type: schema.ChatMessagePartTypeText, Text: "part two"},
				},
			}
			resp, err := NewEinoCompleter(&fakeChatModel{reply: msg}).Complete(context.Background(), testPrompt)
			So(err, ShouldBeNil)
			So(flextools.ExtractText(resp), ShouldEqual, "part one, part two")
		})

		Convey("模型错误包装为 UpstreamError", func() {
			_, err := NewEinoCompleter(&fakeChatModel{err: errors.New("429 too many requests")}).Complete(context.Background(), testPrompt)
			So(flextools.ReasonOf(err), ShouldEqual, flextools.ReasonUpstream)
		})

		Convey("空消息包装为 UpstreamError", func() {
			_, err := NewEinoCompleter(&fakeChatModel{}).Complete(context.Background(), testPrompt)
			So(flextools.ReasonOf(err), ShouldEqual, flextools.ReasonUpstream)
		})
	})
}
