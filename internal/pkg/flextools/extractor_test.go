package flextools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func strPtr(s string) *string { return &s }

func TestExtractText(t *testing.T) {
	Convey("ExtractText 从两种响应形态中取文本", t, func() {
		Convey("便捷字段非空白时原样返回，不做 trim", func() {
			resp := ModelResponse{OutputText: strPtr("  hello  ")}
			So(ExtractText(resp), ShouldEqual, "  hello  ")
		})

		Convey("便捷字段优先于 output 列表", func() {
			resp := ModelResponse{
				OutputText: strPtr("flat"),
				Output: []OutputItem{{Type: "message", Content: []ContentSegment{
					{Type: "output_text", Text: strPtr("nested")},
				}}},
			}
			So(ExtractText(resp), ShouldEqual, "flat")
		})

		Convey("便捷字段空白时回退到 output 列表", func() {
			resp := ModelResponse{
				OutputText: strPtr("   "),
				Output: []OutputItem{{Type: "message", Content: []ContentSegment{
					{Type: "output_text", Text: strPtr("nested")},
				}}},
			}
			So(ExtractText(resp), ShouldEqual, "nested")
		})

		Convey("只取 output_text 片段", func() {
			resp := ModelResponse{
				Output: []OutputItem{{Type: "message", Content: []ContentSegment{
					{Type: "output_text", Text: strPtr("abc")},
					{Type: "refusal", Text: strPtr("nope")},
				}}},
			}
			So(ExtractText(resp), ShouldEqual, "abc")
		})

		Convey("跨项按顺序无分隔拼接，非 message 项忽略", func() {
			resp := ModelResponse{
				Output: []OutputItem{
					{Type: "reasoning", Content: []ContentSegment{{Type: "output_text", Text: strPtr("skip")}}},
					{Type: "message", Content: []ContentSegment{
						{Type: "output_text", Text: strPtr("Hello, ")},
						{Type: "output_text"},
						{Type: "output_text", Text: strPtr("world")},
					}},
					{Type: "message", Content: []ContentSegment{{Type: "output_text", Text: strPtr("!")}}},
				},
			}
			So(ExtractText(resp), ShouldEqual, "Hello, world!")
		})

		Convey("空列表返回空串", func() {
			So(ExtractText(ModelResponse{Output: []OutputItem{}}), ShouldEqual, "")
		})

		Convey("两种形态都没有时返回空串", func() {
			So(ExtractText(ModelResponse{}), ShouldEqual, "")
		})
	})
}

func TestDecodeModelResponse(t *testing.T) {
	Convey("DecodeModelResponse 解码原始响应体", t, func() {
		Convey("读取便捷字段", func() {
			resp, err := DecodeModelResponse([]byte(`{"output_text":"  hi  "}`))
			So(err, ShouldBeNil)
			So(*resp.OutputText, ShouldEqual, "  hi  ")
			So(resp.Output, ShouldBeNil)
		})

		Convey("读取 item.content 形态", func() {
			body := `{"output":[
				{"type":"reasoning","summary":[]},
				{"type":"message","role":"assistant","content":[
					{"type":"output_text","text":"abc","annotations":[]},
					{"type":"refusal","refusal":"no"}
				]}
			]}`
			resp, err := DecodeModelResponse([]byte(body))
			So(err, ShouldBeNil)
			So(resp.OutputText, ShouldBeNil)
			So(len(resp.Output), ShouldEqual, 2)
			So(ExtractText(resp), ShouldEqual, "abc")
		})

		Convey("回退到 item.message.content 形态", func() {
			body := `{"output":[{"type":"message","message":{"content":[{"type":"output_text","text":"xyz"}]}}]}`
			resp, err := DecodeModelResponse([]byte(body))
			So(err, ShouldBeNil)
			So(ExtractText(resp), ShouldEqual, "xyz")
		})

		Convey("非字符串便捷字段视为缺失", func() {
			resp, err := DecodeModelResponse([]byte(`{"output_text":null,"output":[]}`))
			So(err, ShouldBeNil)
			So(resp.OutputText, ShouldBeNil)
			So(resp.Output, ShouldNotBeNil)
			So(ExtractText(resp), ShouldEqual, "")
		})

		Convey("非 JSON 响应体返回错误", func() {
			_, err := DecodeModelResponse([]byte("<html>bad gateway</html>"))
			So(err, ShouldNotBeNil)
			_, err = DecodeModelResponse([]byte(`["not","object"]`))
			So(err, ShouldNotBeNil)
		})
	})
}
