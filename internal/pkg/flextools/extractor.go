package flextools

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractText 从模型响应中取出纯文本，永不失败，最坏返回空串
//
// 便捷字段非空白时原样返回（不做 trim）；
// 否则按顺序拼接所有 message 项中 output_text 片段的文本，无分隔符。
func ExtractText(resp ModelResponse) string {
	if resp.OutputText != nil && strings.TrimSpace(*resp.OutputText) != "" {
		return *resp.OutputText
	}
	if resp.Output == nil {
		return ""
	}

	var sb strings.Builder
	for _, item := range resp.Output {
		if item.Type != outputItemMessage {
			continue
		}
		for _, seg := range item.Content {
			if seg.Type != segmentOutputText || seg.Text == nil {
				continue
			}
			sb.WriteString(*seg.Text)
		}
	}
	return sb.String()
}

// DecodeModelResponse 按 tagged union 解码原始响应体:
// 先读便捷字段 output_text，再读 output 列表。
// 片段优先取 item.content，缺失时回退到 item.message.content。
// 只有响应体不是 JSON 对象时才返回错误。
func DecodeModelResponse(raw []byte) (ModelResponse, error) {
	if !gjson.ValidBytes(raw) {
		return ModelResponse{}, errors.New("response body is not valid JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return ModelResponse{}, errors.New("response body is not a JSON object")
	}

	var resp ModelResponse
	if ot := root.Get("output_text"); ot.Type == gjson.String {
		s := ot.String()
		resp.OutputText = &s
	}
	if out := root.Get("output"); out.IsArray() {
		resp.Output = make([]OutputItem, 0)
		out.ForEach(func(_, item gjson.Result) bool {
			resp.Output = append(resp.Output, decodeOutputItem(item))
			return true
		})
	}
	return resp, nil
}

func decodeOutputItem(item gjson.Result) OutputItem {
	out := OutputItem{Type: item.Get("type").String()}

	content := item.Get("content")
	if !content.IsArray() {
		content = item.Get("message.content")
	}
	if !content.IsArray() {
		return out
	}
	content.ForEach(func(_, c gjson.Result) bool {
		seg := ContentSegment{Type: c.Get("type").String()}
		if t := c.Get("text"); t.Type == gjson.String {
			s := t.String()
			seg.Text = &s
		}
		out.Content = append(out.Content, seg)
		return true
	})
	return out
}
