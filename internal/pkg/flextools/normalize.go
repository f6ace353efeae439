package flextools

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// RawGenerationInput 宽松归一化后的候选值，尚未做范围/枚举校验
type RawGenerationInput struct {
	Platform    string
	Tone        string
	Arrogance   float64
	Buzzwords   float64
	FakeMetrics float64
	Niche       string
	Tools       string
	MRR         string
	Followers   string
	SpiceLevel  *float64

	// TypeErrors 归一化阶段发现的类型错误，由 Validator 合并进 ValidationError
	TypeErrors map[string][]string
}

// RawFreeformInput 自由模式的宽松候选值
type RawFreeformInput struct {
	Prompt     string
	Platform   string
	Tone       string
	TypeErrors map[string][]string
}

// Normalize 把调用方的任意 JSON 对象转换为候选值
//
// 规则:
//   - platform 去空白并转小写
//   - tone 大小写不敏感地映射到规范写法
//   - 三个滑块按数字解析，缺失或无法解析时取 0
//   - spiceLevel 缺失或无法解析时视为未提供
//   - niche/tools 必须是字符串，mrr/followers 允许字符串或数字
func Normalize(payload map[string]any) RawGenerationInput {
	in := RawGenerationInput{
		Platform:    normalizePlatform(payload["platform"]),
		Tone:        normalizeTone(payload["tone"]),
		Arrogance:   numberOrZero(payload["arrogance"]),
		Buzzwords:   numberOrZero(payload["buzzwords"]),
		FakeMetrics: numberOrZero(payload["fakeMetrics"]),
	}
	if n, ok := parseNumber(payload["spiceLevel"]); ok {
		in.SpiceLevel = &n
	}

	var ok bool
	if in.Niche, ok = optionalString(payload["niche"]); !ok {
		in.addTypeError("niche", "must be a string")
	}
	if in.Tools, ok = optionalString(payload["tools"]); !ok {
		in.addTypeError("tools", "must be a string")
	}
	if in.MRR, ok = stringOrNumber(payload["mrr"]); !ok {
		in.addTypeError("mrr", "must be a string or number")
	}
	if in.Followers, ok = stringOrNumber(payload["followers"]); !ok {
		in.addTypeError("followers", "must be a string or number")
	}
	return in
}

// NormalizeFreeform 自由模式归一化，platform/tone 缺省为 x/Humblebrag
func NormalizeFreeform(payload map[string]any) RawFreeformInput {
	in := RawFreeformInput{
		Platform: normalizePlatform(payload["platform"]),
		Tone:     normalizeTone(payload["tone"]),
	}
	if in.Platform == "" {
		in.Platform = string(PlatformX)
	}
	if in.Tone == "" {
		in.Tone = string(ToneHumblebrag)
	}

	prompt, ok := optionalString(payload["prompt"])
	if !ok {
		if in.TypeErrors == nil {
			in.TypeErrors = make(map[string][]string)
		}
		in.TypeErrors["prompt"] = append(in.TypeErrors["prompt"], "must be a string")
	}
	in.Prompt = prompt
	return in
}

func (in *RawGenerationInput) addTypeError(field, msg string) {
	if in.TypeErrors == nil {
		in.TypeErrors = make(map[string][]string)
	}
	in.TypeErrors[field] = append(in.TypeErrors[field], msg)
}

func normalizePlatform(v any) string {
	s, _ := v.(string)
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeTone(v any) string {
	s, _ := v.(string)
	return canonicalTone(strings.TrimSpace(s))
}

func numberOrZero(v any) float64 {
	n, _ := parseNumber(v)
	return n
}

// parseNumber 接受 JSON 数字或数字字符串
// "Infinity"/"NaN"/溢出等非有限值原样返回，由 Validator 拒绝
func parseNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case int32:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	return n, true
}

// optionalString nil 视为空串，其他非字符串类型返回 false
func optionalString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(x), true
	default:
		return "", false
	}
}

// stringOrNumber 字符串原样保留（提示词中按原值输出），数字按最短形式格式化
func stringOrNumber(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	default:
		return "", false
	}
}
