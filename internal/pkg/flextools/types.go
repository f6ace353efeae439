package flextools

import "strings"

// Platform 目标社交平台
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"  // 长文 + 换行 + 少量 emoji
	PlatformX         Platform = "x"         // 短促有力
	PlatformInstagram Platform = "instagram" // 氛围 + hashtag
)

// String 返回平台的字符串表示
func (p Platform) String() string {
	return string(p)
}

// Platforms 全部合法平台，顺序固定
var Platforms = []Platform{PlatformLinkedIn, PlatformX, PlatformInstagram}

// Tone 帖子语气
type Tone string

const (
	ToneHumblebrag   Tone = "Humblebrag"
	ToneGrowthBro    Tone = "Growth Bro"
	ToneSurvivor     Tone = "Survivor"
	ToneStoicMonkCEO Tone = "Stoic Monk CEO"
)

// String 返回语气的字符串表示
func (t Tone) String() string {
	return string(t)
}

// Tones 全部合法语气，顺序固定
var Tones = []Tone{ToneHumblebrag, ToneGrowthBro, ToneSurvivor, ToneStoicMonkCEO}

// canonicalTone 大小写不敏感地匹配规范语气，匹配不到时原样返回
func canonicalTone(s string) string {
	for _, t := range Tones {
		if strings.EqualFold(s, string(t)) {
			return string(t)
		}
	}
	return s
}

const (
	// DefaultSliderMax 滑块默认上限
	DefaultSliderMax = 10
	// SpiceMax 加辣上限
	SpiceMax = 10
)

// GenerationRequest 通过校验的生成参数
type GenerationRequest struct {
	Platform    Platform
	Tone        Tone
	Arrogance   int
	Buzzwords   int
	FakeMetrics int
	Niche       string
	Tools       string
	MRR         string // 空白表示未提供
	Followers   string // 空白表示未提供
	SpiceLevel  *int   // nil 表示未提供
}

// FreeformRequest 自由指令模式参数（playground）
type FreeformRequest struct {
	Prompt   string
	Platform Platform
	Tone     Tone
}

// 自由模式固定强度
const (
	freeformArrogance   = 5
	freeformBuzzwords   = 5
	freeformFakeMetrics = 4
)

// CompiledPrompt 发送给模型的两段式提示词，每次请求新建，不可变
type CompiledPrompt struct {
	System string
	User   string
}

// ModelResponse 模型响应的两种形态:
// 便捷字段 OutputText，或者结构化的 Output 列表。
// 指针/nil 切片用于区分“缺失”和“空”。
type ModelResponse struct {
	OutputText *string
	Output     []OutputItem
}

// OutputItem 输出项，只有 type=message 的项携带文本
type OutputItem struct {
	Type    string
	Content []ContentSegment
}

// ContentSegment 输出内容片段，只有 type=output_text 的片段参与拼接
type ContentSegment struct {
	Type string
	Text *string
}

const (
	outputItemMessage = "message"
	segmentOutputText = "output_text"
)

// GeneratedPost 最终产物
type GeneratedPost struct {
	Text     string   `json:"text"`
	Platform Platform `json:"platform"`
}
