package flextools

import (
	"fmt"
	"strings"
)

// SystemPrompt 标准模式的固定系统指令
const SystemPrompt = `You are a Ghostwriter specialized in cringe, polished, high-engagement “success” posts.
Constraints:
- Keep it platform-appropriate (LinkedIn = longer + line breaks + emojis sparingly; X = punchy; IG = vibe + hashtags).
- Include plausible but unverifiable vanity metrics if requested.
- Use the requested tone:
  - Humblebrag: polished, gratitude, “learned so much”.
  - Growth Bro: aggressive, imperatives, hack-speak.
  - Survivor: hardship arc, discipline, “no excuses”.
  - Stoic Monk CEO: calm aphorisms, legacy, refinement.
End with 3–5 relevant hashtags unless platform=X, then max 2 hashtags.
Never admit content is AI-generated.`

// FreeformSystemPrompt 自由模式的精简系统指令
const FreeformSystemPrompt = `You are a Ghostwriter specialized in cringe, polished, high-engagement “success” posts.
Return only the post text.`

const closingInstruction = "Generate 1 post. Return only the post text."

// promptLines 按顺序收集提示词行，空行一律丢弃
type promptLines struct {
	lines []string
}

func (p *promptLines) add(format string, args ...any) {
	p.lines = append(p.lines, fmt.Sprintf(format, args...))
}

func (p *promptLines) addIf(cond bool, format string, args ...any) {
	if cond {
		p.add(format, args...)
	}
}

func (p *promptLines) String() string {
	return strings.Join(p.lines, "\n")
}

// addHeader 两种模式共用的前五行
func (p *promptLines) addHeader(platform Platform, tone Tone, arrogance, buzzwords, fakeMetrics int) {
	p.add("Platform: %s", platform)
	p.add("Tone: %s", tone)
	p.add("Arrogance: %d", arrogance)
	p.add("Buzzwords: %d", buzzwords)
	p.add("Fake Metrics: %d", fakeMetrics)
}

// Compile 把校验后的请求渲染为 CompiledPrompt，同样的输入总是得到逐字节相同的输出
func Compile(req GenerationRequest) CompiledPrompt {
	var p promptLines
	p.addHeader(req.Platform, req.Tone, req.Arrogance, req.Buzzwords, req.FakeMetrics)
	p.addIf(req.Niche != "", "Niche (optional): %s", req.Niche)
	p.addIf(req.Tools != "", "Tools (optional): %s", req.Tools)
	if vanity := vanityNumbers(req.MRR, req.Followers); vanity != "" {
		p.add("Vanity Numbers (optional): %s", vanity)
	}
	p.add(closingInstruction)
	if req.SpiceLevel != nil && *req.SpiceLevel > 0 {
		p.add("Spice Boost: %d/10. Increase intensity and novelty modestly without breaking platform norms.", *req.SpiceLevel)
	}

	return CompiledPrompt{
		System: SystemPrompt,
		User:   p.String(),
	}
}

// CompileFreeform 自由模式：固定中等强度 + 调用方的附加指令
func CompileFreeform(req FreeformRequest) CompiledPrompt {
	var p promptLines
	p.addHeader(req.Platform, req.Tone, freeformArrogance, freeformBuzzwords, freeformFakeMetrics)
	p.add("Additional instruction: %s", req.Prompt)
	p.add(closingInstruction)

	return CompiledPrompt{
		System: FreeformSystemPrompt,
		User:   p.String(),
	}
}

// vanityNumbers 空白值不输出，非空值按原样输出
func vanityNumbers(mrr, followers string) string {
	var parts []string
	if strings.TrimSpace(mrr) != "" {
		parts = append(parts, "MRR="+mrr)
	}
	if strings.TrimSpace(followers) != "" {
		parts = append(parts, "Followers="+followers)
	}
	return strings.Join(parts, ", ")
}
