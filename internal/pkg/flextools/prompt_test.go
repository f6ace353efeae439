package flextools

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func baseRequest() GenerationRequest {
	return GenerationRequest{
		Platform:    PlatformX,
		Tone:        ToneGrowthBro,
		Arrogance:   7,
		Buzzwords:   5,
		FakeMetrics: 3,
	}
}

func intPtr(n int) *int { return &n }

func TestCompile(t *testing.T) {
	Convey("Compile 确定性地渲染提示词", t, func() {
		Convey("相同输入逐字节相同", func() {
			req := baseRequest()
			req.Niche = "SaaS"
			req.Tools = "Notion, Zapier"
			req.MRR = "$3k"
			req.Followers = "12000"
			req.SpiceLevel = intPtr(6)

			first := Compile(req)
			for i := 0; i < 50; i++ {
				So(Compile(req), ShouldResemble, first)
			}
		})

		Convey("可选字段全缺失时恰好 6 行且没有空行", func() {
			prompt := Compile(baseRequest())
			lines := strings.Split(prompt.User, "\n")
			So(lines, ShouldResemble, []string{
				"Platform: x",
				"Tone: Growth Bro",
				"Arrogance: 7",
				"Buzzwords: 5",
				"Fake Metrics: 3",
				"Generate 1 post. Return only the post text.",
			})
			So(prompt.System, ShouldEqual, SystemPrompt)
		})

		Convey("只有 MRR 时输出单行 vanity", func() {
			req := baseRequest()
			req.MRR = "$3k"
			lines := strings.Split(Compile(req).User, "\n")
			So(lines, ShouldContain, "Vanity Numbers (optional): MRR=$3k")
			So(len(lines), ShouldEqual, 7)
		})

		Convey("MRR 和 Followers 用逗号空格连接", func() {
			req := baseRequest()
			req.MRR = "50000"
			req.Followers = "10k"
			So(Compile(req).User, ShouldContainSubstring, "Vanity Numbers (optional): MRR=50000, Followers=10k")
		})

		Convey("空白 vanity 值被忽略", func() {
			req := baseRequest()
			req.MRR = "   "
			So(Compile(req).User, ShouldNotContainSubstring, "Vanity")
		})

		Convey("niche 和 tools 按固定顺序出现", func() {
			req := baseRequest()
			req.Niche = "Fintech"
			req.Tools = "Figma"
			req.Followers = "900"
			lines := strings.Split(Compile(req).User, "\n")
			So(lines[5], ShouldEqual, "Niche (optional): Fintech")
			So(lines[6], ShouldEqual, "Tools (optional): Figma")
			So(lines[7], ShouldEqual, "Vanity Numbers (optional): Followers=900")
			So(lines[8], ShouldEqual, "Generate 1 post. Return only the post text.")
		})

		Convey("spiceLevel 为 0 或缺失时没有加辣行", func() {
			req := baseRequest()
			So(Compile(req).User, ShouldNotContainSubstring, "Spice")
			req.SpiceLevel = intPtr(0)
			So(Compile(req).User, ShouldNotContainSubstring, "Spice")
		})

		Convey("spiceLevel 为 7 时加辣行位于最后", func() {
			req := baseRequest()
			req.SpiceLevel = intPtr(7)
			lines := strings.Split(Compile(req).User, "\n")
			last := lines[len(lines)-1]
			So(last, ShouldContainSubstring, "7/10")
			So(last, ShouldEqual, "Spice Boost: 7/10. Increase intensity and novelty modestly without breaking platform norms.")
		})
	})
}

func TestCompileFreeform(t *testing.T) {
	Convey("CompileFreeform 使用固定强度", t, func() {
		prompt := CompileFreeform(FreeformRequest{
			Prompt:   "Got promoted to VP of Vibes",
			Platform: PlatformLinkedIn,
			Tone:     ToneStoicMonkCEO,
		})

		So(prompt.System, ShouldEqual, FreeformSystemPrompt)
		So(strings.Split(prompt.User, "\n"), ShouldResemble, []string{
			"Platform: linkedin",
			"Tone: Stoic Monk CEO",
			"Arrogance: 5",
			"Buzzwords: 5",
			"Fake Metrics: 4",
			"Additional instruction: Got promoted to VP of Vibes",
			"Generate 1 post. Return only the post text.",
		})
	})
}
