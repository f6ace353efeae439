package eventbus

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tidwall/gjson"

	"flexgen/internal/model/generation"
)

func TestGenerationEvent(t *testing.T) {
	Convey("生成事件", t, func() {
		g := &generation.Generation{
			ID:        "7c0c6f0e-8f7e-4d61-9a1c-0d7f3f7c9a11",
			Mode:      generation.ModeFreeform,
			Platform:  "x",
			Tone:      "Humblebrag",
			Outcome:   "upstream_error",
			LatencyMs: 1200,
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}

		Convey("subject 带模式和结果", func() {
			So(SubjectFor(DefaultSubject, g), ShouldEqual, "flexgen.generations.freeform.upstream_error")
		})

		Convey("事件体只有元数据", func() {
			data, err := EncodeGeneration(g)
			So(err, ShouldBeNil)
			So(gjson.GetBytes(data, "mode").String(), ShouldEqual, "freeform")
			So(gjson.GetBytes(data, "outcome").String(), ShouldEqual, "upstream_error")
			So(gjson.GetBytes(data, "latency_ms").Int(), ShouldEqual, 1200)
			So(gjson.GetBytes(data, "text").Exists(), ShouldBeFalse)
		})

		Convey("默认 subject", func() {
			So(NewPublisherWithConn(nil, "").Subject(), ShouldEqual, DefaultSubject)
		})
	})
}
