package cache

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseGenerationStats(t *testing.T) {
	Convey("parseGenerationStats 按前缀拆分计数", t, func() {
		stats := parseGenerationStats(map[string]string{
			"total":                "5",
			"outcome:success":      "3",
			"outcome:empty_output": "2",
			"platform:x":           "4",
			"platform:linkedin":    "1",
			"garbage":              "7",
			"outcome:broken":       "NaN",
		})

		So(stats.Total, ShouldEqual, 5)
		So(stats.ByOutcome, ShouldResemble, map[string]int64{"success": 3, "empty_output": 2})
		So(stats.ByPlatform, ShouldResemble, map[string]int64{"x": 4, "linkedin": 1})
	})

	Convey("空哈希得到零值快照", t, func() {
		stats := parseGenerationStats(nil)
		So(stats.Total, ShouldEqual, 0)
		So(stats.ByOutcome, ShouldBeEmpty)
		So(stats.ByPlatform, ShouldBeEmpty)
	})
}
