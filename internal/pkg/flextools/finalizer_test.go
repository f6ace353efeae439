package flextools

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFinalize(t *testing.T) {
	Convey("Finalize 生成最终产物", t, func() {
		Convey("纯空白输出返回 EmptyOutputError", func() {
			_, err := Finalize("   ", PlatformX)
			var emptyErr *EmptyOutputError
			So(errors.As(err, &emptyErr), ShouldBeTrue)
			So(ReasonOf(err), ShouldEqual, ReasonEmptyOutput)
		})

		Convey("去除首尾空白并回显平台", func() {
			post, err := Finalize(" hello ", PlatformInstagram)
			So(err, ShouldBeNil)
			So(post, ShouldResemble, GeneratedPost{Text: "hello", Platform: PlatformInstagram})
		})
	})
}

func TestReasonOf(t *testing.T) {
	Convey("ReasonOf 按类型分类，包装后依然可识别", t, func() {
		So(ReasonOf(&ValidationError{}), ShouldEqual, ReasonInvalidRequest)
		So(ReasonOf(&ConfigurationError{Setting: "ai.api_key"}), ShouldEqual, ReasonMissingCredential)
		So(ReasonOf(fmt.Errorf("invoke: %w", &UpstreamError{Err: errors.New("boom")})), ShouldEqual, ReasonUpstream)
		So(ReasonOf(&EmptyOutputError{}), ShouldEqual, ReasonEmptyOutput)
		So(ReasonOf(errors.New("other")), ShouldEqual, ReasonInternal)
	})

	Convey("ValidationError 信息按字段排序", t, func() {
		verr := &ValidationError{}
		verr.add("tone", "is required")
		verr.add("platform", "is required")
		So(verr.Error(), ShouldEqual, "invalid request: platform: is required; tone: is required")
	})

	Convey("UpstreamError 可以解包", t, func() {
		inner := errors.New("connection reset")
		err := &UpstreamError{StatusCode: 503, Err: inner}
		So(errors.Is(err, inner), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "status 503")
	})
}
