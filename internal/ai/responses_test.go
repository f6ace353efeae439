package ai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tidwall/gjson"

	"flexgen/internal/config"
	"flexgen/internal/pkg/flextools"
)

func newTestCompleter(t *testing.T, handler http.HandlerFunc) (*ResponsesCompleter, *int32) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewResponsesCompleter(&config.AIConfig{
		APIKey:  "sk-test",
		BaseURL: srv.URL + "/",
	})
	if err != nil {
		t.Fatalf("NewResponsesCompleter: %v", err)
	}
	return c, &hits
}

var testPrompt = flextools.CompiledPrompt{System: "system rules", User: "Platform: x"}

func TestResponsesCompleter_Complete(t *testing.T) {
	Convey("ResponsesCompleter 调用 Responses API", t, func() {
		Convey("发送 system/user 两条消息并解码 output 列表", func() {
			var (
				body []byte
				path string
				auth string
			)
			c, hits := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
				body, _ = io.ReadAll(r.Body)
				path = r.URL.Path
				auth = r.Header.Get("Authorization")
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{
					"id": "resp_1",
					"object": "response",
					"status": "completed",
					"output": [{
						"type": "message",
						"id": "msg_1",
						"role": "assistant",
						"status": "completed",
						"content": [{"type": "output_text", "text": "Grateful to announce...", "annotations": []}]
					}]
				}`)
			})

			resp, err := c.Complete(context.Background(), testPrompt)
			So(err, ShouldBeNil)
			So(atomic.LoadInt32(hits), ShouldEqual, 1)
			So(path, ShouldEqual, "/responses")
			So(auth, ShouldEqual, "Bearer sk-test")
			So(flextools.ExtractText(resp), ShouldEqual, "Grateful to announce...")

			So(gjson.GetBytes(body, "model").String(), ShouldEqual, DefaultModel)
			So(gjson.GetBytes(body, "input.#").Int(), ShouldEqual, 2)
			So(gjson.GetBytes(body, "input.0.role").String(), ShouldEqual, "system")
			So(gjson.GetBytes(body, "input.0.content").String(), ShouldEqual, "system rules")
			So(gjson.GetBytes(body, "input.1.role").String(), ShouldEqual, "user")
			So(gjson.GetBytes(body, "input.1.content").String(), ShouldEqual, "Platform: x")
			So(gjson.GetBytes(body, "stream").Bool(), ShouldBeFalse)
		})

		Convey("非 2xx 只请求一次并返回带状态码的 UpstreamError", func() {
			c, hits := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
			})

			_, err := c.Complete(context.Background(), testPrompt)
			So(err, ShouldNotBeNil)
			So(atomic.LoadInt32(hits), ShouldEqual, 1)
			So(flextools.ReasonOf(err), ShouldEqual, flextools.ReasonUpstream)
			upstreamErr, ok := err.(*flextools.UpstreamError)
			So(ok, ShouldBeTrue)
			So(upstreamErr.StatusCode, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("响应体不是 JSON 时返回 UpstreamError", func() {
			c, _ := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `<html>oops</html>`)
			})

			_, err := c.Complete(context.Background(), testPrompt)
			So(flextools.ReasonOf(err), ShouldEqual, flextools.ReasonUpstream)
		})
	})
}

func TestNewCompleter(t *testing.T) {
	Convey("NewCompleter 在凭证缺失时返回 ConfigurationError", t, func() {
		for _, provider := range []string{"openai", "ark", "openai-chat", "gemini"} {
			_, err := NewCompleter(context.Background(), &config.AIConfig{Provider: provider})
			So(flextools.ReasonOf(err), ShouldEqual, flextools.ReasonMissingCredential)
		}

		_, err := NewResponsesCompleter(&config.AIConfig{APIKey: "   "})
		So(flextools.ReasonOf(err), ShouldEqual, flextools.ReasonMissingCredential)
	})

	Convey("默认 Provider 使用 Responses API", t, func() {
		c, err := NewCompleter(context.Background(), &config.AIConfig{APIKey: "sk-test", Model: "gpt-4.1-mini"})
		So(err, ShouldBeNil)
		rc, ok := c.(*ResponsesCompleter)
		So(ok, ShouldBeTrue)
		So(rc.Model(), ShouldEqual, "gpt-4.1-mini")
	})

	Convey("gemini Provider 使用 GenAI SDK", t, func() {
		c, err := NewCompleter(context.Background(), &config.AIConfig{Provider: "gemini", APIKey: "k"})
		So(err, ShouldBeNil)
		gc, ok := c.(*GeminiCompleter)
		So(ok, ShouldBeTrue)
		So(gc.model, ShouldEqual, DefaultGeminiModel)
	})
}
