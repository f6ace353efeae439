package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"flexgen/internal/pkg/ctxutil"
	"flexgen/internal/pkg/id"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("中间件", t, func() {
		var seen string
		r := gin.New()
		r.Use(Recovery(), RequestID(), Logger(), CORS())
		r.GET("/ping", func(c *gin.Context) {
			seen, _ = ctxutil.GetRequestID(c.Request.Context())
			c.String(http.StatusOK, "pong")
		})
		r.GET("/panic", func(c *gin.Context) {
			panic("boom")
		})

		Convey("生成请求ID并写入 header 和 context", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(id.IsValid(w.Header().Get(RequestIDHeader)), ShouldBeTrue)
			So(seen, ShouldEqual, w.Header().Get(RequestIDHeader))
		})

		Convey("复用合法的请求ID，丢弃非法值", func() {
			given := id.New()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(RequestIDHeader, given)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			So(w.Header().Get(RequestIDHeader), ShouldEqual, given)

			req = httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(RequestIDHeader, "<script>")
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)
			So(w.Header().Get(RequestIDHeader), ShouldNotEqual, "<script>")
		})

		Convey("预检请求直接返回", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ping", nil))
			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
		})

		Convey("panic 转为 500", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "internal_error")
		})
	})
}
