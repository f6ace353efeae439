package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("请求链路", t, func() {
		recorder := tracetest.NewSpanRecorder()
		prevTP := otel.GetTracerProvider()
		prevProp := otel.GetTextMapPropagator()
		otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
		otel.SetTextMapPropagator(propagation.TraceContext{})
		Reset(func() {
			otel.SetTracerProvider(prevTP)
			otel.SetTextMapPropagator(prevProp)
		})

		r := gin.New()
		r.Use(Tracing())
		r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

		req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
		req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		ended := recorder.Ended()
		So(ended, ShouldHaveLength, 1)
		So(ended[0].Name(), ShouldEqual, "GET /items/:id")
		So(ended[0].SpanContext().TraceID().String(), ShouldEqual, "4bf92f3577b34da6a3ce929d0e0e4736")
		So(ended[0].Status().Description, ShouldEqual, "HTTP 502")
	})
}
