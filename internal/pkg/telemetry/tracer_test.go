package telemetry

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"flexgen/internal/config"
)

func TestTracer(t *testing.T) {
	Convey("链路追踪", t, func() {
		Convey("没有 endpoint 时返回空操作的 shutdown", func() {
			shutdown, err := InitTracer(context.Background(), &config.TelemetryConfig{})
			So(err, ShouldBeNil)
			So(shutdown(context.Background()), ShouldBeNil)
		})

		Convey("TracerProvider 带服务名并按比例采样", func() {
			recorder := tracetest.NewSpanRecorder()
			tp := NewTracerProvider(&config.TelemetryConfig{ServiceName: "flexgen-test"},
				sdktrace.WithSpanProcessor(recorder))
			defer tp.Shutdown(context.Background())

			_, span := tp.Tracer("test").Start(context.Background(), "generate")
			span.End()

			ended := recorder.Ended()
			So(ended, ShouldHaveLength, 1)
			So(ended[0].Name(), ShouldEqual, "generate")

			var service string
			for _, kv := range ended[0].Resource().Attributes() {
				if kv.Key == "service.name" {
					service = kv.Value.AsString()
				}
			}
			So(service, ShouldEqual, "flexgen-test")
		})
	})
}
