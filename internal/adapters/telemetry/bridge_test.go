package telemetry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/preppy/internal/adapters/telemetry"
	"go.trai.ch/preppy/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_StartAndEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	gomock.InOrder(
		renderer.EXPECT().OnTaskStart(gomock.Any(), "[NODE] task", gomock.Any()),
		renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), "100 B in 3ms", nil),
	)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	_, span := tp.Tracer("test").Start(t.Context(), "[NODE] task")
	span.SetAttributes(attribute.String(telemetry.SummaryKey, "100 B in 3ms"))
	span.End()
}

func TestBridge_EndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	renderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any())
	renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), "", gomock.Any()).
		Do(func(_ string, _ time.Time, _ string, err error) {
			assert.EqualError(t, err, "bundling failed")
		})

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	_, span := tp.Tracer("test").Start(t.Context(), "task")
	span.SetStatus(codes.Error, "bundling failed")
	span.End()
}

func TestBridge_EmptyErrorDescription(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	renderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any())
	renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ string, _ time.Time, _ string, err error) {
			assert.EqualError(t, err, "task failed")
		})

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	_, span := tp.Tracer("test").Start(t.Context(), "task")
	span.SetStatus(codes.Error, "")
	span.End()
}

func TestBridge_NilRenderer(t *testing.T) {
	bridge := telemetry.NewBridge(nil)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))

	assert.NotPanics(t, func() {
		_, span := tp.Tracer("test").Start(t.Context(), "task")
		span.End()
	})
	assert.NoError(t, bridge.ForceFlush(t.Context()))
	assert.NoError(t, bridge.Shutdown(t.Context()))
}
