package observability

import (
	"context"
	"math"
	"testing"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/team-draw/internal/config"
	"github.com/riskibarqy/team-draw/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "team-draw-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}
	base := logging.NewNop()

	logger, shutdown, err := InitUptrace(cfg, base)
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if logger != base {
		t.Fatalf("expected the base logger back when uptrace is disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestNewPprofServer_Disabled(t *testing.T) {
	if srv := NewPprofServer(config.Config{}, logging.NewNop()); srv != nil {
		t.Fatalf("expected nil server when pprof is disabled")
	}

	srv := NewPprofServer(config.Config{PprofEnabled: true, PprofAddr: ":6061"}, logging.NewNop())
	if srv == nil || srv.Addr != ":6061" {
		t.Fatalf("unexpected pprof server: %+v", srv)
	}
}

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipUptraceLog("http request", map[string]any{"path": "/v1/draws"}) {
		t.Fatalf("did not expect draw request log to be skipped")
	}
	if shouldSkipUptraceLog("teams drawn", map[string]any{"path": "/healthz"}) {
		t.Fatalf("did not expect other events to be skipped")
	}
}

func TestBuildOTelLogAttributes_SortedKeys(t *testing.T) {
	attrs := buildOTelLogAttributes(map[string]any{
		"draw_id":    "draw-1",
		"candidates": int64(462),
		"note":       nil,
	})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "candidates" || attrs[0].Value.AsInt64() != 462 {
		t.Fatalf("unexpected candidates attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "draw_id" || attrs[1].Value.AsString() != "draw-1" {
		t.Fatalf("unexpected draw_id attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "note" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected note attribute: %+v", attrs[2])
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"teamA": 13.5,
		"teamB": 13,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if len(v.AsMap()) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(v.AsMap()))
	}
}

func TestUptraceLogCore_LevelAndFields(t *testing.T) {
	core := newUptraceLogCore("dev", zapcore.WarnLevel)
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be below the core level")
	}

	withFields := core.With([]zapcore.Field{{Key: "draw_id", Type: zapcore.StringType, String: "draw-1"}})
	inner, ok := withFields.(*uptraceLogCore)
	if !ok || len(inner.fields) != 1 {
		t.Fatalf("expected one bound field, got %+v", withFields)
	}
	if len(core.(*uptraceLogCore).fields) != 0 {
		t.Fatalf("With must not mutate the parent core")
	}
	if err := withFields.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "draw failed"}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestToOTelLogValue_EncoderTypes(t *testing.T) {
	if v := toOTelLogValue([]any{"Everson", int64(7)}, 0); v.Kind() != otellog.KindSlice || len(v.AsSlice()) != 2 {
		t.Fatalf("expected 2 item slice, got %s", v.Kind())
	}
	if v := toOTelLogValue(uint64(math.MaxUint64), 0); v.Kind() != otellog.KindString {
		t.Fatalf("expected overflowing uint64 as string, got %s", v.Kind())
	}
	deep := map[string]any{"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": 1}}}}
	v := toOTelLogValue(deep, 0)
	inner := v.AsMap()[0].Value.AsMap()[0].Value.AsMap()[0].Value
	if inner.Kind() != otellog.KindString {
		t.Fatalf("expected values past the depth limit to be printed, got %s", inner.Kind())
	}
}
