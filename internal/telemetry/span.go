package telemetry

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"squadhealth/internal/core"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// WithSpan 開一個子 span，parent 可以是 *gin.Context (handler) 或 context.Context (service / repository)。
// 未指定 name 時，handler 用路由 handler 名稱，其餘用呼叫者的方法名。
// 回傳的 end(err) 會記錄錯誤並結束 span，只有第一次呼叫有效。
func (t *Trace) WithSpan(parent any, name ...string) (context.Context, trace.Span, func(error)) {
	var (
		ctx  context.Context
		span trace.Span
	)
	switch p := parent.(type) {
	case *gin.Context:
		ctx, span = t.tracerOrNoop().Start(ContextOf(p), pick(name, ginSpanName(p)))
		p.Set(core.ContextTraceKey, ctx)
	case context.Context:
		ctx, span = t.tracerOrNoop().Start(p, pick(name, callerSpanName()))
	default:
		ctx, span = t.tracerOrNoop().Start(context.Background(), pick(name, "unknown"))
	}
	var once sync.Once
	return ctx, span, func(err error) { once.Do(func() { End(span, err) }) }
}

// ServerSpan 給最外層 TraceEntry 使用
func (t *Trace) ServerSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return t.tracerOrNoop().Start(ctx, name, trace.WithSpanKind(trace.SpanKindServer))
}

// End 結束 span，err 不為 nil 時標記為錯誤
func End(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ContextOf 取得 gin 上最新的 trace ctx，沒有就用 request ctx
func ContextOf(c *gin.Context) context.Context {
	if raw, ok := c.Get(core.ContextTraceKey); ok {
		if ctx, ok := raw.(context.Context); ok {
			return ctx
		}
	}
	return c.Request.Context()
}

func pick(name []string, fallback string) string {
	if len(name) > 0 {
		if n := strings.TrimSpace(name[0]); n != "" {
			return n
		}
	}
	if fallback == "" {
		return "unknown"
	}
	return fallback
}

func ginSpanName(c *gin.Context) string {
	if hn := c.HandlerName(); hn != "" {
		return prettifyFuncName(hn)
	}
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return c.Request.Method + " " + route
}

// 0: callerSpanName, 1: WithSpan, 2: 呼叫 WithSpan 的方法
func callerSpanName() string {
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	return prettifyFuncName(fn.Name())
}

// "squadhealth/internal/service.(*DashboardService).OrgTree.func1" -> "DashboardService.OrgTree"
func prettifyFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(full, ".func"); i >= 0 {
		full = full[:i]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	full = strings.NewReplacer("(*", "", "(", "", ")", "").Replace(full)
	// 泛型參數
	if open := strings.Index(full, "["); open >= 0 {
		if closing := strings.Index(full, "]"); closing > open {
			full = full[:open] + full[closing+1:]
		}
	}
	return full
}
