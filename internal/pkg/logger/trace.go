package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey 请求链路 ID 在 Context 和日志属性里共用的键名
const TraceIDKey = "trace_id"

// ContextHandler 在写出前把 ctx 里的 trace_id 带进日志属性
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
