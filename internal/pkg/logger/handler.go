package logger

import (
	"context"
	log "log/slog"
)

// TeeHandler 同一条日志写给多个下游 Handler
type TeeHandler struct {
	handlers []log.Handler
}

// Enabled 以第一个下游（本地输出）的级别为准
func (t *TeeHandler) Enabled(ctx context.Context, level log.Level) bool {
	return t.handlers[0].Enabled(ctx, level)
}

func (t *TeeHandler) Handle(ctx context.Context, r log.Record) error {
	for _, h := range t.handlers {
		if err := h.Handle(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (t *TeeHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return t.fork(func(h log.Handler) log.Handler { return h.WithAttrs(attrs) })
}

func (t *TeeHandler) WithGroup(name string) log.Handler {
	return t.fork(func(h log.Handler) log.Handler { return h.WithGroup(name) })
}

func (t *TeeHandler) fork(wrap func(log.Handler) log.Handler) *TeeHandler {
	forked := make([]log.Handler, len(t.handlers))
	for i, h := range t.handlers {
		forked[i] = wrap(h)
	}
	return &TeeHandler{handlers: forked}
}

// RemoteFilterHandler 只把带 trace_id 的请求日志送到远程，
// 启动日志和定时任务之外的杂音留在本地。
type RemoteFilterHandler struct {
	next log.Handler
}

func (f *RemoteFilterHandler) Enabled(ctx context.Context, level log.Level) bool {
	return f.next.Enabled(ctx, level)
}

func (f *RemoteFilterHandler) Handle(ctx context.Context, r log.Record) error {
	traced := false
	r.Attrs(func(a log.Attr) bool {
		if a.Key == TraceIDKey && a.Value.String() != "" {
			traced = true
			return false
		}
		return true
	})
	if !traced {
		return nil
	}
	return f.next.Handle(ctx, r)
}

func (f *RemoteFilterHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &RemoteFilterHandler{next: f.next.WithAttrs(attrs)}
}

func (f *RemoteFilterHandler) WithGroup(name string) log.Handler {
	return &RemoteFilterHandler{next: f.next.WithGroup(name)}
}
