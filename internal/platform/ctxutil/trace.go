package ctxutil

import "context"

type traceKey struct{}

// TraceData carries the correlation IDs the trace middleware assigns to a
// request, so downstream log lines can attach them.
type TraceData struct {
	TraceID   string
	RequestID string
}

// WithTraceData returns a child context carrying td.
func WithTraceData(ctx context.Context, td TraceData) context.Context {
	return context.WithValue(ctx, traceKey{}, td)
}

// TraceDataFrom extracts the trace data stored by WithTraceData. The second
// return is false when the trace middleware never ran for this request.
func TraceDataFrom(ctx context.Context) (TraceData, bool) {
	td, ok := ctx.Value(traceKey{}).(TraceData)
	return td, ok
}
