package ctxutil

import "context"

type requestDataKey struct{}

// RequestData follows one inbound request. The HTTP layer creates it with the
// correlation ids; the webhook fills in the Telegram update it carried and the
// outcome it produced so the access log can report them on a single line.
type RequestData struct {
	TraceID   string
	RequestID string

	UpdateID int64
	ChatID   string
	Outcome  string
}

// NoteUpdate records which Telegram update and chat the request belongs to.
func (d *RequestData) NoteUpdate(updateID int64, chatID string) {
	if d == nil {
		return
	}
	d.UpdateID = updateID
	d.ChatID = chatID
}

// NoteOutcome records the webhook status returned to Telegram.
func (d *RequestData) NoteOutcome(status string) {
	if d == nil {
		return
	}
	d.Outcome = status
}

// LogFields flattens the populated fields into logger key/value pairs.
func (d *RequestData) LogFields() []interface{} {
	if d == nil {
		return nil
	}
	var kv []interface{}
	if d.TraceID != "" {
		kv = append(kv, "trace_id", d.TraceID)
	}
	if d.RequestID != "" {
		kv = append(kv, "request_id", d.RequestID)
	}
	if d.UpdateID != 0 {
		kv = append(kv, "update_id", d.UpdateID)
	}
	if d.ChatID != "" {
		kv = append(kv, "chat_id", d.ChatID)
	}
	if d.Outcome != "" {
		kv = append(kv, "outcome", d.Outcome)
	}
	return kv
}

func WithRequestData(ctx context.Context, d *RequestData) context.Context {
	return context.WithValue(Default(ctx), requestDataKey{}, d)
}

// RequestDataFrom returns the request data on ctx, or nil. The nil value is
// safe to call Note* on.
func RequestDataFrom(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if d, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return d
	}
	return nil
}

// Default returns ctx, or context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
