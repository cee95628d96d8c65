package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// EventType records the normalized webhook event kind under "event_type".
func EventType(kind string) slog.Attr {
	return slog.String("event_type", kind)
}

// OrderID records the external order reference under "order_id".
func OrderID(id string) slog.Attr {
	return slog.String("order_id", id)
}

// SubscriberID records the subscriber identifier under "subscriber_id".
// If id is nil, it returns an empty Attr.
func SubscriberID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("subscriber_id", id)
}

// Source records which authority resolved a handshake under "source".
func Source(source string) slog.Attr {
	return slog.String("source", source)
}
