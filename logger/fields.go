package logger

import (
	"time"
)

// Field keys shared by the service's log lines.
const (
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldRequestID = "request_id"
	FieldUserID    = "user_id"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields builds a field map from alternating key-value pairs. A trailing key
// without a value is dropped.
//
//	log.Info("post created", logger.Fields("post_id", 42))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// OperationFields describes a finished use-case call. err may be nil.
func OperationFields(op string, d time.Duration, err error) map[string]interface{} {
	m := map[string]interface{}{
		FieldOperation: op,
		FieldStatus:    "ok",
		FieldDuration:  d.Milliseconds(),
	}
	if err != nil {
		m[FieldStatus] = "error"
		m[FieldError] = err.Error()
	}
	return m
}
