package logger

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldGroup     = "group"
	FieldOutcome   = "outcome"
	FieldState     = "state"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("group", "inventory", "outcome", "success"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for a failed operation.
func ErrorFields(group string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldGroup: group,
		FieldError: err.Error(),
	}
}
