package handlers

// Shared helpers for socket event handlers. Events carry a single JSON
// object payload; missing or mistyped fields read as empty strings and the
// handlers answer with an error event instead of panicking.

func payload(args []interface{}) map[string]interface{} {
	if len(args) == 0 {
		return nil
	}
	m, _ := args[0].(map[string]interface{})
	return m
}

func payloadString(args []interface{}, key string) string {
	m := payload(args)
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}

func payloadBool(args []interface{}, key string) bool {
	m := payload(args)
	if m == nil {
		return false
	}
	v, _ := m[key].(bool)
	return v
}

func payloadInt(args []interface{}, key string) int {
	m := payload(args)
	if m == nil {
		return 0
	}
	// socket.io payloads decode numbers as float64
	v, _ := m[key].(float64)
	return int(v)
}
