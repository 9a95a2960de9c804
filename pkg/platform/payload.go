package platform

import "encoding/json"

// payload is a native message body decoded into a JSON object.
type payload map[string]any

// asPayload returns v as a payload, or nil when v is not an object.
func asPayload(v any) payload {
	m, _ := v.(map[string]any)
	return m
}

func (p payload) num(key string) (float64, bool) {
	return number(p[key])
}

func (p payload) id(key string) (int64, bool) {
	return integer(p[key])
}

// flag accepts true and "true".
func (p payload) flag(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

func (p payload) text(key string) string {
	s, _ := p[key].(string)
	return s
}

// number converts the numeric forms a decoded message can hold. The codec
// produces json.Number; values built in Go carry native numbers.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func integer(v any) (int64, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}
	f, ok := number(v)
	return int64(f), ok
}
