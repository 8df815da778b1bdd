package premium

import "encoding/json"

// Raw returns a Value wrapping the given JSON literal.
func Raw(literal string) *Value {
	return &Value{raw: json.RawMessage(literal)}
}
