package structured

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/titanous/json5"
)

// DecodeJSON parses a JSON (or JSON5) payload. Objects become mappings with
// their keys in sorted order, arrays become sequences and every other value
// becomes a scalar of its textual form (null becomes "").
func DecodeJSON(body []byte) (*Node, error) {
	var value any
	err := json5.Unmarshal(body, &value)
	if err != nil {
		return nil, &ParseError{Format: "json", Err: err}
	}
	if _, ok := value.(map[string]any); !ok {
		return nil, &ParseError{Format: "json", Err: fmt.Errorf("top level value is not an object")}
	}
	return convertJSON(value), nil
}

func convertJSON(value any) *Node {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		out := NewMapping()
		for _, k := range keys {
			out.Set(k, convertJSON(v[k]))
		}
		return out
	case []any:
		items := make([]*Node, len(v))
		for i, item := range v {
			items[i] = convertJSON(item)
		}
		return NewSequence(items...)
	case string:
		return NewScalar(v)
	case float64:
		return NewScalar(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		return NewScalar(strconv.FormatBool(v))
	case nil:
		return NewScalar("")
	}
	return NewScalar(fmt.Sprint(value))
}
