package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// truthy mirrors loose JSON truthiness: null, false, 0 and "" are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// text renders a scalar as text. Objects and lists are not text.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func list(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// topLevelKeys lists the keys of a JSON object in document order,
// or "Array" for a top-level list.
func topLevelKeys(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if tok == json.Delim('[') {
		return []string{"Array"}
	}
	if tok != json.Delim('{') {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}

// withTextIDs returns a shallow copy of node whose scalar "id" values, on the
// node and on each of its questions, are rendered as text. Backups written
// by other tools may carry numeric ids; they must survive decoding.
func withTextIDs(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for k, v := range node {
		out[k] = v
	}
	textID(out)
	if questions, ok := list(node["questions"]); ok {
		copied := make([]any, len(questions))
		for i, q := range questions {
			if obj := object(q); obj != nil {
				c := make(map[string]any, len(obj))
				for k, v := range obj {
					c[k] = v
				}
				textID(c)
				copied[i] = c
				continue
			}
			copied[i] = q
		}
		out["questions"] = copied
	}
	return out
}

func textID(obj map[string]any) {
	switch v := obj["id"].(type) {
	case float64, bool:
		obj["id"] = text(v)
	}
}

// decodeLenient fills dst from obj. Values that do not fit their field type
// are dropped instead of failing the whole entity.
func decodeLenient(obj map[string]any, dst any) error {
	raw, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(raw, dst); err != nil && !errors.As(err, &typeErr) {
		return err
	}
	return nil
}
