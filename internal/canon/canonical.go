package canon

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// SerializationError reports a value that cannot be rendered as canonical
// JSON. Path locates the offending value using dotted keys and [i] indexes.
type SerializationError struct {
	Path    string
	Message string
}

func (e *SerializationError) Error() string {
	if e.Path == "" {
		return "canonical json: " + e.Message
	}
	return fmt.Sprintf("canonical json: %s: %s", e.Path, e.Message)
}

// MarshalCanonical produces RFC 8785 canonical JSON.
// This is the only serialization used for content hashing.
//
// Differences from json.Marshal:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping, U+2028 and U+2029 written literally
//  3. Strings and keys are NFC normalized
//  4. Numbers use ECMAScript formatting; integral floats print without a fraction
//  5. No insignificant whitespace
func MarshalCanonical(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, "", v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, path string, v Value) error {
	switch val := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case String:
		return writeString(buf, path, string(val))
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case Float:
		s, err := formatNumber(float64(val))
		if err != nil {
			return &SerializationError{Path: path, Message: err.Error()}
		}
		buf.WriteString(s)
	case Array:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, fmt.Sprintf("%s[%d]", path, i), elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		return writeObject(buf, path, val)
	default:
		return &SerializationError{Path: path, Message: fmt.Sprintf("unsupported value type %T", v)}
	}
	return nil
}

func writeObject(buf *bytes.Buffer, path string, obj Object) error {
	// NFC can fold two distinct keys into one; that would emit a duplicate.
	seen := make(map[string]string, len(obj))
	for _, k := range obj.SortedKeys() {
		nk := norm.NFC.String(k)
		if prev, ok := seen[nk]; ok {
			return &SerializationError{
				Path:    joinPath(path, k),
				Message: fmt.Sprintf("key collides with %q after NFC normalization", prev),
			}
		}
		seen[nk] = k
	}

	normalized := make(Object, len(obj))
	for k, v := range obj {
		normalized[norm.NFC.String(k)] = v
	}

	buf.WriteByte('{')
	for i, k := range normalized.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, path, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeCanonical(buf, joinPath(path, k), normalized[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

const hexDigits = "0123456789abcdef"

// writeString escapes only what RFC 8785 requires: quote, backslash and
// control characters below U+0020.
func writeString(buf *bytes.Buffer, path, s string) error {
	if !utf8.ValidString(s) {
		return &SerializationError{Path: path, Message: "string is not valid UTF-8"}
	}
	s = norm.NFC.String(s)

	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if c < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0xf])
				continue
			}
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
	return nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
