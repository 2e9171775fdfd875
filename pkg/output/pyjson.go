package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf16"
)

const hexDigits = "0123456789abcdef"

// marshalCompat encodes v the way Python's json.dumps does with default
// arguments: ", " and ": " separators, every character outside printable
// ASCII escaped as \uXXXX, and "/" left alone. Object keys keep the order
// encoding/json produces (struct field order).
func marshalCompat(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var buf bytes.Buffer
	if err := rewriteValue(dec, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rewriteValue(dec *json.Decoder, buf *bytes.Buffer) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			buf.WriteByte('{')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					buf.WriteString(", ")
				}
				key, err := dec.Token()
				if err != nil {
					return err
				}
				writeCompatString(buf, key.(string))
				buf.WriteString(": ")
				if err := rewriteValue(dec, buf); err != nil {
					return err
				}
			}
			buf.WriteByte('}')
		case '[':
			buf.WriteByte('[')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					buf.WriteString(", ")
				}
				if err := rewriteValue(dec, buf); err != nil {
					return err
				}
			}
			buf.WriteByte(']')
		default:
			return fmt.Errorf("unexpected delimiter %q", v)
		}
		// consume the closing delimiter
		if _, err := dec.Token(); err != nil && err != io.EOF {
			return err
		}
	case string:
		writeCompatString(buf, v)
	case json.Number:
		buf.WriteString(v.String())
	case bool:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %T", tok)
	}

	return nil
}

// writeCompatString writes s as an ASCII-only JSON string literal.
func writeCompatString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				buf.WriteRune(r)
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				writeUnicodeEscape(buf, hi)
				writeUnicodeEscape(buf, lo)
			default:
				writeUnicodeEscape(buf, r)
			}
		}
	}
	buf.WriteByte('"')
}

func writeUnicodeEscape(buf *bytes.Buffer, r rune) {
	buf.WriteString(`\u`)
	buf.WriteByte(hexDigits[(r>>12)&0xf])
	buf.WriteByte(hexDigits[(r>>8)&0xf])
	buf.WriteByte(hexDigits[(r>>4)&0xf])
	buf.WriteByte(hexDigits[r&0xf])
}
