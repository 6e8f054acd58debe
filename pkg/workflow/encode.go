package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// MarshalASCII encodes v as a single-line JSON document with every
// non-ASCII character escaped as \uXXXX. The result document crosses
// console and transport boundaries whose encodings are not trustworthy,
// so the output byte stream stays pure ASCII. HTML characters are left
// unescaped.
func MarshalASCII(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	data := bytes.TrimRight(buf.Bytes(), "\n")
	return escapeNonASCII(data), nil
}

// escapeNonASCII rewrites every rune outside the printable ASCII range as
// a \uXXXX escape, using surrogate pairs beyond the basic plane. Control
// characters are already escaped by the JSON encoder.
func escapeNonASCII(data []byte) []byte {
	ascii := true
	for _, b := range data {
		if b >= 0x7F {
			ascii = false
			break
		}
	}
	if ascii {
		return data
	}

	var out bytes.Buffer
	out.Grow(len(data) + 16)

	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r < 0x7F {
			out.WriteByte(data[i])
			i++
			continue
		}

		if r > 0xFFFF {
			r -= 0x10000
			fmt.Fprintf(&out, `\u%04x\u%04x`, 0xD800+(r>>10), 0xDC00+(r&0x3FF))
		} else {
			fmt.Fprintf(&out, `\u%04x`, r)
		}
		i += size
	}

	return out.Bytes()
}
