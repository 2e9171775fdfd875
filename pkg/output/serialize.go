package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/ccollicutt/apacheaccess/pkg/parser"
)

// Serialize renders records as a JSON object keyed by the decimal index of
// each record. Every value is a JSON string holding that record's own JSON
// text, so consumers decode twice:
//
//	{"0": "{\"ip\": \"127.0.0.1\", ...}", "1": ...}
//
// The byte layout matches documents produced by earlier versions of the tool.
func Serialize(records []*parser.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, rec := range records {
		if i > 0 {
			buf.WriteString(", ")
		}

		inner, err := marshalCompat(rec)
		if err != nil {
			return nil, fmt.Errorf("encoding record %d: %w", i, err)
		}

		writeCompatString(&buf, strconv.Itoa(i))
		buf.WriteString(": ")
		writeCompatString(&buf, string(inner))
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
