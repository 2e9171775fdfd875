package output

import (
	"context"
	"io"

	"github.com/ccollicutt/apacheaccess/pkg/parser"
)

// JSONFormatter writes the index-keyed JSON document produced by Serialize.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// ContentType returns the MIME type.
func (f *JSONFormatter) ContentType() string {
	return "application/json"
}

// Format renders the records as JSON.
func (f *JSONFormatter) Format(ctx context.Context, records []*parser.Record, w io.Writer) error {
	data, err := Serialize(records)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}
