// Package output renders parsed access log records.
package output

import (
	"context"
	"io"

	"github.com/ccollicutt/apacheaccess/pkg/parser"
)

// Formatter renders records in a specific encoding. Documents carry no
// trailing newline; callers printing to a terminal add one.
type Formatter interface {
	// Format renders the records to the given writer.
	Format(ctx context.Context, records []*parser.Record, w io.Writer) error

	// Name returns the format name (json, msgpack).
	Name() string

	// ContentType returns the MIME type of the rendered document.
	ContentType() string
}
