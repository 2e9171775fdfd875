package output

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ccollicutt/apacheaccess/pkg/parser"
)

// MsgpackFormatter writes a msgpack map from decimal index to record. Unlike
// the JSON document, records are encoded once, as maps.
type MsgpackFormatter struct{}

// NewMsgpackFormatter creates a new msgpack formatter.
func NewMsgpackFormatter() *MsgpackFormatter {
	return &MsgpackFormatter{}
}

// Name returns the format name.
func (f *MsgpackFormatter) Name() string {
	return "msgpack"
}

// ContentType returns the MIME type.
func (f *MsgpackFormatter) ContentType() string {
	return "application/msgpack"
}

// Format renders the records as msgpack.
func (f *MsgpackFormatter) Format(ctx context.Context, records []*parser.Record, w io.Writer) error {
	enc := msgpack.NewEncoder(w)

	if err := enc.EncodeMapLen(len(records)); err != nil {
		return err
	}
	for i, rec := range records {
		if err := enc.EncodeString(strconv.Itoa(i)); err != nil {
			return err
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
	}

	return nil
}
