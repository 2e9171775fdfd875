// Package parser decodes Apache HTTP Server access log lines (Common and
// Combined Log Format) into records.
package parser

// Record is one parsed access log entry.
//
// Referer and UserAgent are both set for Combined Log Format lines and both
// nil for Common Log Format lines. Nil is distinct from an empty string.
type Record struct {
	// ClientAddress is the remote host (IP or hostname).
	ClientAddress string `json:"ip" msgpack:"ip"`

	// IdentityUser is the RFC 1413 identity, "-" if absent.
	IdentityUser string `json:"identd" msgpack:"identd"`

	// AuthenticatedUser is the HTTP auth user, "-" if absent.
	AuthenticatedUser string `json:"userid" msgpack:"userid"`

	// Timestamp is the request time in Unix epoch seconds.
	Timestamp int64 `json:"time" msgpack:"time"`

	Method   string `json:"method" msgpack:"method"`
	Path     string `json:"path" msgpack:"path"`
	Protocol string `json:"protocol" msgpack:"protocol"`

	// StatusCode and ResponseSize are kept verbatim; size may be "-".
	StatusCode   string `json:"status" msgpack:"status"`
	ResponseSize string `json:"size" msgpack:"size"`

	Referer   *string `json:"referer" msgpack:"referer"`
	UserAgent *string `json:"agent" msgpack:"agent"`
}

// IsCombined reports whether the record carries Combined Log Format fields.
func (r *Record) IsCombined() bool {
	return r.Referer != nil && r.UserAgent != nil
}

// Diagnostic describes a line that could not be parsed.
type Diagnostic struct {
	// Line is the running count of lines handled without error before this
	// one, blank lines included. This is the number printed in
	// "Syntax error in line N" messages.
	Line int

	// Physical is the 1-based line number in the input text.
	Physical int

	// Err is the underlying *ParseError.
	Err error
}

// Result is the outcome of parsing a whole log.
type Result struct {
	// Records holds the successfully parsed lines in input order.
	Records []*Record

	// Diagnostics holds one entry per line that failed to parse.
	Diagnostics []Diagnostic
}
