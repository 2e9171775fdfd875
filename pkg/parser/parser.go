package parser

import (
	"strings"
)

// minTokens is the number of space-separated tokens needed to reach the
// response size field.
const minTokens = 10

// Parser decodes access log lines.
type Parser struct {
	signedOffsets bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithSignedOffsets makes a "-HHMM" offset shift the timestamp the other
// way. By default the sign is ignored and every offset is read as positive.
func WithSignedOffsets(signed bool) Option {
	return func(p *Parser) {
		p.signedOffsets = signed
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// ParseLine decodes a single line with the default options.
func ParseLine(line string) (*Record, error) {
	return defaultParser.ParseLine(line)
}

// ParseLog decodes a whole log with the default options.
func ParseLog(text string) *Result {
	return defaultParser.ParseLog(text)
}

// ParseLine decodes one access log line. The returned error is always a
// *ParseError. A line without referer and user agent fields is not an error;
// it decodes as a Common Log Format record.
func (p *Parser) ParseLine(line string) (*Record, error) {
	tokens := strings.Split(line, " ")
	if len(tokens) < minTokens {
		return nil, parseErrorf("expected at least %d fields, got %d", minTokens, len(tokens))
	}

	ts, err := parseTimestamp(tokens[3], tokens[4], p.signedOffsets)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		ClientAddress:     tokens[0],
		IdentityUser:      tokens[1],
		AuthenticatedUser: tokens[2],
		Timestamp:         ts,
		Method:            dropFirst(tokens[5]),
		Path:              tokens[6],
		Protocol:          dropLast(tokens[7]),
		StatusCode:        tokens[8],
		ResponseSize:      tokens[9],
	}

	if referer, agent, ok := extractCombinedFields(line, tokens); ok {
		rec.Referer = &referer
		rec.UserAgent = &agent
	}

	return rec, nil
}

// ParseLog splits text on newlines and parses every non-blank line, trimmed
// of surrounding whitespace. Lines that fail are reported as diagnostics and
// skipped; ParseLog itself never fails.
func (p *Parser) ParseLog(text string) *Result {
	result := &Result{}

	// line counts blank and successful lines only, so a failure does not
	// advance the number reported for the next failure.
	line := 0
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			rec, err := p.ParseLine(trimmed)
			if err != nil {
				result.Diagnostics = append(result.Diagnostics, Diagnostic{
					Line:     line,
					Physical: i + 1,
					Err:      err,
				})
				continue
			}
			result.Records = append(result.Records, rec)
		}
		line++
	}

	return result
}

// extractCombinedFields returns the referer and user agent of a Combined Log
// Format line. ok is false when the line does not carry them.
func extractCombinedFields(line string, tokens []string) (referer, agent string, ok bool) {
	if len(tokens) <= minTokens {
		return "", "", false
	}

	segments := strings.Split(line, `"`)
	if len(segments) < 2 {
		return "", "", false
	}

	return trimEnds(tokens[minTokens]), segments[len(segments)-2], true
}

func dropFirst(s string) string {
	if s == "" {
		return s
	}
	return s[1:]
}

func dropLast(s string) string {
	if s == "" {
		return s
	}
	return s[:len(s)-1]
}

// trimEnds drops the first and last characters, yielding "" for anything
// shorter than two.
func trimEnds(s string) string {
	if len(s) < 2 {
		return ""
	}
	return s[1 : len(s)-1]
}
