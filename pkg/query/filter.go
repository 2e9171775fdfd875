// Package query selects access log records with JMESPath expressions.
package query

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/jmespath/go-jmespath"

	"github.com/ccollicutt/apacheaccess/pkg/parser"
)

// Filter keeps records for which a JMESPath expression is truthy. The
// expression sees each record as its JSON object, e.g.
//
//	status == '404' && agent != null
type Filter struct {
	expr     string
	compiled *jmespath.JMESPath
}

// Compile validates expr and returns a Filter. An empty expression yields a
// filter that keeps every record.
func Compile(expr string) (*Filter, error) {
	f := &Filter{expr: expr}
	if expr == "" {
		return f, nil
	}

	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expr, err)
	}
	f.compiled = compiled
	return f, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expr
}

// Match reports whether rec satisfies the expression.
func (f *Filter) Match(rec *parser.Record) (bool, error) {
	if f.compiled == nil {
		return true, nil
	}

	input, err := toDocument(rec)
	if err != nil {
		return false, err
	}

	res, err := f.compiled.Search(input)
	if err != nil {
		return false, fmt.Errorf("jmespath search failed: %w", err)
	}
	return truthy(res), nil
}

// Apply returns the matching records in their original order.
func (f *Filter) Apply(records []*parser.Record) ([]*parser.Record, error) {
	if f.compiled == nil {
		return records, nil
	}

	kept := make([]*parser.Record, 0, len(records))
	for i, rec := range records {
		ok, err := f.Match(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if ok {
			kept = append(kept, rec)
		}
	}
	return kept, nil
}

// toDocument converts a record into the generic map form JMESPath works on.
func toDocument(rec *parser.Record) (map[string]any, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record failed: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode record failed: %w", err)
	}
	return doc, nil
}

// truthy follows JMESPath truth rules: false, null, and empty strings,
// arrays and objects are false.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	}
	return true
}
