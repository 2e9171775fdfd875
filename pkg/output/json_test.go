package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/apacheaccess/pkg/parser"
)

func strPtr(s string) *string { return &s }

func exampleRecord() *parser.Record {
	return &parser.Record{
		ClientAddress:     "127.0.0.1",
		IdentityUser:      "-",
		AuthenticatedUser: "frank",
		Timestamp:         1696946136,
		Method:            "GET",
		Path:              "/apache_pb.gif",
		Protocol:          "HTTP/1.0",
		StatusCode:        "200",
		ResponseSize:      "2326",
		Referer:           strPtr("http://example.com/"),
		UserAgent:         strPtr("Mozilla/5.0"),
	}
}

func TestSerialize_MatchesReferenceBytes(t *testing.T) {
	got, err := Serialize([]*parser.Record{exampleRecord()})
	require.NoError(t, err)

	want := `{"0": "{\"ip\": \"127.0.0.1\", \"identd\": \"-\", \"userid\": \"frank\", \"time\": 1696946136, \"method\": \"GET\", \"path\": \"/apache_pb.gif\", \"protocol\": \"HTTP/1.0\", \"status\": \"200\", \"size\": \"2326\", \"referer\": \"http://example.com/\", \"agent\": \"Mozilla/5.0\"}"}`
	assert.Equal(t, want, string(got))
}

func TestSerialize_CommonRecordEscaping(t *testing.T) {
	rec := &parser.Record{
		ClientAddress:     "10.0.0.1",
		IdentityUser:      "-",
		AuthenticatedUser: "-",
		Method:            "GET",
		Path:              "/café?q=<a>&b",
		Protocol:          "HTTP/1.1",
		StatusCode:        "404",
		ResponseSize:      "-",
	}

	got, err := Serialize([]*parser.Record{rec})
	require.NoError(t, err)

	want := `{"0": "{\"ip\": \"10.0.0.1\", \"identd\": \"-\", \"userid\": \"-\", \"time\": 0, \"method\": \"GET\", \"path\": \"/caf\\u00e9?q=<a>&b\", \"protocol\": \"HTTP/1.1\", \"status\": \"404\", \"size\": \"-\", \"referer\": null, \"agent\": null}"}`
	assert.Equal(t, want, string(got))
}

func TestSerialize_Empty(t *testing.T) {
	got, err := Serialize(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}

func TestSerialize_IndexKeysInOrder(t *testing.T) {
	var records []*parser.Record
	for i := 0; i < 12; i++ {
		rec := exampleRecord()
		rec.Path = "/" + strconv.Itoa(i)
		records = append(records, rec)
	}

	data, err := Serialize(records)
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	for i := 0; dec.More(); i++ {
		key, err := dec.Token()
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(i), key)

		var inner string
		require.NoError(t, dec.Decode(&inner))

		var rec parser.Record
		require.NoError(t, json.Unmarshal([]byte(inner), &rec))
		assert.Equal(t, "/"+strconv.Itoa(i), rec.Path)
		assert.Equal(t, "Mozilla/5.0", *rec.UserAgent)
	}
}

func TestWriteCompatString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`quote " and \ slash /`, `"quote \" and \\ slash /"`},
		{"tab\tnew\nline\r", `"tab\tnew\nline\r"`},
		{"\x01\x7f", `"\u0001\u007f"`},
		{"é", `"\u00e9"`},
		{"😀", `"\ud83d\ude00"`},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		writeCompatString(&buf, tt.in)
		assert.Equal(t, tt.want, buf.String(), "input %q", tt.in)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter()
	assert.Equal(t, "json", f.Name())
	assert.Equal(t, "application/json", f.ContentType())

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), []*parser.Record{exampleRecord()}, &buf))

	want, err := Serialize([]*parser.Record{exampleRecord()})
	require.NoError(t, err)
	assert.Equal(t, want, buf.Bytes())
}

func TestJSONFormatter_Format_Empty(t *testing.T) {
	f := NewJSONFormatter()

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), nil, &buf))
	assert.Equal(t, "{}", buf.String())
}
