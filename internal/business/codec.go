package business

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/nexoventlabs/business-tracker/pkg/apperr"
)

// DecodeRecord reads a single JSON object from r. Integral numbers become int64 so
// that {"id": 1} is stored and matched as an integer; other numbers become float64.
func DecodeRecord(r io.Reader) (Record, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindMalformedInput, "read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperr.New(apperr.KindMalformedInput, "request body is empty")
	}
	if !utf8.Valid(body) {
		return nil, apperr.New(apperr.KindMalformedInput, "request body is not valid UTF-8")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, apperr.Wrap(err, apperr.KindMalformedInput, "request body is not valid JSON")
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, apperr.New(apperr.KindMalformedInput, "request body must contain a single JSON object")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, apperr.New(apperr.KindMalformedInput, "request body must be a JSON object")
	}
	return Record(normalize(obj).(map[string]any)), nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	return v
}
