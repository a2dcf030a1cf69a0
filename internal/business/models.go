package business

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nexoventlabs/business-tracker/pkg/apperr"
)

// Field names the service reads or writes. Every other field is opaque.
const (
	FieldID         = "id"
	FieldCreatedAt  = "createdAt"
	FieldInternalID = "_id"
)

// TimestampLayout is ISO-8601 in UTC with microsecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Record is a loosely-typed business document. Keys are field names; values are
// whatever the client sent (JSON integers arrive as int64).
type Record map[string]any

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// WithoutInternalID returns a copy of r without the store's internal identifier.
func (r Record) WithoutInternalID() Record {
	out := r.Clone()
	delete(out, FieldInternalID)
	return out
}

// FormatTimestamp renders t as the createdAt value stored for new records.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseID converts the business_id path parameter to the integer stored in "id".
func ParseID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.KindMalformedInput, fmt.Sprintf("invalid business_id %q: must be an integer", raw))
	}
	return n, nil
}
