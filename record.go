package spindle

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/osenoh/spindle/packer"
)

const (
	// rfc3339Milli is like time.RFC3339Nano, but with millisecond precision
	rfc3339Milli = "2006-01-02T15:04:05.000Z07:00"
)

// RequestRecord is one access-log entry: what was asked for, what was
// answered and how long a worker held the connection.
type RequestRecord struct {
	Id         string `msgpack:"id" db:"id"`
	Method     string `msgpack:"method" db:"method"`
	Path       string `msgpack:"path" db:"path"`
	Status     int    `msgpack:"status" db:"status"`
	DurationMs int64  `msgpack:"duration_ms" db:"duration_ms"`
	CreatedAt  string `msgpack:"created_at" db:"created_at"`
}

func NewRequestRecord(req *Request, resp *Response, took time.Duration) *RequestRecord {
	return &RequestRecord{
		Id:         ulid.Make().String(),
		Method:     req.Method,
		Path:       req.Path,
		Status:     resp.StatusCode,
		DurationMs: took.Milliseconds(),
		CreatedAt:  time.Now().Format(rfc3339Milli),
	}
}

func (r *RequestRecord) Marshal() ([]byte, error) {
	return packer.EncodeMessage(r)
}

func (r *RequestRecord) Unmarshal(raw []byte) error {
	return packer.DecodeMessage(raw, r)
}

// CreatedTime parses the record's creation timestamp.
func (r *RequestRecord) CreatedTime() time.Time {
	t, err := time.Parse(rfc3339Milli, r.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
