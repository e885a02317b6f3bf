package processing

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/jusunglee/trainstats/internal/models"
)

// Field numbers of the canonical connection encoding
const (
	fieldName      protowire.Number = 1
	fieldType      protowire.Number = 2
	fieldLine      protowire.Number = 3
	fieldOperator  protowire.Number = 4
	fieldStop      protowire.Number = 5
	fieldStation   protowire.Number = 1
	fieldScheduled protowire.Number = 2
	fieldActual    protowire.Number = 3
	fieldKind      protowire.Number = 4
	fieldSeconds   protowire.Number = 1
	fieldNanos     protowire.Number = 2
)

// Fingerprint returns a canonical key for a connection. Two connections have
// the same fingerprint exactly when TrainConnection.Equal reports them equal.
//
// Every attribute is always written, including empty strings, and each stop
// is encoded as a nested message so that stop boundaries are unambiguous.
// Timestamps are encoded as nested Unix seconds and nanoseconds messages,
// which compares instants over the whole range of time.Time.
func Fingerprint(c models.TrainConnection) string {
	b := make([]byte, 0, 64+len(c.Stops)*32)
	b = appendString(b, fieldName, c.Name)
	b = appendString(b, fieldType, c.Type)
	b = appendString(b, fieldLine, c.Line)
	b = appendString(b, fieldOperator, c.Operator)

	var stop []byte
	for _, s := range c.Stops {
		stop = stop[:0]
		stop = appendString(stop, fieldStation, string(s.Station))
		stop = appendTime(stop, fieldScheduled, s.Scheduled)
		stop = appendTime(stop, fieldActual, s.Actual)
		stop = appendInt(stop, fieldKind, int64(s.Kind))

		b = protowire.AppendTag(b, fieldStop, protowire.BytesType)
		b = protowire.AppendBytes(b, stop)
	}
	return string(b)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendInt(b []byte, num protowire.Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(v))
}

func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	var ts []byte
	ts = appendInt(ts, fieldSeconds, t.Unix())
	ts = appendInt(ts, fieldNanos, int64(t.Nanosecond()))
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, ts)
}
