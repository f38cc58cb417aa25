// Package jsonutil provides shared helpers for decoding API payloads.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// EpochMillis is a time carried on the wire as milliseconds since the Unix
// epoch. null, 0 and "" decode to the zero time; numeric strings are
// accepted too.
type EpochMillis time.Time

// Time returns the value as a time.Time.
func (e EpochMillis) Time() time.Time {
	return time.Time(e)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *EpochMillis) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*e = EpochMillis{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
		if len(data) == 0 {
			*e = EpochMillis{}
			return nil
		}
	}
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("epoch millis %q: %w", data, err)
	}
	if ms == 0 {
		*e = EpochMillis{}
		return nil
	}
	*e = EpochMillis(time.UnixMilli(ms))
	return nil
}

// MarshalJSON implements json.Marshaler. The zero time encodes as null.
func (e EpochMillis) MarshalJSON() ([]byte, error) {
	t := time.Time(e)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, t.UnixMilli(), 10), nil
}
