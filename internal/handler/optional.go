package handler

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Int64Number decodes both 2 and "2".
type Int64Number int64

func (n *Int64Number) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return err
		}
		*n = Int64Number(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = Int64Number(v)
	return nil
}

// Int64Ptr is nil for a field that was absent or null.
func Int64Ptr(n *Int64Number) *int64 {
	if n == nil {
		return nil
	}
	v := int64(*n)
	return &v
}

// OptionalInt64 tells an absent JSON field apart from an explicit null.
type OptionalInt64 struct {
	Set   bool
	Null  bool
	Value int64
}

func (o *OptionalInt64) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	var n Int64Number
	if err := n.UnmarshalJSON(b); err != nil {
		return err
	}
	o.Value = int64(n)
	return nil
}

// Ptr returns the value when one was sent, nil for absent or null.
func (o OptionalInt64) Ptr() *int64 {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
