package chart

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidDataFormat is returned when the document is not a JSON array.
	ErrInvalidDataFormat = errors.New("Invalid data format")
	// ErrInvalidRowFormat is returned when any entry or row of the document doesn't
	// have the expected shape.
	ErrInvalidRowFormat = errors.New("Invalid row format")
)

// DecodeDocument decodes and validates a JSON chart document. A single malformed
// row fails the whole document.
func DecodeDocument(data []byte) ([]Entry, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrInvalidDataFormat
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, ErrInvalidDataFormat
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		e, ok := decodeEntry(item)
		if !ok {
			return nil, ErrInvalidRowFormat
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// ValidateDocument returns an error if the document is not a valid chart document.
func ValidateDocument(data []byte) error {
	_, err := DecodeDocument(data)
	return err
}

func decodeEntry(item any) (Entry, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return Entry{}, false
	}

	title, ok := obj["title"].(string)
	if !ok {
		return Entry{}, false
	}

	rows, ok := obj["data"].([]any)
	if !ok {
		return Entry{}, false
	}

	e := Entry{Title: title, Data: make([]DataPoint, 0, len(rows))}
	for i, row := range rows {
		dp, ok := decodeRow(row)
		if !ok {
			return Entry{}, false
		}

		// Mixed single and multi rows are not supported.
		if i > 0 && IsMultiPoint(dp) != IsMultiPoint(e.Data[0]) {
			return Entry{}, false
		}
		e.Data = append(e.Data, dp)
	}

	return e, true
}

func decodeRow(row any) (DataPoint, bool) {
	cols, ok := row.([]any)
	if !ok || len(cols) < 2 {
		return nil, false
	}

	ts, ok := cols[0].(float64)
	if !ok {
		return nil, false
	}

	switch v := cols[1].(type) {
	case nil:
		return SinglePoint{TS: ts, Value: Null()}, true
	case float64:
		return SinglePoint{TS: ts, Value: Value(v)}, true
	case []any:
		if len(v) < ChannelCount {
			return nil, false
		}
		mp := MultiPoint{TS: ts}
		for i := 0; i < ChannelCount; i++ {
			s, ok := decodeSample(v[i])
			if !ok {
				return nil, false
			}
			mp.Channels[i] = s
		}
		return mp, true
	}

	return nil, false
}

func decodeSample(v any) (Sample, bool) {
	switch vv := v.(type) {
	case nil:
		return Null(), true
	case float64:
		return Value(vv), true
	}
	return Sample{}, false
}

// MarshalJSON satisfies json.Marshaler.
func (s Sample) MarshalJSON() ([]byte, error) {
	if s.Missing {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

type jsonEntry struct {
	Title string `json:"title"`
	Data  []any  `json:"data"`
}

// MarshalJSON satisfies json.Marshaler, it uses the same tuple format the decoder accepts.
func (e Entry) MarshalJSON() ([]byte, error) {
	je := jsonEntry{Title: e.Title, Data: make([]any, 0, len(e.Data))}
	for _, dp := range e.Data {
		switch p := dp.(type) {
		case SinglePoint:
			je.Data = append(je.Data, []any{p.TS, p.Value})
		case MultiPoint:
			je.Data = append(je.Data, []any{p.TS, p.Channels[:]})
		default:
			return nil, fmt.Errorf("unknown data point type %T", dp)
		}
	}

	return json.Marshal(je)
}

// EncodeDocument encodes the entries as a JSON chart document.
func EncodeDocument(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("could not marshal chart document: %w", err)
	}

	return data, nil
}
