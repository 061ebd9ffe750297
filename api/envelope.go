package api

import (
	"encoding/json"

	"github.com/pkg/errors"

	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
)

// envelope is the response wrapper most platform endpoints use. Some
// endpoints return the object bare, so every field is optional.
type envelope struct {
	Results []json.RawMessage `json:"results,omitempty"`
	Data    json.RawMessage   `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Extractor pulls the payload out of a response body. It reports false
// when the body does not match its shape, letting the next extractor try.
type Extractor func(body []byte) (json.RawMessage, bool)

// FirstResult extracts results[0] from an enveloped response.
func FirstResult(body []byte) (json.RawMessage, bool) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, false
	}
	if len(env.Results) == 0 {
		return nil, false
	}
	return env.Results[0], true
}

// DataField extracts the data field from an enveloped response.
func DataField(body []byte) (json.RawMessage, bool) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, false
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, false
	}
	return env.Data, true
}

// RawObject accepts the body as-is when it is a JSON object.
func RawObject(body []byte) (json.RawMessage, bool) {
	trimmed := trimLeadingSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	return trimmed, true
}

// Unwrap decodes a platform response into T. Extractors are tried in
// order; with none given the default chain is results[0], then data,
// then the raw object. ErrNoResult is returned when nothing matches.
func Unwrap[T any](body []byte, extractors ...Extractor) (T, error) {
	var result T
	if len(extractors) == 0 {
		extractors = []Extractor{FirstResult, DataField, RawObject}
	}
	for _, extract := range extractors {
		raw, ok := extract(body)
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &result); err != nil {
			return result, errors.Wrap(err, "[Unwrap] decode payload")
		}
		return result, nil
	}
	return result, consoleerrors.ErrNoResult
}

// UnwrapList decodes a list response: the results array when enveloped,
// otherwise the body itself as a JSON array. An empty list is not an
// error.
func UnwrapList[T any](body []byte) ([]T, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Results != nil {
		items := make([]T, 0, len(env.Results))
		for _, raw := range env.Results {
			var item T
			if err := json.Unmarshal(raw, &item); err != nil {
				return nil, errors.Wrap(err, "[UnwrapList] decode item")
			}
			items = append(items, item)
		}
		return items, nil
	}

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, errors.Wrap(err, "[UnwrapList] decode array")
	}
	return items, nil
}

func trimLeadingSpace(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t' || b[0] == '\n' || b[0] == '\r') {
		b = b[1:]
	}
	return b
}
