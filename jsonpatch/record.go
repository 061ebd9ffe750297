package jsonpatch

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Record flattens a struct into the map form Diff compares. Fields pass
// through the struct's JSON tags, so the emitted paths match what the
// platform expects.
func Record(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "[Record] marshal")
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "[Record] unmarshal")
	}
	return record, nil
}

// ApplyRecord applies the operations to a struct's JSON form and
// decodes the result into out. Services use it when the platform
// acknowledges a partial update with an empty body.
func ApplyRecord(original any, ops []Operation, out any) error {
	doc, err := json.Marshal(original)
	if err != nil {
		return errors.Wrap(err, "[ApplyRecord] marshal")
	}
	patched, err := Apply(doc, ops)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(patched, out); err != nil {
		return errors.Wrap(err, "[ApplyRecord] unmarshal")
	}
	return nil
}

// DiffRecords is Diff over two structs: the edited record against its
// original snapshot. Zero operations means nothing changed and the
// caller should skip the network call.
func DiffRecords(original, edited any) ([]Operation, error) {
	origRecord, err := Record(original)
	if err != nil {
		return nil, err
	}
	editRecord, err := Record(edited)
	if err != nil {
		return nil, err
	}
	return Diff(origRecord, editRecord), nil
}
