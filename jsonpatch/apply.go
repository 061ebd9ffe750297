package jsonpatch

import (
	"encoding/json"
	"strconv"
	"strings"

	evanpatch "github.com/evanphx/json-patch/v5"
	"github.com/pkg/errors"
)

// Apply runs the operations against a JSON document and returns the
// patched document. Services use it to update the held original when
// the platform acknowledges a partial update without echoing the stored
// entity. Operations apply one at a time: remove paths keyed by element
// value (the role-ops form, e.g. /roles/ADMIN) are resolved to
// index-based pointers against the current document before each apply,
// so later removes see the shifted indices.
func Apply(doc []byte, ops []Operation) ([]byte, error) {
	if len(ops) == 0 {
		return doc, nil
	}

	current := doc
	for _, op := range ops {
		resolved, err := resolveRemove(current, op)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal([]Operation{resolved})
		if err != nil {
			return nil, errors.Wrap(err, "[Apply] marshal operation")
		}
		patch, err := evanpatch.DecodePatch(raw)
		if err != nil {
			return nil, errors.Wrap(err, "[Apply] decode patch")
		}
		current, err = patch.Apply(current)
		if err != nil {
			return nil, errors.Wrapf(err, "[Apply] %s %s", op.Op, op.Path)
		}
	}
	return current, nil
}

// resolveRemove rewrites a remove whose final segment names an array
// element by value into an index-based RFC6901 pointer. Removes that
// already point at an object member or a numeric index pass through.
func resolveRemove(doc []byte, op Operation) (Operation, error) {
	if op.Op != OpRemove {
		return op, nil
	}
	segments := strings.Split(op.Path, "/")[1:]
	if len(segments) == 0 {
		return op, nil
	}
	last := unescapePointer(segments[len(segments)-1])
	if _, err := strconv.Atoi(last); err == nil {
		return op, nil
	}

	var root any
	if err := json.Unmarshal(doc, &root); err != nil {
		return Operation{}, errors.Wrap(err, "[Apply] decode document")
	}

	parent := root
	for _, seg := range segments[:len(segments)-1] {
		switch node := parent.(type) {
		case map[string]any:
			parent = node[unescapePointer(seg)]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return op, nil
			}
			parent = node[i]
		default:
			return op, nil
		}
	}

	array, ok := parent.([]any)
	if !ok {
		// Object member removal; the pointer is already valid.
		return op, nil
	}
	for i, item := range array {
		if s, ok := item.(string); ok && s == last {
			segments[len(segments)-1] = strconv.Itoa(i)
			return Operation{Op: OpRemove, Path: "/" + strings.Join(segments, "/")}, nil
		}
	}
	return Operation{}, errors.Errorf("[Apply] no element %q at %s", last, op.Path)
}

func unescapePointer(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}
