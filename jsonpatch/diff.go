package jsonpatch

import (
	"reflect"
	"sort"
	"strings"
)

// Diff compares an edited flat record against its original snapshot and
// returns the minimal add/remove/replace operations reaching the edited
// state. Normalization before comparison:
//   - nil and empty-string values count as absent
//   - string values are trimmed
//   - boolean values compare by coercion
//
// Field-wise equal records produce zero operations; callers are expected
// to short-circuit and skip the network call.
func Diff(original, edited map[string]any) []Operation {
	keys := unionKeys(original, edited)

	var ops []Operation
	for _, key := range keys {
		origVal, origPresent := normalize(original[key])
		editVal, editPresent := normalize(edited[key])

		switch {
		case !origPresent && !editPresent:
			continue
		case !origPresent && editPresent:
			ops = append(ops, Operation{Op: OpAdd, Path: "/" + key, Value: editVal})
		case origPresent && !editPresent:
			ops = append(ops, Operation{Op: OpRemove, Path: "/" + key})
		case !equal(origVal, editVal):
			ops = append(ops, Operation{Op: OpReplace, Path: "/" + key, Value: editVal})
		}
	}
	return ops
}

// RoleChanges expresses a role-set difference as individual add/remove
// operations per role, never a single replace. Removals come first, in
// the order the roles appear in the original mapping, so deselecting an
// account emits one remove per previously-assigned role.
func RoleChanges(original, edited []string, basePath string) []Operation {
	origSet := toSet(original)
	editSet := toSet(edited)

	var ops []Operation
	for _, role := range original {
		if _, kept := editSet[role]; !kept {
			ops = append(ops, Operation{Op: OpRemove, Path: basePath + "/" + role})
		}
	}
	for _, role := range edited {
		if _, had := origSet[role]; !had {
			ops = append(ops, Operation{Op: OpAdd, Path: basePath + "/-", Value: role})
		}
	}
	return ops
}

// normalize maps a field value to its comparable form. The second return
// reports presence: nil, empty, and whitespace-only strings are absent.
func normalize(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil, false
		}
		return trimmed, true
	case []string:
		if len(val) == 0 {
			return nil, false
		}
		normalized := make([]any, 0, len(val))
		for _, item := range val {
			normalized = append(normalized, strings.TrimSpace(item))
		}
		return normalized, true
	case []any:
		if len(val) == 0 {
			return nil, false
		}
		normalized := make([]any, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				normalized = append(normalized, strings.TrimSpace(s))
				continue
			}
			normalized = append(normalized, item)
		}
		return normalized, true
	default:
		return val, true
	}
}

func equal(a, b any) bool {
	// Booleans compare by coercion so "true" and true match.
	aBool, aIsBool := coerceBool(a)
	bBool, bIsBool := coerceBool(b)
	if aIsBool && bIsBool {
		return aBool == bBool
	}
	return reflect.DeepEqual(a, b)
}

func coerceBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		switch strings.ToLower(val) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func unionKeys(a, b map[string]any) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	for k := range b {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
