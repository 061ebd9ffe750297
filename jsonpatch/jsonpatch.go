// Package jsonpatch computes RFC6902-shaped diffs between an original
// record and its edited copy, for submission as partial updates. Diffs
// are transient per submit and never persisted.
package jsonpatch

// Op is an RFC6902 operation kind. Only the three kinds the platform
// accepts are emitted.
type Op string

const (
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpReplace Op = "replace"
)

// Operation is a single RFC6902 patch operation.
type Operation struct {
	Op    Op     `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}
