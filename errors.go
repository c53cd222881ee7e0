package transpiler

import (
	"errors"
	"fmt"
	"strings"
)

// === Core Transpilation Errors (spec.md §7) ===
var (
	// ErrParse is returned when input is not valid JSON, or is not an
	// object at the schema position.
	ErrParse = errors.New("parse error")

	// ErrUnsupportedType is returned when a `type` value is not one of
	// the recognized JSON Schema primitive type strings.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidName is returned when Avro name mangling is handed an
	// empty field name.
	ErrInvalidName = errors.New("invalid name")

	// ErrIO is returned when the schema source cannot be read or the
	// synthesized output cannot be written.
	ErrIO = errors.New("io error")
)

// === Auxiliary-package I/O and serialization errors (SPEC_FULL.md §7) ===
// Reused sentinel names and shapes from the teacher's own errors.go, kept
// consistent across core and auxiliary packages.
var (
	// ErrNetworkFetch is returned when internal/sampledata cannot reach S3.
	ErrNetworkFetch = errors.New("network fetch failed")

	// ErrDataRead is returned when internal/sampledata cannot read a
	// downloaded object body.
	ErrDataRead = errors.New("data read failed")

	// ErrFileWrite is returned when internal/fsformat cannot write a
	// rewritten fixture file.
	ErrFileWrite = errors.New("file write failed")

	// ErrFileCreation is returned when internal/fsformat cannot create a
	// backup file.
	ErrFileCreation = errors.New("file creation failed")
)

// PathError wraps one of the sentinel errors above with the dot-joined
// schema path at which it occurred (spec §7: "all errors are reported with
// the failing schema path... to aid debugging").
type PathError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

// Unwrap allows errors.Is/errors.As to see through to the sentinel.
func (e *PathError) Unwrap() error {
	return e.Err
}

// atPath wraps err with the given path segments, dot-joined, unless err is
// already nil.
func atPath(err error, path []string) error {
	if err == nil {
		return nil
	}
	return &PathError{Path: strings.Join(path, "."), Err: err}
}
