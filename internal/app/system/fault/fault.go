// Package fault defines the error taxonomy shared by the stores and the
// HTTP layer.
//
// Every store operation resolves to one of four outcomes besides success:
//
//   - Invalid: the caller supplied missing or malformed input. Not retried.
//   - NotFound: a referenced entity (member or message) does not exist.
//   - Conflict: a business rule was violated (e.g. a second reply). Not
//     retried.
//   - Transient: the store transaction could not be committed within the
//     retry bound. The whole operation is safe to retry from the caller.
//
// Faults wrap the underlying store error where one exists, so errors.Is and
// errors.As keep working through the taxonomy.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a fault per the taxonomy above.
type Kind int

const (
	// KindInvalid marks missing or malformed caller input.
	KindInvalid Kind = iota + 1
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound
	// KindConflict marks a business-rule violation.
	KindConflict
	// KindTransient marks an exhausted-retry store failure.
	KindTransient
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Fault is a classified error. Entity names the record the fault is about
// ("member", "message") when that matters for rendering; it is empty for
// input-validation and transient faults.
type Fault struct {
	Kind   Kind
	Entity string
	Msg    string
	Err    error // wrapped cause, may be nil
}

func (f *Fault) Error() string {
	if f.Entity != "" {
		return fmt.Sprintf("%s (%s): %s", f.Kind, f.Entity, f.Msg)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Msg)
}

func (f *Fault) Unwrap() error { return f.Err }

// Invalid reports missing or malformed input.
func Invalid(msg string) error {
	return &Fault{Kind: KindInvalid, Msg: msg}
}

// NotFound reports that the named entity does not exist.
func NotFound(entity, msg string) error {
	return &Fault{Kind: KindNotFound, Entity: entity, Msg: msg}
}

// Conflict reports a business-rule violation on the named entity.
func Conflict(entity, msg string) error {
	return &Fault{Kind: KindConflict, Entity: entity, Msg: msg}
}

// Transient wraps an exhausted-retry store failure.
func Transient(msg string, err error) error {
	return &Fault{Kind: KindTransient, Msg: msg, Err: err}
}

// Wrap attaches a kind and entity to an underlying store error.
func Wrap(kind Kind, entity, msg string, err error) error {
	return &Fault{Kind: kind, Entity: entity, Msg: msg, Err: err}
}

// KindOf returns the fault kind of err, or 0 when err is not a Fault.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}

// EntityOf returns the entity of err, or "" when err is not a Fault.
func EntityOf(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return f.Entity
	}
	return ""
}

// IsKind reports whether err is a Fault of the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
