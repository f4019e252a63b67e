// Package schederrors implements the error taxonomy from the design: a flat
// set of typed errors rather than an inheritance hierarchy, so every caller
// can type-switch on a concrete kind instead of walking a chain of wrapped
// causes. github.com/pkg/errors supplies stack-aware wrapping at the phase
// boundaries that surface these to callers.
package schederrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which bucket of the error taxonomy an error belongs to.
type Kind int

const (
	KindData Kind = iota
	KindConfiguration
	KindSolver
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindConfiguration:
		return "configuration"
	case KindSolver:
		return "solver"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Code names one specific error within its Kind, matching the conceptual
// names (these are names, not Go types).
type Code string

const (
	UnknownCourse    Code = "UnknownCourse"
	UnknownTeacher   Code = "UnknownTeacher"
	UnknownRoom      Code = "UnknownRoom"
	UnknownStudent   Code = "UnknownStudent"
	DuplicateID      Code = "DuplicateId"
	MalformedInput   Code = "MalformedInput"

	UnqualifiedTeacher Code = "UnqualifiedTeacher"
	TeacherOverload    Code = "TeacherOverload"
	NoFeasibleSlot     Code = "NoFeasibleSlot"
	NoFeasibleRoom     Code = "NoFeasibleRoom"

	SolverFailed  Code = "SolverFailed"
	SolverTimeout Code = "SolverTimeout"

	PartialResult Code = "PartialResult"
)

// SchedError is a typed, entity-scoped error carrying enough context to
// produce concise, actionable messages.
type SchedError struct {
	Kind   Kind
	Code   Code
	Entity string // the offending entity id, e.g. a course or section id
	Detail string // additional human-readable context
	cause  error
}

func (e *SchedError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s %q: %s", e.Kind, e.Code, e.Entity, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Code, e.Detail)
}

func (e *SchedError) Unwrap() error { return e.cause }

// New builds a SchedError and attaches a stack trace via pkg/errors so the
// orchestrator can log a trace without every phase importing it directly.
func New(kind Kind, code Code, entity, detail string) error {
	return errors.WithStack(&SchedError{Kind: kind, Code: code, Entity: entity, Detail: detail})
}

// Wrap attaches kind/code/entity context to an underlying error (e.g. a
// json.Unmarshal failure) while preserving it as the cause.
func Wrap(cause error, kind Kind, code Code, entity, detail string) error {
	return errors.WithStack(&SchedError{Kind: kind, Code: code, Entity: entity, Detail: detail, cause: cause})
}

// As reports whether err (or something it wraps) is a *SchedError, mirroring
// the std errors.As contract so callers can type-switch on Code.
func As(err error, target **SchedError) bool {
	return errors.As(err, target)
}

// IsCode reports whether err unwraps to a SchedError with the given code.
func IsCode(err error, code Code) bool {
	var se *SchedError
	if !As(err, &se) {
		return false
	}
	return se.Code == code
}

// ExitCode maps an error to the process exit codes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var se *SchedError
	if !As(err, &se) {
		return 1
	}
	switch se.Kind {
	case KindData:
		return 1
	case KindConfiguration:
		return 2
	case KindSolver:
		return 3
	case KindValidation:
		return 4
	default:
		return 1
	}
}
