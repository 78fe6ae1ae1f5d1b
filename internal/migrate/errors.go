package migrate

import (
	"errors"
	"fmt"
)

// ErrorClass is the error taxonomy spec.md §7 requires: every error the
// orchestrator surfaces belongs to exactly one of these classes.
type ErrorClass int

const (
	ClassMissingInput ErrorClass = iota
	ClassParse
	ClassValidate
	ClassResolve
	ClassIO
	ClassPolicy
)

func (c ErrorClass) String() string {
	switch c {
	case ClassMissingInput:
		return "missing-input"
	case ClassParse:
		return "parse"
	case ClassValidate:
		return "validate"
	case ClassResolve:
		return "resolve"
	case ClassIO:
		return "i/o"
	case ClassPolicy:
		return "policy"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with its taxonomy class, so a caller
// can branch on class (e.g. to pick an ExitCode) via errors.As.
type Error struct {
	Class ErrorClass
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Class, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func classify(class ErrorClass, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Class: class, Err: err}
}

// ExitCode enumerates the exit statuses spec.md §6 requires the CLI
// collaborator to expose: distinct codes for validation failure vs.
// I/O failure vs. missing inputs.
type ExitCode int

const (
	ExitOK ExitCode = iota
	ExitValidation
	ExitIO
	ExitMissingInput
	ExitInternal
)

// ExitCodeFor maps a migration error to the exit status its class
// implies. A nil error maps to ExitOK.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitOK
	}
	var me *Error
	if errors.As(err, &me) {
		switch me.Class {
		case ClassMissingInput:
			return ExitMissingInput
		case ClassValidate, ClassParse:
			return ExitValidation
		case ClassIO:
			return ExitIO
		case ClassPolicy:
			return ExitInternal
		}
	}
	return ExitInternal
}
