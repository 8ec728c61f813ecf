package actiongroup

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnexpectedArguments marks arguments the group does not declare.
	ErrUnexpectedArguments = errors.New("unexpected arguments")
	// ErrMissingArguments matches both missing-argument kinds below.
	ErrMissingArguments = errors.New("missing arguments")
	// ErrArgumentMismatch marks declared arguments left without a value.
	ErrArgumentMismatch = errors.New("argument mismatch")
	// ErrNotEnoughArguments marks a call without any arguments against a
	// schema with required arguments.
	ErrNotEnoughArguments = errors.New("not enough arguments")
	// ErrUnresolvedReference marks a placeholder that could not be resolved.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrDuplicateStepKey marks two steps of one group sharing a key.
	ErrDuplicateStepKey = errors.New("duplicate step key")
)

// ArgumentError reports an argument binding failure for a group invocation.
type ArgumentError struct {
	Group      string
	Kind       error
	Missing    []string
	Unexpected []string
}

func (e *ArgumentError) Error() string {
	switch e.Kind {
	case ErrNotEnoughArguments:
		return fmt.Sprintf("not enough arguments given for action group %q: expected (%s)",
			e.Group, strings.Join(e.Missing, ", "))
	case ErrUnexpectedArguments:
		return fmt.Sprintf("unexpected argument(s) (%s) for action group %q",
			strings.Join(e.Unexpected, ", "), e.Group)
	default:
		msg := fmt.Sprintf("argument(s) missed (%s) for action group %q",
			strings.Join(e.Missing, ", "), e.Group)
		if len(e.Unexpected) > 0 {
			msg += fmt.Sprintf("; unexpected argument(s) (%s)", strings.Join(e.Unexpected, ", "))
		}
		return msg
	}
}

func (e *ArgumentError) Is(target error) bool {
	if target == e.Kind {
		return true
	}
	return target == ErrMissingArguments &&
		(e.Kind == ErrArgumentMismatch || e.Kind == ErrNotEnoughArguments)
}

// ReferenceError reports a placeholder that could not be resolved.
type ReferenceError struct {
	Group     string
	Step      string
	Attribute string
	Token     string
	Reason    string
	Cause     error
}

func (e *ReferenceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unable to resolve %q", e.Token)
	if e.Step != "" {
		fmt.Fprintf(&b, " in step %q", e.Step)
	}
	if e.Attribute != "" {
		fmt.Fprintf(&b, " attribute %q", e.Attribute)
	}
	if e.Group != "" {
		fmt.Fprintf(&b, " of action group %q", e.Group)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

func unresolved(token, reason string, cause error) *ReferenceError {
	return &ReferenceError{Token: token, Reason: reason, Cause: cause}
}
