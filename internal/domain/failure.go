package domain

import (
	"errors"
	"fmt"
)

type FailureKind string

const (
	KindNotFound         FailureKind = "not_found"
	KindAccessDenied     FailureKind = "access_denied"
	KindUnavailable      FailureKind = "unavailable"
	KindNetwork          FailureKind = "network"
	KindInvalidRelation  FailureKind = "invalid_relation"
	KindInvalidReference FailureKind = "invalid_reference"
)

// Failure is the typed error surface of the engine. It crosses every layer
// unchanged; the HTTP layer maps Kind to a status at the very edge.
type Failure struct {
	Kind FailureKind
	Op   string
	Msg  string
	Err  error
}

func (f *Failure) Error() string {
	if f == nil {
		return "failure"
	}
	switch {
	case f.Msg != "" && f.Err != nil:
		return fmt.Sprintf("%s: %s (kind=%s): %v", f.Op, f.Msg, f.Kind, f.Err)
	case f.Msg != "":
		return fmt.Sprintf("%s: %s (kind=%s)", f.Op, f.Msg, f.Kind)
	case f.Err != nil:
		return fmt.Sprintf("%s (kind=%s): %v", f.Op, f.Kind, f.Err)
	default:
		return fmt.Sprintf("%s (kind=%s)", f.Op, f.Kind)
	}
}

func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Err
}

func NewFailure(kind FailureKind, op, msg string, cause error) *Failure {
	return &Failure{Kind: kind, Op: op, Msg: msg, Err: cause}
}

func NotFound(op, msg string) *Failure {
	return &Failure{Kind: KindNotFound, Op: op, Msg: msg}
}

func AccessDenied(op, msg string) *Failure {
	return &Failure{Kind: KindAccessDenied, Op: op, Msg: msg}
}

func Unavailable(op, msg string) *Failure {
	return &Failure{Kind: KindUnavailable, Op: op, Msg: msg}
}

func Network(op, msg string, cause error) *Failure {
	return &Failure{Kind: KindNetwork, Op: op, Msg: msg, Err: cause}
}

func InvalidRelation(op, msg string) *Failure {
	return &Failure{Kind: KindInvalidRelation, Op: op, Msg: msg}
}

func InvalidReference(op, msg string) *Failure {
	return &Failure{Kind: KindInvalidReference, Op: op, Msg: msg}
}

// KindOf returns the failure kind of err, or "" when err carries no *Failure.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) && f != nil {
		return f.Kind
	}
	return ""
}

func IsKind(err error, kind FailureKind) bool {
	return KindOf(err) == kind
}

// AsNetwork wraps err as a Network failure unless it already carries a typed
// failure, in which case err is returned unchanged. This keeps NotFound /
// AccessDenied / Unavailable from being double-wrapped as network errors.
func AsNetwork(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != "" {
		return err
	}
	return Network(op, "external catalog call failed", err)
}
