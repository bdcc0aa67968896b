// Package errors provides the core's structured error taxonomy:
// CompileError, NoOverloadFoundError, TypeMismatchError, DomainError and
// UnhandledEffect. One struct per failure kind, one constructor per struct,
// no shared base type. There is no source-level position in any of them:
// the core has no lexer, so "where" is a debug string derived from the
// offending expression or value via its String() method, not a
// line/column.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/corelang/internal/ptype"
)

// ============================================================================

// CompileError reports that the compiler rejected an Expression: an
// unresolved identifier, a call site with no satisfying overload, an
// ill-typed operand, and so on. It is surfaced synchronously to
// the caller of the compiler entry point.
type CompileError struct {
	Message string
	Debug   string // debug string of the offending ast.Expression, for context
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Debug == "" {
		return "compile error: " + e.Message
	}
	return fmt.Sprintf("compile error: %s (in %s)", e.Message, e.Debug)
}

// NewCompileError creates a new CompileError.
func NewCompileError(message, debug string) *CompileError {
	return &CompileError{Message: message, Debug: debug}
}

// ============================================================================

// NoOverloadFoundError reports that a Dispatch found no candidate matching
// the call-site argument types, or that two surviving candidates tied with
// incomparable specificities. It carries the failing scope's debug label
// for diagnostics.
type NoOverloadFoundError struct {
	Callee   string
	ArgTypes []*ptype.Type
	ScopeTag string // debug label of the scope dispatch failed in
}

// Error implements the error interface.
func (e *NoOverloadFoundError) Error() string {
	parts := make([]string, len(e.ArgTypes))
	for i, t := range e.ArgTypes {
		parts[i] = t.String()
	}
	where := ""
	if e.ScopeTag != "" {
		where = " in scope " + e.ScopeTag
	}
	return fmt.Sprintf("no overload of %q found for argument types (%s)%s",
		e.Callee, strings.Join(parts, ", "), where)
}

// NewNoOverloadFoundError creates a new NoOverloadFoundError.
func NewNoOverloadFoundError(callee string, argTypes []*ptype.Type, scopeTag string) *NoOverloadFoundError {
	return &NoOverloadFoundError{Callee: callee, ArgTypes: argTypes, ScopeTag: scopeTag}
}

// ============================================================================

// TypeMismatchError reports that a checkType assertion failed.
type TypeMismatchError struct {
	Expected *ptype.Type
	Got      *ptype.Type
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// NewTypeMismatchError creates a new TypeMismatchError.
func NewTypeMismatchError(expected, got *ptype.Type) *TypeMismatchError {
	return &TypeMismatchError{Expected: expected, Got: got}
}

// ============================================================================

// DomainError reports an arithmetic domain failure (integer division or
// modulo by zero) or an invalid VariableAddress.
type DomainError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error in %s: %s", e.Operation, e.Reason)
}

// NewDomainError creates a new DomainError.
func NewDomainError(operation, reason string) *DomainError {
	return &DomainError{Operation: operation, Reason: reason}
}

// ============================================================================

// UnhandledEffect reports that an EmitEffect unwound all the way to the top
// of the evaluator without encountering a matching HandleEffect. Payload is
// the effect's debug string rather than the carried
// value.Value itself, so this leaf package need not import internal/value
// (which would invert the intended ptype -> value -> ... -> errors
// dependency direction used by the compiler/dispatch/evaluator packages).
type UnhandledEffect struct {
	Payload string
}

// Error implements the error interface.
func (e *UnhandledEffect) Error() string {
	return "unhandled effect: " + e.Payload
}

// NewUnhandledEffect creates a new UnhandledEffect.
func NewUnhandledEffect(payload string) *UnhandledEffect {
	return &UnhandledEffect{Payload: payload}
}
