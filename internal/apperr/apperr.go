// Package apperr defines the single closed error type shared by the
// auth, store and policy layers. Callers match on the Kind instead of
// an error class hierarchy; every constructor carries the structured
// fields the caller needs to render a precise message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind tags an Error with its failure category. The set is closed:
// every domain failure in this module maps to exactly one kind.
type Kind int

const (
	// KindNotAuthenticated means no valid principal was supplied.
	KindNotAuthenticated Kind = iota + 1
	// KindSessionExpired means the session token's expiry has passed.
	KindSessionExpired
	// KindTokenInvalid means the session token is malformed or has a
	// bad signature.
	KindTokenInvalid
	// KindPrincipalGone means the token's subject no longer exists.
	KindPrincipalGone
	// KindInvalidCredentials means a login attempt failed. Deliberately
	// identical for unknown email and wrong password.
	KindInvalidCredentials
	// KindPermissionDenied means the principal's role lacks the base
	// permission code for the action.
	KindPermissionDenied
	// KindOwnershipDenied means the principal is permitted in general
	// but is not the designated owner of the target entity.
	KindOwnershipDenied
	// KindBusinessRule means an entity-specific rule rejected the call.
	KindBusinessRule
	// KindNotFound means the target row or a referenced foreign row
	// does not exist.
	KindNotFound
	// KindDataIntegrity means PII decryption failed; fatal, never
	// silently recovered.
	KindDataIntegrity
)

// Error is the closed tagged-union error. Only the fields relevant to
// the Kind are populated.
type Error struct {
	Kind       Kind
	Permission string // KindPermissionDenied: missing permission code
	Entity     string // KindOwnershipDenied, KindNotFound: entity kind
	Key        string // KindOwnershipDenied, KindNotFound: id or lookup key
	Reason     string // KindBusinessRule: rule description
	Err        error  // KindDataIntegrity: wrapped cause
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotAuthenticated:
		return "not authenticated"
	case KindSessionExpired:
		return "session expired"
	case KindTokenInvalid:
		return "session token invalid"
	case KindPrincipalGone:
		return fmt.Sprintf("session subject no longer exists: %s", e.Key)
	case KindInvalidCredentials:
		return "invalid email or password"
	case KindPermissionDenied:
		return fmt.Sprintf("permission denied: missing %s", e.Permission)
	case KindOwnershipDenied:
		return fmt.Sprintf("not the owner of %s %s", e.Entity, e.Key)
	case KindBusinessRule:
		return e.Reason
	case KindNotFound:
		return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
	case KindDataIntegrity:
		return fmt.Sprintf("data integrity failure: %v", e.Err)
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two *Error values on Kind only, so sentinels built with
// the bare constructors work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func NotAuthenticated() *Error  { return &Error{Kind: KindNotAuthenticated} }
func SessionExpired() *Error    { return &Error{Kind: KindSessionExpired} }
func TokenInvalid() *Error      { return &Error{Kind: KindTokenInvalid} }
func InvalidCredentials() *Error { return &Error{Kind: KindInvalidCredentials} }

func PrincipalGone(key string) *Error {
	return &Error{Kind: KindPrincipalGone, Key: key}
}

func PermissionDenied(code string) *Error {
	return &Error{Kind: KindPermissionDenied, Permission: code}
}

func OwnershipDenied(entity, key string) *Error {
	return &Error{Kind: KindOwnershipDenied, Entity: entity, Key: key}
}

func BusinessRule(format string, args ...any) *Error {
	return &Error{Kind: KindBusinessRule, Reason: fmt.Sprintf(format, args...)}
}

func NotFound(entity, key string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Key: key}
}

func DataIntegrity(err error) *Error {
	return &Error{Kind: KindDataIntegrity, Err: err}
}
