// FILE: internal/pkg/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrUnauthorized covers bad or missing credentials. Recoverable by
// re-authenticating; never carries role information.
var ErrUnauthorized = errors.New("invalid credentials")

// ForbiddenError means a valid identity asked for a partition outside its
// role's access set. The message names the requester's role and the denied
// partition only, never what the requester is allowed instead.
type ForbiddenError struct {
	Role      string
	Partition string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("Not authorized: %s users cannot access %s data.", Title(e.Role), Title(e.Partition))
}

// PartitionNotFoundError means the partition passed authorization but has no
// ingested index yet. Distinct from Forbidden: this is an operator-recoverable
// configuration gap.
type PartitionNotFoundError struct {
	Partition string
}

func (e *PartitionNotFoundError) Error() string {
	return fmt.Sprintf("Knowledge base not found for department: %s.", Title(e.Partition))
}

// InternalError wraps an unexpected failure from a retrieval or generation
// collaborator. The caller-facing message is opaque; the wrapped error is for
// server-side logs only.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return "internal server error"
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func Internal(op string, err error) *InternalError {
	return &InternalError{Op: op, Err: err}
}

// Title uppercases the first rune, matching the capitalization the API has
// always used in user-facing error detail ("Finance", "Marketing").
func Title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
