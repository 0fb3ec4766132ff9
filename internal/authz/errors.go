package authz

import "fmt"

// Kind classifies an authorization failure per the error taxonomy: the
// caller translates each kind into a different user-facing response.
type Kind int

const (
	// KindUnauthenticated means no valid principal accompanied the request.
	KindUnauthenticated Kind = iota
	// KindForbidden means the principal lacks a capability or failed a
	// relationship check. NotFound during relationship resolution is
	// reported as this kind so probing cannot distinguish absence from
	// lack of permission.
	KindForbidden
	// KindLifecycle means the resource's state or time window blocks the
	// operation regardless of role.
	KindLifecycle
	// KindConflict means a business invariant already holds, e.g. content
	// already exists for a (deliverable, group) pair.
	KindConflict
)

// Stable reason codes carried on decisions and errors.
const (
	ReasonUnauthenticated      = "unauthenticated"
	ReasonAccessDenied         = "access_denied"
	ReasonWrongTenant          = "wrong_tenant"
	ReasonProjectFinished      = "project_finished"
	ReasonInvalidTransition    = "invalid_status_transition"
	ReasonDeliverableNotOpen   = "deliverable_before_start"
	ReasonDeliverableClosed    = "deliverable_after_end"
	ReasonContentAlreadyExists = "content_already_exists"
	ReasonSubjectNotInPPI      = "subject_not_in_ppi"
	ReasonGroupProjectMismatch = "group_project_mismatch"
	ReasonCoordinatorExists    = "ppi_coordinator_already_set"
)

// Error is a typed authorization failure with a stable reason code.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("authz: %s", e.Reason)
}

// ErrUnauthenticated is returned when no principal context is present.
var ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Reason: ReasonUnauthenticated}

// Forbidden builds a forbidden error with the given reason code.
func Forbidden(reason string) *Error { return &Error{Kind: KindForbidden, Reason: reason} }

// Lifecycle builds a lifecycle violation with the given reason code.
func Lifecycle(reason string) *Error { return &Error{Kind: KindLifecycle, Reason: reason} }

// Conflict builds a conflict violation with the given reason code.
func Conflict(reason string) *Error { return &Error{Kind: KindConflict, Reason: reason} }

// KindOf extracts the failure kind; non-authz errors report as forbidden
// so unexpected store failures never widen access.
func KindOf(err error) (Kind, bool) {
	if e, ok := err.(*Error); ok {
		return e.Kind, true
	}
	return KindForbidden, false
}
