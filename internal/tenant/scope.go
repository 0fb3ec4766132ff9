// Package tenant binds store access to a single course. A Scope is bound
// once per request and threaded explicitly into every repository call;
// there is no ambient "current tenant" shared across connections, so two
// concurrent requests can never observe each other's binding.
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrUnboundScope is returned whenever a store call is attempted with a
// scope that was never bound. Store access fails closed: no binding, no
// rows.
var ErrUnboundScope = errors.New("tenant: scope not bound")

// Scope carries the course a request operates under. The zero Scope is
// unbound and rejected by every repository.
type Scope struct {
	courseID uuid.UUID
}

// Bind creates a scope for the given course. It is called once per
// request, before any store access, and rejects the zero id.
func Bind(courseID uuid.UUID) (Scope, error) {
	if courseID == uuid.Nil {
		return Scope{}, ErrUnboundScope
	}
	return Scope{courseID: courseID}, nil
}

// CourseID reports the bound course.
func (s Scope) CourseID() uuid.UUID { return s.courseID }

// Bound reports whether the scope was produced by Bind.
func (s Scope) Bound() bool { return s.courseID != uuid.Nil }

// DB narrows a gorm handle to the bound course, or fails closed when the
// scope is unbound.
func (s Scope) DB(db *gorm.DB) (*gorm.DB, error) {
	if !s.Bound() {
		return nil, ErrUnboundScope
	}
	return db.Where("course_id = ?", s.courseID), nil
}

type ctxKey struct{}

// WithScope attaches a bound scope to the request context.
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext recovers the scope bound for this request.
func FromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(ctxKey{}).(Scope)
	return s, ok && s.Bound()
}
