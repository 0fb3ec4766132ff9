package authz

import (
	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/models"
)

// Membership is one (course, role) pair a principal holds.
type Membership struct {
	CourseID uuid.UUID
	Role     models.Role
}

// Principal is the authenticated actor a decision is made for. The active
// (course, role) pair is resolved once at authentication.
type Principal struct {
	ID             uuid.UUID
	Role           models.Role
	ActiveCourseID uuid.UUID
	Memberships    []Membership
}

// Authenticated reports whether the principal carries a usable identity.
func (p Principal) Authenticated() bool {
	return p.ID != uuid.Nil && p.Role.Valid() && p.ActiveCourseID != uuid.Nil
}

// Action is a business operation family submitted for authorization.
type Action string

const (
	ActionCreate           Action = "create"
	ActionRead             Action = "read"
	ActionUpdate           Action = "update"
	ActionDelete           Action = "delete"
	ActionChangeStatus     Action = "change_status"
	ActionChangeVisibility Action = "change_visibility"
)

// Resource is the type of record an action targets.
type Resource string

const (
	ResourceCourse      Resource = "course"
	ResourceUser        Resource = "user"
	ResourceSubject     Resource = "subject"
	ResourcePPI         Resource = "ppi"
	ResourceProject     Resource = "project"
	ResourceGroup       Resource = "group"
	ResourceDeliverable Resource = "deliverable"
	ResourceContent     Resource = "deliverable_content"
	ResourceArtifact    Resource = "artifact"
)
