package authz

import (
	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/models"
)

// Attributes narrows a grant to a concrete resource: OwnerID feeds
// owner-only grants, TargetRole feeds user-management grants.
type Attributes struct {
	// OwnerID is the principal that owns the target record, when ownership
	// applies (a user updating its own record).
	OwnerID uuid.UUID
	// PrincipalID is the acting principal, compared against OwnerID.
	PrincipalID uuid.UUID
	// TargetRole is the role of the user record being managed.
	TargetRole models.Role
}

// capability is one row of the static grant table. Anything that needs
// relationship data is out of this table's reach and decided by the
// Resolver instead.
type capability struct {
	role        models.Role
	action      Action
	resource    Resource
	ownerOnly   bool
	targetRoles []models.Role
}

var grants = []capability{
	// SYSADMIN operates only against the root course: course management
	// and the coordinator directory.
	{role: models.RoleSysadmin, action: ActionCreate, resource: ResourceCourse},
	{role: models.RoleSysadmin, action: ActionRead, resource: ResourceCourse},
	{role: models.RoleSysadmin, action: ActionUpdate, resource: ResourceCourse},
	{role: models.RoleSysadmin, action: ActionDelete, resource: ResourceCourse},
	{role: models.RoleSysadmin, action: ActionRead, resource: ResourceUser},
	{role: models.RoleSysadmin, action: ActionUpdate, resource: ResourceUser, ownerOnly: true},
	{role: models.RoleSysadmin, action: ActionCreate, resource: ResourceUser, targetRoles: []models.Role{models.RoleCoordinator}},
	{role: models.RoleSysadmin, action: ActionUpdate, resource: ResourceUser, targetRoles: []models.Role{models.RoleCoordinator, models.RoleTeacher}},
	{role: models.RoleSysadmin, action: ActionDelete, resource: ResourceUser, targetRoles: []models.Role{models.RoleCoordinator}},

	// COORDINATOR reads everything in its course and manages the academic
	// structure plus the non-coordinator user directory.
	{role: models.RoleCoordinator, action: ActionRead, resource: ResourceCourse},
	{role: models.RoleCoordinator, action: ActionRead, resource: ResourceUser},
	{role: models.RoleCoordinator, action: ActionRead, resource: ResourceSubject},
	{role: models.RoleCoordinator, action: ActionRead, resource: ResourcePPI},
	{role: models.RoleCoordinator, action: ActionRead, resource: ResourceProject},
	{role: models.RoleCoordinator, action: ActionRead, resource: ResourceGroup},
	{role: models.RoleCoordinator, action: ActionRead, resource: ResourceDeliverable},
	{role: models.RoleCoordinator, action: ActionRead, resource: ResourceContent},
	{role: models.RoleCoordinator, action: ActionRead, resource: ResourceArtifact},
	{role: models.RoleCoordinator, action: ActionUpdate, resource: ResourceUser, ownerOnly: true},
	{role: models.RoleCoordinator, action: ActionCreate, resource: ResourceSubject},
	{role: models.RoleCoordinator, action: ActionUpdate, resource: ResourceSubject},
	{role: models.RoleCoordinator, action: ActionDelete, resource: ResourceSubject},
	{role: models.RoleCoordinator, action: ActionCreate, resource: ResourcePPI},
	{role: models.RoleCoordinator, action: ActionUpdate, resource: ResourcePPI},
	{role: models.RoleCoordinator, action: ActionDelete, resource: ResourcePPI},
	{role: models.RoleCoordinator, action: ActionCreate, resource: ResourceProject},
	{role: models.RoleCoordinator, action: ActionUpdate, resource: ResourceProject},
	{role: models.RoleCoordinator, action: ActionDelete, resource: ResourceProject},
	{role: models.RoleCoordinator, action: ActionCreate, resource: ResourceUser, targetRoles: []models.Role{models.RoleTeacher, models.RoleStudent, models.RoleViewer}},
	{role: models.RoleCoordinator, action: ActionUpdate, resource: ResourceUser, targetRoles: []models.Role{models.RoleTeacher, models.RoleStudent, models.RoleViewer}},
	{role: models.RoleCoordinator, action: ActionDelete, resource: ResourceUser, targetRoles: []models.Role{models.RoleTeacher, models.RoleStudent, models.RoleViewer}},

	// TEACHER manages projects and the student directory.
	{role: models.RoleTeacher, action: ActionRead, resource: ResourceUser},
	{role: models.RoleTeacher, action: ActionRead, resource: ResourceSubject},
	{role: models.RoleTeacher, action: ActionRead, resource: ResourceCourse},
	{role: models.RoleTeacher, action: ActionRead, resource: ResourcePPI},
	{role: models.RoleTeacher, action: ActionRead, resource: ResourceProject},
	{role: models.RoleTeacher, action: ActionUpdate, resource: ResourceUser, ownerOnly: true},
	{role: models.RoleTeacher, action: ActionCreate, resource: ResourceUser, targetRoles: []models.Role{models.RoleStudent}},
	{role: models.RoleTeacher, action: ActionUpdate, resource: ResourceUser, targetRoles: []models.Role{models.RoleStudent}},
	{role: models.RoleTeacher, action: ActionDelete, resource: ResourceUser, targetRoles: []models.Role{models.RoleStudent}},
	{role: models.RoleTeacher, action: ActionCreate, resource: ResourceProject},
	{role: models.RoleTeacher, action: ActionUpdate, resource: ResourceProject},
	{role: models.RoleTeacher, action: ActionDelete, resource: ResourceProject},
	{role: models.RoleTeacher, action: ActionChangeStatus, resource: ResourceProject},

	// STUDENT and VIEWER are read-only at this layer; anything they may
	// write (content, artifacts) is granted dynamically through group
	// membership.
	{role: models.RoleStudent, action: ActionRead, resource: ResourceUser},
	{role: models.RoleStudent, action: ActionRead, resource: ResourceSubject},
	{role: models.RoleStudent, action: ActionRead, resource: ResourceCourse},
	{role: models.RoleStudent, action: ActionRead, resource: ResourceProject},
	{role: models.RoleStudent, action: ActionUpdate, resource: ResourceUser, ownerOnly: true},
	{role: models.RoleViewer, action: ActionRead, resource: ResourceUser},
	{role: models.RoleViewer, action: ActionRead, resource: ResourceSubject},
	{role: models.RoleViewer, action: ActionRead, resource: ResourceCourse},
	{role: models.RoleViewer, action: ActionRead, resource: ResourceProject},
}

// Can evaluates the static grant table for one (role, action, resource)
// triple. It never consults relationship data.
func Can(role models.Role, action Action, resource Resource, attrs *Attributes) bool {
	for _, g := range grants {
		if g.role != role || g.action != action || g.resource != resource {
			continue
		}
		if g.ownerOnly {
			if attrs == nil || attrs.OwnerID == uuid.Nil || attrs.OwnerID != attrs.PrincipalID {
				continue
			}
			return true
		}
		if len(g.targetRoles) > 0 {
			if attrs == nil {
				continue
			}
			for _, r := range g.targetRoles {
				if attrs.TargetRole == r {
					return true
				}
			}
			continue
		}
		return true
	}
	return false
}
