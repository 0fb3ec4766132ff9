package authz

import (
	"time"

	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

// Decision is the outcome of one authorization request. Reason carries a
// stable code; it never names the relationship check that failed.
type Decision struct {
	Allowed bool
	Reason  string
}

var allowed = Decision{Allowed: true}

// ResourceContext carries the records a decision needs. Callers fetch
// them through the scoped store before asking; a record that could not be
// fetched is simply left nil and the decision denies.
type ResourceContext struct {
	Project      *models.Project
	Deliverable  *models.Deliverable
	Group        *models.Group
	SubjectID    *uuid.UUID
	TargetStatus models.ProjectStatus
	OwnerID      uuid.UUID
	TargetRole   models.Role
}

// Service orchestrates the capability registry, the relationship resolver
// and the lifecycle guard into one decision per business operation.
type Service struct {
	rel      *Resolver
	contents repository.DeliverableContentRepository
	now      func() time.Time
}

func NewService(rel *Resolver, contents repository.DeliverableContentRepository) *Service {
	return &Service{rel: rel, contents: contents, now: time.Now}
}

// WithClock fixes the decision clock. Tests use this to pin the
// deliverable window.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Check runs Authorize and converts a denial into its typed error.
func (s *Service) Check(scope tenant.Scope, p Principal, action Action, resource Resource, rc ResourceContext) error {
	d := s.Authorize(scope, p, action, resource, rc)
	if d.Allowed {
		return nil
	}
	return decisionError(d.Reason)
}

// Authorize decides one (principal, action, resource) triple. Every
// mutating family follows the same shape: lifecycle gates first, then the
// coordinator short-circuit, then relationship-derived access, then deny.
func (s *Service) Authorize(scope tenant.Scope, p Principal, action Action, resource Resource, rc ResourceContext) Decision {
	if !p.Authenticated() {
		return deny(ReasonUnauthenticated)
	}
	if !scope.Bound() || scope.CourseID() != p.ActiveCourseID {
		return deny(ReasonWrongTenant)
	}

	switch resource {
	case ResourceProject:
		switch action {
		case ActionChangeStatus, ActionChangeVisibility:
			return s.projectCoordinatorAccess(scope, p, action, rc)
		case ActionCreate:
			return s.staticAccess(p, action, resource, rc)
		case ActionUpdate, ActionDelete:
			return s.projectMutationAccess(scope, p, rc)
		}
	case ResourceDeliverable:
		switch action {
		case ActionCreate, ActionUpdate, ActionDelete:
			return s.deliverableMutationAccess(scope, p, rc)
		}
	case ResourceContent:
		switch action {
		case ActionCreate, ActionUpdate, ActionDelete:
			return s.contentMutationAccess(scope, p, action, rc)
		}
	case ResourceArtifact:
		switch action {
		case ActionCreate, ActionUpdate, ActionDelete:
			return s.artifactMutationAccess(scope, p, action, rc)
		}
	}

	return s.staticAccess(p, action, resource, rc)
}

// staticAccess evaluates the declarative grant table only.
func (s *Service) staticAccess(p Principal, action Action, resource Resource, rc ResourceContext) Decision {
	attrs := &Attributes{OwnerID: rc.OwnerID, PrincipalID: p.ID, TargetRole: rc.TargetRole}
	if Can(p.Role, action, resource, attrs) {
		return allowed
	}
	return deny(ReasonAccessDenied)
}

// projectCoordinatorAccess gates status and visibility changes on
// coordinator authority over the project's PPI: the COORDINATOR role
// short-circuits, a TEACHER qualifies only by teaching the PPI's
// coordinator subject.
func (s *Service) projectCoordinatorAccess(scope tenant.Scope, p Principal, action Action, rc ResourceContext) Decision {
	if rc.Project == nil {
		return deny(ReasonAccessDenied)
	}
	if action == ActionChangeStatus {
		if err := ValidateProjectTransition(rc.Project.Status, rc.TargetStatus); err != nil {
			return denyErr(err)
		}
	}
	if p.Role == models.RoleCoordinator {
		return allowed
	}
	if p.Role != models.RoleTeacher {
		return deny(ReasonAccessDenied)
	}
	ok, err := s.rel.IsPPICoordinator(scope, rc.Project.PPIID, p.ID)
	if err != nil {
		return denyErr(err)
	}
	if !ok {
		return deny(ReasonAccessDenied)
	}
	return allowed
}

// projectMutationAccess covers field updates and deletion.
func (s *Service) projectMutationAccess(scope tenant.Scope, p Principal, rc ResourceContext) Decision {
	if rc.Project == nil {
		return deny(ReasonAccessDenied)
	}
	if !ProjectIsMutable(rc.Project) {
		return deny(ReasonProjectFinished)
	}
	if p.Role == models.RoleCoordinator {
		return allowed
	}
	if p.Role != models.RoleTeacher {
		return deny(ReasonAccessDenied)
	}
	ok, err := s.rel.TeachesActiveProject(scope, rc.Project.PPIID, p.ID)
	if err != nil {
		return denyErr(err)
	}
	if !ok {
		return deny(ReasonAccessDenied)
	}
	return allowed
}

// deliverableMutationAccess covers create, update and delete of
// deliverables under a project.
func (s *Service) deliverableMutationAccess(scope tenant.Scope, p Principal, rc ResourceContext) Decision {
	if rc.Project == nil {
		return deny(ReasonAccessDenied)
	}
	if !ProjectIsMutable(rc.Project) {
		return deny(ReasonProjectFinished)
	}
	switch p.Role {
	case models.RoleCoordinator:
		return allowed
	case models.RoleTeacher:
		ok, err := s.rel.TeachesActiveProject(scope, rc.Project.PPIID, p.ID)
		if err != nil {
			return denyErr(err)
		}
		if !ok {
			return deny(ReasonAccessDenied)
		}
		if rc.SubjectID != nil {
			inPPI, err := s.rel.SubjectBelongsToPPI(scope, rc.Project.PPIID, *rc.SubjectID)
			if err != nil {
				return denyErr(err)
			}
			if !inPPI {
				return deny(ReasonSubjectNotInPPI)
			}
		}
		return allowed
	default:
		// Students and viewers never mutate deliverables.
		return deny(ReasonAccessDenied)
	}
}

// contentMutationAccess gates a group's answer to a deliverable: the
// owning project must still be open, the acting principal must belong
// to the group, the deliverable must hang off the group's project, and
// creation is one-shot per (deliverable, group) pair.
func (s *Service) contentMutationAccess(scope tenant.Scope, p Principal, action Action, rc ResourceContext) Decision {
	if rc.Deliverable == nil || rc.Group == nil || rc.Project == nil {
		return deny(ReasonAccessDenied)
	}
	if !ProjectIsMutable(rc.Project) {
		return deny(ReasonProjectFinished)
	}
	if rc.Deliverable.ProjectID != rc.Group.ProjectID {
		return deny(ReasonGroupProjectMismatch)
	}
	ok, err := s.rel.IsGroupMember(scope, rc.Group.ID, p.ID)
	if err != nil {
		return denyErr(err)
	}
	if !ok {
		return deny(ReasonAccessDenied)
	}
	if action == ActionCreate {
		exists, err := s.contents.Exists(scope, rc.Deliverable.ID, rc.Group.ID)
		if err != nil {
			return denyErr(collapse(err))
		}
		if exists {
			return deny(ReasonContentAlreadyExists)
		}
	}
	return allowed
}

// artifactMutationAccess gates uploads and replacements on the open
// project and the deliverable window before any role consideration,
// then requires group membership for group work or an active teaching
// assignment otherwise. Removal stays possible after the window closes.
func (s *Service) artifactMutationAccess(scope tenant.Scope, p Principal, action Action, rc ResourceContext) Decision {
	if rc.Deliverable == nil || rc.Project == nil {
		return deny(ReasonAccessDenied)
	}
	if !ProjectIsMutable(rc.Project) {
		return deny(ReasonProjectFinished)
	}
	if action != ActionDelete {
		if err := CheckDeliverableWindow(rc.Deliverable, s.now()); err != nil {
			return denyErr(err)
		}
	}
	if rc.Group != nil {
		if rc.Deliverable.ProjectID != rc.Group.ProjectID {
			return deny(ReasonGroupProjectMismatch)
		}
		ok, err := s.rel.IsGroupMember(scope, rc.Group.ID, p.ID)
		if err != nil {
			return denyErr(err)
		}
		if !ok {
			return deny(ReasonAccessDenied)
		}
		return allowed
	}
	if p.Role == models.RoleCoordinator {
		return allowed
	}
	if p.Role == models.RoleTeacher {
		ok, err := s.rel.TeachesActiveProject(scope, rc.Project.PPIID, p.ID)
		if err != nil {
			return denyErr(err)
		}
		if ok {
			return allowed
		}
	}
	return deny(ReasonAccessDenied)
}

func deny(reason string) Decision { return Decision{Reason: reason} }

// denyErr folds a typed authorization error into a decision, keeping its
// reason code. Untyped store failures deny without detail.
func denyErr(err error) Decision {
	if e, ok := err.(*Error); ok {
		return Decision{Reason: e.Reason}
	}
	return Decision{Reason: ReasonAccessDenied}
}

// decisionError rebuilds the typed error for a denial reason, so callers
// translate kinds, not string codes.
func decisionError(reason string) error {
	switch reason {
	case ReasonUnauthenticated:
		return ErrUnauthenticated
	case ReasonProjectFinished, ReasonInvalidTransition, ReasonDeliverableNotOpen, ReasonDeliverableClosed:
		return Lifecycle(reason)
	case ReasonContentAlreadyExists:
		return Conflict(reason)
	default:
		return Forbidden(reason)
	}
}
