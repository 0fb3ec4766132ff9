package authz

import (
	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

// Resolver answers the relationship questions the static grant table
// cannot encode. Every predicate takes explicit ids and runs scoped store
// queries; a NotFound during resolution comes back as Forbidden so a
// caller probing access cannot tell a missing record from a denied one.
type Resolver struct {
	subjects repository.SubjectRepository
	ppis     repository.PPIRepository
	projects repository.ProjectRepository
	groups   repository.GroupRepository
}

func NewResolver(
	subjects repository.SubjectRepository,
	ppis repository.PPIRepository,
	projects repository.ProjectRepository,
	groups repository.GroupRepository,
) *Resolver {
	return &Resolver{subjects: subjects, ppis: ppis, projects: projects, groups: groups}
}

// IsSubjectTeacher reports whether the user is in the subject's teacher set.
func (r *Resolver) IsSubjectTeacher(scope tenant.Scope, subjectID, userID uuid.UUID) (bool, error) {
	ok, err := r.subjects.HasTeacher(scope, subjectID, userID)
	if err != nil {
		return false, collapse(err)
	}
	return ok, nil
}

// TeachesActiveProject reports whether the PPI has at least one project
// assigned to the teacher that is still running (NOT_STARTED or STARTED).
// This is the default-access check for project and deliverable mutation.
func (r *Resolver) TeachesActiveProject(scope tenant.Scope, ppiID, userID uuid.UUID) (bool, error) {
	count, err := r.projects.Count(scope, repository.ProjectFilter{
		PPIID:     ppiID,
		TeacherID: userID,
		Statuses:  []models.ProjectStatus{models.ProjectNotStarted, models.ProjectStarted},
	})
	if err != nil {
		return false, collapse(err)
	}
	return count > 0, nil
}

// IsGroupMember reports whether the user belongs to the group.
func (r *Resolver) IsGroupMember(scope tenant.Scope, groupID, userID uuid.UUID) (bool, error) {
	ok, err := r.groups.IsMember(scope, groupID, userID)
	if err != nil {
		return false, collapse(err)
	}
	return ok, nil
}

// IsPPICoordinator reports whether the user teaches the subject flagged
// as coordinator on the PPI. A PPI with no coordinator subject grants the
// authority to no one.
func (r *Resolver) IsPPICoordinator(scope tenant.Scope, ppiID, userID uuid.UUID) (bool, error) {
	assignment, err := r.ppis.CoordinatorSubject(scope, ppiID)
	if err != nil {
		if repository.IsNotFound(err) {
			return false, nil
		}
		return false, collapse(err)
	}
	return r.IsSubjectTeacher(scope, assignment.SubjectID, userID)
}

// SubjectBelongsToPPI reports whether the subject is part of the PPI's
// subject set.
func (r *Resolver) SubjectBelongsToPPI(scope tenant.Scope, ppiID, subjectID uuid.UUID) (bool, error) {
	ok, err := r.ppis.HasSubject(scope, ppiID, subjectID)
	if err != nil {
		return false, collapse(err)
	}
	return ok, nil
}

// collapse reclassifies relationship-lookup misses as Forbidden. Other
// store failures pass through untouched.
func collapse(err error) error {
	if repository.IsNotFound(err) {
		return Forbidden(ReasonAccessDenied)
	}
	return err
}
