package authz

import (
	"time"

	"github.com/GeisyGP/sistema-ppi/internal/models"
)

// ProjectIsMutable reports whether a project still accepts mutation.
// A finished project rejects update, content update and delete for every
// role; only status and visibility changes remain possible, and those are
// gated separately on coordinator access.
func ProjectIsMutable(p *models.Project) bool {
	return p.Status != models.ProjectFinished
}

// projectRank orders the lifecycle states so transitions only move
// forward. FINISHED → STARTED is rejected.
var projectRank = map[models.ProjectStatus]int{
	models.ProjectNotStarted: 0,
	models.ProjectStarted:    1,
	models.ProjectFinished:   2,
}

// ValidateProjectTransition rejects unknown states and backward moves.
func ValidateProjectTransition(from, to models.ProjectStatus) error {
	fromRank, ok := projectRank[from]
	if !ok {
		return Lifecycle(ReasonInvalidTransition)
	}
	toRank, ok := projectRank[to]
	if !ok {
		return Lifecycle(ReasonInvalidTransition)
	}
	if toRank < fromRank {
		return Lifecycle(ReasonInvalidTransition)
	}
	return nil
}

// DeliverableWindowStatus derives the deliverable's status from the clock.
func DeliverableWindowStatus(d *models.Deliverable, now time.Time) models.DeliverableStatus {
	return d.StatusAt(now)
}

// CheckDeliverableWindow gates artifact mutation on the deliverable's
// window. The two violations are distinct so the caller can tell a
// not-yet-open deliverable from an already-closed one; neither depends on
// the principal's role.
func CheckDeliverableWindow(d *models.Deliverable, now time.Time) error {
	if now.Before(d.StartDate) {
		return Lifecycle(ReasonDeliverableNotOpen)
	}
	if now.After(d.EndDate) {
		return Lifecycle(ReasonDeliverableClosed)
	}
	return nil
}

// VisibleProjectStatuses narrows project listings per role: students and
// viewers never see NOT_STARTED projects.
func VisibleProjectStatuses(role models.Role) []models.ProjectStatus {
	switch role {
	case models.RoleStudent, models.RoleViewer:
		return []models.ProjectStatus{models.ProjectStarted, models.ProjectFinished}
	default:
		return []models.ProjectStatus{models.ProjectNotStarted, models.ProjectStarted, models.ProjectFinished}
	}
}

// NarrowDeliverableStatuses narrows a deliverable listing filter per role.
// A student's default view is {ACTIVE, EXPIRED}; a student explicitly
// asking for UPCOMING gets an empty filter, which yields an empty result
// rather than an error.
func NarrowDeliverableStatuses(role models.Role, requested []models.DeliverableStatus) []models.DeliverableStatus {
	if role != models.RoleStudent && role != models.RoleViewer {
		if len(requested) == 0 {
			return []models.DeliverableStatus{models.DeliverableUpcoming, models.DeliverableActive, models.DeliverableExpired}
		}
		return requested
	}
	if len(requested) == 0 {
		return []models.DeliverableStatus{models.DeliverableActive, models.DeliverableExpired}
	}
	narrowed := make([]models.DeliverableStatus, 0, len(requested))
	for _, s := range requested {
		if s != models.DeliverableUpcoming {
			narrowed = append(narrowed, s)
		}
	}
	return narrowed
}
