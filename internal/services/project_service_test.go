package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

// seedPPIWithCoordinator creates a PPI whose coordinator subject is
// taught by the returned teacher id.
func seedPPIWithCoordinator(t *testing.T, env *testEnv) (*models.PPI, uuid.UUID) {
	t.Helper()
	scope, err := tenant.Bind(env.courseID)
	require.NoError(t, err)

	teacherID := uuid.New()
	subject := &models.Subject{Name: "Programação Web"}
	require.NoError(t, env.subjects.Create(scope, subject))
	require.NoError(t, env.subjects.AddTeacher(scope, subject.ID, teacherID))

	ppi := &models.PPI{Name: "PPI 4", Workload: 80, ClassPeriod: 4}
	require.NoError(t, env.ppis.Create(scope, ppi))
	require.NoError(t, env.ppis.AddSubject(scope, &models.SubjectAssignment{
		PPIID:         ppi.ID,
		SubjectID:     subject.ID,
		Workload:      40,
		IsCoordinator: true,
	}))
	return ppi, teacherID
}

func TestProjectStatusLifecycleThroughService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects, env.ppis, env.access)
	ppi, teacherID := seedPPIWithCoordinator(t, env)

	teacher := authz.Principal{ID: teacherID, Role: models.RoleTeacher, ActiveCourseID: env.courseID}
	project, err := svc.Create(teacher, ppi.ID, "Sistema de Estoque", "")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectNotStarted, project.Status)
	assert.Equal(t, teacherID, project.TeacherID)

	// The coordinator-subject teacher moves the lifecycle forward.
	require.NoError(t, svc.ChangeStatus(teacher, project.ID, models.ProjectStarted))
	require.NoError(t, svc.ChangeStatus(teacher, project.ID, models.ProjectFinished))

	// Finished is terminal.
	err = svc.ChangeStatus(teacher, project.ID, models.ProjectStarted)
	var e *authz.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, authz.KindLifecycle, e.Kind)
	assert.Equal(t, authz.ReasonInvalidTransition, e.Reason)

	// And a finished project rejects field updates for everyone.
	coordinator := env.principal(models.RoleCoordinator)
	_, err = svc.Update(coordinator, project.ID, "novo título", "")
	require.ErrorAs(t, err, &e)
	assert.Equal(t, authz.KindLifecycle, e.Kind)
	assert.Equal(t, authz.ReasonProjectFinished, e.Reason)
}

func TestProjectStatusDeniedOutsideCoordinatorSubject(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects, env.ppis, env.access)
	ppi, teacherID := seedPPIWithCoordinator(t, env)

	owner := authz.Principal{ID: teacherID, Role: models.RoleTeacher, ActiveCourseID: env.courseID}
	project, err := svc.Create(owner, ppi.ID, "Sistema de Vendas", "")
	require.NoError(t, err)

	// Another teacher, even with projects elsewhere, cannot touch the
	// lifecycle of this one.
	other := env.principal(models.RoleTeacher)
	err = svc.ChangeStatus(other, project.ID, models.ProjectStarted)
	var e *authz.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, authz.KindForbidden, e.Kind)

	err = svc.ChangeVisibility(other, project.ID, true)
	require.ErrorAs(t, err, &e)
	assert.Equal(t, authz.KindForbidden, e.Kind)
}

func TestProjectListNarrowsForStudents(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects, env.ppis, env.access)
	scope, err := tenant.Bind(env.courseID)
	require.NoError(t, err)

	ppiID := uuid.New()
	for _, status := range []models.ProjectStatus{
		models.ProjectNotStarted, models.ProjectStarted, models.ProjectFinished,
	} {
		require.NoError(t, env.projects.Create(scope, &models.Project{
			PPIID:     ppiID,
			Title:     string(status),
			TeacherID: uuid.New(),
			Status:    status,
		}))
	}

	list, err := svc.List(env.principal(models.RoleCoordinator), repository.ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = svc.List(env.principal(models.RoleStudent), repository.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, p := range list {
		assert.NotEqual(t, models.ProjectNotStarted, p.Status)
	}

	// An explicit request for a hidden status yields an empty result.
	list, err = svc.List(env.principal(models.RoleViewer), repository.ProjectFilter{
		Statuses: []models.ProjectStatus{models.ProjectNotStarted},
	})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProjectCreateRequiresKnownPPI(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects, env.ppis, env.access)

	// An unknown PPI is indistinguishable from a foreign one: the caller
	// gets a denial, never a bare not-found.
	_, err := svc.Create(env.principal(models.RoleTeacher), uuid.New(), "x", "")
	var e *authz.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, authz.KindForbidden, e.Kind)
	assert.Equal(t, authz.ReasonAccessDenied, e.Reason)
}

func TestProjectMutationHidesForeignCourse(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects, env.ppis, env.access)
	ppi, teacherID := seedPPIWithCoordinator(t, env)

	owner := authz.Principal{ID: teacherID, Role: models.RoleTeacher, ActiveCourseID: env.courseID}
	project, err := svc.Create(owner, ppi.ID, "Projeto Local", "")
	require.NoError(t, err)

	// A coordinator of another course sees nothing to mutate.
	foreign := authz.Principal{ID: uuid.New(), Role: models.RoleCoordinator, ActiveCourseID: uuid.New()}
	_, err = svc.Update(foreign, project.ID, "roubo", "")
	var e *authz.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, authz.KindForbidden, e.Kind)
	assert.Equal(t, authz.ReasonAccessDenied, e.Reason)
}
