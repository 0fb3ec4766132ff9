package authz

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection to :memory: would be a second empty database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Course{},
		&models.User{},
		&models.CourseMembership{},
		&models.Subject{},
		&models.SubjectTeacher{},
		&models.PPI{},
		&models.SubjectAssignment{},
		&models.Project{},
		&models.Group{},
		&models.GroupMember{},
		&models.Deliverable{},
		&models.DeliverableContent{},
		&models.Artifact{},
	))
	return db
}

// fixture is one course with a PPI whose coordinator subject is taught by
// teacherT1, a started project run by teacherT1, and a group holding
// studentS1.
type fixture struct {
	scope tenant.Scope
	svc   *Service
	rel   *Resolver
	now   time.Time

	subjects repository.SubjectRepository
	ppis     repository.PPIRepository
	projects repository.ProjectRepository
	groups   repository.GroupRepository
	contents repository.DeliverableContentRepository

	courseID      uuid.UUID
	ppi           *models.PPI
	coordSubject  *models.Subject
	otherSubject  *models.Subject
	teacherT1     uuid.UUID
	teacherT2     uuid.UUID
	studentS1     uuid.UUID
	studentS2     uuid.UUID
	coordinatorID uuid.UUID
	project       *models.Project
	group         *models.Group
	deliverable   *models.Deliverable
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{
		now:           time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		courseID:      uuid.New(),
		teacherT1:     uuid.New(),
		teacherT2:     uuid.New(),
		studentS1:     uuid.New(),
		studentS2:     uuid.New(),
		coordinatorID: uuid.New(),
	}

	scope, err := tenant.Bind(f.courseID)
	require.NoError(t, err)
	f.scope = scope

	f.subjects = repository.NewSubjectRepository(db)
	f.ppis = repository.NewPPIRepository(db)
	f.projects = repository.NewProjectRepository(db)
	f.groups = repository.NewGroupRepository(db)
	f.contents = repository.NewDeliverableContentRepository(db)
	deliverables := repository.NewDeliverableRepository(db)

	f.rel = NewResolver(f.subjects, f.ppis, f.projects, f.groups)
	f.svc = NewService(f.rel, f.contents).WithClock(func() time.Time { return f.now })

	f.coordSubject = &models.Subject{Name: "Banco de Dados"}
	require.NoError(t, f.subjects.Create(scope, f.coordSubject))
	require.NoError(t, f.subjects.AddTeacher(scope, f.coordSubject.ID, f.teacherT1))

	f.otherSubject = &models.Subject{Name: "Redes"}
	require.NoError(t, f.subjects.Create(scope, f.otherSubject))
	require.NoError(t, f.subjects.AddTeacher(scope, f.otherSubject.ID, f.teacherT2))

	f.ppi = &models.PPI{Name: "PPI 3", Workload: 80, ClassPeriod: 3}
	require.NoError(t, f.ppis.Create(scope, f.ppi))
	require.NoError(t, f.ppis.AddSubject(scope, &models.SubjectAssignment{
		PPIID:         f.ppi.ID,
		SubjectID:     f.coordSubject.ID,
		Workload:      40,
		IsCoordinator: true,
	}))

	f.project = &models.Project{
		PPIID:     f.ppi.ID,
		Title:     "Sistema de Biblioteca",
		TeacherID: f.teacherT1,
		Status:    models.ProjectStarted,
	}
	require.NoError(t, f.projects.Create(scope, f.project))

	f.group = &models.Group{ProjectID: f.project.ID, Name: "Equipe 1"}
	require.NoError(t, f.groups.Create(scope, f.group))
	require.NoError(t, f.groups.AddMember(scope, &models.GroupMember{
		GroupID: f.group.ID,
		UserID:  f.studentS1,
	}))

	f.deliverable = &models.Deliverable{
		ProjectID: f.project.ID,
		Title:     "Entrega 1",
		StartDate: f.now.Add(-24 * time.Hour),
		EndDate:   f.now.Add(24 * time.Hour),
	}
	require.NoError(t, deliverables.Create(scope, f.deliverable))

	return f
}

func (f *fixture) principal(id uuid.UUID, role models.Role) Principal {
	return Principal{ID: id, Role: role, ActiveCourseID: f.courseID}
}

func TestAuthorizeRequiresPrincipal(t *testing.T) {
	f := newFixture(t)
	d := f.svc.Authorize(f.scope, Principal{}, ActionRead, ResourceProject, ResourceContext{})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnauthenticated, d.Reason)
}

func TestAuthorizeRejectsScopeMismatch(t *testing.T) {
	f := newFixture(t)
	otherScope, err := tenant.Bind(uuid.New())
	require.NoError(t, err)

	p := f.principal(f.coordinatorID, models.RoleCoordinator)
	d := f.svc.Authorize(otherScope, p, ActionRead, ResourceProject, ResourceContext{})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonWrongTenant, d.Reason)

	d = f.svc.Authorize(tenant.Scope{}, p, ActionRead, ResourceProject, ResourceContext{})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonWrongTenant, d.Reason)
}

func TestChangeStatusCoordinatorAuthority(t *testing.T) {
	f := newFixture(t)
	rc := ResourceContext{Project: f.project, TargetStatus: models.ProjectFinished}

	// T1 teaches the PPI's coordinator subject.
	d := f.svc.Authorize(f.scope, f.principal(f.teacherT1, models.RoleTeacher), ActionChangeStatus, ResourceProject, rc)
	assert.True(t, d.Allowed)

	// T2 teaches a subject outside this PPI.
	d = f.svc.Authorize(f.scope, f.principal(f.teacherT2, models.RoleTeacher), ActionChangeStatus, ResourceProject, rc)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAccessDenied, d.Reason)

	d = f.svc.Authorize(f.scope, f.principal(f.coordinatorID, models.RoleCoordinator), ActionChangeStatus, ResourceProject, rc)
	assert.True(t, d.Allowed)

	d = f.svc.Authorize(f.scope, f.principal(f.studentS1, models.RoleStudent), ActionChangeStatus, ResourceProject, rc)
	assert.False(t, d.Allowed)
}

func TestChangeStatusRejectsBackwardTransition(t *testing.T) {
	f := newFixture(t)
	finished := *f.project
	finished.Status = models.ProjectFinished

	rc := ResourceContext{Project: &finished, TargetStatus: models.ProjectStarted}
	// Even a coordinator cannot reopen a finished project.
	d := f.svc.Authorize(f.scope, f.principal(f.coordinatorID, models.RoleCoordinator), ActionChangeStatus, ResourceProject, rc)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonInvalidTransition, d.Reason)

	err := f.svc.Check(f.scope, f.principal(f.coordinatorID, models.RoleCoordinator), ActionChangeStatus, ResourceProject, rc)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindLifecycle, e.Kind)
}

func TestChangeVisibilityFollowsCoordinatorAuthority(t *testing.T) {
	f := newFixture(t)
	rc := ResourceContext{Project: f.project}

	d := f.svc.Authorize(f.scope, f.principal(f.teacherT1, models.RoleTeacher), ActionChangeVisibility, ResourceProject, rc)
	assert.True(t, d.Allowed)

	d = f.svc.Authorize(f.scope, f.principal(f.teacherT2, models.RoleTeacher), ActionChangeVisibility, ResourceProject, rc)
	assert.False(t, d.Allowed)
}

func TestProjectMutationBlockedWhenFinished(t *testing.T) {
	f := newFixture(t)
	finished := *f.project
	finished.Status = models.ProjectFinished
	rc := ResourceContext{Project: &finished}

	for _, p := range []Principal{
		f.principal(f.coordinatorID, models.RoleCoordinator),
		f.principal(f.teacherT1, models.RoleTeacher),
	} {
		d := f.svc.Authorize(f.scope, p, ActionUpdate, ResourceProject, rc)
		assert.False(t, d.Allowed, "role %s", p.Role)
		assert.Equal(t, ReasonProjectFinished, d.Reason)

		d = f.svc.Authorize(f.scope, p, ActionDelete, ResourceProject, rc)
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonProjectFinished, d.Reason)
	}
}

func TestProjectMutationTeacherScope(t *testing.T) {
	f := newFixture(t)
	rc := ResourceContext{Project: f.project}

	// T1 runs a live project in this PPI.
	d := f.svc.Authorize(f.scope, f.principal(f.teacherT1, models.RoleTeacher), ActionUpdate, ResourceProject, rc)
	assert.True(t, d.Allowed)

	// T2 has no project in this PPI.
	d = f.svc.Authorize(f.scope, f.principal(f.teacherT2, models.RoleTeacher), ActionUpdate, ResourceProject, rc)
	assert.False(t, d.Allowed)

	d = f.svc.Authorize(f.scope, f.principal(f.coordinatorID, models.RoleCoordinator), ActionUpdate, ResourceProject, rc)
	assert.True(t, d.Allowed)
}

func TestDeliverableCreateSubjectMustBelongToPPI(t *testing.T) {
	f := newFixture(t)
	teacher := f.principal(f.teacherT1, models.RoleTeacher)

	d := f.svc.Authorize(f.scope, teacher, ActionCreate, ResourceDeliverable, ResourceContext{
		Project:   f.project,
		SubjectID: &f.coordSubject.ID,
	})
	assert.True(t, d.Allowed)

	d = f.svc.Authorize(f.scope, teacher, ActionCreate, ResourceDeliverable, ResourceContext{
		Project:   f.project,
		SubjectID: &f.otherSubject.ID,
	})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonSubjectNotInPPI, d.Reason)

	// Without a subject the deliverable is project-wide and only the
	// teaching relationship is checked.
	d = f.svc.Authorize(f.scope, teacher, ActionCreate, ResourceDeliverable, ResourceContext{Project: f.project})
	assert.True(t, d.Allowed)
}

func TestDeliverableMutationRoles(t *testing.T) {
	f := newFixture(t)
	rc := ResourceContext{Project: f.project}

	d := f.svc.Authorize(f.scope, f.principal(f.coordinatorID, models.RoleCoordinator), ActionCreate, ResourceDeliverable, rc)
	assert.True(t, d.Allowed)

	d = f.svc.Authorize(f.scope, f.principal(f.teacherT2, models.RoleTeacher), ActionCreate, ResourceDeliverable, rc)
	assert.False(t, d.Allowed)

	d = f.svc.Authorize(f.scope, f.principal(f.studentS1, models.RoleStudent), ActionCreate, ResourceDeliverable, rc)
	assert.False(t, d.Allowed)

	finished := *f.project
	finished.Status = models.ProjectFinished
	d = f.svc.Authorize(f.scope, f.principal(f.coordinatorID, models.RoleCoordinator), ActionUpdate, ResourceDeliverable, ResourceContext{Project: &finished})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonProjectFinished, d.Reason)
}

func TestContentCreateRequiresGroupMembership(t *testing.T) {
	f := newFixture(t)
	rc := ResourceContext{Deliverable: f.deliverable, Group: f.group, Project: f.project}

	d := f.svc.Authorize(f.scope, f.principal(f.studentS1, models.RoleStudent), ActionCreate, ResourceContent, rc)
	assert.True(t, d.Allowed)

	// S2 is not in the group.
	d = f.svc.Authorize(f.scope, f.principal(f.studentS2, models.RoleStudent), ActionCreate, ResourceContent, rc)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAccessDenied, d.Reason)
}

func TestContentCreateIsOneShotPerPair(t *testing.T) {
	f := newFixture(t)
	rc := ResourceContext{Deliverable: f.deliverable, Group: f.group, Project: f.project}
	member := f.principal(f.studentS1, models.RoleStudent)

	require.NoError(t, f.contents.Create(f.scope, &models.DeliverableContent{
		DeliverableID: f.deliverable.ID,
		GroupID:       f.group.ID,
		Text:          "primeira versão",
		CreatedBy:     f.studentS1,
	}))

	d := f.svc.Authorize(f.scope, member, ActionCreate, ResourceContent, rc)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonContentAlreadyExists, d.Reason)

	err := f.svc.Check(f.scope, member, ActionCreate, ResourceContent, rc)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindConflict, e.Kind)

	// The existing content stays updatable.
	d = f.svc.Authorize(f.scope, member, ActionUpdate, ResourceContent, rc)
	assert.True(t, d.Allowed)
}

func TestContentRejectsForeignGroup(t *testing.T) {
	f := newFixture(t)

	// A group hanging off another project cannot answer this deliverable.
	other := &models.Project{PPIID: f.ppi.ID, Title: "Outro", TeacherID: f.teacherT1, Status: models.ProjectStarted}
	require.NoError(t, f.projects.Create(f.scope, other))
	foreign := &models.Group{ProjectID: other.ID, Name: "Equipe 2"}
	require.NoError(t, f.groups.Create(f.scope, foreign))
	require.NoError(t, f.groups.AddMember(f.scope, &models.GroupMember{GroupID: foreign.ID, UserID: f.studentS2}))

	d := f.svc.Authorize(f.scope, f.principal(f.studentS2, models.RoleStudent), ActionCreate, ResourceContent, ResourceContext{
		Deliverable: f.deliverable,
		Group:       foreign,
		Project:     f.project,
	})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonGroupProjectMismatch, d.Reason)
}

func TestArtifactUploadGatedByWindow(t *testing.T) {
	f := newFixture(t)
	rc := ResourceContext{Deliverable: f.deliverable, Group: f.group, Project: f.project}

	d := f.svc.Authorize(f.scope, f.principal(f.studentS1, models.RoleStudent), ActionCreate, ResourceArtifact, rc)
	assert.True(t, d.Allowed)

	// Before the window opens nobody uploads, the coordinator included.
	f.now = f.deliverable.StartDate.Add(-time.Hour)
	for _, p := range []Principal{
		f.principal(f.studentS1, models.RoleStudent),
		f.principal(f.coordinatorID, models.RoleCoordinator),
	} {
		d = f.svc.Authorize(f.scope, p, ActionCreate, ResourceArtifact, rc)
		assert.False(t, d.Allowed, "role %s", p.Role)
		assert.Equal(t, ReasonDeliverableNotOpen, d.Reason)
	}

	f.now = f.deliverable.EndDate.Add(time.Hour)
	d = f.svc.Authorize(f.scope, f.principal(f.studentS1, models.RoleStudent), ActionCreate, ResourceArtifact, rc)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonDeliverableClosed, d.Reason)
}

func TestArtifactUploadMembershipAndTeaching(t *testing.T) {
	f := newFixture(t)

	// Group upload requires membership.
	rc := ResourceContext{Deliverable: f.deliverable, Group: f.group, Project: f.project}
	d := f.svc.Authorize(f.scope, f.principal(f.studentS2, models.RoleStudent), ActionCreate, ResourceArtifact, rc)
	assert.False(t, d.Allowed)

	// Ungrouped upload is for the teaching staff of the project.
	rc = ResourceContext{Deliverable: f.deliverable, Project: f.project}
	d = f.svc.Authorize(f.scope, f.principal(f.teacherT1, models.RoleTeacher), ActionCreate, ResourceArtifact, rc)
	assert.True(t, d.Allowed)

	d = f.svc.Authorize(f.scope, f.principal(f.teacherT2, models.RoleTeacher), ActionCreate, ResourceArtifact, rc)
	assert.False(t, d.Allowed)

	d = f.svc.Authorize(f.scope, f.principal(f.studentS1, models.RoleStudent), ActionCreate, ResourceArtifact, rc)
	assert.False(t, d.Allowed)
}

func TestContentMutationBlockedWhenFinished(t *testing.T) {
	f := newFixture(t)
	finished := *f.project
	finished.Status = models.ProjectFinished
	rc := ResourceContext{Deliverable: f.deliverable, Group: f.group, Project: &finished}

	// Membership stops mattering once the project is closed.
	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		d := f.svc.Authorize(f.scope, f.principal(f.studentS1, models.RoleStudent), action, ResourceContent, rc)
		assert.False(t, d.Allowed, "action %s", action)
		assert.Equal(t, ReasonProjectFinished, d.Reason)
	}

	err := f.svc.Check(f.scope, f.principal(f.studentS1, models.RoleStudent), ActionUpdate, ResourceContent, rc)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindLifecycle, e.Kind)
}

func TestArtifactUploadBlockedWhenFinished(t *testing.T) {
	f := newFixture(t)
	finished := *f.project
	finished.Status = models.ProjectFinished

	// Both the group path and the teaching-staff path are closed.
	d := f.svc.Authorize(f.scope, f.principal(f.studentS1, models.RoleStudent), ActionCreate, ResourceArtifact,
		ResourceContext{Deliverable: f.deliverable, Group: f.group, Project: &finished})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonProjectFinished, d.Reason)

	d = f.svc.Authorize(f.scope, f.principal(f.teacherT1, models.RoleTeacher), ActionCreate, ResourceArtifact,
		ResourceContext{Deliverable: f.deliverable, Project: &finished})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonProjectFinished, d.Reason)
}

func TestArtifactDeleteOutlivesWindow(t *testing.T) {
	f := newFixture(t)
	rc := ResourceContext{Deliverable: f.deliverable, Group: f.group, Project: f.project}
	member := f.principal(f.studentS1, models.RoleStudent)

	f.now = f.deliverable.EndDate.Add(time.Hour)

	// A group may still withdraw its submission after the deadline,
	// but not replace it.
	d := f.svc.Authorize(f.scope, member, ActionDelete, ResourceArtifact, rc)
	assert.True(t, d.Allowed)

	d = f.svc.Authorize(f.scope, member, ActionUpdate, ResourceArtifact, rc)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonDeliverableClosed, d.Reason)

	// Membership still gates the removal.
	d = f.svc.Authorize(f.scope, f.principal(f.studentS2, models.RoleStudent), ActionDelete, ResourceArtifact, rc)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAccessDenied, d.Reason)
}
