package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
)

// testEnv wires real repositories and the access service over an
// in-memory store, the same way main does.
type testEnv struct {
	db       *gorm.DB
	users    repository.UserRepository
	subjects repository.SubjectRepository
	ppis     repository.PPIRepository
	projects repository.ProjectRepository
	groups   repository.GroupRepository
	delivs   repository.DeliverableRepository
	contents repository.DeliverableContentRepository
	access   *authz.Service

	courseID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		subjects: repository.NewSubjectRepository(db),
		ppis:     repository.NewPPIRepository(db),
		projects: repository.NewProjectRepository(db),
		groups:   repository.NewGroupRepository(db),
		delivs:   repository.NewDeliverableRepository(db),
		contents: repository.NewDeliverableContentRepository(db),
		courseID: uuid.New(),
	}
	rel := authz.NewResolver(env.subjects, env.ppis, env.projects, env.groups)
	env.access = authz.NewService(rel, env.contents)
	return env
}

func (e *testEnv) principal(role models.Role) authz.Principal {
	return authz.Principal{ID: uuid.New(), Role: role, ActiveCourseID: e.courseID}
}
