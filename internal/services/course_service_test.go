package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
)

func sysadmin() authz.Principal {
	return authz.Principal{
		ID:             uuid.New(),
		Role:           models.RoleSysadmin,
		ActiveCourseID: models.RootCourseID,
	}
}

func TestCourseManagementIsSysadminOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(repository.NewCourseRepository(env.db), env.access)

	course, err := svc.Create(sysadmin(), "Análise e Desenvolvimento de Sistemas", "2026.1")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, course.ID)

	_, err = svc.Create(env.principal(models.RoleCoordinator), "Curso Pirata", "2026.1")
	var e *authz.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, authz.KindForbidden, e.Kind)

	// Coordinators still read course data.
	_, err = svc.Get(env.principal(models.RoleCoordinator), course.ID)
	assert.NoError(t, err)

	err = svc.Delete(env.principal(models.RoleTeacher), course.ID)
	require.ErrorAs(t, err, &e)
	assert.Equal(t, authz.KindForbidden, e.Kind)

	require.NoError(t, svc.Delete(sysadmin(), course.ID))
	_, err = svc.Get(sysadmin(), course.ID)
	assert.Error(t, err)
}

func TestRootCourseCannotBeDeleted(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(repository.NewCourseRepository(env.db), env.access)

	err := svc.Delete(sysadmin(), models.RootCourseID)
	var e *authz.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, authz.KindForbidden, e.Kind)
}
