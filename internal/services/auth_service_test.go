package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GeisyGP/sistema-ppi/internal/models"
)

func seedUser(t *testing.T, env *testEnv, registration, password string, memberships ...*models.CourseMembership) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Name: "Ana Souza", Registration: registration, PasswordHash: string(hash)}
	require.NoError(t, env.users.Create(u))
	for _, m := range memberships {
		m.UserID = u.ID
		require.NoError(t, env.users.AddMembership(m))
	}
	return u
}

func TestLoginPicksMembership(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, "test-secret", time.Hour)

	otherCourse := uuid.New()
	u := seedUser(t, env, "20260001", "senha123",
		&models.CourseMembership{CourseID: env.courseID, Role: models.RoleStudent},
		&models.CourseMembership{CourseID: otherCourse, Role: models.RoleTeacher},
	)

	// An explicit course picks that membership's role.
	res, err := auth.Login("20260001", "senha123", otherCourse)
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, otherCourse, res.CourseID)
	assert.Equal(t, models.RoleTeacher, res.Role)
	assert.NotEmpty(t, res.Token)

	// A course the user is not a member of is rejected.
	_, err = auth.Login("20260001", "senha123", uuid.New())
	assert.Error(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, "test-secret", time.Hour)
	seedUser(t, env, "20260001", "senha123",
		&models.CourseMembership{CourseID: env.courseID, Role: models.RoleStudent})

	_, err := auth.Login("20260001", "errada", uuid.Nil)
	assert.Error(t, err)
	_, err = auth.Login("00000000", "senha123", uuid.Nil)
	assert.Error(t, err)
}

func TestLoginRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, "test-secret", time.Hour)
	seedUser(t, env, "20260002", "senha123")

	_, err := auth.Login("20260002", "senha123", uuid.Nil)
	assert.Error(t, err)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, "test-secret", time.Hour)
	u := seedUser(t, env, "20260001", "senha123",
		&models.CourseMembership{CourseID: env.courseID, Role: models.RoleStudent})

	res, err := auth.Login("20260001", "senha123", env.courseID)
	require.NoError(t, err)

	p, err := auth.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, env.courseID, p.ActiveCourseID)
	assert.Equal(t, models.RoleStudent, p.Role)
	assert.True(t, p.Authenticated())
	require.Len(t, p.Memberships, 1)
	assert.Equal(t, env.courseID, p.Memberships[0].CourseID)
}

func TestValidateTokenRejectsForgery(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, "test-secret", time.Hour)
	seedUser(t, env, "20260001", "senha123",
		&models.CourseMembership{CourseID: env.courseID, Role: models.RoleStudent})

	res, err := auth.Login("20260001", "senha123", env.courseID)
	require.NoError(t, err)

	// A token signed with another secret never validates.
	other := NewAuthService(env.users, "another-secret", time.Hour)
	_, err = other.ValidateToken(res.Token)
	assert.Error(t, err)

	_, err = auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, "test-secret", -time.Hour)
	seedUser(t, env, "20260001", "senha123",
		&models.CourseMembership{CourseID: env.courseID, Role: models.RoleStudent})

	res, err := auth.Login("20260001", "senha123", env.courseID)
	require.NoError(t, err)

	_, err = auth.ValidateToken(res.Token)
	assert.Error(t, err)
}
