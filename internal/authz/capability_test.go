package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/GeisyGP/sistema-ppi/internal/models"
)

func TestCanStaticGrants(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		action   Action
		resource Resource
		want     bool
	}{
		{"sysadmin creates course", models.RoleSysadmin, ActionCreate, ResourceCourse, true},
		{"sysadmin deletes course", models.RoleSysadmin, ActionDelete, ResourceCourse, true},
		{"sysadmin cannot create project", models.RoleSysadmin, ActionCreate, ResourceProject, false},
		{"coordinator creates subject", models.RoleCoordinator, ActionCreate, ResourceSubject, true},
		{"coordinator creates ppi", models.RoleCoordinator, ActionCreate, ResourcePPI, true},
		{"coordinator creates project", models.RoleCoordinator, ActionCreate, ResourceProject, true},
		{"coordinator cannot create course", models.RoleCoordinator, ActionCreate, ResourceCourse, false},
		{"coordinator reads artifact", models.RoleCoordinator, ActionRead, ResourceArtifact, true},
		{"teacher creates project", models.RoleTeacher, ActionCreate, ResourceProject, true},
		{"teacher cannot create subject", models.RoleTeacher, ActionCreate, ResourceSubject, false},
		{"teacher cannot create ppi", models.RoleTeacher, ActionCreate, ResourcePPI, false},
		{"student reads project", models.RoleStudent, ActionRead, ResourceProject, true},
		{"student cannot create project", models.RoleStudent, ActionCreate, ResourceProject, false},
		{"viewer reads subject", models.RoleViewer, ActionRead, ResourceSubject, true},
		{"viewer cannot update anything", models.RoleViewer, ActionUpdate, ResourceProject, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.action, tt.resource, nil))
		})
	}
}

func TestCanOwnerOnlyGrant(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	assert.True(t, Can(models.RoleStudent, ActionUpdate, ResourceUser, &Attributes{
		OwnerID:     self,
		PrincipalID: self,
	}))
	assert.False(t, Can(models.RoleStudent, ActionUpdate, ResourceUser, &Attributes{
		OwnerID:     other,
		PrincipalID: self,
	}))
	// No attributes means ownership cannot be established.
	assert.False(t, Can(models.RoleStudent, ActionUpdate, ResourceUser, nil))
	// Viewers cannot even update their own record.
	assert.False(t, Can(models.RoleViewer, ActionUpdate, ResourceUser, &Attributes{
		OwnerID:     self,
		PrincipalID: self,
	}))
}

func TestCanTargetRoleGrants(t *testing.T) {
	tests := []struct {
		name   string
		role   models.Role
		action Action
		target models.Role
		want   bool
	}{
		{"sysadmin creates coordinator", models.RoleSysadmin, ActionCreate, models.RoleCoordinator, true},
		{"sysadmin cannot create student", models.RoleSysadmin, ActionCreate, models.RoleStudent, false},
		{"sysadmin updates teacher", models.RoleSysadmin, ActionUpdate, models.RoleTeacher, true},
		{"coordinator creates teacher", models.RoleCoordinator, ActionCreate, models.RoleTeacher, true},
		{"coordinator creates viewer", models.RoleCoordinator, ActionCreate, models.RoleViewer, true},
		{"coordinator cannot create coordinator", models.RoleCoordinator, ActionCreate, models.RoleCoordinator, false},
		{"teacher creates student", models.RoleTeacher, ActionCreate, models.RoleStudent, true},
		{"teacher cannot create teacher", models.RoleTeacher, ActionCreate, models.RoleTeacher, false},
		{"teacher deletes student", models.RoleTeacher, ActionDelete, models.RoleStudent, true},
		{"student cannot create anyone", models.RoleStudent, ActionCreate, models.RoleStudent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Can(tt.role, tt.action, ResourceUser, &Attributes{TargetRole: tt.target})
			assert.Equal(t, tt.want, got)
		})
	}
}

// Reads granted to students are also granted to teachers and coordinators;
// the hierarchy only narrows going down.
func TestReadGrantsWidenUpward(t *testing.T) {
	for _, res := range []Resource{ResourceUser, ResourceSubject, ResourceCourse, ResourceProject} {
		if Can(models.RoleStudent, ActionRead, res, nil) {
			assert.True(t, Can(models.RoleTeacher, ActionRead, res, nil), "teacher should read %s", res)
			assert.True(t, Can(models.RoleCoordinator, ActionRead, res, nil), "coordinator should read %s", res)
		}
	}
}
