package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is one of the five fixed roles a membership can carry.
type Role string

const (
	RoleSysadmin    Role = "SYSADMIN"
	RoleCoordinator Role = "COORDINATOR"
	RoleTeacher     Role = "TEACHER"
	RoleStudent     Role = "STUDENT"
	RoleViewer      Role = "VIEWER"
)

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSysadmin, RoleCoordinator, RoleTeacher, RoleStudent, RoleViewer:
		return true
	}
	return false
}

// User is a principal in the global directory. Which courses it can act in,
// and with which role, is recorded per course in CourseMembership.
type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	Name         string         `json:"name" gorm:"type:text;not null"`
	Registration string         `json:"registration" gorm:"type:text;uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"type:text;not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Memberships []CourseMembership `json:"memberships,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }

// CourseMembership links a user to a course with a role. The membership
// picked at login becomes the principal's active (course, role) pair.
type CourseMembership struct {
	ID          uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:text;not null;index:idx_membership_user_course,unique"`
	CourseID    uuid.UUID      `json:"course_id" gorm:"type:text;not null;index:idx_membership_user_course,unique"`
	Role        Role           `json:"role" gorm:"type:text;not null"`
	DisplayName string         `json:"display_name" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

func (CourseMembership) TableName() string { return "course_memberships" }
